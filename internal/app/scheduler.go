package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Completer — lo que el planificador necesita del servicio de reservas.
type Completer interface {
	AutoComplete(ctx context.Context) (int, error)
}

// Scheduler cierra periódicamente las reservas cuyo horario ya terminó.
type Scheduler struct {
	completer Completer
	interval  time.Duration
	logger    *zap.Logger

	mu       sync.Mutex
	started  bool
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewScheduler(completer Completer, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		completer: completer,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start lanza la tarea en segundo plano. Con intervalo <= 0 no hace nada.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	if s.interval <= 0 {
		s.logger.Info("Auto-complete scheduler disabled")
		close(s.done)
		return
	}
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.runAutoCompleteTask(ctx)
}

// Stop detiene la tarea y espera a que termine. Sin Start previo vuelve de
// inmediato y un Start posterior ya no arranca nada.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)

		s.mu.Lock()
		if !s.started {
			s.started = true
			close(s.done)
		}
		s.mu.Unlock()
	})
	<-s.done
}

func (s *Scheduler) runAutoCompleteTask(ctx context.Context) {
	defer close(s.done)

	// Primera pasada al arrancar
	s.autoComplete(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.autoComplete(ctx)
		case <-s.stopChan:
			s.logger.Info("Auto-complete task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Auto-complete task cancelled")
			return
		}
	}
}

func (s *Scheduler) autoComplete(ctx context.Context) {
	n, err := s.completer.AutoComplete(ctx)
	if err != nil {
		s.logger.Error("Failed to auto-complete reservations", zap.Error(err))
		return
	}
	s.logger.Debug("Auto-complete pass finished", zap.Int("completed", n))
}
