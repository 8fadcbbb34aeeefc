package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/config"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/db"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/notify"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/repository"
)

// Lunes 20/10/2025, 10:00 UTC.
const testNow = "2025-10-20T10:00:00Z"

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return tt
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ notify.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type testEnv struct {
	gdb          *gorm.DB
	clock        *testClock
	publisher    *recordingPublisher
	courts       *CourtService
	reservations *ReservationService

	courtRepo       *repository.GormCourtRepository
	extraRepo       *repository.GormExtraServiceRepository
	blockRepo       *repository.GormBlockRepository
	eventRepo       *repository.GormEventRepository
	reservationRepo *repository.GormReservationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.NewGormDB(&config.DBConfig{Driver: config.DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(gdb); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		gdb:             gdb,
		clock:           &testClock{now: mustTime(t, testNow)},
		publisher:       &recordingPublisher{},
		courtRepo:       repository.NewGormCourtRepository(gdb),
		extraRepo:       repository.NewGormExtraServiceRepository(gdb),
		blockRepo:       repository.NewGormBlockRepository(gdb),
		eventRepo:       repository.NewGormEventRepository(gdb),
		reservationRepo: repository.NewGormReservationRepository(gdb),
	}
	policy := calendar.DefaultPolicy()

	env.courts = NewCourtService(
		env.courtRepo,
		repository.NewGormProviderRepository(gdb),
		env.extraRepo,
		env.reservationRepo,
		env.blockRepo,
		env.eventRepo,
		env.clock,
		policy,
		zap.NewNop(),
	)
	env.reservations = NewReservationService(
		env.reservationRepo,
		env.courtRepo,
		env.extraRepo,
		env.blockRepo,
		env.eventRepo,
		env.publisher,
		env.clock,
		policy,
		zap.NewNop(),
	)
	return env
}

// createCourt: lunes a sábado 08:00-22:00 en franjas de una hora, domingo cerrado.
func (e *testEnv) createCourt(t *testing.T, name string, price int64) *model.Court {
	t.Helper()
	hours := OpeningHours{Open: "08:00", Close: "22:00", SlotMinutes: 60}
	in := CourtInput{
		Name:           name,
		SportType:      "futbol",
		Price:          price,
		OpeningHours:   map[int]OpeningHours{1: hours, 2: hours, 3: hours, 4: hours, 5: hours, 6: hours},
		ClosedWeekdays: []int{0},
	}
	c, err := e.courts.CreateCourt(context.Background(), in)
	if err != nil {
		t.Fatalf("create court: %v", err)
	}
	return c
}

func (e *testEnv) book(t *testing.T, courtID, date, start, end string, extras ...string) *ReservationView {
	t.Helper()
	v, err := e.reservations.Create(context.Background(), CreateReservationInput{
		CourtID:         courtID,
		Date:            date,
		Start:           start,
		End:             end,
		ClientName:      "Ana Gómez",
		ClientPhone:     "3001234567",
		ExtraServiceIDs: extras,
	})
	if err != nil {
		t.Fatalf("create reservation %s %s-%s: %v", date, start, end, err)
	}
	return v
}

func slotStatus(t *testing.T, slots []calendar.Slot, start string) calendar.SlotStatus {
	t.Helper()
	for _, s := range slots {
		if s.Start == start {
			return s.Status
		}
	}
	t.Fatalf("slot %s not found in %v", start, slots)
	return ""
}
