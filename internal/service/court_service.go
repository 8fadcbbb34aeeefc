package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/repository"
)

// OpeningHours es la alternativa a listar franjas una por una.
type OpeningHours struct {
	Open        string `json:"apertura"`
	Close       string `json:"cierre"`
	SlotMinutes int    `json:"minutos_franja"`
}

type CourtInput struct {
	ProviderID     string                      `json:"proveedor_id"`
	Name           string                      `json:"nombre"`
	SportType      string                      `json:"deporte"`
	Address        string                      `json:"direccion"`
	Description    string                      `json:"descripcion"`
	Price          int64                       `json:"precio"`
	WeeklySchedule map[int][]calendar.Interval `json:"horario"`
	OpeningHours   map[int]OpeningHours        `json:"horario_apertura"`
	ClosedWeekdays []int                       `json:"dias_cerrados"`
	ClosedDates    []string                    `json:"fechas_cerradas"`
}

// CourtService — gestión de canchas del lado del proveedor.
type CourtService struct {
	courtRepo       repository.CourtRepository
	providerRepo    repository.ProviderRepository
	extraRepo       repository.ExtraServiceRepository
	reservationRepo repository.ReservationRepository
	blockRepo       repository.BlockRepository
	audit           auditor

	clock  calendar.Clock
	policy calendar.Policy
	logger *zap.Logger
}

func NewCourtService(
	courtRepo repository.CourtRepository,
	providerRepo repository.ProviderRepository,
	extraRepo repository.ExtraServiceRepository,
	reservationRepo repository.ReservationRepository,
	blockRepo repository.BlockRepository,
	eventRepo repository.EventRepository,
	clock calendar.Clock,
	policy calendar.Policy,
	logger *zap.Logger,
) *CourtService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourtService{
		courtRepo:       courtRepo,
		providerRepo:    providerRepo,
		extraRepo:       extraRepo,
		reservationRepo: reservationRepo,
		blockRepo:       blockRepo,
		audit:           auditor{events: eventRepo, logger: logger},
		clock:           clock,
		policy:          policy,
		logger:          logger,
	}
}

func (s *CourtService) CreateCourt(ctx context.Context, in CourtInput) (*model.Court, error) {
	court := &model.Court{}
	if err := s.apply(ctx, court, in); err != nil {
		return nil, err
	}
	if err := s.courtRepo.Create(ctx, court); err != nil {
		return nil, fmt.Errorf("create court: %w", err)
	}

	s.audit.record(ctx, model.EventCourtCreated, court.ID, uuid.Nil, court.Name)
	s.logger.Info("Court created",
		zap.String("court_id", court.ID.String()),
		zap.String("name", court.Name),
	)
	return court, nil
}

func (s *CourtService) GetCourt(ctx context.Context, id string) (*model.Court, error) {
	if _, err := parseID("court", id); err != nil {
		return nil, err
	}
	court, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("court", err)
	}
	return court, nil
}

func (s *CourtService) ListCourts(ctx context.Context, sport string, page, pageSize int) (calendar.Page[model.Court], error) {
	courts, err := s.courtRepo.List(ctx, strings.TrimSpace(sport))
	if err != nil {
		return calendar.Page[model.Court]{}, fmt.Errorf("list courts: %w", err)
	}
	return calendar.Paginate(courts, page, pageSize), nil
}

func (s *CourtService) UpdateCourt(ctx context.Context, id string, in CourtInput) (*model.Court, error) {
	court, err := s.GetCourt(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, court, in); err != nil {
		return nil, err
	}
	if err := s.courtRepo.Update(ctx, court); err != nil {
		return nil, fmt.Errorf("update court: %w", err)
	}

	s.audit.record(ctx, model.EventCourtUpdated, court.ID, uuid.Nil, court.Name)
	s.logger.Info("Court updated", zap.String("court_id", court.ID.String()))
	return court, nil
}

// DeleteCourt se niega mientras haya reservas no canceladas de hoy en adelante.
func (s *CourtService) DeleteCourt(ctx context.Context, id string) error {
	court, err := s.GetCourt(ctx, id)
	if err != nil {
		return err
	}

	today := s.clock.Now().In(s.location()).Format(calendar.DateLayout)
	busy, err := s.courtRepo.HasActiveReservationsFrom(ctx, id, today)
	if err != nil {
		return fmt.Errorf("check court reservations: %w", err)
	}
	if busy {
		return ErrCourtInUse
	}

	if err := s.courtRepo.Delete(ctx, id); err != nil {
		return notFound("court", err)
	}

	s.audit.record(ctx, model.EventCourtDeleted, court.ID, uuid.Nil, court.Name)
	s.logger.Info("Court deleted", zap.String("court_id", id))
	return nil
}

// Availability devuelve las franjas del día con su estado.
func (s *CourtService) Availability(ctx context.Context, courtID, date string) ([]calendar.Slot, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return nil, invalid("fecha", "Fecha inválida")
	}
	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	return availability(ctx, s.reservationRepo, s.blockRepo, court, day.Format(calendar.DateLayout))
}

func (s *CourtService) location() *time.Location {
	if s.policy.Location == nil {
		return time.UTC
	}
	return s.policy.Location
}

// apply valida la entrada y la copia sobre court.
func (s *CourtService) apply(ctx context.Context, court *model.Court, in CourtInput) error {
	v := &ValidationError{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		v.add("nombre", "El nombre es obligatorio")
	}
	if in.Price < 0 {
		v.add("precio", "El precio no puede ser negativo")
	}

	schedule := buildSchedule(in, v)

	closedDays := make([]int, 0, len(in.ClosedWeekdays))
	for _, d := range in.ClosedWeekdays {
		if d < 0 || d > 6 {
			v.add("dias_cerrados", fmt.Sprintf("Día %d fuera de rango 0..6", d))
			continue
		}
		closedDays = append(closedDays, d)
	}

	closedDates := make([]string, 0, len(in.ClosedDates))
	for _, raw := range in.ClosedDates {
		d, err := calendar.ParseDate(raw)
		if err != nil {
			v.add("fechas_cerradas", fmt.Sprintf("Fecha inválida %q", raw))
			continue
		}
		closedDates = append(closedDates, d.Format(calendar.DateLayout))
	}

	if in.ProviderID != "" {
		pid, err := parseID("provider", in.ProviderID)
		if err != nil {
			v.add("proveedor_id", "Proveedor inexistente")
		} else if _, err := s.providerRepo.GetByID(ctx, in.ProviderID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("get provider: %w", err)
			}
			v.add("proveedor_id", "Proveedor inexistente")
		} else {
			court.ProviderID = &pid
		}
	}

	if err := v.orNil(); err != nil {
		return err
	}

	court.Name = name
	court.SportType = strings.TrimSpace(in.SportType)
	court.Address = strings.TrimSpace(in.Address)
	court.Description = in.Description
	court.Price = in.Price
	court.WeeklySchedule = datatypes.NewJSONType(schedule)
	court.ClosedWeekdays = datatypes.NewJSONType(closedDays)
	court.ClosedDates = datatypes.NewJSONType(closedDates)
	return nil
}

func buildSchedule(in CourtInput, v *ValidationError) model.WeeklySchedule {
	out := model.WeeklySchedule{}
	for day, bands := range in.WeeklySchedule {
		if day < 0 || day > 6 {
			v.add("horario", fmt.Sprintf("Día %d fuera de rango 0..6", day))
			continue
		}
		for _, b := range bands {
			iv, ok := normalizeInterval(b)
			if !ok {
				v.add("horario", fmt.Sprintf("Franja inválida %s-%s", b.Start, b.End))
				continue
			}
			out[day] = append(out[day], iv)
		}
	}
	for day, oh := range in.OpeningHours {
		if day < 0 || day > 6 {
			v.add("horario_apertura", fmt.Sprintf("Día %d fuera de rango 0..6", day))
			continue
		}
		ivs, err := calendar.GenerateIntervals(oh.Open, oh.Close, oh.SlotMinutes)
		if err != nil {
			v.add("horario_apertura", fmt.Sprintf("Horario inválido para el día %d", day))
			continue
		}
		out[day] = append(out[day], ivs...)
	}
	return out
}

// normalizeInterval exige HH:MM válidas con inicio < fin.
func normalizeInterval(iv calendar.Interval) (calendar.Interval, bool) {
	start, err := calendar.ParseTime(iv.Start)
	if err != nil {
		return calendar.Interval{}, false
	}
	end, err := calendar.ParseTime(iv.End)
	if err != nil || end <= start {
		return calendar.Interval{}, false
	}
	return calendar.Interval{
		Start: calendar.NormalizeTime(iv.Start),
		End:   calendar.NormalizeTime(iv.End),
	}, true
}

// availability junta reservas activas y bloqueos del día y delega en el motor.
func availability(
	ctx context.Context,
	reservations repository.ReservationRepository,
	blocks repository.BlockRepository,
	court *model.Court,
	date string,
) ([]calendar.Slot, error) {
	rows, err := reservations.ListActiveByCourtAndDate(ctx, court.ID.String(), date)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	reserved := make([]calendar.Reservation, 0, len(rows))
	for i := range rows {
		reserved = append(reserved, rows[i].Calendar())
	}

	bl, err := blocks.ListByCourt(ctx, court.ID.String(), date)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	maintenance := make([]calendar.Interval, 0, len(bl))
	for _, b := range bl {
		maintenance = append(maintenance, calendar.Interval{Start: b.StartTime, End: b.EndTime})
	}

	return calendar.ComputeSlots(court.Calendar(), date, reserved, maintenance...), nil
}
