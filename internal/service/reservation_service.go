package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/notify"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/repository"
)

type CreateReservationInput struct {
	CourtID         string
	Date            string
	Start           string
	End             string
	ClientName      string
	ClientPhone     string
	PaymentMethod   string
	ExtraServiceIDs []string
}

var (
	paymentMethodKeys = []string{"metodo_pago", "paymentMethod", "payment_method", "metodoPago"}
	extraIDListKeys   = []string{"servicios_extra", "extraServices", "servicios", "servicios_ids", "extra_service_ids"}
)

// ReservationInputFromRecord acepta los mismos alias de campo que el adaptador del
// motor. Los servicios extra pueden venir como ids sueltos o como objetos.
func ReservationInputFromRecord(rec map[string]any) CreateReservationInput {
	r := calendar.ReservationFromRecord(rec)
	in := CreateReservationInput{
		CourtID:     r.CourtID,
		Date:        r.Date,
		Start:       r.Start,
		End:         r.End,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
	}
	for _, k := range paymentMethodKeys {
		if v, ok := rec[k].(string); ok && v != "" {
			in.PaymentMethod = v
			break
		}
	}
	for _, k := range extraIDListKeys {
		list, ok := rec[k].([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			if id, ok := item.(string); ok {
				in.ExtraServiceIDs = append(in.ExtraServiceIDs, id)
			}
		}
		break
	}
	for _, e := range r.Extras {
		if e.ServiceID != "" {
			in.ExtraServiceIDs = append(in.ExtraServiceIDs, e.ServiceID)
		}
	}
	return in
}

// ReservationView — reserva + estado derivado + acciones permitidas ahora.
type ReservationView struct {
	Reservation   calendar.Reservation    `json:"reserva"`
	NoShow        bool                    `json:"no_show"`
	PaymentMethod model.PaymentMethod     `json:"metodo_pago"`
	State         calendar.Classification `json:"estado"`
	Actions       calendar.Actions        `json:"acciones"`
}

type ListReservationsFilter struct {
	CourtID  string
	Phone    string
	Date     string
	Category calendar.Category
	Page     int
	PageSize int
}

// ReservationService maneja el ciclo de vida de las reservas.
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	courtRepo       repository.CourtRepository
	extraRepo       repository.ExtraServiceRepository
	blockRepo       repository.BlockRepository
	audit           auditor

	clock  calendar.Clock
	policy calendar.Policy
	logger *zap.Logger
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	courtRepo repository.CourtRepository,
	extraRepo repository.ExtraServiceRepository,
	blockRepo repository.BlockRepository,
	eventRepo repository.EventRepository,
	publisher notify.Publisher,
	clock calendar.Clock,
	policy calendar.Policy,
	logger *zap.Logger,
) *ReservationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		extraRepo:       extraRepo,
		blockRepo:       blockRepo,
		audit:           auditor{events: eventRepo, publisher: publisher, logger: logger},
		clock:           clock,
		policy:          policy,
		logger:          logger,
	}
}

func (s *ReservationService) Policy() calendar.Policy { return s.policy }

func (s *ReservationService) now() time.Time {
	return s.clock.Now()
}

// Create valida la solicitud, comprueba que la franja esté libre y la inserta
// en una transacción que vuelve a verificar solapamientos.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*ReservationView, error) {
	v := &ValidationError{}
	if strings.TrimSpace(in.CourtID) == "" {
		v.add("cancha_id", "La cancha es obligatoria")
	}
	day, err := calendar.ParseDate(in.Date)
	if err != nil {
		v.add("fecha", "Fecha inválida")
	}
	startOff, errStart := calendar.ParseTime(in.Start)
	endOff, errEnd := calendar.ParseTime(in.End)
	if errStart != nil || errEnd != nil || endOff <= startOff {
		v.add("inicio", "Horario inválido")
	}
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		v.add("cliente_nombre", "El nombre del cliente es obligatorio")
	}
	phone := strings.TrimSpace(in.ClientPhone)
	if phone == "" {
		v.add("cliente_telefono", "El teléfono del cliente es obligatorio")
	}
	payment, ok := parsePaymentMethod(in.PaymentMethod)
	if !ok {
		v.add("metodo_pago", "Método de pago no válido")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	date := day.Format(calendar.DateLayout)
	start := calendar.NormalizeTime(in.Start)
	end := calendar.NormalizeTime(in.End)

	now := s.now()
	loc := s.location()
	if date < now.In(loc).Format(calendar.DateLayout) {
		return nil, invalid("fecha", "La fecha no puede estar en el pasado")
	}
	if startAt, err := calendar.Combine(date, start, loc); err == nil && !startAt.After(now) {
		return nil, invalid("inicio", "La hora de inicio ya pasó")
	}

	courtID, err := parseID("court", in.CourtID)
	if err != nil {
		return nil, err
	}
	court, err := s.courtRepo.GetByID(ctx, courtID.String())
	if err != nil {
		return nil, notFound("court", err)
	}

	slots, err := availability(ctx, s.reservationRepo, s.blockRepo, court, date)
	if err != nil {
		return nil, err
	}
	if !slotFree(slots, start, end) {
		return nil, fmt.Errorf("%s %s-%s: %w", date, start, end, ErrSlotUnavailable)
	}

	extras, err := s.resolveExtras(ctx, court, in.ExtraServiceIDs)
	if err != nil {
		return nil, err
	}

	total := court.Price
	for _, e := range extras {
		total += e.AppliedPrice
	}

	res := &model.Reservation{
		CourtID:       court.ID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Status:        calendar.StatusScheduled,
		ClientName:    name,
		ClientPhone:   phone,
		PaymentMethod: payment,
		Total:         total,
		Extras:        extras,
	}
	if err := s.reservationRepo.CreateWithNoOverlap(ctx, res); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, fmt.Errorf("%s %s-%s: %w", date, start, end, ErrSlotUnavailable)
		}
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.audit.record(ctx, model.EventReservationCreated, res.CourtID, res.ID, calendar.FormatSlot(date, start, end))
	s.audit.publish(ctx, notify.RoutingReservationCreated, notify.NewReservationEvent(res.Calendar(), false, now))
	s.logger.Info("Reservation created",
		zap.String("reservation_id", res.ID.String()),
		zap.String("court_id", res.CourtID.String()),
		zap.String("date", date),
		zap.String("start", start),
		zap.String("end", end),
		zap.Int64("total", total),
	)

	view := s.view(res, now)
	return &view, nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (*ReservationView, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.view(res, s.now())
	return &view, nil
}

// List filtra en base de datos por cancha, teléfono y fecha; la categoría es
// derivada y se filtra en memoria antes de paginar.
func (s *ReservationService) List(ctx context.Context, f ListReservationsFilter) (calendar.Page[ReservationView], error) {
	if f.Category != "" && f.Category.Label() == "" {
		return calendar.Page[ReservationView]{}, invalid("categoria", fmt.Sprintf("Categoría desconocida %q", f.Category))
	}
	if f.Date != "" {
		day, err := calendar.ParseDate(f.Date)
		if err != nil {
			return calendar.Page[ReservationView]{}, invalid("fecha", "Fecha inválida")
		}
		f.Date = day.Format(calendar.DateLayout)
	}

	rows, err := s.reservationRepo.List(ctx, repository.ReservationFilter{
		CourtID: strings.TrimSpace(f.CourtID),
		Phone:   strings.TrimSpace(f.Phone),
		Date:    f.Date,
	})
	if err != nil {
		return calendar.Page[ReservationView]{}, fmt.Errorf("list reservations: %w", err)
	}

	now := s.now()
	views := make([]ReservationView, 0, len(rows))
	for i := range rows {
		view := s.view(&rows[i], now)
		if f.Category != "" && view.State.Category != f.Category {
			continue
		}
		views = append(views, view)
	}
	return calendar.Paginate(views, f.Page, f.PageSize), nil
}

func (s *ReservationService) History(ctx context.Context, id string) ([]model.Event, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := s.audit.events.ListByReservation(ctx, res.ID.String())
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *ReservationService) Cancel(ctx context.Context, id string) (*ReservationView, error) {
	return s.transition(ctx, id, transition{
		action:     "cancelar",
		to:         calendar.StatusCancelled,
		check:      s.policy.CancelEligibility,
		event:      model.EventReservationCancelled,
		routingKey: notify.RoutingReservationCancelled,
	})
}

func (s *ReservationService) Complete(ctx context.Context, id string) (*ReservationView, error) {
	return s.transition(ctx, id, transition{
		action:     "completar",
		to:         calendar.StatusCompleted,
		check:      s.policy.CompleteEligibility,
		event:      model.EventReservationCompleted,
		routingKey: notify.RoutingReservationCompleted,
	})
}

// MarkNoShow cierra la reserva como completada con la marca de inasistencia.
func (s *ReservationService) MarkNoShow(ctx context.Context, id string) (*ReservationView, error) {
	return s.transition(ctx, id, transition{
		action:     "no_show",
		to:         calendar.StatusCompleted,
		noShow:     true,
		check:      s.policy.NoShowEligibility,
		event:      model.EventReservationNoShow,
		routingKey: notify.RoutingReservationNoShow,
	})
}

type transition struct {
	action     string
	to         calendar.ReservationStatus
	noShow     bool
	check      func(calendar.Reservation, time.Time) calendar.Decision
	event      model.EventType
	routingKey string
}

func (s *ReservationService) transition(ctx context.Context, id string, t transition) (*ReservationView, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if d := t.check(res.Calendar(), now); !d.Allowed {
		return nil, &NotAllowedError{Action: t.action, Reason: d.Reason}
	}

	n, err := s.reservationRepo.Transition(ctx, res.ID.String(), t.to, t.noShow, now)
	if err != nil {
		return nil, fmt.Errorf("update reservation status: %w", err)
	}
	if n == 0 {
		return nil, ErrConflict
	}
	applyTransition(res, t.to, t.noShow, now)

	s.audit.record(ctx, t.event, res.CourtID, res.ID, calendar.FormatSlot(res.Date, res.StartTime, res.EndTime))
	s.audit.publish(ctx, t.routingKey, notify.NewReservationEvent(res.Calendar(), t.noShow, now))
	s.logger.Info("Reservation status changed",
		zap.String("reservation_id", res.ID.String()),
		zap.String("action", t.action),
		zap.String("status", string(t.to)),
		zap.Bool("no_show", t.noShow),
	)

	view := s.view(res, now)
	return &view, nil
}

// AutoComplete persiste como completadas las reservas cuyo horario ya terminó.
// Devuelve cuántas cambiaron.
func (s *ReservationService) AutoComplete(ctx context.Context) (int, error) {
	now := s.now()
	today := now.In(s.location()).Format(calendar.DateLayout)

	rows, err := s.reservationRepo.ListScheduledUntil(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("list scheduled reservations: %w", err)
	}

	done := 0
	for i := range rows {
		res := &rows[i]
		if !s.policy.CompleteEligibility(res.Calendar(), now).Allowed {
			continue
		}
		n, err := s.reservationRepo.Transition(ctx, res.ID.String(), calendar.StatusCompleted, false, now)
		if err != nil {
			return done, fmt.Errorf("complete reservation %s: %w", res.ID, err)
		}
		if n == 0 {
			continue
		}
		applyTransition(res, calendar.StatusCompleted, false, now)
		s.audit.record(ctx, model.EventReservationCompleted, res.CourtID, res.ID, "auto")
		s.audit.publish(ctx, notify.RoutingReservationCompleted, notify.NewReservationEvent(res.Calendar(), false, now))
		done++
	}

	if done > 0 {
		s.logger.Info("Reservations auto-completed", zap.Int("count", done))
	}
	return done, nil
}

func (s *ReservationService) load(ctx context.Context, id string) (*model.Reservation, error) {
	if _, err := parseID("reservation", id); err != nil {
		return nil, err
	}
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("reservation", err)
	}
	return res, nil
}

func (s *ReservationService) view(res *model.Reservation, now time.Time) ReservationView {
	r := res.Calendar()
	return ReservationView{
		Reservation:   r,
		NoShow:        res.NoShow,
		PaymentMethod: res.PaymentMethod,
		State:         s.policy.Classify(r, now),
		Actions:       s.policy.Actions(r, now),
	}
}

func (s *ReservationService) location() *time.Location {
	if s.policy.Location == nil {
		return time.UTC
	}
	return s.policy.Location
}

// resolveExtras: cada servicio debe existir, ser de la cancha y estar disponible.
func (s *ReservationService) resolveExtras(ctx context.Context, court *model.Court, raw []string) ([]model.ReservationExtra, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, invalid("servicios_extra", fmt.Sprintf("Servicio extra inválido %q", r))
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	found, err := s.extraRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list extra services: %w", err)
	}
	byID := make(map[uuid.UUID]model.ExtraService, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}

	out := make([]model.ReservationExtra, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok || svc.CourtID != court.ID {
			return nil, invalid("servicios_extra", fmt.Sprintf("El servicio %s no pertenece a la cancha", id))
		}
		if !svc.Available {
			return nil, invalid("servicios_extra", fmt.Sprintf("El servicio %q no está disponible", svc.Name))
		}
		out = append(out, model.ReservationExtra{
			ServiceID:    svc.ID,
			Name:         svc.Name,
			AppliedPrice: svc.Price,
		})
	}
	return out, nil
}

func parsePaymentMethod(raw string) (model.PaymentMethod, bool) {
	switch m := model.PaymentMethod(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return model.PaymentCash, true
	case model.PaymentCash, model.PaymentCard, model.PaymentTransfer:
		return m, true
	default:
		return "", false
	}
}

func slotFree(slots []calendar.Slot, start, end string) bool {
	for _, sl := range slots {
		if sl.Start == start && sl.End == end {
			return sl.Status == calendar.SlotFree
		}
	}
	return false
}

func applyTransition(res *model.Reservation, to calendar.ReservationStatus, noShow bool, at time.Time) {
	res.Status = to
	res.NoShow = noShow
	switch to {
	case calendar.StatusCancelled:
		res.CancelledAt = &at
	case calendar.StatusCompleted:
		res.CompletedAt = &at
	}
}
