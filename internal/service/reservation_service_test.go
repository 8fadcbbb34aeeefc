package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/notify"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/repository"
)

func TestReservationService_CreateComputesTotalAndOccupiesSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	court := env.createCourt(t, "Cancha Sintética 1", 80000)

	referee, err := env.courts.CreateExtraService(ctx, court.ID.String(), ExtraServiceInput{
		Type:  "arbitraje",
		Name:  "Arbitraje",
		Price: 15000,
	})
	if err != nil {
		t.Fatalf("create extra: %v", err)
	}

	view := env.book(t, court.ID.String(), "2025-10-20", "14:00", "15:00", referee.ID.String())

	if view.Reservation.Total != 95000 {
		t.Fatalf("expected total 95000, got %d", view.Reservation.Total)
	}
	if len(view.Reservation.Extras) != 1 || view.Reservation.Extras[0].AppliedPrice != 15000 {
		t.Fatalf("unexpected extras: %+v", view.Reservation.Extras)
	}
	if view.Reservation.Status != calendar.StatusScheduled {
		t.Fatalf("expected programada, got %q", view.Reservation.Status)
	}
	if view.PaymentMethod != model.PaymentCash {
		t.Fatalf("expected default payment efectivo, got %q", view.PaymentMethod)
	}
	// 10:00 -> fin 15:00: dentro de las 24h.
	if view.State.Category != calendar.CategoryUpcoming {
		t.Fatalf("expected proxima, got %+v", view.State)
	}
	if !view.Actions.Cancel.Allowed {
		t.Fatalf("cancel must be allowed 4h before start: %+v", view.Actions.Cancel)
	}

	slots, err := env.courts.Availability(ctx, court.ID.String(), "2025-10-20")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if got := slotStatus(t, slots, "14:00"); got != calendar.SlotReserved {
		t.Fatalf("expected 14:00 reserved, got %q", got)
	}
	if got := slotStatus(t, slots, "15:00"); got != calendar.SlotFree {
		t.Fatalf("adjacent slot must stay free, got %q", got)
	}

	keys := env.publisher.Keys()
	if len(keys) != 1 || keys[0] != notify.RoutingReservationCreated {
		t.Fatalf("expected one %s event, got %v", notify.RoutingReservationCreated, keys)
	}
}

func TestReservationService_CreateRejectsUnavailableSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	court := env.createCourt(t, "Cancha 1", 80000)
	env.book(t, court.ID.String(), "2025-10-20", "14:00", "15:00")

	if _, err := env.courts.CreateBlock(ctx, court.ID.String(), BlockInput{
		Date:   "2025-10-20",
		Start:  "16:00",
		End:    "18:00",
		Reason: "Cambio de grama",
	}); err != nil {
		t.Fatalf("create block: %v", err)
	}

	cases := []struct {
		name       string
		date       string
		start, end string
	}{
		{"already reserved", "2025-10-20", "14:00", "15:00"},
		{"not a configured slot", "2025-10-20", "14:30", "15:30"},
		{"maintenance block", "2025-10-20", "17:00", "18:00"},
		{"closed weekday", "2025-10-26", "10:00", "11:00"},
	}
	for _, tc := range cases {
		_, err := env.reservations.Create(ctx, CreateReservationInput{
			CourtID:     court.ID.String(),
			Date:        tc.date,
			Start:       tc.start,
			End:         tc.end,
			ClientName:  "Luis",
			ClientPhone: "3110000000",
		})
		if !errors.Is(err, ErrSlotUnavailable) {
			t.Fatalf("%s: expected ErrSlotUnavailable, got %v", tc.name, err)
		}
	}
}

func TestReservationService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	court := env.createCourt(t, "Cancha 1", 80000)

	_, err := env.reservations.Create(ctx, CreateReservationInput{
		CourtID:       court.ID.String(),
		Date:          "2025-10-21",
		Start:         "10:00",
		End:           "11:00",
		PaymentMethod: "bitcoin",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"cliente_nombre", "cliente_telefono", "metodo_pago"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, verr.Fields)
		}
	}

	base := CreateReservationInput{
		CourtID:     court.ID.String(),
		ClientName:  "Ana",
		ClientPhone: "3001234567",
	}

	past := base
	past.Date, past.Start, past.End = "2025-10-19", "10:00", "11:00"
	if _, err := env.reservations.Create(ctx, past); !errors.As(err, &verr) || verr.Fields["fecha"] == "" {
		t.Fatalf("expected fecha validation error for past date, got %v", err)
	}

	startedToday := base
	startedToday.Date, startedToday.Start, startedToday.End = "2025-10-20", "09:00", "10:00"
	if _, err := env.reservations.Create(ctx, startedToday); !errors.As(err, &verr) || verr.Fields["inicio"] == "" {
		t.Fatalf("expected inicio validation error for a slot already started, got %v", err)
	}

	unknownCourt := base
	unknownCourt.CourtID = "00000000-0000-0000-0000-000000000001"
	unknownCourt.Date, unknownCourt.Start, unknownCourt.End = "2025-10-21", "10:00", "11:00"
	if _, err := env.reservations.Create(ctx, unknownCourt); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown court, got %v", err)
	}
}

func TestReservationService_CreateRejectsForeignOrUnavailableExtras(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	court := env.createCourt(t, "Cancha 1", 80000)
	other := env.createCourt(t, "Cancha 2", 60000)

	off := false
	hidden, err := env.courts.CreateExtraService(ctx, court.ID.String(), ExtraServiceInput{Name: "Premiación", Type: "premiacion", Price: 50000, Available: &off})
	if err != nil {
		t.Fatalf("create extra: %v", err)
	}
	foreign, err := env.courts.CreateExtraService(ctx, other.ID.String(), ExtraServiceInput{Name: "Arbitraje", Price: 15000})
	if err != nil {
		t.Fatalf("create extra: %v", err)
	}

	for _, id := range []string{hidden.ID.String(), foreign.ID.String(), "not-a-uuid"} {
		_, err := env.reservations.Create(ctx, CreateReservationInput{
			CourtID:         court.ID.String(),
			Date:            "2025-10-21",
			Start:           "10:00",
			End:             "11:00",
			ClientName:      "Ana",
			ClientPhone:     "3001234567",
			ExtraServiceIDs: []string{id},
		})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("extra %s: expected ErrValidation, got %v", id, err)
		}
	}
}

func TestReservationService_ConcurrentCreateOnlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	court := env.createCourt(t, "Cancha 1", 80000)

	const n = 4
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
		other    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.reservations.Create(context.Background(), CreateReservationInput{
				CourtID:     court.ID.String(),
				Date:        "2025-10-21",
				Start:       "18:00",
				End:         "19:00",
				ClientName:  "Equipo",
				ClientPhone: "3000000000",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrSlotUnavailable):
				rejected++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	if len(other) > 0 {
		t.Fatalf("unexpected errors: %v", other)
	}
	if ok != 1 || rejected != n-1 {
		t.Fatalf("expected exactly one success, got ok=%d rejected=%d", ok, rejected)
	}
}

func TestReservationService_CancelRespectsLeadTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	court := env.createCourt(t, "Cancha 1", 80000)

	soon := env.book(t, court.ID.String(), "2025-10-20", "12:00", "13:00")
	exact := env.book(t, court.ID.String(), "2025-10-20", "13:00", "14:00")
	later := env.book(t, court.ID.String(), "2025-10-20", "16:00", "17:00")

	_, err := env.reservations.Cancel(ctx, soon.Reservation.ID)
	var na *NotAllowedError
	if !errors.As(err, &na) || !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected NotAllowedError, got %v", err)
	}
	if !strings.Contains(na.Reason, "menos de 3 horas") {
		t.Fatalf("unexpected reason %q", na.Reason)
	}

	if _, err := env.reservations.Cancel(ctx, exact.Reservation.ID); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("exactly 3h before start must be refused, got %v", err)
	}

	cancelled, err := env.reservations.Cancel(ctx, later.Reservation.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Reservation.Status != calendar.StatusCancelled || cancelled.State.Category != calendar.CategoryCancelled {
		t.Fatalf("unexpected view after cancel: %+v", cancelled)
	}
	if cancelled.Actions.Cancel.Allowed || cancelled.Actions.Complete.Allowed || cancelled.Actions.NoShow.Allowed {
		t.Fatalf("cancelled reservation must not allow actions: %+v", cancelled.Actions)
	}

	_, err = env.reservations.Cancel(ctx, later.Reservation.ID)
	if !errors.As(err, &na) || na.Reason != "La reserva ya fue cancelada" {
		t.Fatalf("expected already-cancelled refusal, got %v", err)
	}

	slots, err := env.courts.Availability(ctx, court.ID.String(), "2025-10-20")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if got := slotStatus(t, slots, "16:00"); got != calendar.SlotFree {
		t.Fatalf("cancelled slot must be free again, got %q", got)
	}

	// La franja liberada se puede volver a reservar.
	env.book(t, court.ID.String(), "2025-10-20", "16:00", "17:00")

	events, err := env.reservations.History(ctx, later.Reservation.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	types := map[model.EventType]bool{}
	for _, ev := range events {
		types[ev.EventType] = true
	}
	if len(events) != 2 || !types[model.EventReservationCreated] || !types[model.EventReservationCancelled] {
		t.Fatalf("unexpected history: %+v", events)
	}
}

func TestReservationService_CompleteOnlyAfterEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	court := env.createCourt(t, "Cancha 1", 80000)
	res := env.book(t, court.ID.String(), "2025-10-20", "11:00", "12:00")

	_, err := env.reservations.Complete(ctx, res.Reservation.ID)
	var na *NotAllowedError
	if !errors.As(err, &na) || !strings.HasPrefix(na.Reason, "Podrá completarse") {
		t.Fatalf("expected refusal before end, got %v", err)
	}

	env.clock.Set(mustTime(t, "2025-10-20T12:00:00Z"))
	done, err := env.reservations.Complete(ctx, res.Reservation.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Reservation.Status != calendar.StatusCompleted || done.NoShow {
		t.Fatalf("unexpected view after complete: %+v", done)
	}

	stored, err := env.reservationRepo.GetByID(ctx, res.Reservation.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != calendar.StatusCompleted || stored.CompletedAt == nil {
		t.Fatalf("completion not persisted: %+v", stored)
	}
}

func TestReservationService_MarkNoShow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	court := env.createCourt(t, "Cancha 1", 80000)
	res := env.book(t, court.ID.String(), "2025-10-22", "10:00", "11:00")

	// La inasistencia no depende de la hora.
	v, err := env.reservations.MarkNoShow(ctx, res.Reservation.ID)
	if err != nil {
		t.Fatalf("no-show: %v", err)
	}
	if v.Reservation.Status != calendar.StatusCompleted || !v.NoShow {
		t.Fatalf("expected completada with no_show, got %+v", v)
	}

	if _, err := env.reservations.Cancel(ctx, res.Reservation.ID); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("terminal reservation must refuse cancel, got %v", err)
	}

	keys := env.publisher.Keys()
	if keys[len(keys)-1] != notify.RoutingReservationNoShow {
		t.Fatalf("expected last event %s, got %v", notify.RoutingReservationNoShow, keys)
	}
}

type staleReservationRepo struct {
	*repository.GormReservationRepository
}

func (staleReservationRepo) Transition(context.Context, string, calendar.ReservationStatus, bool, time.Time) (int64, error) {
	return 0, nil
}

func TestReservationService_ConcurrentTransitionConflict(t *testing.T) {
	env := newTestEnv(t)
	court := env.createCourt(t, "Cancha 1", 80000)
	res := env.book(t, court.ID.String(), "2025-10-21", "10:00", "11:00")

	svc := NewReservationService(
		staleReservationRepo{env.reservationRepo},
		env.courtRepo,
		env.extraRepo,
		env.blockRepo,
		env.eventRepo,
		nil,
		env.clock,
		calendar.DefaultPolicy(),
		nil,
	)
	if _, err := svc.Cancel(context.Background(), res.Reservation.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestReservationService_ListFiltersAndPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	court := env.createCourt(t, "Cancha 1", 80000)
	other := env.createCourt(t, "Cancha 2", 60000)

	env.book(t, court.ID.String(), "2025-10-20", "11:00", "12:00") // próxima
	env.book(t, court.ID.String(), "2025-10-22", "10:00", "11:00") // programada
	toCancel := env.book(t, court.ID.String(), "2025-10-23", "10:00", "11:00")
	env.book(t, other.ID.String(), "2025-10-20", "11:00", "12:00")

	if _, err := env.reservations.Cancel(ctx, toCancel.Reservation.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	page, err := env.reservations.List(ctx, ListReservationsFilter{CourtID: court.ID.String()})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected 3 reservations for the court, got %d", page.Total)
	}

	cases := []struct {
		category calendar.Category
		want     int
	}{
		{calendar.CategoryUpcoming, 1},
		{calendar.CategoryScheduled, 1},
		{calendar.CategoryCancelled, 1},
		{calendar.CategoryCompleted, 0},
	}
	for _, tc := range cases {
		page, err := env.reservations.List(ctx, ListReservationsFilter{CourtID: court.ID.String(), Category: tc.category})
		if err != nil {
			t.Fatalf("list %s: %v", tc.category, err)
		}
		if page.Total != tc.want {
			t.Fatalf("category %s: expected %d, got %d", tc.category, tc.want, page.Total)
		}
		for _, v := range page.Items {
			if v.State.Category != tc.category {
				t.Fatalf("category %s: unexpected item %+v", tc.category, v.State)
			}
		}
	}

	paged, err := env.reservations.List(ctx, ListReservationsFilter{Phone: "3001234567", Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("list by phone: %v", err)
	}
	if paged.Total != 4 || len(paged.Items) != 1 || !paged.HasPrev || paged.HasNext {
		t.Fatalf("unexpected page: total=%d items=%d prev=%v next=%v", paged.Total, len(paged.Items), paged.HasPrev, paged.HasNext)
	}

	if _, err := env.reservations.List(ctx, ListReservationsFilter{Category: "vencida"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown category, got %v", err)
	}
}

func TestReservationService_AutoComplete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	court := env.createCourt(t, "Cancha 1", 80000)

	past := env.book(t, court.ID.String(), "2025-10-20", "11:00", "12:00")
	future := env.book(t, court.ID.String(), "2025-10-20", "16:00", "17:00")

	env.clock.Set(mustTime(t, "2025-10-20T13:00:00Z"))
	n, err := env.reservations.AutoComplete(ctx)
	if err != nil {
		t.Fatalf("auto complete: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 auto-completed reservation, got %d", n)
	}

	got, err := env.reservations.Get(ctx, past.Reservation.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Reservation.Status != calendar.StatusCompleted {
		t.Fatalf("expected stored completada, got %q", got.Reservation.Status)
	}
	still, err := env.reservations.Get(ctx, future.Reservation.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if still.Reservation.Status != calendar.StatusScheduled {
		t.Fatalf("future reservation must stay programada, got %q", still.Reservation.Status)
	}

	if n, err := env.reservations.AutoComplete(ctx); err != nil || n != 0 {
		t.Fatalf("second run must be a no-op, got n=%d err=%v", n, err)
	}
}

func TestReservationInputFromRecord(t *testing.T) {
	in := ReservationInputFromRecord(map[string]any{
		"canchaId":         "c-1",
		"fecha":            "2025-10-20T05:00:00.000Z",
		"horaInicio":       "8:00",
		"horaFin":          "09:00:00",
		"nombre_cliente":   "Ana",
		"telefono":         "300",
		"metodoPago":       "tarjeta",
		"servicios_extra": []any{"s-1", "s-2"},
	})

	if in.CourtID != "c-1" || in.Date != "2025-10-20" || in.Start != "08:00" || in.End != "09:00" {
		t.Fatalf("unexpected slot fields: %+v", in)
	}
	if in.ClientName != "Ana" || in.ClientPhone != "300" || in.PaymentMethod != "tarjeta" {
		t.Fatalf("unexpected client fields: %+v", in)
	}
	if len(in.ExtraServiceIDs) != 2 || in.ExtraServiceIDs[1] != "s-2" {
		t.Fatalf("unexpected extras: %v", in.ExtraServiceIDs)
	}

	objects := ReservationInputFromRecord(map[string]any{
		"extraServices": []any{map[string]any{"serviceId": "s-9", "name": "Arbitraje"}},
	})
	if len(objects.ExtraServiceIDs) != 1 || objects.ExtraServiceIDs[0] != "s-9" {
		t.Fatalf("unexpected extras from objects: %v", objects.ExtraServiceIDs)
	}
}
