package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
)

// ErrOverlap: la franja ya está tomada por otra reserva no cancelada.
var ErrOverlap = errors.New("slot overlapped")

// Filtros del listado; campos vacíos no filtran.
type ReservationFilter struct {
	CourtID string
	Phone   string
	Date    string
	Status  calendar.ReservationStatus
}

type ReservationRepository interface {
	// Crear la reserva (con sus extras) si nada se solapa en la misma cancha y fecha.
	CreateWithNoOverlap(ctx context.Context, reservation *model.Reservation) error
	// Obtener la reserva por ID, con extras.
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	// Reservas no canceladas de una cancha en una fecha.
	ListActiveByCourtAndDate(ctx context.Context, courtID, date string) ([]model.Reservation, error)
	List(ctx context.Context, f ReservationFilter) ([]model.Reservation, error)
	// Cambiar de estado solo si la reserva no es terminal. Devuelve filas afectadas.
	Transition(ctx context.Context, id string, to calendar.ReservationStatus, noShow bool, at time.Time) (int64, error)
	// Programadas con fecha <= date, candidatas a autocompletarse.
	ListScheduledUntil(ctx context.Context, date string) ([]model.Reservation, error)
}

type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// CreateWithNoOverlap revisa solapamientos dentro de la transacción. En postgres
// el FOR UPDATE solo bloquea filas existentes: si no hay ninguna, dos franjas
// distintas que se cruzan pueden insertarse a la vez. Lo que garantiza el
// índice parcial idx_reservas_franja_activa es la franja idéntica, que es el
// caso real porque las reservas se toman de las franjas configuradas.
func (r *GormReservationRepository) CreateWithNoOverlap(ctx context.Context, reservation *model.Reservation) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&model.Reservation{})
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing model.Reservation
		err := q.
			Where("court_id = ? AND date = ? AND status <> ?", reservation.CourtID, reservation.Date, calendar.StatusCancelled).
			Where("start_time < ? AND end_time > ?", reservation.EndTime, reservation.StartTime).
			Take(&existing).Error
		if err == nil {
			return ErrOverlap
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(reservation).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrOverlap
	}
	return err
}

func (r *GormReservationRepository) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	var res model.Reservation
	if err := r.db.WithContext(ctx).Preload("Extras").First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormReservationRepository) ListActiveByCourtAndDate(ctx context.Context, courtID, date string) ([]model.Reservation, error) {
	var out []model.Reservation
	err := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ? AND status <> ?", courtID, date, calendar.StatusCancelled).
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormReservationRepository) List(ctx context.Context, f ReservationFilter) ([]model.Reservation, error) {
	q := r.db.WithContext(ctx).Model(&model.Reservation{}).Preload("Extras")
	if f.CourtID != "" {
		q = q.Where("court_id = ?", f.CourtID)
	}
	if f.Phone != "" {
		q = q.Where("client_phone = ?", f.Phone)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var out []model.Reservation
	if err := q.Order("date ASC, start_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormReservationRepository) Transition(
	ctx context.Context,
	id string,
	to calendar.ReservationStatus,
	noShow bool,
	at time.Time,
) (int64, error) {
	update := map[string]any{
		"status":  to,
		"no_show": noShow,
	}
	switch to {
	case calendar.StatusCancelled:
		update["cancelled_at"] = at
	case calendar.StatusCompleted:
		update["completed_at"] = at
	}

	res := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ?", id).
		Where("status NOT IN ?", []calendar.ReservationStatus{calendar.StatusCancelled, calendar.StatusCompleted}).
		Updates(update)
	return res.RowsAffected, res.Error
}

func (r *GormReservationRepository) ListScheduledUntil(ctx context.Context, date string) ([]model.Reservation, error) {
	var out []model.Reservation
	err := r.db.WithContext(ctx).
		Where("status = ? AND date <= ?", calendar.StatusScheduled, date).
		Order("date ASC, start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
