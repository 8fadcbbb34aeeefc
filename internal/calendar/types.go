package calendar

import (
	"strings"
	"time"
)

// ReservationStatus — estado almacenado de una reserva.
type ReservationStatus string

const (
	StatusScheduled ReservationStatus = "programada"
	StatusCancelled ReservationStatus = "cancelada"
	StatusCompleted ReservationStatus = "completada"
)

// Terminal: cancelada y completada no admiten más transiciones.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ParseStatus lleva los valores que guarda el backend a un estado canónico.
// Vacío, "activa", "pendiente", "confirmada" y similares cuentan como programada.
func ParseStatus(raw string) ReservationStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cancelada", "cancelado", "cancelled", "canceled":
		return StatusCancelled
	case "completada", "completado", "completed", "finalizada", "finalizado":
		return StatusCompleted
	default:
		return StatusScheduled
	}
}

// Interval — franja horaria de un día en formato HH:MM.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Court es la configuración de una cancha tal como la ve el motor.
type Court struct {
	ID string
	// Franjas abiertas por día de la semana (0=domingo .. 6=sábado).
	WeeklySchedule map[time.Weekday][]Interval
	// Días de la semana cerrados de forma recurrente (mantenimiento).
	ClosedWeekdays map[time.Weekday]bool
	// Fechas puntuales cerradas, YYYY-MM-DD.
	ClosedDates map[string]bool
	Price       int64
}

// ExtraSnapshot: servicio extra copiado a la reserva en el momento de crearla.
type ExtraSnapshot struct {
	ServiceID    string `json:"service_id"`
	Name         string `json:"name"`
	AppliedPrice int64  `json:"applied_price"`
}

// Reservation — forma canónica de una reserva.
type Reservation struct {
	ID          string            `json:"id"`
	CourtID     string            `json:"cancha_id"`
	Date        string            `json:"fecha"`
	Start       string            `json:"inicio"`
	End         string            `json:"fin"`
	Status      ReservationStatus `json:"estado"`
	ClientName  string            `json:"cliente_nombre"`
	ClientPhone string            `json:"cliente_telefono"`
	Extras      []ExtraSnapshot   `json:"servicios_extra"`
	Total       int64             `json:"total"`
}

type SlotStatus string

const (
	SlotFree        SlotStatus = "free"
	SlotReserved    SlotStatus = "reserved"
	SlotMaintenance SlotStatus = "maintenance"
)

type Slot struct {
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Status SlotStatus `json:"status"`
}

// Category — estado de presentación derivado por el clasificador.
type Category string

const (
	CategoryCancelled Category = "cancelada"
	CategoryCompleted Category = "completada"
	CategoryUpcoming  Category = "proxima"
	CategoryScheduled Category = "programada"
)

var categoryLabels = map[Category]string{
	CategoryCancelled: "Cancelada",
	CategoryCompleted: "Completada",
	CategoryUpcoming:  "Próxima",
	CategoryScheduled: "Programada",
}

// Label devuelve el texto visible de la categoría.
func (c Category) Label() string {
	return categoryLabels[c]
}

type Classification struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Decision es el resultado de una regla de elegibilidad.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// Actions agrupa las decisiones para las acciones de una reserva.
type Actions struct {
	Cancel   Decision `json:"cancelar"`
	Complete Decision `json:"completar"`
	NoShow   Decision `json:"no_show"`
}
