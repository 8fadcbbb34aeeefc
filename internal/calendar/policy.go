package calendar

import "time"

const (
	DefaultCancelLeadTime = 3 * time.Hour
	DefaultUpcomingWindow = 24 * time.Hour
)

// Policy concentra los umbrales de las reglas temporales.
type Policy struct {
	// Antelación mínima para cancelar.
	CancelLeadTime time.Duration
	// Ventana en la que una reserva se considera "próxima".
	UpcomingWindow time.Duration
	// Zona horaria en la que se interpretan fecha y hora de las reservas.
	Location *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		CancelLeadTime: DefaultCancelLeadTime,
		UpcomingWindow: DefaultUpcomingWindow,
		Location:       time.UTC,
	}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p Policy) startOf(r Reservation) (time.Time, error) {
	return Combine(r.Date, r.Start, p.location())
}

func (p Policy) endOf(r Reservation) (time.Time, error) {
	return Combine(r.Date, r.End, p.location())
}

// Clock abstrae el reloj para poder fijar "ahora" en pruebas.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock siempre devuelve el mismo instante.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
