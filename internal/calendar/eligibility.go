package calendar

import (
	"fmt"
	"time"
)

// CanCancel con la política por defecto.
func CanCancel(r Reservation, now time.Time) bool {
	return DefaultPolicy().CancelEligibility(r, now).Allowed
}

func CancelEligibility(r Reservation, now time.Time) Decision {
	return DefaultPolicy().CancelEligibility(r, now)
}

func CompleteEligibility(r Reservation, now time.Time) Decision {
	return DefaultPolicy().CompleteEligibility(r, now)
}

func NoShowEligibility(r Reservation, now time.Time) Decision {
	return DefaultPolicy().NoShowEligibility(r, now)
}

func (p Policy) CanCancel(r Reservation, now time.Time) bool {
	return p.CancelEligibility(r, now).Allowed
}

// CancelEligibility: solo reservas no terminales que empiezan dentro de más de
// CancelLeadTime.
func (p Policy) CancelEligibility(r Reservation, now time.Time) Decision {
	switch r.Status {
	case StatusCancelled:
		return deny("La reserva ya fue cancelada")
	case StatusCompleted:
		return deny("La reserva ya fue completada")
	}

	start, err := p.startOf(r)
	if err != nil {
		return deny("La fecha u hora de inicio de la reserva no es válida")
	}

	remaining := start.Sub(now)
	if remaining <= 0 {
		return deny("La reserva ya comenzó o ya pasó")
	}
	if remaining <= p.CancelLeadTime {
		return deny(fmt.Sprintf(
			"No se puede cancelar: faltan menos de %s para el inicio (quedan %s)",
			FormatLeadTime(p.CancelLeadTime), FormatRemaining(remaining),
		))
	}
	return allow(fmt.Sprintf("Puedes cancelar: faltan %s para el inicio", FormatRemaining(remaining)))
}

// CompleteEligibility: se puede completar una vez terminado el horario.
func (p Policy) CompleteEligibility(r Reservation, now time.Time) Decision {
	switch r.Status {
	case StatusCancelled:
		return deny("La reserva fue cancelada")
	case StatusCompleted:
		return deny("La reserva ya está completada")
	}

	end, err := p.endOf(r)
	if err != nil {
		return deny("La fecha u hora de fin de la reserva no es válida")
	}
	if now.Before(end) {
		return deny(fmt.Sprintf("Podrá completarse cuando termine el horario (faltan %s)", FormatRemaining(end.Sub(now))))
	}
	return allow("El horario de la reserva ya terminó")
}

// NoShowEligibility no depende del reloj: basta con que la reserva no sea terminal.
func (p Policy) NoShowEligibility(r Reservation, _ time.Time) Decision {
	if r.Status.Terminal() {
		return deny(fmt.Sprintf("La reserva ya está %s", r.Status))
	}
	return allow("Se puede marcar la inasistencia del cliente")
}

// Actions evalúa las tres reglas de una vez.
func (p Policy) Actions(r Reservation, now time.Time) Actions {
	return Actions{
		Cancel:   p.CancelEligibility(r, now),
		Complete: p.CompleteEligibility(r, now),
		NoShow:   p.NoShowEligibility(r, now),
	}
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }

func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }
