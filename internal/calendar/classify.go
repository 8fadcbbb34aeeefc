package calendar

import "time"

// Classify con la política por defecto.
func Classify(r Reservation, now time.Time) Classification {
	return DefaultPolicy().Classify(r, now)
}

// Classify combina el estado almacenado con el derivado del reloj, sin
// modificar la reserva. La primera regla que aplica gana.
func (p Policy) Classify(r Reservation, now time.Time) Classification {
	return classification(p.category(r, now))
}

func (p Policy) category(r Reservation, now time.Time) Category {
	switch r.Status {
	case StatusCancelled:
		return CategoryCancelled
	case StatusCompleted:
		return CategoryCompleted
	}

	end, err := p.endOf(r)
	if err != nil {
		return CategoryScheduled
	}
	if end.Before(now) {
		return CategoryCompleted
	}
	if end.Sub(now) < p.UpcomingWindow {
		return CategoryUpcoming
	}
	return CategoryScheduled
}

func classification(c Category) Classification {
	return Classification{Label: c.Label(), Category: c}
}
