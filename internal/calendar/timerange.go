package calendar

import (
	"errors"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrSlotDuration     = errors.New("slot duration must be positive")
)

// TimeRange — intervalo semiabierto [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// RangeOf construye el intervalo de una franja HH:MM en la fecha dada.
func RangeOf(date string, iv Interval, loc *time.Location) (TimeRange, error) {
	start, err := Combine(date, iv.Start, loc)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := Combine(date, iv.End, loc)
	if err != nil {
		return TimeRange{}, err
	}
	if !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// SplitToTimeSlots divide el intervalo en franjas de duración fija.
// El resto más corto que slotDuration se descarta.
func SplitToTimeSlots(tr TimeRange, slotDuration time.Duration) ([]TimeRange, error) {
	if slotDuration <= 0 {
		return nil, ErrSlotDuration
	}
	if !tr.End.After(tr.Start) {
		return []TimeRange{}, nil
	}

	var slots []TimeRange
	for cur := tr.Start; !cur.Add(slotDuration).After(tr.End); cur = cur.Add(slotDuration) {
		slots = append(slots, TimeRange{Start: cur, End: cur.Add(slotDuration)})
	}
	return slots, nil
}

// HasOverlap comprueba si newRange se cruza con alguno de existing.
// inclusive = true: tocarse en los extremos cuenta como cruce.
func HasOverlap(newRange TimeRange, existing []TimeRange, inclusive bool) (bool, []TimeRange) {
	var conflicts []TimeRange

	for _, tr := range existing {
		if rangesOverlap(newRange, tr, inclusive) {
			conflicts = append(conflicts, tr)
		}
	}

	return len(conflicts) > 0, conflicts
}

func rangesOverlap(a, b TimeRange, inclusive bool) bool {
	if inclusive {
		return !a.Start.After(b.End) && !b.Start.After(a.End)
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// GenerateIntervals arma las franjas de un día a partir del horario de apertura
// y una granularidad fija en minutos.
func GenerateIntervals(open, close string, slotMinutes int) ([]Interval, error) {
	base := time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC)

	tr, err := RangeOf(base.Format(DateLayout), Interval{Start: open, End: close}, time.UTC)
	if err != nil {
		return nil, err
	}
	parts, err := SplitToTimeSlots(tr, time.Duration(slotMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}

	out := make([]Interval, 0, len(parts))
	for _, p := range parts {
		out = append(out, Interval{
			Start: formatClock(p.Start.Sub(base)),
			End:   formatClock(p.End.Sub(base)),
		})
	}
	return out, nil
}
