package calendar

import "time"

// ComputeSlots devuelve las franjas del día con su estado.
//
// Reglas:
//   - cancha cerrada (día semanal o fecha excepcional) → lista vacía;
//   - sin horario configurado para ese día → lista vacía;
//   - una franja que se cruza con un bloqueo queda en maintenance;
//   - una franja que se cruza con una reserva no cancelada queda en reserved.
//
// El orden es el configurado por el proveedor. La función es pura.
func ComputeSlots(court Court, date string, reserved []Reservation, blocks ...Interval) []Slot {
	if IsClosed(court, date) {
		return []Slot{}
	}
	d, err := ParseDate(date)
	if err != nil {
		return []Slot{}
	}
	day := d.Format(DateLayout)

	candidates := court.WeeklySchedule[d.Weekday()]
	if len(candidates) == 0 {
		return []Slot{}
	}

	taken := make([]Interval, 0, len(reserved))
	for _, r := range reserved {
		if r.Status == StatusCancelled {
			continue
		}
		if r.Date != "" && NormalizeDate(r.Date) != day {
			continue
		}
		taken = append(taken, Interval{Start: r.Start, End: r.End})
	}

	slots := make([]Slot, 0, len(candidates))
	for _, iv := range candidates {
		status := SlotFree
		switch {
		case conflicts(day, iv, blocks):
			status = SlotMaintenance
		case conflicts(day, iv, taken):
			status = SlotReserved
		}
		slots = append(slots, Slot{
			Start:  NormalizeTime(iv.Start),
			End:    NormalizeTime(iv.End),
			Status: status,
		})
	}
	return slots
}

// conflicts usa cruce semiabierto; si alguna franja no se puede interpretar
// se compara literalmente.
func conflicts(day string, iv Interval, others []Interval) bool {
	if len(others) == 0 {
		return false
	}
	cand, err := RangeOf(day, iv, time.UTC)
	if err != nil {
		return containsLiteral(iv, others)
	}

	ranges := make([]TimeRange, 0, len(others))
	for _, o := range others {
		tr, err := RangeOf(day, o, time.UTC)
		if err != nil {
			if sameInterval(iv, o) {
				return true
			}
			continue
		}
		ranges = append(ranges, tr)
	}
	has, _ := HasOverlap(cand, ranges, false)
	return has
}

func containsLiteral(iv Interval, others []Interval) bool {
	for _, o := range others {
		if sameInterval(iv, o) {
			return true
		}
	}
	return false
}

func sameInterval(a, b Interval) bool {
	return NormalizeTime(a.Start) == NormalizeTime(b.Start) && NormalizeTime(a.End) == NormalizeTime(b.End)
}
