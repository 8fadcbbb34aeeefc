package calendar

import (
	"fmt"
	"time"
)

var esWeekdays = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// WeekdayName devuelve el nombre en español del día.
func WeekdayName(w time.Weekday) string {
	return esWeekdays[w]
}

// FormatSlot: "Lunes, 20/10/2025, 10:00–11:00". Si la fecha no se puede
// interpretar se devuelve tal cual.
func FormatSlot(date, start, end string) string {
	d, err := ParseDate(date)
	if err != nil {
		return fmt.Sprintf("%s, %s–%s", date, NormalizeTime(start), NormalizeTime(end))
	}
	return fmt.Sprintf("%s, %s, %s–%s",
		esWeekdays[d.Weekday()], d.Format("02/01/2006"), NormalizeTime(start), NormalizeTime(end))
}

// FormatRemaining: "2d 3h 5m", "5h 0m" o "45 min".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	d = d.Truncate(time.Minute)
	days := int(d / (24 * time.Hour))
	hours := int((d % (24 * time.Hour)) / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%d min", minutes)
	}
}

// FormatLeadTime: "3 horas", "1 hora" o, si no es exacta, como FormatRemaining.
func FormatLeadTime(d time.Duration) string {
	if d > 0 && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", h)
	}
	return FormatRemaining(d)
}
