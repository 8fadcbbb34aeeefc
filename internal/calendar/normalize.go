package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

// Formatos de fecha aceptados además de YYYY-MM-DD.
var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"Mon Jan 02 2006",
	"Mon Jan 2 2006",
}

var timeLayouts = []string{
	"15:04:05",
	TimeLayout,
	"3:04 PM",
	"3:04PM",
	"3:04 pm",
	"3:04pm",
	"15.04",
}

// ParseDate es estricta: devuelve la medianoche UTC de la fecha o ErrInvalidDate.
// Si la entrada trae hora (ISO con "T" o separada por espacio) se toma
// literalmente la parte de fecha, sin convertir zonas horarias.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if i := datetimeSep(s); i > 0 {
		s = s[:i]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseTime es estricta: devuelve el desplazamiento desde la medianoche.
// "24:00" se acepta como fin de día.
func ParseTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if i := datetimeSep(s); i > 0 {
		s = s[i+1:]
		if len(s) > 8 {
			s = s[:8]
		}
	}
	if s == "24:00" || s == "24:00:00" {
		return 24 * time.Hour, nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// NormalizeDate lleva cualquier representación de fecha a YYYY-MM-DD.
// Nunca falla: ante una entrada ilegible devuelve el texto original recortado.
func NormalizeDate(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(DateLayout)
	case *time.Time:
		if x == nil || x.IsZero() {
			return ""
		}
		return x.Format(DateLayout)
	case string:
		s = x
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}

	if t, err := ParseDate(s); err == nil {
		return t.Format(DateLayout)
	}
	return truncate(strings.TrimSpace(s), len(DateLayout))
}

// NormalizeTime lleva una hora a HH:MM con ceros a la izquierda.
// Igual que NormalizeDate, cae en el texto recortado si no puede interpretarla.
func NormalizeTime(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(TimeLayout)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format(TimeLayout)
	case string:
		s = x
	default:
		s = fmt.Sprint(x)
	}

	if d, err := ParseTime(s); err == nil {
		return formatClock(d)
	}
	return truncate(strings.TrimSpace(s), len(TimeLayout))
}

// Combine une fecha y hora en un instante de loc (UTC si loc es nil).
func Combine(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	offset, err := ParseTime(clock)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc), nil
}

// datetimeSep devuelve la posición del separador entre fecha y hora: la "T"
// de ISO o el espacio de "YYYY-MM-DD HH:MM:SS" (texto de SQL). -1 si no hay.
func datetimeSep(s string) int {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return i
	}
	if len(s) > 10 && s[10] == ' ' && s[4] == '-' {
		return 10
	}
	return -1
}

// truncate corta por runas, no por bytes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func formatClock(d time.Duration) string {
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}
