package calendar

// IsClosed: la cancha está cerrada si el día de la semana está marcado como
// cerrado o si la fecha figura entre las excepciones. No valida rangos
// (fechas pasadas también se resuelven).
func IsClosed(court Court, date string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return court.ClosedDates[NormalizeDate(date)]
	}
	if court.ClosedWeekdays[d.Weekday()] {
		return true
	}
	return court.ClosedDates[d.Format(DateLayout)]
}
