package calendar

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Nombres de campo que distintos clientes usan para lo mismo.
var (
	idKeys          = []string{"id", "_id", "reserva_id", "id_reserva"}
	courtKeys       = []string{"cancha_id", "canchaId", "id_cancha", "court_id", "courtId"}
	dateKeys        = []string{"fecha", "date", "dia", "fecha_reserva"}
	startKeys       = []string{"inicio", "hora_inicio", "horaInicio", "start", "start_time", "from"}
	endKeys         = []string{"fin", "hora_fin", "horaFin", "end", "end_time", "to"}
	statusKeys      = []string{"estado", "status"}
	clientNameKeys  = []string{"cliente_nombre", "clientName", "nombre_cliente", "nombre"}
	clientPhoneKeys = []string{"cliente_telefono", "clientPhone", "telefono", "phone"}
	totalKeys       = []string{"total", "monto_total"}
	extrasKeys      = []string{"servicios_extra", "extraServices", "servicios"}

	extraIDKeys    = []string{"servicio_id", "serviceId", "service_id", "id"}
	extraNameKeys  = []string{"nombre", "name"}
	extraPriceKeys = []string{"precio_aplicado", "appliedPrice", "applied_price", "precio", "price"}
)

// ReservationFromRecord adapta un registro con nombres de campo arbitrarios
// (como llega del backend o de un formulario) a Reservation. Fecha y horas se
// normalizan; si falta la fecha se toma de un inicio con formato ISO.
func ReservationFromRecord(rec map[string]any) Reservation {
	r := Reservation{
		ID:          stringField(rec, idKeys),
		CourtID:     stringField(rec, courtKeys),
		Status:      ParseStatus(stringField(rec, statusKeys)),
		ClientName:  strings.TrimSpace(stringField(rec, clientNameKeys)),
		ClientPhone: strings.TrimSpace(stringField(rec, clientPhoneKeys)),
		Total:       intField(rec, totalKeys),
	}

	rawStart := lookup(rec, startKeys)
	rawDate := lookup(rec, dateKeys)
	if rawDate == nil {
		if s, ok := rawStart.(string); ok && datetimeSep(strings.TrimSpace(s)) > 0 {
			rawDate = s
		}
	}
	r.Date = NormalizeDate(rawDate)
	r.Start = NormalizeTime(rawStart)
	r.End = NormalizeTime(lookup(rec, endKeys))

	if list, ok := lookup(rec, extrasKeys).([]any); ok {
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			r.Extras = append(r.Extras, ExtraSnapshot{
				ServiceID:    stringField(m, extraIDKeys),
				Name:         stringField(m, extraNameKeys),
				AppliedPrice: intField(m, extraPriceKeys),
			})
		}
	}
	return r
}

func lookup(rec map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringField(rec map[string]any, keys []string) string {
	switch v := lookup(rec, keys).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

func intField(rec map[string]any, keys []string) int64 {
	switch v := lookup(rec, keys).(type) {
	case float64:
		return int64(math.Round(v))
	case int:
		return int64(v)
	case int64:
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return int64(math.Round(f))
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int64(math.Round(f))
		}
	}
	return 0
}
