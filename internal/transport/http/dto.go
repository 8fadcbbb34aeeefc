package httpx

import (
	"time"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
)

type providerResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"nombre"`
	Email  string          `json:"email"`
	Phone  string          `json:"telefono"`
	Courts []courtResponse `json:"canchas"`
}

func toProvider(p *model.Provider) providerResponse {
	courts := make([]courtResponse, 0, len(p.Courts))
	for i := range p.Courts {
		courts = append(courts, toCourt(&p.Courts[i]))
	}
	return providerResponse{
		ID:     p.ID.String(),
		Name:   p.DisplayName,
		Email:  p.Email,
		Phone:  p.Phone,
		Courts: courts,
	}
}

type courtResponse struct {
	ID             string               `json:"id"`
	ProviderID     string               `json:"proveedor_id,omitempty"`
	Name           string               `json:"nombre"`
	SportType      string               `json:"deporte"`
	Address        string               `json:"direccion"`
	Description    string               `json:"descripcion"`
	Price          int64                `json:"precio"`
	WeeklySchedule model.WeeklySchedule `json:"horario"`
	ClosedWeekdays []int                `json:"dias_cerrados"`
	ClosedDates    []string             `json:"fechas_cerradas"`
}

func toCourt(c *model.Court) courtResponse {
	out := courtResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		SportType:      c.SportType,
		Address:        c.Address,
		Description:    c.Description,
		Price:          c.Price,
		WeeklySchedule: c.WeeklySchedule.Data(),
		ClosedWeekdays: c.ClosedWeekdays.Data(),
		ClosedDates:    c.ClosedDates.Data(),
	}
	if c.ProviderID != nil {
		out.ProviderID = c.ProviderID.String()
	}
	if out.WeeklySchedule == nil {
		out.WeeklySchedule = model.WeeklySchedule{}
	}
	if out.ClosedWeekdays == nil {
		out.ClosedWeekdays = []int{}
	}
	if out.ClosedDates == nil {
		out.ClosedDates = []string{}
	}
	return out
}

func toCourtPage(p calendar.Page[model.Court]) calendar.Page[courtResponse] {
	items := make([]courtResponse, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, toCourt(&p.Items[i]))
	}
	return calendar.Page[courtResponse]{
		Items:    items,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasNext:  p.HasNext,
		HasPrev:  p.HasPrev,
		Total:    p.Total,
	}
}

type extraServiceResponse struct {
	ID                 string `json:"id"`
	CourtID            string `json:"cancha_id"`
	Type               string `json:"tipo"`
	Name               string `json:"nombre"`
	Description        string `json:"descripcion"`
	Price              int64  `json:"precio"`
	DurationMinutes    int    `json:"duracion_minutos"`
	AdvanceNoticeHours int    `json:"anticipacion_horas"`
	Available          bool   `json:"disponible"`
}

func toExtraService(s *model.ExtraService) extraServiceResponse {
	return extraServiceResponse{
		ID:                 s.ID.String(),
		CourtID:            s.CourtID.String(),
		Type:               string(s.Type),
		Name:               s.Name,
		Description:        s.Description,
		Price:              s.Price,
		DurationMinutes:    s.DurationMinutes,
		AdvanceNoticeHours: s.AdvanceNoticeHours,
		Available:          s.Available,
	}
}

type blockResponse struct {
	ID      string `json:"id"`
	CourtID string `json:"cancha_id"`
	Date    string `json:"fecha"`
	Start   string `json:"inicio"`
	End     string `json:"fin"`
	Reason  string `json:"motivo"`
}

func toBlock(b *model.MaintenanceBlock) blockResponse {
	return blockResponse{
		ID:      b.ID.String(),
		CourtID: b.CourtID.String(),
		Date:    b.Date,
		Start:   b.StartTime,
		End:     b.EndTime,
		Reason:  b.Reason,
	}
}

type eventResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"tipo"`
	Details   string    `json:"detalle"`
	CreatedAt time.Time `json:"creado_en"`
}

func toEvent(e *model.Event) eventResponse {
	return eventResponse{
		ID:        e.ID.String(),
		Type:      string(e.EventType),
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}
