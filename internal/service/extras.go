package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
)

type ExtraServiceInput struct {
	Type               string `json:"tipo"`
	Name               string `json:"nombre"`
	Description        string `json:"descripcion"`
	Price              int64  `json:"precio"`
	DurationMinutes    int    `json:"duracion_minutos"`
	AdvanceNoticeHours int    `json:"anticipacion_horas"`
	// nil = disponible
	Available *bool `json:"disponible"`
}

var extraServiceTypes = map[model.ExtraServiceType]bool{
	model.ExtraServiceReferee:     true,
	model.ExtraServiceAwards:      true,
	model.ExtraServiceCelebration: true,
	model.ExtraServiceOther:       true,
}

func (s *CourtService) CreateExtraService(ctx context.Context, courtID string, in ExtraServiceInput) (*model.ExtraService, error) {
	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	svc := &model.ExtraService{CourtID: court.ID, Available: true}
	if err := applyExtraService(svc, in); err != nil {
		return nil, err
	}
	if err := s.extraRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create extra service: %w", err)
	}

	s.logger.Info("Extra service created",
		zap.String("court_id", court.ID.String()),
		zap.String("service_id", svc.ID.String()),
		zap.String("name", svc.Name),
	)
	return svc, nil
}

func (s *CourtService) ListExtraServices(ctx context.Context, courtID string, onlyAvailable bool) ([]model.ExtraService, error) {
	if _, err := s.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}
	services, err := s.extraRepo.ListByCourt(ctx, courtID, onlyAvailable)
	if err != nil {
		return nil, fmt.Errorf("list extra services: %w", err)
	}
	return services, nil
}

func (s *CourtService) UpdateExtraService(ctx context.Context, id string, in ExtraServiceInput) (*model.ExtraService, error) {
	if _, err := parseID("extra service", id); err != nil {
		return nil, err
	}
	svc, err := s.extraRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("extra service", err)
	}
	if err := applyExtraService(svc, in); err != nil {
		return nil, err
	}
	if err := s.extraRepo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update extra service: %w", err)
	}
	return svc, nil
}

// DeleteExtraService no toca reservas existentes: guardan su propia copia.
func (s *CourtService) DeleteExtraService(ctx context.Context, id string) error {
	if _, err := parseID("extra service", id); err != nil {
		return err
	}
	if err := s.extraRepo.Delete(ctx, id); err != nil {
		return notFound("extra service", err)
	}
	return nil
}

func applyExtraService(svc *model.ExtraService, in ExtraServiceInput) error {
	v := &ValidationError{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		v.add("nombre", "El nombre es obligatorio")
	}
	typ := model.ExtraServiceType(strings.ToLower(strings.TrimSpace(in.Type)))
	if typ == "" {
		typ = model.ExtraServiceOther
	}
	if !extraServiceTypes[typ] {
		v.add("tipo", fmt.Sprintf("Tipo de servicio desconocido %q", in.Type))
	}
	if in.Price < 0 {
		v.add("precio", "El precio no puede ser negativo")
	}
	if in.DurationMinutes < 0 {
		v.add("duracion_minutos", "La duración no puede ser negativa")
	}
	if in.AdvanceNoticeHours < 0 {
		v.add("anticipacion_horas", "La anticipación no puede ser negativa")
	}
	if err := v.orNil(); err != nil {
		return err
	}

	svc.Type = typ
	svc.Name = name
	svc.Description = in.Description
	svc.Price = in.Price
	svc.DurationMinutes = in.DurationMinutes
	svc.AdvanceNoticeHours = in.AdvanceNoticeHours
	if in.Available != nil {
		svc.Available = *in.Available
	}
	return nil
}

type BlockInput struct {
	Date   string `json:"fecha"`
	Start  string `json:"inicio"`
	End    string `json:"fin"`
	Reason string `json:"motivo"`
}

// CreateBlock marca una franja puntual como fuera de servicio.
func (s *CourtService) CreateBlock(ctx context.Context, courtID string, in BlockInput) (*model.MaintenanceBlock, error) {
	court, err := s.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	v := &ValidationError{}
	day, err := calendar.ParseDate(in.Date)
	if err != nil {
		v.add("fecha", "Fecha inválida")
	}
	iv, ok := normalizeInterval(calendar.Interval{Start: in.Start, End: in.End})
	if !ok {
		v.add("inicio", "El bloqueo necesita inicio y fin válidos con inicio < fin")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	block := &model.MaintenanceBlock{
		CourtID:   court.ID,
		Date:      day.Format(calendar.DateLayout),
		StartTime: iv.Start,
		EndTime:   iv.End,
		Reason:    strings.TrimSpace(in.Reason),
	}
	if err := s.blockRepo.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("create block: %w", err)
	}

	s.logger.Info("Maintenance block created",
		zap.String("court_id", court.ID.String()),
		zap.String("date", block.Date),
		zap.String("start", block.StartTime),
		zap.String("end", block.EndTime),
	)
	return block, nil
}

// ListBlocks con date vacío devuelve todos los bloqueos de la cancha.
func (s *CourtService) ListBlocks(ctx context.Context, courtID, date string) ([]model.MaintenanceBlock, error) {
	if _, err := s.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}
	if date != "" {
		day, err := calendar.ParseDate(date)
		if err != nil {
			return nil, invalid("fecha", "Fecha inválida")
		}
		date = day.Format(calendar.DateLayout)
	}
	blocks, err := s.blockRepo.ListByCourt(ctx, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	return blocks, nil
}

func (s *CourtService) DeleteBlock(ctx context.Context, id string) error {
	if _, err := parseID("block", id); err != nil {
		return err
	}
	if err := s.blockRepo.Delete(ctx, id); err != nil {
		return notFound("block", err)
	}
	return nil
}

type ProviderInput struct {
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Phone string `json:"telefono"`
}

func (s *CourtService) CreateProvider(ctx context.Context, in ProviderInput) (*model.Provider, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("nombre", "El nombre es obligatorio")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		_, err := s.providerRepo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return nil, invalid("email", "Ya existe un proveedor con ese correo")
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("find provider by email: %w", err)
		}
	}

	p := &model.Provider{
		DisplayName: name,
		Email:       email,
		Phone:       strings.TrimSpace(in.Phone),
	}
	if err := s.providerRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return p, nil
}

func (s *CourtService) GetProvider(ctx context.Context, id string) (*model.Provider, error) {
	if _, err := parseID("provider", id); err != nil {
		return nil, err
	}
	p, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("provider", err)
	}
	return p, nil
}
