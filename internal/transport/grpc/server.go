package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/service"
)

type Server struct {
	courts *service.CourtService
	policy calendar.Policy
	clock  calendar.Clock
	logger *zap.Logger
}

func NewServer(courts *service.CourtService, policy calendar.Policy, clock calendar.Clock, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{courts: courts, policy: policy, clock: clock, logger: logger}
}

// Classify recibe una reserva con cualquier alias de campo y, opcionalmente,
// "now" (RFC3339 o {seconds, nanos}).
func (s *Server) Classify(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	rec := in.AsMap()
	now, err := s.now(rec)
	if err != nil {
		return nil, err
	}

	c := s.policy.Classify(calendar.ReservationFromRecord(rec), now)
	return toStruct(map[string]any{
		"label":    c.Label,
		"category": string(c.Category),
	})
}

func (s *Server) CheckActions(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	rec := in.AsMap()
	now, err := s.now(rec)
	if err != nil {
		return nil, err
	}

	a := s.policy.Actions(calendar.ReservationFromRecord(rec), now)
	return toStruct(map[string]any{
		"cancelar":  decision(a.Cancel),
		"completar": decision(a.Complete),
		"no_show":   decision(a.NoShow),
	})
}

func (s *Server) ListSlots(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	courtID := fields["cancha_id"].GetStringValue()
	date := fields["fecha"].GetStringValue()
	if courtID == "" || date == "" {
		return nil, status.Error(codes.InvalidArgument, "cancha_id and fecha are required")
	}

	slots, err := s.courts.Availability(ctx, courtID, date)
	if err != nil {
		return nil, s.toStatus(err)
	}

	list := make([]any, 0, len(slots))
	for _, sl := range slots {
		list = append(list, map[string]any{
			"start":  sl.Start,
			"end":    sl.End,
			"status": string(sl.Status),
		})
	}
	return toStruct(map[string]any{
		"cancha_id": courtID,
		"fecha":     calendar.NormalizeDate(date),
		"slots":     list,
	})
}

func (s *Server) now(rec map[string]any) (time.Time, error) {
	switch v := rec["now"].(type) {
	case nil:
		return s.clock.Now(), nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, status.Errorf(codes.InvalidArgument, "now: %v", err)
		}
		return t, nil
	case map[string]any:
		secs, _ := v["seconds"].(float64)
		nanos, _ := v["nanos"].(float64)
		ts := &timestamppb.Timestamp{Seconds: int64(secs), Nanos: int32(nanos)}
		if err := ts.CheckValid(); err != nil {
			return time.Time{}, status.Errorf(codes.InvalidArgument, "now: %v", err)
		}
		return ts.AsTime(), nil
	default:
		return time.Time{}, status.Errorf(codes.InvalidArgument, "now: unsupported type %T", v)
	}
}

func (s *Server) toStatus(err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrNotAllowed),
		errors.Is(err, service.ErrSlotUnavailable),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrCourtInUse):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		s.logger.Error("gRPC call failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}

func decision(d calendar.Decision) map[string]any {
	return map[string]any{"allowed": d.Allowed, "reason": d.Reason}
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}
