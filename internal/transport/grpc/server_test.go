package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	ggrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/config"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/db"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/repository"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/service"
)

var testNow = time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	client *EligibilityClient
	courts *service.CourtService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.NewGormDB(&config.DBConfig{Driver: config.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(gdb))

	clock := calendar.FixedClock(testNow)
	policy := calendar.DefaultPolicy()
	courts := service.NewCourtService(
		repository.NewGormCourtRepository(gdb),
		repository.NewGormProviderRepository(gdb),
		repository.NewGormExtraServiceRepository(gdb),
		repository.NewGormReservationRepository(gdb),
		repository.NewGormBlockRepository(gdb),
		repository.NewGormEventRepository(gdb),
		clock, policy, zap.NewNop(),
	)

	lis := bufconn.Listen(1 << 20)
	srv := ggrpc.NewServer(ggrpc.UnaryInterceptor(UnaryLogger(zap.NewNop())))
	RegisterEligibilityServer(srv, NewServer(courts, policy, clock, zap.NewNop()))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := ggrpc.NewClient("passthrough:///bufnet",
		ggrpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		ggrpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testEnv{client: NewEligibilityClient(conn), courts: courts}
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestServiceDescriptorRegistered(t *testing.T) {
	fd, err := protoregistry.GlobalFiles.FindFileByPath(EligibilityServiceDesc.Metadata.(string))
	require.NoError(t, err)
	require.Equal(t, 1, fd.Services().Len())

	desc, err := protoregistry.GlobalFiles.FindDescriptorByName(ServiceName)
	require.NoError(t, err)
	sd, ok := desc.(protoreflect.ServiceDescriptor)
	require.True(t, ok)
	require.Equal(t, len(EligibilityServiceDesc.Methods), sd.Methods().Len())
	for _, m := range EligibilityServiceDesc.Methods {
		md := sd.Methods().ByName(protoreflect.Name(m.MethodName))
		require.NotNil(t, md, m.MethodName)
		require.Equal(t, protoreflect.FullName("google.protobuf.Struct"), md.Input().FullName())
		require.Equal(t, protoreflect.FullName("google.protobuf.Struct"), md.Output().FullName())
	}
}

func TestClassify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  map[string]any
		want string
	}{
		{
			name: "upcoming with alias fields",
			req:  map[string]any{"date": "2025-10-20T00:00:00.000Z", "horaInicio": "14:00:00", "horaFin": "15:00:00"},
			want: "proxima",
		},
		{
			name: "stored cancellation wins",
			req:  map[string]any{"fecha": "2025-10-18", "inicio": "08:00", "fin": "09:00", "estado": "cancelado"},
			want: "cancelada",
		},
		{
			name: "ended is completed",
			req:  map[string]any{"fecha": "2025-10-20", "inicio": "08:00", "fin": "09:00"},
			want: "completada",
		},
		{
			name: "explicit now as string",
			req:  map[string]any{"fecha": "2025-10-20", "inicio": "14:00", "fin": "15:00", "now": "2025-10-10T10:00:00Z"},
			want: "programada",
		},
		{
			name: "explicit now as timestamp",
			req:  map[string]any{"fecha": "2025-10-20", "inicio": "08:00", "fin": "09:00", "now": map[string]any{"seconds": 1760954400 - 3*3600}},
			want: "proxima",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.client.Classify(ctx, mustStruct(t, tt.req))
			require.NoError(t, err)
			require.Equal(t, tt.want, out.GetFields()["category"].GetStringValue())
			require.NotEmpty(t, out.GetFields()["label"].GetStringValue())
		})
	}
}

func TestClassifyRejectsBadNow(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.Classify(context.Background(), mustStruct(t, map[string]any{"fecha": "2025-10-20", "now": "ayer"}))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCheckActions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.client.CheckActions(ctx, mustStruct(t, map[string]any{
		"fecha": "2025-10-20", "inicio": "14:00", "fin": "15:00",
	}))
	require.NoError(t, err)
	cancel := out.GetFields()["cancelar"].GetStructValue().GetFields()
	require.True(t, cancel["allowed"].GetBoolValue())
	complete := out.GetFields()["completar"].GetStructValue().GetFields()
	require.False(t, complete["allowed"].GetBoolValue())
	noShow := out.GetFields()["no_show"].GetStructValue().GetFields()
	require.True(t, noShow["allowed"].GetBoolValue())

	out, err = env.client.CheckActions(ctx, mustStruct(t, map[string]any{
		"fecha": "2025-10-20", "inicio": "12:00", "fin": "13:00",
	}))
	require.NoError(t, err)
	cancel = out.GetFields()["cancelar"].GetStructValue().GetFields()
	require.False(t, cancel["allowed"].GetBoolValue())
	require.Contains(t, cancel["reason"].GetStringValue(), "menos de 3 horas")
}

func TestListSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	court, err := env.courts.CreateCourt(ctx, service.CourtInput{
		Name:  "Cancha 1",
		Price: 60000,
		OpeningHours: map[int]service.OpeningHours{
			1: {Open: "08:00", Close: "10:00", SlotMinutes: 60},
		},
	})
	require.NoError(t, err)

	out, err := env.client.ListSlots(ctx, mustStruct(t, map[string]any{
		"cancha_id": court.ID.String(),
		"fecha":     "2025-10-20",
	}))
	require.NoError(t, err)
	slots := out.GetFields()["slots"].GetListValue().GetValues()
	require.Len(t, slots, 2)
	first := slots[0].GetStructValue().GetFields()
	require.Equal(t, "08:00", first["start"].GetStringValue())
	require.Equal(t, "09:00", first["end"].GetStringValue())
	require.Equal(t, "free", first["status"].GetStringValue())

	// Martes sin horario.
	out, err = env.client.ListSlots(ctx, mustStruct(t, map[string]any{
		"cancha_id": court.ID.String(),
		"fecha":     "2025-10-21",
	}))
	require.NoError(t, err)
	require.Empty(t, out.GetFields()["slots"].GetListValue().GetValues())
}

func TestListSlotsErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.client.ListSlots(ctx, mustStruct(t, map[string]any{"fecha": "2025-10-20"}))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = env.client.ListSlots(ctx, mustStruct(t, map[string]any{
		"cancha_id": uuid.NewString(),
		"fecha":     "2025-10-20",
	}))
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = env.client.ListSlots(ctx, mustStruct(t, map[string]any{
		"cancha_id": uuid.NewString(),
		"fecha":     "mañana",
	}))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}
