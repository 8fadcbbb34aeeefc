package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/app"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/config"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/db"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/model"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/notify"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/repository"
	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/service"
	httpx "github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/transport/http"
	tgrpc "github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/transport/grpc"
)

func main() {
	// 1. Configuración desde .env y variables de entorno.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Env)
	defer logger.Sync()

	policy, err := cfg.Policy()
	if err != nil {
		logger.Fatal("Invalid booking policy", zap.Error(err))
	}

	// 2. Base de datos y migraciones.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		logger.Fatal("Failed to init db", zap.Error(err))
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 3. Repositorios (GORM).
	courtRepo := repository.NewGormCourtRepository(gormDB)
	providerRepo := repository.NewGormProviderRepository(gormDB)
	extraRepo := repository.NewGormExtraServiceRepository(gormDB)
	reservationRepo := repository.NewGormReservationRepository(gormDB)
	blockRepo := repository.NewGormBlockRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 4. Publicador de eventos: RabbitMQ si está configurado, si no solo log.
	var publisher notify.Publisher = notify.NewLogPublisher(logger)
	if cfg.RabbitURL != "" {
		amqpPub, err := notify.NewAMQPPublisher(cfg.RabbitURL, cfg.ReservationExchange)
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	// 5. Servicios.
	clock := calendar.RealClock{}
	courtSvc := service.NewCourtService(courtRepo, providerRepo, extraRepo, reservationRepo, blockRepo, eventRepo, clock, policy, logger)
	reservationSvc := service.NewReservationService(reservationRepo, courtRepo, extraRepo, blockRepo, eventRepo, publisher, clock, policy, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := app.NewScheduler(reservationSvc, cfg.AutoCompleteInterval, logger)
	scheduler.Start(ctx)

	// 6. HTTP (gin).
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(httpx.NewHandler(courtSvc, reservationSvc, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP serve", zap.Error(err))
		}
	}()

	// 7. gRPC.
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(tgrpc.UnaryLogger(logger)))
	tgrpc.RegisterEligibilityServer(grpcServer, tgrpc.NewServer(courtSvc, policy, clock, logger))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("gRPC serve", zap.Error(err))
		}
	}()

	// 8. Apagado ordenado por señal.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	cancel()
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
}
