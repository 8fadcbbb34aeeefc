package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/bypipe27/SISTEMA-DE-GESTION-DE-ESCENARIOS-DEPORTIVOS-EN-LA-CIUDAD-DE-TULUA-sub000/internal/calendar"
)

type App struct {
	Env string `envconfig:"ENV" default:"development"`

	// Network
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	GRPCAddr string `envconfig:"GRPC_ADDR" default:":50051"`

	DB DBConfig `ignored:"true"`

	// Reglas de negocio
	TimeZone       string        `envconfig:"TIMEZONE" default:"America/Bogota"`
	CancelLeadTime time.Duration `envconfig:"CANCEL_LEAD_TIME" default:"3h"`
	UpcomingWindow time.Duration `envconfig:"UPCOMING_WINDOW" default:"24h"`

	AutoCompleteInterval time.Duration `envconfig:"AUTO_COMPLETE_INTERVAL" default:"15m"`

	// RabbitMQ; vacío = los eventos solo se registran en el log.
	RabbitURL           string `envconfig:"RABBIT_URL"`
	ReservationExchange string `envconfig:"RESERVATION_EXCHANGE" default:"reservas.exchange"`
}

// Load lee .env si existe y luego las variables de entorno.
func Load() (App, error) {
	_ = godotenv.Load()

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("process env: %w", err)
	}
	if err := envconfig.Process("", &c.DB); err != nil {
		return c, fmt.Errorf("process db env: %w", err)
	}
	if err := c.DB.Validate(); err != nil {
		return c, err
	}
	if c.CancelLeadTime < 0 || c.UpcomingWindow < 0 {
		return c, fmt.Errorf("invalid config: negative policy durations")
	}
	return c, nil
}

// Policy arma la política de reservas; una zona desconocida es un error.
func (c App) Policy() (calendar.Policy, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return calendar.Policy{}, fmt.Errorf("load timezone %q: %w", c.TimeZone, err)
	}
	return calendar.Policy{
		CancelLeadTime: c.CancelLeadTime,
		UpcomingWindow: c.UpcomingWindow,
		Location:       loc,
	}, nil
}
