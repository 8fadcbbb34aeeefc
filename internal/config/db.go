package config

import (
	"fmt"
)

// DBConfig — parámetros de conexión. DB_DRIVER=sqlite usa DB_DSN como ruta
// (":memory:" o un archivo); para postgres DB_DSN tiene prioridad sobre los
// campos sueltos.
type DBConfig struct {
	Driver          string `envconfig:"DB_DRIVER" default:"postgres"`
	DSN             string `envconfig:"DB_DSN"`
	Host            string `envconfig:"DB_HOST" default:"localhost"`
	Port            int    `envconfig:"DB_PORT" default:"5432"`
	User            string `envconfig:"DB_USER" default:"reservas"`
	Password        string `envconfig:"DB_PASSWORD" default:"reservas"`
	Name            string `envconfig:"DB_NAME" default:"panel_reservas"`
	SSLMode         string `envconfig:"DB_SSLMODE" default:"disable"`
	TimeZone        string `envconfig:"DB_TIMEZONE" default:"America/Bogota"`
	MaxOpenConns    int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifeTime int    `envconfig:"DB_CONN_MAX_LIFETIME_MIN" default:"30"` // minutos
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Validate comprueba lo mínimo para poder conectar.
func (c DBConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.DSN == "" && (c.Host == "" || c.User == "" || c.Name == "") {
			return fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case DriverSQLite:
		if c.DSN == "" {
			return fmt.Errorf("invalid DB config: DB_DSN is required for sqlite")
		}
	default:
		return fmt.Errorf("invalid DB config: unknown driver %q", c.Driver)
	}
	return nil
}

func (c DBConfig) PostgresDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host,
		c.User,
		c.Password,
		c.Name,
		c.Port,
		c.SSLMode,
		c.TimeZone,
	)
}
