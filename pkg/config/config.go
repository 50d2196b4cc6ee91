package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	SMTP    SMTPConfig
	Admin   AdminConfig
	Console ConsoleConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env     string // development, staging, production
	Name    string
	Storage string // postgres | memory
}

// UseMemory indica si los repositorios deben vivir en memoria (sin PostgreSQL).
func (c AppConfig) UseMemory() bool {
	return strings.EqualFold(c.Storage, "memory")
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret       string
	Expiration   int // minutos
	Issuer       string
	ResetMinutes int // vigencia del token de restablecimiento de contraseña
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPConfig servidor de correo para el enlace de restablecimiento. Host vacío = solo log.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	ResetURL string // se le agrega ?token=<jwt>
}

// Enabled indica si hay servidor SMTP configurado.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// AdminConfig administrador inicial creado al arrancar si no existe. Cédula 0 = desactivado.
type AdminConfig struct {
	Cedula   int64
	Correo   string
	Password string
	CentroID int
}

// ConsoleConfig opciones de la consola administrativa (cmd/consola).
type ConsoleConfig struct {
	APIURL      string
	SessionFile string
	LogFile     string
	PageSize    int
	Debounce    time.Duration
	Timeout     time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, CONSOLE_API_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:     getString(v, "APP_ENV", "development"),
			Name:    getString(v, "APP_NAME", "gestion-centros"),
			Storage: getString(v, "APP_STORAGE", "postgres"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "gestion_centros"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:       getString(v, "JWT_SECRET", ""),
			Expiration:   getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:       getString(v, "JWT_ISSUER", "gestion-centros"),
			ResetMinutes: getInt(v, "JWT_RESET_MINUTES", 15),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			User:     getString(v, "SMTP_USER", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
			From:     getString(v, "SMTP_FROM", "no-reply@gestion-centros.local"),
			ResetURL: getString(v, "RESET_URL", "http://localhost:4200/reset-password"),
		},
		Admin: AdminConfig{
			Cedula:   int64(getInt(v, "ADMIN_CEDULA", 0)),
			Correo:   getString(v, "ADMIN_CORREO", ""),
			Password: getString(v, "ADMIN_PASSWORD", ""),
			CentroID: getInt(v, "ADMIN_CENTRO", 1),
		},
		Console: ConsoleConfig{
			APIURL:      strings.TrimRight(getString(v, "CONSOLE_API_URL", "http://localhost:3000"), "/"),
			SessionFile: getString(v, "CONSOLE_SESSION_FILE", defaultSessionFile()),
			LogFile:     getString(v, "CONSOLE_LOG_FILE", filepath.Join(os.TempDir(), "gestion-centros-consola.log")),
			PageSize:    getInt(v, "CONSOLE_PAGE_SIZE", 10),
			Debounce:    time.Duration(getInt(v, "CONSOLE_DEBOUNCE_MS", 300)) * time.Millisecond,
			Timeout:     time.Duration(getInt(v, "CONSOLE_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}
}

// defaultSessionFile ubica la sesión en el directorio de configuración del usuario.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "gestion-centros", "session.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
