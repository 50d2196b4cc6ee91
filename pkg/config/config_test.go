package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 15, cfg.JWT.ResetMinutes)
	assert.Equal(t, 10, cfg.Console.PageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.Console.Debounce)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "8081")
	v.Set("CONSOLE_API_URL", "http://api.local:9000/")
	v.Set("CONSOLE_DEBOUNCE_MS", 50)
	v.Set("SMTP_HOST", "smtp.local")
	v.Set("DB_PORT", "no-es-numero")

	cfg := fromViper(v)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "http://api.local:9000", cfg.Console.APIURL, "se recorta el / final")
	assert.Equal(t, 50*time.Millisecond, cfg.Console.Debounce)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 5432, cfg.DB.Port, "un entero inválido cae al valor por defecto")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "centros", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/centros?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestFromViper_StorageYAdmin(t *testing.T) {
	cfg := fromViper(viper.New())
	assert.False(t, cfg.App.UseMemory())
	assert.Zero(t, cfg.Admin.Cedula)

	v := viper.New()
	v.Set("APP_STORAGE", "Memory")
	v.Set("ADMIN_CEDULA", "1010101010")
	v.Set("ADMIN_CORREO", "admin@centros.local")
	cfg = fromViper(v)

	assert.True(t, cfg.App.UseMemory())
	assert.Equal(t, int64(1010101010), cfg.Admin.Cedula)
	assert.Equal(t, "admin@centros.local", cfg.Admin.Correo)
	assert.Equal(t, 1, cfg.Admin.CentroID)
}
