// Package config carrega as configurações da aplicação a partir de variáveis
// de ambiente, de um arquivo .env opcional e de um arquivo de configuração opcional.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hugohenrick/erp-multinegocio/internal/storage"
)

// ErrMissingJWTKey indica que JWT_SECRET_KEY não foi configurada
var ErrMissingJWTKey = errors.New("chave secreta JWT não configurada")

type ServerConfig struct {
	Port               string   `mapstructure:"port"`
	Mode               string   `mapstructure:"mode"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type StorageConfig struct {
	Driver         string `mapstructure:"driver"`
	GormDialect    string `mapstructure:"gorm_dialect"`
	SQLitePath     string `mapstructure:"sqlite_path"`
	MigrationsAuto bool   `mapstructure:"migrations_auto"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConnections  int32         `mapstructure:"max_connections"`
	MinConnections  int32         `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

type JWTConfig struct {
	SecretKey       string `mapstructure:"secret_key"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
	Issuer          string `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TwilioConfig struct {
	AccountSID   string `mapstructure:"account_sid"`
	AuthToken    string `mapstructure:"auth_token"`
	WhatsAppFrom string `mapstructure:"whatsapp_from"`
	SMSFrom      string `mapstructure:"sms_from"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
}

type AppConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// Config reúne todas as configurações da aplicação
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	App      AppConfig      `mapstructure:"app"`
}

// envBindings liga cada chave às variáveis de ambiente aceitas, em ordem de precedência
var envBindings = map[string][]string{
	"server.port":                 {"PORT"},
	"server.mode":                 {"GIN_MODE"},
	"server.cors_allowed_origins": {"CORS_ALLOWED_ORIGINS"},
	"storage.driver":              {"STORAGE_DRIVER"},
	"storage.gorm_dialect":        {"GORM_DIALECT"},
	"storage.sqlite_path":         {"SQLITE_PATH"},
	"storage.migrations_auto":     {"MIGRATIONS_AUTO"},
	"database.url":                {"DATABASE_URL"},
	"database.host":               {"DB_HOST"},
	"database.port":               {"DB_PORT"},
	"database.user":               {"DB_USER"},
	"database.password":           {"DB_PASSWORD"},
	"database.name":               {"DB_NAME"},
	"database.ssl_mode":           {"DB_SSL_MODE", "DB_SSLMODE"},
	"database.max_connections":    {"DB_MAX_CONNECTIONS"},
	"database.min_connections":    {"DB_MIN_CONNECTIONS"},
	"database.max_conn_lifetime":  {"DB_MAX_LIFETIME"},
	"jwt.secret_key":              {"JWT_SECRET_KEY"},
	"jwt.expiration_hours":        {"JWT_EXPIRATION_HOURS"},
	"jwt.issuer":                  {"JWT_ISSUER"},
	"log.level":                   {"LOG_LEVEL"},
	"log.format":                  {"LOG_FORMAT"},
	"twilio.account_sid":          {"TWILIO_ACCOUNT_SID"},
	"twilio.auth_token":           {"TWILIO_AUTH_TOKEN"},
	"twilio.whatsapp_from":        {"TWILIO_WHATSAPP_FROM"},
	"twilio.sms_from":             {"TWILIO_SMS_FROM"},
	"telegram.bot_token":          {"TELEGRAM_BOT_TOKEN"},
	"app.timezone":                {"APP_TIMEZONE"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("storage.driver", string(storage.DriverPostgres))
	v.SetDefault("storage.gorm_dialect", "sqlite")
	v.SetDefault("storage.sqlite_path", "data/erp.db")
	v.SetDefault("storage.migrations_auto", true)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "erp_multinegocio")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 1)
	v.SetDefault("database.max_conn_lifetime", time.Hour)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "erp-multinegocio-api")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("app.timezone", "America/Sao_Paulo")
}

// Load lê o .env (se existir), as variáveis de ambiente e, quando path não é
// vazio, um arquivo de configuração. Variáveis de ambiente têm precedência.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("erro ao ler .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("erro ao associar %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("erro ao ler configuração: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("erro ao decodificar configuração: %w", err)
	}
	c.Server.CORSAllowedOrigins = splitList(c.Server.CORSAllowedOrigins)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate confere as combinações obrigatórias
func (c *Config) Validate() error {
	if _, err := storage.ParseDriver(c.Storage.Driver); err != nil {
		return err
	}
	if c.Storage.GormDialect != "sqlite" && c.Storage.GormDialect != "postgres" {
		return fmt.Errorf("dialeto gorm inválido: %q", c.Storage.GormDialect)
	}
	if c.JWT.SecretKey == "" {
		return ErrMissingJWTKey
	}
	if c.JWT.ExpirationHours <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS deve ser positivo")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("fuso horário inválido %q: %w", c.App.Timezone, err)
	}
	return nil
}

// StorageDriver devolve o driver já validado
func (c *Config) StorageDriver() storage.Driver {
	return storage.Driver(c.Storage.Driver)
}

// Location devolve o fuso usado no cálculo de vencimentos
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL devolve DATABASE_URL ou monta a URL a partir das variáveis DB_*
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.SSLMode)
}

// TokenTTL devolve a validade dos tokens de acesso
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpirationHours) * time.Hour
}

// TwilioEnabled indica se há credenciais para envio por WhatsApp/SMS
func (c *Config) TwilioEnabled() bool {
	return c.Twilio.AccountSID != "" && c.Twilio.AuthToken != ""
}

// splitList aceita tanto listas do arquivo quanto "a,b,c" vindo do ambiente
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
