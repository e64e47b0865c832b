package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
	Printer   PrinterConfig
	Workshop  WorkshopConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	LogLevel string
}

// JWTConfig describes the tokens issued by the hosted auth service. Only the
// shared secret is needed to verify them; Expiry applies to locally minted
// development tokens.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Expiry   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// RateLimitConfig bounds public form submissions per client IP.
type RateLimitConfig struct {
	Requests int
	Duration int
}

type EmailConfig struct {
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	FromName      string
	FromEmail     string
	OperatorEmail string
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (c *EmailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.FromEmail != ""
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

// WorkshopConfig seeds the workshop profile on first start.
type WorkshopConfig struct {
	Name     string
	Address  string
	Phone    string
	Email    string
	Currency string
	Timezone string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "aluworks-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "aluworks")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Freetown")
	viper.SetDefault("DB_LOG_LEVEL", "")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("JWT_AUDIENCE", "authenticated")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_METHODS", "")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 5)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("MAIL_FROM_NAME", "Aluworks")
	viper.SetDefault("MAIL_FROM_EMAIL", "")
	viper.SetDefault("MAIL_OPERATOR_EMAIL", "")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 48)
	viper.SetDefault("WORKSHOP_NAME", "Aluworks Fabrication")
	viper.SetDefault("WORKSHOP_ADDRESS", "Freetown, Sierra Leone")
	viper.SetDefault("WORKSHOP_PHONE", "")
	viper.SetDefault("WORKSHOP_EMAIL", "")
	viper.SetDefault("WORKSHOP_CURRENCY", "SLE")
	viper.SetDefault("WORKSHOP_TIMEZONE", "Africa/Freetown")

	cfg := &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			LogLevel: viper.GetString("DB_LOG_LEVEL"),
		},
		JWT: JWTConfig{
			Secret:   viper.GetString("JWT_SECRET"),
			Issuer:   viper.GetString("JWT_ISSUER"),
			Audience: viper.GetString("JWT_AUDIENCE"),
			Expiry:   time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Email: EmailConfig{
			SMTPHost:      viper.GetString("SMTP_HOST"),
			SMTPPort:      viper.GetInt("SMTP_PORT"),
			SMTPUsername:  viper.GetString("SMTP_USERNAME"),
			SMTPPassword:  viper.GetString("SMTP_PASSWORD"),
			FromName:      viper.GetString("MAIL_FROM_NAME"),
			FromEmail:     viper.GetString("MAIL_FROM_EMAIL"),
			OperatorEmail: viper.GetString("MAIL_OPERATOR_EMAIL"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Workshop: WorkshopConfig{
			Name:     viper.GetString("WORKSHOP_NAME"),
			Address:  viper.GetString("WORKSHOP_ADDRESS"),
			Phone:    viper.GetString("WORKSHOP_PHONE"),
			Email:    viper.GetString("WORKSHOP_EMAIL"),
			Currency: viper.GetString("WORKSHOP_CURRENCY"),
			Timezone: viper.GetString("WORKSHOP_TIMEZONE"),
		},
	}

	// The operator inbox falls back to the sender address.
	if cfg.Email.OperatorEmail == "" {
		cfg.Email.OperatorEmail = cfg.Email.FromEmail
	}

	return cfg
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// splitList reads a comma separated env value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
