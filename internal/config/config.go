package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// Module provides application configuration.
var Module = fx.Module("config", fx.Provide(Load))

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	LogLevel    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	// TaxRate is the portal-wide tax rate applied at render time.
	TaxRate decimal.Decimal

	Company CompanyInfo

	SeedDemo bool
}

// CompanyInfo is the issuer identity printed on every invoice document.
// Static configuration, not user-editable.
type CompanyInfo struct {
	Name     string
	Address  string
	Phone    string
	Email    string
	Website  string
	LogoPath string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "portal"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "portal"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),

		TaxRate: getenvDecimal("TAX_RATE", decimal.Zero),

		Company: CompanyInfo{
			Name:     getenv("COMPANY_NAME", "Acme Web Studio"),
			Address:  getenv("COMPANY_ADDRESS", "123 Main Street, Suite 400, Portland, OR 97201"),
			Phone:    getenv("COMPANY_PHONE", "(555) 123-4567"),
			Email:    getenv("COMPANY_EMAIL", "billing@acmewebstudio.com"),
			Website:  getenv("COMPANY_WEBSITE", "www.acmewebstudio.com"),
			LogoPath: getenv("COMPANY_LOGO", ""),
		},

		SeedDemo: getenvBool("SEED_DEMO_DATA", true),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvDecimal(key string, def decimal.Decimal) decimal.Decimal {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil || parsed.IsNegative() {
		return def
	}
	return parsed
}
