package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Hosted backend (auth + database)
	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string
	IdentityTimeout        time.Duration

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Session cookies
	CookieSecure bool
	CookieDomain string

	// Server
	Port               string
	CORSOrigins        string
	RateLimitPerMinute int

	// Deploy-time switches
	EnableTemporaryAdmin bool
	LogErrorsToDB        bool

	// Error tracking
	SentryDSN string
	AppEnv    string

	// Public site copy
	SiteName        string
	SiteDescription string
	ContactEmail    string
	ContactPhone    string
}

var defaults = map[string]any{
	"SUPABASE_URL":              "",
	"SUPABASE_ANON_KEY":         "",
	"SUPABASE_SERVICE_ROLE_KEY": "",
	"IDENTITY_TIMEOUT":          "10s",

	"DATABASE_URL": "",
	"DB_HOST":      "localhost",
	"DB_PORT":      "5432",
	"DB_USER":      "postgres",
	"DB_PASSWORD":  "",
	"DB_NAME":      "postgres",
	"DB_SSLMODE":   "require",

	"COOKIE_SECURE": true,
	"COOKIE_DOMAIN": "",

	"PORT":                  "8080",
	"CORS_ORIGINS":          "*",
	"RATE_LIMIT_PER_MINUTE": 60,

	"ENABLE_TEMPORARY_ADMIN": false,
	"LOG_ERRORS_TO_DB":       true,

	"SENTRY_DSN": "",
	"APP_ENV":    "development",

	"SITE_NAME":        "Property Pinoy",
	"SITE_DESCRIPTION": "Find your dream property in the Philippines",
	"CONTACT_EMAIL":    "info@propertypinoy.com",
	"CONTACT_PHONE":    "+63 2 123 4567",
}

// Init wires environment lookups into the global viper instance. When
// configFile is non-empty its keys are read as well; environment variables
// still take precedence.
func Init(configFile string) error {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

func Load() *Config {
	return &Config{
		SupabaseURL:            strings.TrimRight(viper.GetString("SUPABASE_URL"), "/"),
		SupabaseAnonKey:        viper.GetString("SUPABASE_ANON_KEY"),
		SupabaseServiceRoleKey: viper.GetString("SUPABASE_SERVICE_ROLE_KEY"),
		IdentityTimeout:        parseDuration(viper.GetString("IDENTITY_TIMEOUT")),

		DatabaseURL: viper.GetString("DATABASE_URL"),
		DBHost:      viper.GetString("DB_HOST"),
		DBPort:      viper.GetString("DB_PORT"),
		DBUser:      viper.GetString("DB_USER"),
		DBPassword:  viper.GetString("DB_PASSWORD"),
		DBName:      viper.GetString("DB_NAME"),
		DBSSLMode:   viper.GetString("DB_SSLMODE"),

		CookieSecure: viper.GetBool("COOKIE_SECURE"),
		CookieDomain: viper.GetString("COOKIE_DOMAIN"),

		Port:               viper.GetString("PORT"),
		CORSOrigins:        viper.GetString("CORS_ORIGINS"),
		RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),

		EnableTemporaryAdmin: viper.GetBool("ENABLE_TEMPORARY_ADMIN"),
		LogErrorsToDB:        viper.GetBool("LOG_ERRORS_TO_DB"),

		SentryDSN: viper.GetString("SENTRY_DSN"),
		AppEnv:    viper.GetString("APP_ENV"),

		SiteName:        viper.GetString("SITE_NAME"),
		SiteDescription: viper.GetString("SITE_DESCRIPTION"),
		ContactEmail:    viper.GetString("CONTACT_EMAIL"),
		ContactPhone:    viper.GetString("CONTACT_PHONE"),
	}
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value DSN built
// from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// Site is the subset of configuration that may be rendered into pages.
type Site struct {
	Name         string
	Description  string
	ContactEmail string
	ContactPhone string
}

func (c *Config) Site() Site {
	return Site{
		Name:         c.SiteName,
		Description:  c.SiteDescription,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
	}
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
