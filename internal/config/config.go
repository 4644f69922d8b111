package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	AdminKey       string        `mapstructure:"ADMIN_KEY"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	ShopifyDomain     string `mapstructure:"SHOPIFY_DOMAIN"`
	ShopifyToken      string `mapstructure:"SHOPIFY_STOREFRONT_TOKEN"`
	ShopifyAPIVersion string `mapstructure:"SHOPIFY_API_VERSION"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	AirtableAPIKey          string `mapstructure:"AIRTABLE_API_KEY"`
	AirtableBaseID          string `mapstructure:"AIRTABLE_BASE_ID"`
	AirtableInstallersTable string `mapstructure:"AIRTABLE_INSTALLERS_TABLE"`
	AirtableJobsTable       string `mapstructure:"AIRTABLE_JOBS_TABLE"`

	DefaultRadiusKm float64 `mapstructure:"DEFAULT_RADIUS_KM"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("SHOPIFY_API_VERSION", "2024-07")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AIRTABLE_INSTALLERS_TABLE", "Installers")
	v.SetDefault("AIRTABLE_JOBS_TABLE", "Installation Jobs")
	v.SetDefault("DEFAULT_RADIUS_KM", 50)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
