package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminAPIKey       string `mapstructure:"ADMIN_API_KEY"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB          int    `mapstructure:"REDIS_AUTH_DB"`
	RedisPositionDB      int    `mapstructure:"REDIS_POSITION_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Walk tracking knobs.
	SampleIntervalSec  int `mapstructure:"SAMPLE_INTERVAL_SEC"`  // breadcrumb sampling period
	PositionMaxAgeSec  int `mapstructure:"POSITION_MAX_AGE_SEC"` // device fix older than this counts as a timeout
	TrailWindow        int `mapstructure:"TRAIL_WINDOW"`         // breadcrumbs kept in a live feed
	ReminderLeadMin    int `mapstructure:"REMINDER_LEAD_MIN"`    // minutes before the walk a reminder fires
	PlatformFeePercent int `mapstructure:"PLATFORM_FEE_PERCENT"`

	// Firebase / Cloudinary.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	CloudinaryURL           string `mapstructure:"CLOUDINARY_URL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "pawroute")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_POSITION_DB", 2)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("SAMPLE_INTERVAL_SEC", 10)
	viper.SetDefault("POSITION_MAX_AGE_SEC", 30)
	viper.SetDefault("TRAIL_WINDOW", 10)
	viper.SetDefault("REMINDER_LEAD_MIN", 30)
	viper.SetDefault("PLATFORM_FEE_PERCENT", 15)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("CLOUDINARY_URL", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SampleInterval returns the breadcrumb sampling period as a duration.
func SampleInterval() time.Duration {
	return time.Duration(AppConfig.SampleIntervalSec) * time.Second
}

// PositionMaxAge returns how stale a device fix may be before a sample
// is treated as timed out.
func PositionMaxAge() time.Duration {
	return time.Duration(AppConfig.PositionMaxAgeSec) * time.Second
}

// PlatformFeeRate returns the platform's cut as a fraction (0.15 for 15%).
func PlatformFeeRate() float64 {
	return float64(AppConfig.PlatformFeePercent) / 100.0
}
