package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Shop     ShopConfig     `mapstructure:"shop"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	Mode            string   `mapstructure:"mode"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout_seconds"`
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // postgres | sqlite
	DSN             string `mapstructure:"dsn"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_minutes"`
	SlowQueryMillis int    `mapstructure:"slow_query_millis"`
	LogLevel        string `mapstructure:"log_level"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"`
	JWTExpirationMinutes int    `mapstructure:"jwt_expiration_minutes"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.JWTExpirationMinutes) * time.Minute
}

type StorageConfig struct {
	Driver         string   `mapstructure:"driver"` // local | s3
	UploadDir      string   `mapstructure:"upload_dir"`
	PublicPrefix   string   `mapstructure:"public_prefix"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
	S3             S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// ShopConfig carries the storefront's pricing and listing rules. Amounts are
// whole currency units.
type ShopConfig struct {
	FreeShippingThreshold   int64  `mapstructure:"free_shipping_threshold"`
	ShippingFee             int64  `mapstructure:"shipping_fee"`
	OrderPrefix             string `mapstructure:"order_prefix"`
	SubscriptionOrderPrefix string `mapstructure:"subscription_order_prefix"`
	NewProductsLimit        int    `mapstructure:"new_products_limit"`
	HotProductsLimit        int    `mapstructure:"hot_products_limit"`
}

type AdminConfig struct {
	Account  string `mapstructure:"account"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// Load reads .env (if any), then configs/config.yaml (if any), then
// PURELIFE_* environment variables. A missing config file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("PURELIFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must be set")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=purelife port=5432 sslmode=disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime_minutes", 60)
	v.SetDefault("database.slow_query_millis", 200)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.jwt_expiration_minutes", 24*60)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.public_prefix", "/uploads")
	v.SetDefault("storage.max_upload_bytes", 5*1024*1024)
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "ap-northeast-1")
	v.SetDefault("storage.s3.key_prefix", "products")
	v.SetDefault("storage.s3.public_base_url", "")

	v.SetDefault("shop.free_shipping_threshold", 1200)
	v.SetDefault("shop.shipping_fee", 60)
	v.SetDefault("shop.order_prefix", "PL")
	v.SetDefault("shop.subscription_order_prefix", "SUB")
	v.SetDefault("shop.new_products_limit", 4)
	v.SetDefault("shop.hot_products_limit", 4)

	v.SetDefault("admin.account", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.name", "Administrator")
}
