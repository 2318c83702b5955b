package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

// JWTConfig holds token signing settings. Values are read once at startup
// and never mutated afterwards.
type JWTConfig struct {
	SecretKey      string        `mapstructure:"secretKey"`
	Issuer         string        `mapstructure:"issuer"`
	Audience       string        `mapstructure:"audience"`
	AccessTokenTTL time.Duration `mapstructure:"accessTokenTTL"`
	Header         string        `mapstructure:"header"`
	// SlidingRefresh lets the Authenticate middleware re-issue a token that
	// expired less than RefreshWindow ago instead of rejecting it.
	SlidingRefresh bool          `mapstructure:"slidingRefresh"`
	RefreshWindow  time.Duration `mapstructure:"refreshWindow"`
}

type SecurityConfig struct {
	PublicRoutes     []string      `mapstructure:"publicRoutes"`
	IdentityCacheTTL time.Duration `mapstructure:"identityCacheTTL"`
	AllowedOrigins   []string      `mapstructure:"allowedOrigins"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"useSSL"`
}

type MailConfig struct {
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	From       string   `mapstructure:"from"`
	Moderators []string `mapstructure:"moderators"`
}

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Storage  struct {
		Minio MinioConfig `mapstructure:"minio"`
	} `mapstructure:"storage"`
	Mail MailConfig `mapstructure:"mail"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// JWT_SECRETKEY, REPOSITORIES_POSTGRES_PASSWORD, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// placeholderSecret is the signing key shipped in the embedded config.
const placeholderSecret = "change-me-in-env"

// Validate rejects configurations the token gate cannot run with. The
// placeholder signing key is only accepted in development mode.
func (c Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secretKey must be set")
	}
	if c.JWT.SecretKey == placeholderSecret && c.Mode != "development" {
		return fmt.Errorf("jwt.secretKey is still the placeholder; set JWT_SECRETKEY for mode %q", c.Mode)
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return fmt.Errorf("jwt.accessTokenTTL must be positive, got %s", c.JWT.AccessTokenTTL)
	}
	if c.JWT.SlidingRefresh && c.JWT.RefreshWindow <= 0 {
		return fmt.Errorf("jwt.refreshWindow must be positive when slidingRefresh is enabled")
	}
	return nil
}
