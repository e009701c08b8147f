package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ImageStoreInline     = "inline"
	ImageStoreS3         = "s3"
	ImageStoreCloudinary = "cloudinary"
)

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	// DSN explícito; si viene vacío se arma con DB_HOST/DB_PORT/...
	DatabaseDSN string `env:"DB_DSN"`
	DBHost      string `env:"DB_HOST"`
	DBPort      int    `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	AuthIssuer   string        `env:"AUTH_ISSUER"`
	AuthDomain   string        `env:"AUTH_DOMAIN"`
	AuthAudience string        `env:"AUTH_AUDIENCE"`
	AuthJWKSURL  string        `env:"AUTH_JWKS_URL"`
	AuthJWKSTTL  time.Duration `env:"AUTH_JWKS_TTL" envDefault:"10m"`
	AuthDevMode  bool          `env:"AUTH_DEV_MODE" envDefault:"false"`

	ImageStore string `env:"IMAGE_STORE" envDefault:"inline"`

	AWSRegion       string `env:"AWS_REGION"`
	S3Bucket        string `env:"AWS_S3_BUCKET_NAME"`
	S3KeyPrefix     string `env:"S3_KEY_PREFIX" envDefault:"images"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" envDefault:"barkbuddy"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	BreedsCSVPath  string `env:"BREEDS_CSV" envDefault:"data/dog_breeds.csv"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"barkbuddy"`
}

// New carga .env (si existe) y parsea variables de entorno.
func New() (*Config, error) {
	// .env es opcional: en prod las variables vienen del entorno.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}

	switch c.ImageStore {
	case ImageStoreInline:
	case ImageStoreS3:
		if c.S3Bucket == "" || c.AWSRegion == "" {
			errs = append(errs, errors.New("IMAGE_STORE=s3 requires AWS_REGION and AWS_S3_BUCKET_NAME"))
		}
	case ImageStoreCloudinary:
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			errs = append(errs, errors.New("IMAGE_STORE=cloudinary requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown IMAGE_STORE %q", c.ImageStore))
	}

	if c.Issuer() == "" && !c.AuthDevMode {
		errs = append(errs, errors.New("AUTH_ISSUER or AUTH_DOMAIN is required unless AUTH_DEV_MODE=true"))
	}
	if c.Issuer() != "" && strings.TrimSpace(c.AuthAudience) == "" {
		errs = append(errs, errors.New("AUTH_AUDIENCE is required when an issuer is configured"))
	}

	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Issuer normaliza el issuer OIDC. AUTH_DOMAIN=tenant.auth0.com => https://tenant.auth0.com/
func (c *Config) Issuer() string {
	if v := strings.TrimSpace(c.AuthIssuer); v != "" {
		return v
	}
	d := strings.TrimSpace(c.AuthDomain)
	if d == "" {
		return ""
	}
	d = strings.TrimPrefix(strings.TrimPrefix(d, "https://"), "http://")
	return "https://" + strings.TrimRight(d, "/") + "/"
}

func (c *Config) JWKSURL() string {
	if v := strings.TrimSpace(c.AuthJWKSURL); v != "" {
		return v
	}
	iss := c.Issuer()
	if iss == "" {
		return ""
	}
	return strings.TrimRight(iss, "/") + "/.well-known/jwks.json"
}

// DSN devuelve DB_DSN o lo arma desde las partes. Vacío => modo in-memory.
func (c *Config) DSN() string {
	if v := strings.TrimSpace(c.DatabaseDSN); v != "" {
		return v
	}
	if strings.TrimSpace(c.DBHost) == "" || strings.TrimSpace(c.DBName) == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBUser != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
