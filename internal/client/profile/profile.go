package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile es la configuración local del CLI (~/.config/barkbuddy/config.yaml).
type Profile struct {
	APIURL      string      `yaml:"api_url"`
	Timeout     string      `yaml:"timeout"`
	Token       string      `yaml:"token,omitempty"`
	DebugUserID string      `yaml:"debug_user_id,omitempty"`
	OAuth       OAuthConfig `yaml:"oauth,omitempty"`
	Geo         GeoConfig   `yaml:"geo,omitempty"`
}

type OAuthConfig struct {
	ClientID     string   `yaml:"client_id,omitempty"`
	ClientSecret string   `yaml:"client_secret,omitempty"`
	TokenURL     string   `yaml:"token_url,omitempty"`
	Audience     string   `yaml:"audience,omitempty"`
	Scopes       []string `yaml:"scopes,omitempty"`
}

func (o OAuthConfig) Enabled() bool {
	return o.ClientID != "" && o.TokenURL != ""
}

type GeoConfig struct {
	LookupURL string `yaml:"lookup_url,omitempty"`
	Timeout   string `yaml:"timeout,omitempty"`
}

func Default() *Profile {
	return &Profile{
		APIURL:  "http://localhost:8080",
		Timeout: "15s",
		Geo:     GeoConfig{Timeout: "10s"},
	}
}

// DefaultPath devuelve ~/.config/barkbuddy/config.yaml (o el equivalente del SO).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "barkbuddy", "config.yaml")
}

// Load devuelve defaults si el archivo no existe; después aplica overrides de entorno.
func Load(path string) (*Profile, error) {
	p := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read profile: %w", err)
	default:
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("failed to parse profile: %w", err)
		}
	}

	p.applyEnvOverrides()
	return p, nil
}

func (p *Profile) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	// 0600: puede tener token y client secret
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

func (p *Profile) applyEnvOverrides() {
	if v := os.Getenv("BARKBUDDY_API_URL"); v != "" {
		p.APIURL = v
	}
	if v := os.Getenv("BARKBUDDY_TOKEN"); v != "" {
		p.Token = v
	}
	if v := os.Getenv("BARKBUDDY_DEBUG_USER_ID"); v != "" {
		p.DebugUserID = v
	}
	if v := os.Getenv("BARKBUDDY_CLIENT_SECRET"); v != "" {
		p.OAuth.ClientSecret = v
	}
}

func (p *Profile) HTTPTimeout() time.Duration {
	return parseDuration(p.Timeout, 15*time.Second)
}

func (p *Profile) GeoTimeout() time.Duration {
	return parseDuration(p.Geo.Timeout, 10*time.Second)
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
