package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Engine  EngineConfig      `yaml:"engine"`
	Rewrite RewriteConfig     `yaml:"rewrite"`
	HintLog HintLogConfig     `yaml:"hint_log"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Rewrite.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// EngineConfig holds the recommendation heuristics. The defaults are
// the values the scoring formula was tuned with; they are parameters,
// not derived constants.
type EngineConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MinDF               float64 `yaml:"min_df"`
	MaxDF               float64 `yaml:"max_df"`
	DecayWindowHours    float64 `yaml:"decay_window_hours"`
	SaturationCount     int     `yaml:"saturation_count"`
	CircularMean        bool    `yaml:"circular_mean"`
}

// Validate validates the engine configuration.
func (c *EngineConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.SimilarityThreshold, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(1.0)),
		validation.Field(&c.MinDF, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.MaxDF, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(1.0)),
		validation.Field(&c.DecayWindowHours, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.SaturationCount, validation.Required, validation.Min(1)),
	); err != nil {
		return err
	}
	if c.MinDF >= c.MaxDF {
		return fmt.Errorf("engine: min_df (%g) must be below max_df (%g)", c.MinDF, c.MaxDF)
	}
	return nil
}

// RewriteConfig holds the optional hint-rewriting collaborator
// configuration. When disabled, hints keep their template wording.
type RewriteConfig struct {
	Enabled        bool   `yaml:"enabled"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Validate validates the rewrite configuration.
func (c *RewriteConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1)),
	); err != nil {
		return err
	}
	// A custom base URL may point at an endpoint with no key; the
	// hosted default requires one.
	if c.APIKey == "" && c.BaseURL == "" {
		return fmt.Errorf("rewrite: enabled but api_key is empty and no base_url is set")
	}
	return nil
}

// HintLogConfig holds the served-hint audit log configuration.
// An empty path disables the log.
type HintLogConfig struct {
	Path string `yaml:"path"`
}

// Enabled returns true when the audit log is active.
func (c *HintLogConfig) Enabled() bool {
	return c.Path != ""
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Engine: EngineConfig{
			SimilarityThreshold: 0.7,
			MinDF:               0.1,
			MaxDF:               0.9,
			DecayWindowHours:    12,
			SaturationCount:     5,
			CircularMean:        false,
		},
		Rewrite: RewriteConfig{
			Enabled:        false,
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 30,
		},
		HintLog: HintLogConfig{
			Path: "",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
