package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Source modes.
const (
	SourceModeFS     = "fs"
	SourceModeRemote = "remote"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Source SourceConfig      `yaml:"source"`
	Search SearchConfig      `yaml:"search"`
	Graph  GraphConfig       `yaml:"graph"`
	Auth   AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if err := c.Graph.Validate(); err != nil {
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

// SourceConfig selects and configures the corpus backend.
//
// Mode picks exactly one backend; there is no runtime fallback:
//   - "fs" (default): Markdown files under Path, optionally watched.
//   - "remote": a hosted document collection at Endpoint, filtered to
//     published records. Token, when set, is sent as a Bearer credential.
type SourceConfig struct {
	Mode     string `yaml:"mode"`
	Path     string `yaml:"path"`
	Watch    bool   `yaml:"watch"`
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = SourceModeFS
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(SourceModeFS, SourceModeRemote)),
	); err != nil {
		return err
	}
	switch c.Mode {
	case SourceModeFS:
		if c.Path == "" {
			return fmt.Errorf("source: mode is %q but path is empty", SourceModeFS)
		}
	case SourceModeRemote:
		if c.Endpoint == "" {
			return fmt.Errorf("source: mode is %q but endpoint is empty", SourceModeRemote)
		}
	}
	return nil
}

// SearchConfig holds the SQLite search-index configuration.
type SearchConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// GraphConfig holds graph layout configuration.
type GraphConfig struct {
	Columns int `yaml:"columns"`
}

// Validate validates the graph configuration.
func (c *GraphConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Columns, validation.Min(0), validation.Max(64)),
	)
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
		Source: SourceConfig{
			Mode:  SourceModeFS,
			Path:  "./content",
			Watch: true,
		},
		Search: SearchConfig{
			Path: "./braindump.db",
		},
		Graph: GraphConfig{
			Columns: 8,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
