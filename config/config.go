// Package config loads the ngdp-run configuration from an optional TOML file,
// overridden by NGDP_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/chromedp/ngdp"
	"github.com/chromedp/ngdp/enduser"
)

// DefaultFile is the configuration file looked up in the working directory
// when none is given.
const DefaultFile = "ngdp.toml"

// EnvPrefix prefixes the environment variables overriding settings, with dots
// replaced by underscores (eg, NGDP_ENDUSER_BASE_URL).
const EnvPrefix = "NGDP"

// Drivers.
const (
	DriverChromedp   = "chromedp"
	DriverPlaywright = "playwright"
)

// Config is the ngdp-run configuration.
type Config struct {
	Scenario  string          `mapstructure:"scenario"`
	Driver    string          `mapstructure:"driver"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	Browser   BrowserConfig   `mapstructure:"browser"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Serve     ServeConfig     `mapstructure:"serve"`
	Log       LogConfig       `mapstructure:"log"`
	Enduser   enduser.Config  `mapstructure:"enduser"`
}

// BrowserConfig configures the browser started by the driver.
type BrowserConfig struct {
	ExecPath  string `mapstructure:"exec_path"`
	RemoteURL string `mapstructure:"remote_url"`
	Headless  bool   `mapstructure:"headless"`
	NoSandbox bool   `mapstructure:"no_sandbox"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	// Install downloads the playwright browsers when missing.
	Install bool `mapstructure:"install"`
}

// ArtifactsConfig configures what a run leaves behind.
type ArtifactsConfig struct {
	Dir        string  `mapstructure:"dir"`
	Screenshot bool    `mapstructure:"screenshot"`
	PDF        bool    `mapstructure:"pdf"`
	Baseline   string  `mapstructure:"baseline"`
	Threshold  float64 `mapstructure:"threshold"`
	// Metrics is the path of the prometheus textfile, if any.
	Metrics string `mapstructure:"metrics"`
}

// ServeConfig configures the fake enduser application.
type ServeConfig struct {
	Addr    string        `mapstructure:"addr"`
	Latency time.Duration `mapstructure:"latency"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	// Protocol logs the browser protocol messages at debug level.
	Protocol bool `mapstructure:"protocol"`
}

func setDefaults(v *viper.Viper) {
	e := enduser.DefaultConfig()

	v.SetDefault("scenario", "edituser")
	v.SetDefault("driver", DriverChromedp)
	v.SetDefault("timeout", "2m")

	v.SetDefault("browser.exec_path", "")
	v.SetDefault("browser.remote_url", "")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.no_sandbox", false)
	v.SetDefault("browser.width", 1280)
	v.SetDefault("browser.height", 1024)
	v.SetDefault("browser.install", false)

	v.SetDefault("artifacts.dir", "artifacts")
	v.SetDefault("artifacts.screenshot", true)
	v.SetDefault("artifacts.pdf", false)
	v.SetDefault("artifacts.baseline", "")
	v.SetDefault("artifacts.threshold", 0.1)
	v.SetDefault("artifacts.metrics", "")

	v.SetDefault("serve.addr", "localhost:9080")
	v.SetDefault("serve.latency", "150ms")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.protocol", false)

	v.SetDefault("enduser.base_url", e.BaseURL)
	v.SetDefault("enduser.username", e.Username)
	v.SetDefault("enduser.password", e.Password)
	v.SetDefault("enduser.language", e.Language)
	v.SetDefault("enduser.languages", e.Languages)
	v.SetDefault("enduser.group_schemas", e.GroupSchemas)
	v.SetDefault("enduser.spinner_settle", e.SpinnerSettle.String())
	v.SetDefault("enduser.user.username", e.User.Username)
	v.SetDefault("enduser.user.password", e.User.Password)
	v.SetDefault("enduser.user.security_question", e.User.SecurityQuestion)
	v.SetDefault("enduser.user.security_answer", e.User.SecurityAnswer)
	v.SetDefault("enduser.user.group", e.User.Group)
	v.SetDefault("enduser.user.fullname", e.User.FullName)
	v.SetDefault("enduser.user.user_id", e.User.UserID)
	v.SetDefault("enduser.user.date", e.User.Date)
	v.SetDefault("enduser.user.firstname", e.User.FirstName)
	v.SetDefault("enduser.user.ctype", e.User.CType)
	v.SetDefault("enduser.selectors.spinner", e.Selectors.Spinner)
	v.SetDefault("enduser.selectors.next", e.Selectors.Next)
	v.SetDefault("enduser.selectors.save", e.Selectors.Save)
}

// New returns a viper instance with the defaults, the configuration file at
// path, and the environment overrides. An empty path looks up DefaultFile in
// the working directory, which may be missing.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".toml"))
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Decode decodes and validates the configuration held by v.
func Decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load loads the configuration, see New.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Dump encodes the effective settings of v as TOML.
func Dump(v *viper.Viper) ([]byte, error) {
	return toml.Marshal(v.AllSettings())
}

// ErrInvalid is wrapped by the errors returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Validate checks the configuration for values no run could succeed with.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverChromedp, DriverPlaywright:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalid, c.Driver)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalid)
	}
	if c.Driver == DriverPlaywright && c.Browser.RemoteURL != "" {
		return fmt.Errorf("%w: remote_url is only supported by the %s driver", ErrInvalid, DriverChromedp)
	}
	if _, err := url.ParseRequestURI(c.Enduser.BaseURL); err != nil {
		return fmt.Errorf("%w: base_url: %v", ErrInvalid, err)
	}
	e := c.Enduser
	if e.Languages < 1 || e.Language < 0 || e.Language >= e.Languages {
		return fmt.Errorf("%w: language %d is not one of %d languages", ErrInvalid, e.Language, e.Languages)
	}
	if e.GroupSchemas < 0 {
		return fmt.Errorf("%w: negative group_schemas %d", ErrInvalid, e.GroupSchemas)
	}
	if e.User.SecurityQuestion < ngdp.Last {
		return fmt.Errorf("%w: security_question %d is not an index or %d (last)", ErrInvalid, e.User.SecurityQuestion, ngdp.Last)
	}
	if e.Selectors.Spinner == "" || e.Selectors.Next == "" || e.Selectors.Save == "" {
		return fmt.Errorf("%w: empty selector", ErrInvalid)
	}
	return nil
}
