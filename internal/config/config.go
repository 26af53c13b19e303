package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vango-dev/create-webapp/internal/errors"
)

const (
	// FileName is the config file name looked up in the working directory, without extension.
	FileName = "create-webapp"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "CREATE_WEBAPP"

	// DefaultPackageManager installs dependencies when none is configured.
	DefaultPackageManager = "npm"
)

// Config holds the settings for one run.
type Config struct {
	// PackageManager is the executable used to install dependencies.
	PackageManager string `mapstructure:"package_manager"`

	// SkipInstall disables every provisioning step.
	SkipInstall bool `mapstructure:"skip_install"`

	// TemplatesDir is a directory overlay consulted before the embedded templates.
	TemplatesDir string `mapstructure:"templates_dir"`

	// TemplatesS3 is an s3://bucket/prefix overlay consulted before the embedded templates.
	TemplatesS3 string `mapstructure:"templates_s3"`

	// S3Region and S3Endpoint configure the S3 client used for TemplatesS3.
	S3Region   string `mapstructure:"s3_region"`
	S3Endpoint string `mapstructure:"s3_endpoint"`

	// MetricsFile receives generation metrics in Prometheus text format.
	MetricsFile string `mapstructure:"metrics_file"`

	NoColor bool `mapstructure:"no_color"`
	Verbose bool `mapstructure:"verbose"`

	// Yes answers every confirmation prompt with yes.
	Yes bool `mapstructure:"yes"`

	configPath string
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"package_manager": "package-manager",
	"skip_install":    "skip-install",
	"templates_dir":   "templates-dir",
	"templates_s3":    "templates-s3",
	"s3_region":       "s3-region",
	"s3_endpoint":     "s3-endpoint",
	"metrics_file":    "metrics-file",
	"no_color":        "no-color",
	"verbose":         "verbose",
	"yes":             "yes",
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		PackageManager: DefaultPackageManager,
	}
}

// Load reads the layered configuration.
//
// If file is empty, create-webapp.yaml is read from the working directory when
// present. An explicitly named file must exist. flags may be nil.
func Load(flags *pflag.FlagSet, file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("package_manager", DefaultPackageManager)
	v.SetDefault("skip_install", false)
	v.SetDefault("templates_dir", "")
	v.SetDefault("templates_s3", "")
	v.SetDefault("s3_region", "")
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", false)
	v.SetDefault("yes", false)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, errors.New("E140").WithPath(file).Wrap(err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.New("E140").Wrap(err)
				}
			}
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("E140").
			WithPath(v.ConfigFileUsed()).
			WithDetail("Failed to decode configuration: " + err.Error())
	}
	if used := v.ConfigFileUsed(); used != "" {
		if abs, err := filepath.Abs(used); err == nil {
			used = abs
		}
		cfg.configPath = used
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the config file that was read, or "" when none was.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks the configuration for values no run could use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.PackageManager) == "" {
		return errors.New("E140").WithDetail("package_manager must not be empty")
	}
	if strings.ContainsAny(c.PackageManager, " \t/\\") {
		return errors.New("E140").
			WithDetail("package_manager must be an executable name, got: " + c.PackageManager).
			WithSuggestion("Use one of npm, pnpm, yarn, or bun")
	}
	if c.TemplatesS3 != "" && !strings.HasPrefix(c.TemplatesS3, "s3://") {
		return errors.New("E141").WithPath(c.TemplatesS3)
	}
	return nil
}
