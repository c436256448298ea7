package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	dirName        = ".eegplot"
	envPrefix      = "EEGPLOT"
	DefaultOutput  = "eeg_ecg_plot.html"
	DefaultCDN     = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	DefaultHeight  = 800
	DefaultWidth   = 1200
	configFileName = "config"
)

// Global configuration structure.
type Global struct {
	Output       string   `mapstructure:"output" yaml:"output"`
	ConvertECG   bool     `mapstructure:"convert_ecg" yaml:"convert_ecg"`
	PlotlyCDNURL string   `mapstructure:"plotly_cdn_url" yaml:"plotly_cdn_url"`
	ChartHeight  int      `mapstructure:"chart_height" yaml:"chart_height"`
	StaticWidth  int      `mapstructure:"static_width" yaml:"static_width"`
	Palette      []string `mapstructure:"palette" yaml:"palette"`
}

// Default returns the built-in configuration.
func Default() *Global {
	return &Global{
		Output:       DefaultOutput,
		PlotlyCDNURL: DefaultCDN,
		ChartHeight:  DefaultHeight,
		StaticWidth:  DefaultWidth,
		Palette:      []string{},
	}
}

// Path resolves the config file location: cfgFile when set, otherwise
// ~/.eegplot/config.yaml.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to resolve home dir")
	}
	return filepath.Join(home, dirName, configFileName+".yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.eegplot/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "unable to create config dir")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "unable to encode config")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrap(err, "unable to write config")
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command-line flags are applied
// on top by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("output", d.Output)
	v.SetDefault("convert_ecg", d.ConvertECG)
	v.SetDefault("plotly_cdn_url", d.PlotlyCDNURL)
	v.SetDefault("chart_height", d.ChartHeight)
	v.SetDefault("static_width", d.StaticWidth)
	v.SetDefault("palette", d.Palette)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "unable to resolve home dir")
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, "unable to read config")
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	if c.ChartHeight <= 0 {
		c.ChartHeight = DefaultHeight
	}
	if c.StaticWidth <= 0 {
		c.StaticWidth = DefaultWidth
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.PlotlyCDNURL == "" {
		c.PlotlyCDNURL = DefaultCDN
	}
	return &c, nil
}
