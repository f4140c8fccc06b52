package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Models   ModelsConfig   `mapstructure:"models" yaml:"models"`
	Settings SettingsConfig `mapstructure:"settings" yaml:"settings"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	Host     HostConfig     `mapstructure:"host" yaml:"host"`

	Port string `mapstructure:"port" yaml:"port"`
}

type ModelsConfig struct {
	// Root is where every model asset is stored: single-file GGUFs
	// directly inside it, multi-file bundles in their own subdirectory.
	Root string `mapstructure:"root" yaml:"root"`

	// HFMirror replaces the huggingface.co host in every catalog download
	// URL, for installs behind a caching mirror. Empty means direct.
	HFMirror string `mapstructure:"hf_mirror" yaml:"hf_mirror"`
}

type SettingsConfig struct {
	// Path is the TOML file the activation committer writes the selected
	// engine/model ids into. The desktop app reads it on launch.
	Path string `mapstructure:"path" yaml:"path"`

	// PipelineMode is recorded alongside the selection on commit.
	PipelineMode string `mapstructure:"pipeline_mode" yaml:"pipeline_mode"`
}

type LogConfig struct {
	Path          string `mapstructure:"path" yaml:"path"`
	Level         string `mapstructure:"level" yaml:"level"`
	IncludeStdout bool   `mapstructure:"include_stdout" yaml:"include_stdout"`
}

type StoreConfig struct {
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

type HostConfig struct {
	// Overrides for host capability detection, mainly for testing on
	// machines where /proc or the interpreter lookup misbehaves.
	// Zero / unset means "detect".
	PhysicalMemoryGB int    `mapstructure:"physical_memory_gb" yaml:"physical_memory_gb"`
	OptionalRuntime  string `mapstructure:"optional_runtime" yaml:"optional_runtime"`
}

func Load(path string) (*Config, error) {

	if path == "" {
		path = "voiceflowd.yaml"
	}

	v := viper.New()

	// Set Defaults
	home, _ := os.UserHomeDir()
	appDir := filepath.Join(home, ".voiceflow")

	v.SetDefault("port", "8484")
	v.SetDefault("models.root", filepath.Join(appDir, "models"))
	v.SetDefault("models.hf_mirror", "")
	v.SetDefault("settings.path", filepath.Join(appDir, "settings.toml"))
	v.SetDefault("settings.pipeline_mode", "transcribe_format")
	v.SetDefault("log.path", filepath.Join(appDir, "voiceflowd.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.include_stdout", true)
	v.SetDefault("store.sqlite_path", filepath.Join(appDir, "voiceflowd.db"))
	v.SetDefault("host.optional_runtime", "python3")

	// The config file is optional: defaults cover a stock install, and
	// the desktop app usually runs the daemon with no file at all.
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// Support Environment Variables
	v.SetEnvPrefix("VOICEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Models.Root == "" {
		return fmt.Errorf("models.root must not be empty")
	}

	if c.Settings.Path == "" {
		return fmt.Errorf("settings.path must not be empty")
	}

	if c.Settings.PipelineMode == "" {
		c.Settings.PipelineMode = "transcribe_format"
	}

	if c.Port == "" {
		c.Port = "8484"
	}

	return nil
}
