// SPDX-License-Identifier: Apache-2.0

package config

import (
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/opencart-tools/ocinstaller/internal/installer"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "OCINSTALLER"

	DefaultBasePerms   = "0644"
	DefaultLockTimeout = 30 * time.Second
)

// Config holds the global configuration for the application.
type Config struct {
	Log     logx.LoggingConfig `yaml:"log" json:"log"`
	Install InstallConfig      `yaml:"install" json:"install"`
}

// InstallConfig represents the `install` configuration block.
type InstallConfig struct {
	// TempRoot is where saved copies and rotation scratch directories live. Empty means the system temp directory.
	TempRoot string `yaml:"tempRoot" json:"tempRoot"`
	// BasePerms is an octal permission string such as "0644".
	BasePerms string `yaml:"basePerms" json:"basePerms"`
	// LockTimeout bounds how long a command waits for another run on the same install path.
	LockTimeout time.Duration `yaml:"lockTimeout" json:"lockTimeout"`
	// ReportDir receives a YAML copy of each workflow report. Empty disables saving.
	ReportDir        string   `yaml:"reportDir" json:"reportDir"`
	ChmodTargets     []string `yaml:"chmodTargets" json:"chmodTargets"`
	PreservedTargets []string `yaml:"preservedTargets" json:"preservedTargets"`
	ConfigTemplates  []string `yaml:"configTemplates" json:"configTemplates"`
}

// Perms parses BasePerms.
func (c InstallConfig) Perms() (fs.FileMode, error) {
	s := strings.TrimSpace(c.BasePerms)
	if s == "" {
		s = DefaultBasePerms
	}

	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
	if err != nil {
		return 0, errorx.IllegalArgument.Wrap(err, "invalid base permissions %q, expected an octal value such as 0644", c.BasePerms)
	}

	perms := fs.FileMode(v)
	if err = installer.ValidateBasePerms(perms); err != nil {
		return 0, err
	}

	return perms, nil
}

// Validate validates the install configuration block.
func (c InstallConfig) Validate() error {
	if _, err := c.Perms(); err != nil {
		return err
	}

	if c.LockTimeout < 0 {
		return errorx.IllegalArgument.New("lock timeout cannot be negative: %s", c.LockTimeout)
	}

	if err := installer.ValidateTargets("chmod target", c.ChmodTargets); err != nil {
		return err
	}

	if err := installer.ValidateTargets("preserved target", c.PreservedTargets); err != nil {
		return err
	}

	return installer.ValidateTargets("config template", c.ConfigTemplates)
}

// Validate validates all configuration fields.
func (c Config) Validate() error {
	return c.Install.Validate()
}

// InstallerOptions translates the install block into installer options.
func (c InstallConfig) InstallerOptions() []installer.Option {
	opts := []installer.Option{
		installer.WithTempRoot(c.TempRoot),
	}

	if len(c.ChmodTargets) > 0 {
		opts = append(opts, installer.WithChmodTargets(c.ChmodTargets))
	}

	if len(c.PreservedTargets) > 0 {
		opts = append(opts, installer.WithPreservedTargets(c.PreservedTargets))
	}

	if len(c.ConfigTemplates) > 0 {
		opts = append(opts, installer.WithConfigTemplates(c.ConfigTemplates))
	}

	return opts
}

func defaultConfig() Config {
	return Config{
		Log: logx.LoggingConfig{
			Level:          "Info",
			ConsoleLogging: true,
			FileLogging:    false,
		},
		Install: InstallConfig{
			TempRoot:         "",
			BasePerms:        DefaultBasePerms,
			LockTimeout:      DefaultLockTimeout,
			ChmodTargets:     installer.DefaultChmodTargets(),
			PreservedTargets: installer.DefaultPreservedTargets(),
			ConfigTemplates:  installer.DefaultConfigTemplates(),
		},
	}
}

var globalConfig = defaultConfig()

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.consoleLogging", c.Log.ConsoleLogging)
	v.SetDefault("log.fileLogging", c.Log.FileLogging)
	v.SetDefault("install.tempRoot", c.Install.TempRoot)
	v.SetDefault("install.basePerms", c.Install.BasePerms)
	v.SetDefault("install.lockTimeout", c.Install.LockTimeout)
	v.SetDefault("install.reportDir", c.Install.ReportDir)
	v.SetDefault("install.chmodTargets", c.Install.ChmodTargets)
	v.SetDefault("install.preservedTargets", c.Install.PreservedTargets)
	v.SetDefault("install.configTemplates", c.Install.ConfigTemplates)
}

// Initialize loads the configuration from defaults, the optional config file at path and OCINSTALLER_* environment
// variables, in increasing order of precedence.
func Initialize(path string) error {
	v := viper.New()
	setDefaults(v, defaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return NotFoundError.Wrap(err, "failed to read config file: %s", path).
				WithProperty(errorx.PropertyPayload(), path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
			WithProperty(errorx.PropertyPayload(), path)
	}

	if err := c.Validate(); err != nil {
		return InvalidConfigError.Wrap(err, "invalid configuration").
			WithProperty(errorx.PropertyPayload(), path)
	}

	globalConfig = c
	return nil
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}

// Set replaces the global configuration after validating it.
func Set(c *Config) error {
	if c == nil {
		return errorx.IllegalArgument.New("config cannot be nil")
	}

	if err := c.Validate(); err != nil {
		return err
	}

	globalConfig = *c
	return nil
}

// Reset restores the built-in defaults.
func Reset() {
	globalConfig = defaultConfig()
}

// OverrideInstallConfig updates the install configuration with provided overrides.
// Empty values are ignored (not applied).
func OverrideInstallConfig(overrides InstallConfig) error {
	next := globalConfig.Install

	if overrides.TempRoot != "" {
		next.TempRoot = overrides.TempRoot
	}
	if overrides.BasePerms != "" {
		next.BasePerms = overrides.BasePerms
	}
	if overrides.LockTimeout != 0 {
		next.LockTimeout = overrides.LockTimeout
	}
	if overrides.ReportDir != "" {
		next.ReportDir = overrides.ReportDir
	}
	if len(overrides.ChmodTargets) > 0 {
		next.ChmodTargets = overrides.ChmodTargets
	}
	if len(overrides.PreservedTargets) > 0 {
		next.PreservedTargets = overrides.PreservedTargets
	}
	if len(overrides.ConfigTemplates) > 0 {
		next.ConfigTemplates = overrides.ConfigTemplates
	}

	if err := next.Validate(); err != nil {
		return err
	}

	globalConfig.Install = next
	return nil
}

func init() {
	// logging works with defaults before any config file is read
	_ = logx.Initialize(globalConfig.Log)
}
