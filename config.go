package main

import (
	"fmt"
	"time"

	"github.com/gookit/validate"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultNightscout = "http://127.0.0.1:1337"

type Config struct {
	Nightscout string        `mapstructure:"nightscout" validate:"required|fullUrl"`
	Token      string        `mapstructure:"token"`
	From       string        `mapstructure:"from"`
	Count      string        `mapstructure:"count"`
	MinuteMode string        `mapstructure:"minute-mode" validate:"required|in:legacy,fixed,strict"`
	Select     bool          `mapstructure:"select"`
	Timeout    time.Duration `mapstructure:"timeout"`
	LogLevel   string        `mapstructure:"log-level" validate:"required|in:trace,debug,info,warn,error"`
}

func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("nightscout", defaultNightscout, "Nightscout URL")
	fs.String("token", "", "Authentication token")
	fs.String("from", "", "Starting date to look for profile change events")
	fs.String("count", "", "Number of profiles to display")
	fs.String("minute-mode", string(MinuteLegacy), "How minutes are derived from timeAsSeconds: legacy, fixed or strict")
	fs.Bool("select", false, "Choose one profile switch from a menu")
	fs.Duration("timeout", 0, "HTTP timeout, 0 waits forever")
	fs.String("log-level", "info", "Log level: trace, debug, info, warn or error")
}

// NewConfig reads the parsed flag set into a validated Config.
func NewConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("unable to bind flags: %w", err)
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *Config) Validate() error {
	v := validate.Struct(c)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %w", v.Errors)
	}
	return nil
}
