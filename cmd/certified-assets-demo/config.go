package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config is the demo command's runtime configuration: flags and
// CERTIFIED_ASSETS_* environment variables layered by viper over pflag
// defaults, the way sagarc03-stowry's cmd/ layer merges both sources.
type config struct {
	Bind       string
	AuditDB    string
	ConfigFile string
}

func loadConfig(args []string) (config, error) {
	fs := pflag.NewFlagSet("certified-assets-demo", pflag.ContinueOnError)
	fs.String("bind", ":8088", "listen address")
	fs.String("audit-db", "certified-assets-audit.db", "sqlite path for the operations audit log")
	fs.String("config", "", "optional config file (yaml/json/toml)")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("CERTIFIED_ASSETS")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return config{}, fmt.Errorf("bind flags: %w", err)
	}

	if cf, _ := fs.GetString("config"); cf != "" {
		v.SetConfigFile(cf)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return config{
		Bind:       v.GetString("bind"),
		AuditDB:    v.GetString("audit-db"),
		ConfigFile: v.GetString("config"),
	}, nil
}
