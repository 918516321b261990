package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"equipment-tracker-backend/internal/client"
)

const (
	cfgKeyServer  = "server"
	cfgKeyTimeout = "timeout"
	cfgKeyJSON    = "json"

	defaultServer = "http://localhost:3001"
)

// app carries the state shared by every subcommand.
type app struct {
	v      *viper.Viper
	client *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var configFile string

	root := &cobra.Command{
		Use:           "equipmentctl",
		Short:         "equipmentctl manages equipment cleaning records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(configFile); err != nil {
				return err
			}
			a.client = client.New(a.v.GetString(cfgKeyServer), a.v.GetDuration(cfgKeyTimeout))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default: $HOME/.equipmentctl.yaml)")
	flags.String(cfgKeyServer, defaultServer, "base URL of the equipment service")
	flags.Duration(cfgKeyTimeout, 10*time.Second, "request timeout")
	flags.Bool(cfgKeyJSON, false, "output as JSON")
	_ = a.v.BindPFlag(cfgKeyServer, flags.Lookup(cfgKeyServer))
	_ = a.v.BindPFlag(cfgKeyTimeout, flags.Lookup(cfgKeyTimeout))
	_ = a.v.BindPFlag(cfgKeyJSON, flags.Lookup(cfgKeyJSON))

	root.AddCommand(
		newListCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// loadConfig layers flags over EQUIPMENTCTL_* environment variables over
// the optional config file.
func (a *app) loadConfig(configFile string) error {
	a.v.SetEnvPrefix("equipmentctl")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if configFile != "" {
		a.v.SetConfigFile(configFile)
	} else {
		a.v.SetConfigName(".equipmentctl")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath("$HOME")
		a.v.AddConfigPath(".")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}
