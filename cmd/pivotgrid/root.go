/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/google/pivotgrid/core/config"
	"github.com/google/pivotgrid/core/logging"
)

// configFlags binds configuration keys to the command line flags that
// override them. Commands that lack a flag leave the key to the file,
// environment or default.
var configFlags = map[string]string{
	"log_level":                      "log-level",
	"pivot_mode":                     "pivot",
	"grid.enable_auto_column_sizing": "autosize",
	"grid.enable_row_virtualization": "virtualize",
	"grid.key_field":                 "key-field",
}

type rootOptions struct {
	configFile string
	cfg        config.Config
	logger     *logging.StandardLogger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "pivotgrid",
		Short:         "Render tabular data as a virtualized, optionally pivoted grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a YAML configuration file")
	root.PersistentFlags().String("log-level", "", "log level: error, warn, info or debug")

	root.AddCommand(newRenderCommand(opts))
	root.AddCommand(newPivotCommand(opts))
	root.AddCommand(newDatasetsCommand())
	return root
}

// init resolves the configuration for cmd: defaults, then the config file,
// then PIVOTGRID_ environment variables, then flags.
func (o *rootOptions) init(cmd *cobra.Command) error {
	if err := checkEnvironmentVariables(cmd); err != nil {
		return err
	}

	v := config.New()
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", o.configFile)
		}
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	o.cfg = cfg

	o.logger = logging.Get()
	o.logger.SetOutput(cmd.ErrOrStderr())
	o.logger.SetLevel(cfg.Level())
	o.logger.WithFields(map[string]any{"command": cmd.Name()}).Debug("Loaded configuration %+v", cfg)
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, name := range configFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "binding --%s", name)
		}
	}
	return nil
}
