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
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/google/pivotgrid/core/config"
)

const errorMessagePrefix = "error mapping environment variables to command flags"

// checkEnvironmentVariables sets every flag of command that was not given on
// the command line from PIVOTGRID_<COMMAND>_<FLAG>, with dashes in the flag
// name replaced by underscores. Flags of the root command use PIVOTGRID_<FLAG>.
func checkEnvironmentVariables(command *cobra.Command) error {
	var errs []string
	v := viper.New()
	v.AutomaticEnv()
	if command.HasParent() {
		v.SetEnvPrefix(fmt.Sprintf("%s_%s", config.EnvPrefix, command.Name()))
	} else {
		v.SetEnvPrefix(config.EnvPrefix)
	}
	command.Flags().VisitAll(func(f *pflag.Flag) {
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				errs = append(errs, err.Error())
			}
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return errors.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}
