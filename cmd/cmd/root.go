/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"gapscout/cmd/handlers"
	"gapscout/internal/config"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gapscout",
	Short: "Gapscout finds under-served YouTube keywords",
	Long: `Gapscout scores YouTube keywords by the gap between audience demand
and content supply. It combines autocomplete suggestions, search interest,
and video statistics into a single 0-10 Gap Score so creators can find
topics people search for but few channels cover well.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gapscout.yaml)")

	rootCmd.AddCommand(handlers.NewAnalyzeCmd())
	rootCmd.AddCommand(handlers.NewOpportunitiesCmd())
	rootCmd.AddCommand(handlers.NewCompareCmd())
	rootCmd.AddCommand(handlers.NewSuggestCmd())
	rootCmd.AddCommand(handlers.NewTrendCmd())
	rootCmd.AddCommand(handlers.NewCacheCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: failed to load configuration:", err)
	}
}
