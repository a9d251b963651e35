/*
Copyright 2020 Google LLC

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

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string
var databasePath string
var outputDir string
var topLimit int

// rootCmd runs the whole pipeline: extract, then stats, then playlist.
// Each stage is also exposed as its own subcommand so a run can be
// restarted from an intermediate artifact.
var rootCmd = &cobra.Command{
	Use:   "rewind [year]",
	Short: "Builds a year-in-review for a local music library",
	Long: `Reads the music player's play-history database and writes a play-count
snapshot, summary statistics, and a playlist of the year's top songs
under the output directory. With no arguments, runs for the current year.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPipeline(args); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.rewind.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "", "Path to the player's song database (auto-detected if empty)")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVarP(
		&outputDir, "output", "o", "playcounts", "Directory holding the per-year artifacts")
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	rootCmd.PersistentFlags().IntVarP(
		&topLimit, "limit", "n", 100, "Number of tracks in the top lists and playlist")
	viper.BindPFlag("limit", rootCmd.PersistentFlags().Lookup("limit"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".rewind" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".rewind")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// runPipeline sequences the three stages, stopping at the first failure.
// The failing stage's name prefixes the error so the user knows where the
// run died.
func runPipeline(args []string) error {
	year, err := parseYearFromArgs(args)
	if err != nil {
		return err
	}

	if err := runExtract(year); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	if err := runStats(os.Stdout, year); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	if err := runPlaylist(year); err != nil {
		return fmt.Errorf("playlist: %w", err)
	}
	return nil
}
