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

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rewind/internal/library"
	"rewind/internal/snapshot"
)

var minPlaycount int

var extractCmd = &cobra.Command{
	Use:   "extract [year]",
	Short: "Extracts play counts from the player's song database",
	Long: `Writes a snapshot of the tracks last played during the target year to
<output>/<year>/playcounts.json. The player's database is never modified.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		year, err := parseYearFromArgs(args)
		if err == nil {
			err = runExtract(year)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntVarP(&minPlaycount, "min-playcount", "m", 1, "Only include tracks with at least this many plays")
}

func runExtract(year int) error {
	dbPath := viper.GetString("database")
	if dbPath == "" {
		var err error
		dbPath, err = library.DefaultPath()
		if err != nil {
			return fmt.Errorf("locating song database: %w", err)
		}
	}

	fmt.Fprintln(os.Stderr, "Reading song database at:", dbPath)
	lib, err := library.Open(dbPath)
	if err != nil {
		return err
	}
	defer lib.Close()

	total, err := lib.CountPlayedDuring(year)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(fmt.Sprintf("Scanning songs from %d...", year)),
	)

	tracks, skipped, err := lib.PlayedDuring(year, minPlaycount, func() { bar.Add(1) })
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr)
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d songs due to malformed metadata\n", skipped)
	}

	out := snapshot.Path(viper.GetString("output"), year)
	if err := snapshot.Write(out, tracks); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved %d tracks to %s\n", len(tracks), out)
	return nil
}
