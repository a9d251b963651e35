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
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rewind/internal/snapshot"
	"rewind/internal/stats"
)

var previousPath string

var statsCmd = &cobra.Command{
	Use:   "stats [year]",
	Short: "Computes summary statistics from the year's snapshot",
	Long: `Reads <output>/<year>/playcounts.json, computes totals and top lists, and
writes <output>/<year>/stats.json. When the previous year's artifacts are
present, year-over-year deltas are included; otherwise they are omitted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		year, err := parseYearFromArgs(args)
		if err == nil {
			err = runStats(os.Stdout, year)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&previousPath, "previous", "p", "", "Explicit path to the previous year's stats.json")
}

func runStats(out io.Writer, year int) error {
	root := viper.GetString("output")

	tracks, err := snapshot.Read(snapshot.Path(root, year))
	if err != nil {
		return err
	}

	prev, prevSource := loadPreviousTotals(root, year)
	if prevSource != "" {
		fmt.Fprintln(os.Stderr, "Using previous year data:", prevSource)
	} else {
		fmt.Fprintln(os.Stderr, "No previous year data found; deltas omitted")
	}

	result := stats.Compute(year, tracks, viper.GetInt("limit"), prev)

	outPath := snapshot.StatsPath(root, year)
	if err := stats.Write(outPath, result); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Saved:", outPath)

	printStatsSummary(out, result)
	return nil
}

// loadPreviousTotals finds the previous year's totals for delta
// computation: the explicit --previous path if given, then the previous
// year's stats document, then its snapshot. Missing previous-year data is
// not an error; it just means a first run.
func loadPreviousTotals(root string, year int) (*stats.Totals, string) {
	if previousPath != "" {
		t, err := stats.ReadTotals(previousPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: previous stats not usable: %v -- continuing without deltas\n", err)
			return nil, ""
		}
		return &t, previousPath
	}

	statsPath := snapshot.StatsPath(root, year-1)
	if t, err := stats.ReadTotals(statsPath); err == nil {
		return &t, statsPath
	}

	snapPath := snapshot.Path(root, year-1)
	if tracks, err := snapshot.Read(snapPath); err == nil {
		t := stats.TotalsOf(tracks)
		return &t, snapPath
	}

	return nil, ""
}

// summaryRows is how many top entries the on-screen tables show; the full
// lists live in stats.json.
const summaryRows = 10

func printStatsSummary(out io.Writer, s stats.Stats) {
	fmt.Fprintf(out, "Year in review: %d\n", s.Year)
	fmt.Fprintf(out, "Total plays: %d\n", s.TotalPlays)
	fmt.Fprintf(out, "Unique tracks: %d\n", s.TotalTracks)
	fmt.Fprintf(out, "Unique artists: %d\n", s.TotalArtists)
	if s.Deltas != nil {
		fmt.Fprintf(out, "Versus %d: %+d plays, %+d tracks, %+d artists\n",
			s.Year-1, s.Deltas.TotalPlays, s.Deltas.TotalTracks, s.Deltas.TotalArtists)
	}
	fmt.Fprintln(out)

	if len(s.TopArtists) > 0 {
		fmt.Fprintf(out, "## Top Artists\n")
		table := tablewriter.NewWriter(out)
		table.Header([]string{"#", "Artist", "Plays", "Tracks"})
		for i, a := range s.TopArtists {
			if i >= summaryRows {
				break
			}
			table.Append([]string{
				strconv.Itoa(i + 1), a.Artist,
				strconv.FormatInt(a.Plays, 10), strconv.Itoa(a.Tracks),
			})
		}
		table.Render()
		fmt.Fprintln(out)
	}

	if len(s.TopTracks) > 0 {
		fmt.Fprintf(out, "## Top Tracks\n")
		table := tablewriter.NewWriter(out)
		table.Header([]string{"#", "Track", "Artist", "Plays"})
		for i, t := range s.TopTracks {
			if i >= summaryRows {
				break
			}
			table.Append([]string{
				strconv.Itoa(i + 1), t.Title, t.Artist,
				strconv.FormatInt(t.Plays, 10),
			})
		}
		table.Render()
	}
}
