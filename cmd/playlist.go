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
	"github.com/spf13/viper"

	"rewind/internal/playlist"
	"rewind/internal/snapshot"
	"rewind/internal/stats"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist [year]",
	Short: "Writes the year's top songs as an extended M3U playlist",
	Long: `Reads <output>/<year>/playcounts.json and writes the top tracks, ordered by
play count, to "<output>/<year>/Your Top Songs <year>.m3u". The ordering is
the same as in stats.json.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		year, err := parseYearFromArgs(args)
		if err == nil {
			err = runPlaylist(year)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playlistCmd)
}

func runPlaylist(year int) error {
	root := viper.GetString("output")

	tracks, err := snapshot.Read(snapshot.Path(root, year))
	if err != nil {
		return err
	}

	top := stats.TopTracks(tracks, viper.GetInt("limit"))

	outPath := snapshot.PlaylistPath(root, year)
	if err := playlist.WriteM3U(outPath, top); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d tracks to %s\n", len(top), outPath)
	return nil
}
