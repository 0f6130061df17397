// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sdodlapa/OmicsOracle-sub017/internal/history"
	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches",
	Long:  `History lists recently executed searches, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		viper.SetDefault("history.dir", "history")
		store, err := history.NewStore(types.HistoryConfig{Dir: viper.GetString("history.dir")})
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		entries, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No search history.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-20s  %-12s  %-7s  %-6s  %s\n",
			"When", "Type", "Results", "Cache", "Query")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
		for _, e := range entries {
			cacheMark := ""
			if e.CacheHit {
				cacheMark = "hit"
			}
			fmt.Fprintf(os.Stdout, "%-20s  %-12s  %-7d  %-6s  %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.SearchType, e.TotalResults, cacheMark, e.Query)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to list")

	rootCmd.AddCommand(historyCmd)
}
