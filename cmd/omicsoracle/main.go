// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the omicsoracle CLI: federated
// search over the GEO dataset registry and bibliographic sources.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sdodlapa/OmicsOracle-sub017/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the omicsoracle CLI.
var rootCmd = &cobra.Command{
	Use:   "omicsoracle",
	Short: "Federated search over biomedical datasets and literature",
	Long: `omicsoracle answers a single natural-language question by querying the NCBI
GEO dataset registry and bibliographic sources (Europe PMC, Semantic Scholar)
concurrently, then merging everything into one ranked, deduplicated result.

Accession queries like "GSE12345" resolve directly; free-text queries are
classified and dispatched to the dataset registry, the literature sources, or
both. Results are cached locally so repeated questions answer instantly.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./omicsoracle.yaml or ~/.config/omicsoracle/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("omicsoracle")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "omicsoracle"))
		}
	}

	viper.SetEnvPrefix("OMICSORACLE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
