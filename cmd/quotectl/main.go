// quotectl is a diagnostic CLI for the quote pipeline: it fetches a single
// ticker through the same provider, rate-limit and cache stack the server
// uses, and prints the enriched record to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"founderfolio/internal/catalog"
	"founderfolio/internal/config"
	"founderfolio/internal/logging"
	"founderfolio/internal/quote/source"
	"founderfolio/internal/stocks"
)

func main() {
	var (
		configPath string
		quoteSrc   string
		apiKey     string
	)

	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Inspect the founderfolio quote pipeline from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	root.PersistentFlags().StringVar(&quoteSrc, "source", "", "quote source override (alphavantage-quote|alphavantage-daily|yahoo)")
	root.PersistentFlags().StringVar(&apiKey, "api-key", "", "provider api key override")

	loadConfig := func() (config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		if quoteSrc != "" {
			cfg.Provider.Source = quoteSrc
		}
		if apiKey != "" {
			cfg.Provider.APIKey = apiKey
		}
		return cfg, nil
	}

	fetchCmd := &cobra.Command{
		Use:   "fetch TICKER",
		Short: "Fetch one ticker and print its enriched record and signal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logging.New(cfg.Log.Level, "console")

			f, err := source.Build(cfg, log)
			if err != nil {
				return err
			}
			svc := stocks.NewService(catalog.Default(), f, log)

			rec, err := svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("lookup %s: %w", args[0], err)
			}
			return printJSON(map[string]any{
				"record":         rec,
				"recommendation": stocks.Recommend(rec.CurrentPrice, rec.MovingAvg200Day),
			})
		},
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the static founder-led catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(catalog.Default().All())
		},
	}

	root.AddCommand(fetchCmd, catalogCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
