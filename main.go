package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/hitview/internal/cli"
	"github.com/yumyai/hitview/internal/config"
	"github.com/yumyai/hitview/logger"
	"github.com/yumyai/hitview/pkg/model"
	"github.com/yumyai/hitview/pkg/pipeline"
)

const VERSION = "0.1.0"

func main() {

	// Establish logger before config so config warnings are visible.
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		panic(err)
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	// Try load env
	config.LoadDotenv()

	rootCmd := &cobra.Command{
		Use:           "hitview",
		Short:         "Store analyses and select, sort and search their hits",
		Version:       VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(queryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}

// openApp loads configuration, applies the configured log level and opens
// the storage and pipeline stack.
func openApp() (*cli.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.InitLogger(cfg.LogLevel); err != nil {
		return nil, err
	}

	return cli.Open(cfg)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			logger.Info("Start:", zap.String("Version", VERSION))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return cli.Serve(ctx, app)
		},
	}
}

func importCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store an analysis document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			stored, err := cli.Import(cmd.Context(), app, args[0], id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), stored)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Store under this id instead of the document's")

	return cmd
}

func queryCmd() *cobra.Command {
	var (
		sortKey         string
		filterOTUs      bool
		filterSequences bool
		find            string
		searchIDs       []string
		active          string
		asJSON          bool
	)

	cmd := &cobra.Command{
		Use:   "query <analysis_id>",
		Short: "Print the selected hits of a stored analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			q := pipeline.Query{
				Toggles: pipeline.Toggles{
					FilterOTUs:      filterOTUs,
					FilterSequences: filterSequences,
				},
				SortKey:  model.ParseSortKey(sortKey),
				Find:     find,
				ActiveID: model.ID(active),
			}
			// An explicit empty --search-ids matches nothing; leaving it out
			// means no search constraint.
			if cmd.Flags().Changed("search-ids") {
				q.SearchIDs = append([]string{}, searchIDs...)
			}

			return cli.Query(cmd.Context(), app, cmd.OutOrStdout(), args[0], q, asJSON)
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key: e, orfs, length, depth, coverage or weight")
	cmd.Flags().BoolVar(&filterOTUs, "filter-otus", false, "Hide OTUs below the Pathoscope read threshold")
	cmd.Flags().BoolVar(&filterSequences, "filter-sequences", false, "Hide NuVs sequences without an e-value")
	cmd.Flags().StringVar(&find, "find", "", "Fuzzy search text")
	cmd.Flags().StringSliceVar(&searchIDs, "search-ids", nil, "Restrict to these hit ids")
	cmd.Flags().StringVar(&active, "active", "", "Active hit id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view as JSON")

	return cmd
}
