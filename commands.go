package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/icco/sunburst/lib/config"
	"github.com/icco/sunburst/lib/dataset"
	"github.com/icco/sunburst/lib/hierarchy"
	"github.com/icco/sunburst/lib/sunburst"
	"github.com/icco/sunburst/lib/validation"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(*c.configFlag)
		if path == "" {
			path = "sunburst.toml"
		}
		c.config, _, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := &commandContext{configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "sunburst",
		Short:         "Seasonal listening sunburst chart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default sunburst.toml)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newSeedCommand(ctx))
	rootCmd.AddCommand(newRenderCommand(ctx))
	rootCmd.AddCommand(newTreeCommand(ctx))
	rootCmd.AddCommand(newTotalsCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newSampleConfigCommand())

	return rootCmd
}

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Seed the database if needed and serve the chart over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := ctx.ensureConfig()
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			app, err := NewApp(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.Seed(cmd.Context(), false); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			return app.Serve(cmd.Context())
		},
	}
}

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the listening table into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := ctx.ensureConfig()
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			app, err := NewApp(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			seeded, err := app.Seed(cmd.Context(), replace)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if seeded {
				fmt.Fprintln(out, "Database seeded")
			} else {
				fmt.Fprintln(out, "Database already seeded; use --replace to overwrite")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Delete existing rows before seeding")
	return cmd
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var season string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the chart as an SVG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := ctx.ensureConfig()
			records, err := loadRecords(cfg)
			if err != nil {
				return err
			}
			if season != "" {
				s, err := validation.ValidateSeason(season)
				if err != nil {
					return err
				}
				records = filterSeason(records, s)
			}

			chart, err := sunburst.Render(hierarchy.Build(dataset.Name, records), cfg.ChartOptions())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			return chart.WriteSVG(w)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&season, "season", "", "Only chart one season")
	return cmd
}

func newTreeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the season/genre hierarchy as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := ctx.ensureConfig()
			records, err := loadRecords(cfg)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(hierarchy.Build(dataset.Name, records))
		},
	}
}

func newTotalsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Print plays per season",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := ctx.ensureConfig()
			records, err := loadRecords(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTotals(hierarchy.SeasonTotals(records)))
			return nil
		},
	}
}

func newSampleConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-config",
		Short: "Print a commented sample configuration",
		// Works without a readable config so a broken file can be fixed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), config.SampleConfig())
			return err
		},
	}
}

func filterSeason(records []dataset.Record, season dataset.Season) []dataset.Record {
	var out []dataset.Record
	for _, r := range records {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out
}
