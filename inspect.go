package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/icco/sunburst/lib/dataset"
	"github.com/icco/sunburst/lib/hierarchy"
	"github.com/icco/sunburst/models"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Check the database contents",
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

			report, err := app.inspect(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

// inspect summarizes what the database holds and flags rows that would
// draw badly.
func (a *App) inspect(cmd *cobra.Command) (string, error) {
	ctx := cmd.Context()

	count, err := a.store.Count(ctx)
	if err != nil {
		return "", err
	}
	a.logger.Info("Play counts in database", slog.Int64("count", count))
	if count == 0 {
		return "No play counts found. Run `sunburst seed` to load the listening table.", nil
	}

	records, err := a.store.Records(ctx)
	if err != nil {
		return "", err
	}

	var zero int64
	if err := a.db.WithContext(ctx).Model(&models.PlayCount{}).
		Where("count = 0").
		Count(&zero).Error; err != nil {
		return "", fmt.Errorf("failed to count empty rows: %w", err)
	}
	if zero > 0 {
		a.logger.Warn("Rows with zero plays draw as empty wedges", slog.Int64("count", zero))
	}

	known := make([]string, len(dataset.Seasons))
	for i, s := range dataset.Seasons {
		known[i] = string(s)
	}
	var unknown int64
	if err := a.db.WithContext(ctx).Model(&models.PlayCount{}).
		Where("season NOT IN ?", known).
		Count(&unknown).Error; err != nil {
		return "", fmt.Errorf("failed to count unknown seasons: %w", err)
	}
	if unknown > 0 {
		a.logger.Warn("Rows with unknown seasons", slog.Int64("count", unknown))
	}

	report := renderTotals(hierarchy.SeasonTotals(records))
	return fmt.Sprintf("%d rows (%d with zero plays, %d with unknown seasons)\n%s", count, zero, unknown, report), nil
}
