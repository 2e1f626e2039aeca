// Package plays persists the seasonal listening table.
package plays

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icco/sunburst/lib/dataset"
	"github.com/icco/sunburst/lib/hierarchy"
	"github.com/icco/sunburst/lib/types"
	"github.com/icco/sunburst/models"
	"gorm.io/gorm"
)

type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// Seed inserts records when the table is empty. It reports whether rows
// were written; a populated table is left untouched.
func (s *Store) Seed(ctx context.Context, records []dataset.Record) (bool, error) {
	seeded := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PlayCount{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count play counts: %w", err)
		}
		if count > 0 {
			s.logger.DebugContext(ctx, "Play counts already seeded", slog.Int64("rows", count))
			return nil
		}
		if err := insert(tx, records); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		s.logger.InfoContext(ctx, "Seeded play counts", slog.Int("rows", len(records)))
	}
	return seeded, nil
}

// Replace swaps every row for records in one transaction. If the insert
// fails the previous rows are kept.
func (s *Store) Replace(ctx context.Context, records []dataset.Record) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&models.PlayCount{}).Error; err != nil {
			return fmt.Errorf("failed to clear play counts: %w", err)
		}
		return insert(tx, records)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Replaced play counts", slog.Int("rows", len(records)))
	return nil
}

func insert(tx *gorm.DB, records []dataset.Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]models.PlayCount, len(records))
	for i, r := range records {
		rows[i] = models.PlayCount{
			Position: i,
			Season:   string(r.Season),
			Genre:    r.Genre,
			Count:    r.Count,
		}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert play counts: %w", err)
	}
	return nil
}

// Records returns every stored record in import order.
func (s *Store) Records(ctx context.Context) ([]dataset.Record, error) {
	var rows []models.PlayCount
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load play counts: %w", err)
	}

	records := make([]dataset.Record, len(rows))
	for i, row := range rows {
		records[i] = dataset.Record{
			Season: dataset.Season(row.Season),
			Genre:  row.Genre,
			Count:  row.Count,
		}
	}
	return records, nil
}

// SeasonRecords returns the stored records of one season in import order.
func (s *Store) SeasonRecords(ctx context.Context, season dataset.Season) ([]dataset.Record, error) {
	var rows []models.PlayCount
	if err := s.db.WithContext(ctx).
		Where("season = ?", string(season)).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s play counts: %w", season, err)
	}

	records := make([]dataset.Record, len(rows))
	for i, row := range rows {
		records[i] = dataset.Record{Season: season, Genre: row.Genre, Count: row.Count}
	}
	return records, nil
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PlayCount{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count play counts: %w", err)
	}
	return count, nil
}

// Stats summarizes the stored table.
func (s *Store) Stats(ctx context.Context) (*types.StatsData, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(records), nil
}

// Summarize computes totals for records.
func Summarize(records []dataset.Record) *types.StatsData {
	stats := &types.StatsData{
		TotalRecords: int64(len(records)),
		Seasons:      hierarchy.SeasonTotals(records),
		Genres:       hierarchy.GenreTotals(records),
	}
	for _, r := range records {
		stats.TotalPlays += r.Count
	}
	for i := range stats.Genres {
		if stats.TopGenre == nil || stats.Genres[i].Plays > stats.TopGenre.Plays {
			top := stats.Genres[i]
			stats.TopGenre = &top
		}
	}
	return stats
}
