// Package rules imports recommendation rules from CSV files.
package rules

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gitlab.com/walletfy/walletfy-backend/internal/logger"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// columnsPerRow is the expected CSV layout: location, preference, gender,
// then the eight category percentages in canonical order.
const columnsPerRow = 11

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// ImportCSV reads recommendation rules from r and upserts them. The first
// row is treated as a header and skipped. Malformed rows are logged and
// skipped rather than aborting the run, so a partially dirty sheet still
// loads its good rows.
func ImportCSV(ctx context.Context, repo *repository.RecommendationRepository, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return &Result{}, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	result := &Result{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Log.Warn().Err(err).Int("line", line).Msg("skipping unreadable CSV row")
			result.Skipped++
			continue
		}

		rule, err := parseRow(row)
		if err != nil {
			logger.Log.Warn().Err(err).Int("line", line).Msg("skipping invalid CSV row")
			result.Skipped++
			continue
		}

		if err := repo.Upsert(ctx, rule); err != nil {
			return result, fmt.Errorf("failed to store rule from line %d: %w", line, err)
		}
		result.Imported++
	}

	logger.Log.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("recommendation rules imported")
	return result, nil
}

func parseRow(row []string) (*models.RecommendationRule, error) {
	if len(row) < columnsPerRow {
		return nil, fmt.Errorf("expected %d columns, got %d", columnsPerRow, len(row))
	}

	location := row[0]
	if location == "" {
		return nil, fmt.Errorf("location is empty")
	}
	preference, err := models.ParsePreference(row[1])
	if err != nil {
		return nil, err
	}
	gender, err := models.ParseGender(row[2])
	if err != nil {
		return nil, err
	}

	pcts := make([]float64, 0, len(models.Categories))
	for i, field := range row[3:columnsPerRow] {
		pct, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+4, err)
		}
		if pct < 0 || pct > 100 {
			return nil, fmt.Errorf("column %d: percentage %v out of range", i+4, pct)
		}
		pcts = append(pcts, pct)
	}

	return &models.RecommendationRule{
		Location:      location,
		Preference:    preference,
		Gender:        gender,
		Rent:          pcts[0],
		Food:          pcts[1],
		Shopping:      pcts[2],
		Travelling:    pcts[3],
		Health:        pcts[4],
		Entertainment: pcts[5],
		Savings:       pcts[6],
		Miscellaneous: pcts[7],
	}, nil
}
