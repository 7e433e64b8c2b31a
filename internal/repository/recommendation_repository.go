package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

// RecommendationRepository handles the static recommendation rule table.
type RecommendationRepository struct {
	db database.PGXDB
}

// NewRecommendationRepository creates a new RecommendationRepository.
func NewRecommendationRepository(db database.PGXDB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Get looks up the rule for an exact (location, gender, preference) key.
// Returns models.ErrRuleNotFound when no rule matches.
func (r *RecommendationRepository) Get(ctx context.Context, location string, gender models.Gender, preference models.Preference) (*models.RecommendationRule, error) {
	var rule models.RecommendationRule
	err := r.db.QueryRow(ctx, `
		SELECT id, location, gender, preference,
		       rent_pct, food_pct, shopping_pct, travelling_pct,
		       health_pct, entertainment_pct, savings_pct, miscellaneous_pct
		FROM recommendation_rules
		WHERE location = $1 AND gender = $2 AND preference = $3
	`, location, gender, preference).Scan(
		&rule.ID, &rule.Location, &rule.Gender, &rule.Preference,
		&rule.Rent, &rule.Food, &rule.Shopping, &rule.Travelling,
		&rule.Health, &rule.Entertainment, &rule.Savings, &rule.Miscellaneous,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation rule: %w", err)
	}
	return &rule, nil
}

// Upsert inserts a rule or refreshes its percentages when the
// (location, gender, preference) key already exists. Used by bulk import.
func (r *RecommendationRepository) Upsert(ctx context.Context, rule *models.RecommendationRule) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO recommendation_rules
			(location, gender, preference, rent_pct, food_pct, shopping_pct,
			 travelling_pct, health_pct, entertainment_pct, savings_pct, miscellaneous_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (location, gender, preference) DO UPDATE SET
			rent_pct = EXCLUDED.rent_pct,
			food_pct = EXCLUDED.food_pct,
			shopping_pct = EXCLUDED.shopping_pct,
			travelling_pct = EXCLUDED.travelling_pct,
			health_pct = EXCLUDED.health_pct,
			entertainment_pct = EXCLUDED.entertainment_pct,
			savings_pct = EXCLUDED.savings_pct,
			miscellaneous_pct = EXCLUDED.miscellaneous_pct
		RETURNING id
	`, rule.Location, rule.Gender, rule.Preference,
		rule.Rent, rule.Food, rule.Shopping, rule.Travelling,
		rule.Health, rule.Entertainment, rule.Savings, rule.Miscellaneous,
	).Scan(&rule.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert recommendation rule: %w", err)
	}
	return nil
}
