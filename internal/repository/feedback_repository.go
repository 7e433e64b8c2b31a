package repository

import (
	"context"
	"fmt"

	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

// FeedbackRepository handles user feedback database operations.
type FeedbackRepository struct {
	db database.PGXDB
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(db database.PGXDB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create stores one feedback submission.
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO feedback (user_id, rating, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, fb.UserID, fb.Rating, fb.Message).Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}
