package interactor

import (
	"context"

	"gitlab.com/walletfy/walletfy-backend/internal/models"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// Feedback records product feedback from authenticated users.
type Feedback struct {
	users    *repository.UserRepository
	feedback *repository.FeedbackRepository
}

// NewFeedback creates the feedback interactor.
func NewFeedback(users *repository.UserRepository, feedback *repository.FeedbackRepository) *Feedback {
	return &Feedback{users: users, feedback: feedback}
}

// Submit stores one feedback entry. Rating must be between 1 and 5.
func (f *Feedback) Submit(ctx context.Context, userID string, rating int, message string) (*models.Feedback, error) {
	if _, err := f.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, models.ErrInvalidRating
	}

	fb := &models.Feedback{
		UserID:  userID,
		Rating:  rating,
		Message: message,
	}
	if err := f.feedback.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}
