package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
)

const publishTimeout = 5 * time.Second

// FeedbackCreatedEvent is published after a visitor leaves feedback.
type FeedbackCreatedEvent struct {
	Type       string    `json:"type"`
	FeedbackID uint      `json:"feedback_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type FeedbackService struct {
	repo      *repository.CRUDRepository[models.Feedback]
	publisher Publisher
	queue     string
}

// NewFeedbackService wires feedback storage. publisher may be nil, in which
// case no notification is sent.
func NewFeedbackService(db *gorm.DB, publisher Publisher, queue string) *FeedbackService {
	return &FeedbackService{
		repo:      repository.NewCRUDRepository[models.Feedback](db, repository.FeedbackEntity),
		publisher: publisher,
		queue:     queue,
	}
}

func (s *FeedbackService) Repository() *repository.CRUDRepository[models.Feedback] {
	return s.repo
}

// Submit stores the feedback and notifies the staff queue. A failed
// notification is logged and does not fail the submission.
func (s *FeedbackService) Submit(ctx context.Context, req models.FeedbackCreateRequest) (*models.Feedback, error) {
	fb, err := req.ToModel()
	if err != nil {
		return nil, err
	}
	fb, err = s.repo.Create(ctx, fb)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		event := FeedbackCreatedEvent{
			Type:       "feedback.created",
			FeedbackID: fb.ID,
			Name:       fb.Name,
			Email:      fb.Email,
			Message:    fb.Message,
			CreatedAt:  fb.CreatedAt,
		}
		if err := s.publisher.PublishJSON(pubCtx, s.queue, event); err != nil {
			logrus.WithError(err).WithField("feedback_id", fb.ID).Warn("Failed to publish feedback notification")
		}
	}
	return fb, nil
}
