package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"qrmenu/internal/domain"
	"qrmenu/internal/models"
	"qrmenu/pkg/genai"
)

type FeedbackStore interface {
	Create(*models.Feedback) error
	GetByID(id uint) (*models.Feedback, error)
	GetByOrderID(orderID string) (*models.Feedback, error)
	List(orderID string) ([]models.Feedback, error)
	Save(*models.Feedback) error
}

// FeedbackService records customer ratings and drafts remedies for the
// owner using the configured completion model.
type FeedbackService struct {
	store FeedbackStore
	ai    genai.Client
}

func NewFeedbackService(store FeedbackStore, ai genai.Client) *FeedbackService {
	return &FeedbackService{store: store, ai: ai}
}

type FeedbackInput struct {
	OrderID       string
	PhoneNumber   string
	ServiceRating int
	FoodRating    int
	PriceRating   int
	TimeRating    int
	Comment       string
}

func (in FeedbackInput) validate() error {
	if in.OrderID == "" || in.PhoneNumber == "" {
		return fmt.Errorf("%w: order id and phone number are required", domain.ErrValidation)
	}
	for _, r := range []int{in.ServiceRating, in.FoodRating, in.PriceRating, in.TimeRating} {
		if r < 1 || r > 5 {
			return fmt.Errorf("%w: ratings must be between 1 and 5", domain.ErrValidation)
		}
	}
	return nil
}

// Submit records feedback for an order. One submission per order.
func (s *FeedbackService) Submit(in FeedbackInput) (*models.Feedback, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetByOrderID(in.OrderID); err == nil {
		return nil, fmt.Errorf("feedback for order %s already exists: %w", in.OrderID, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing feedback: %w", err)
	}
	f := &models.Feedback{
		OrderID:       in.OrderID,
		PhoneNumber:   in.PhoneNumber,
		ServiceRating: in.ServiceRating,
		FoodRating:    in.FoodRating,
		PriceRating:   in.PriceRating,
		TimeRating:    in.TimeRating,
		Comment:       in.Comment,
		Status:        domain.FeedbackNew,
	}
	if err := s.store.Create(f); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return f, nil
}

func (s *FeedbackService) List(orderID string) ([]models.Feedback, error) {
	return s.store.List(orderID)
}

type FeedbackUpdate struct {
	Remedy *string
	Status *string
}

// Update sets the owner's remedy text and/or the review status.
func (s *FeedbackService) Update(id uint, upd FeedbackUpdate) (*models.Feedback, error) {
	if upd.Remedy == nil && upd.Status == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	if upd.Status != nil {
		switch *upd.Status {
		case domain.FeedbackNew, domain.FeedbackReviewed, domain.FeedbackResolved:
		default:
			return nil, fmt.Errorf("%w: unknown feedback status %q", domain.ErrValidation, *upd.Status)
		}
	}
	f, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if upd.Remedy != nil {
		f.Remedy = *upd.Remedy
	}
	if upd.Status != nil {
		f.Status = *upd.Status
	}
	if err := s.store.Save(f); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	return f, nil
}

// GenerateRemedy asks the completion model for a short apology and
// make-good suggestion, stores it on the feedback row, and marks it
// Reviewed.
func (s *FeedbackService) GenerateRemedy(ctx context.Context, id uint) (*models.Feedback, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("%w: completion model is not configured", domain.ErrUpstream)
	}
	f, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	text, err := s.ai.Complete(ctx, remedyPrompt(f))
	if err != nil {
		return nil, fmt.Errorf("%w: generate remedy: %v", domain.ErrUpstream, err)
	}
	f.Remedy = strings.TrimSpace(text)
	f.Status = domain.FeedbackReviewed
	if err := s.store.Save(f); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	return f, nil
}

func remedyPrompt(f *models.Feedback) string {
	var b strings.Builder
	b.WriteString("You are the manager of a restaurant responding to customer feedback.\n")
	b.WriteString("Write a short, sincere response (2-3 sentences) that acknowledges the\n")
	b.WriteString("customer's experience and offers a concrete remedy such as a discount\n")
	b.WriteString("on their next visit. Keep it under 150 words and do not use\n")
	b.WriteString("placeholders.\n\n")
	fmt.Fprintf(&b, "Service rating: %d/5\n", f.ServiceRating)
	fmt.Fprintf(&b, "Food rating: %d/5\n", f.FoodRating)
	fmt.Fprintf(&b, "Price rating: %d/5\n", f.PriceRating)
	fmt.Fprintf(&b, "Time rating: %d/5\n", f.TimeRating)
	if f.Comment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", f.Comment)
	}
	return b.String()
}
