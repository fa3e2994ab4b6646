package services

import (
	"context"
	"fmt"

	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/client/models"
)

// PlanService lists subscription tiers and subscribes the account to one.
type PlanService interface {
	List(ctx context.Context) ([]models.Plan, error)
	Subscribe(ctx context.Context, planID string) error
}

type planService struct {
	api api.Client
}

func NewPlanService(client api.Client) PlanService {
	return &planService{api: client}
}

func (s *planService) List(ctx context.Context) ([]models.Plan, error) {
	plans, err := s.api.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	return plans, nil
}

func (s *planService) Subscribe(ctx context.Context, planID string) error {
	if err := s.api.Subscribe(ctx, planID); err != nil {
		return fmt.Errorf("subscribing to plan: %w", err)
	}
	return nil
}
