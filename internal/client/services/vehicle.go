package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/client/models"
)

// VehicleService manages the user's registered EVs.
type VehicleService interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Add(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	Remove(ctx context.Context, id string) error
}

type vehicleService struct {
	api api.Client
}

func NewVehicleService(client api.Client) VehicleService {
	return &vehicleService{api: client}
}

func (s *vehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	vehicles, err := s.api.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *vehicleService) Add(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	if strings.TrimSpace(v.Plate) == "" {
		return nil, fmt.Errorf("vehicle plate is required")
	}
	added, err := s.api.AddVehicle(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("adding vehicle: %w", err)
	}
	return added, nil
}

func (s *vehicleService) Remove(ctx context.Context, id string) error {
	if err := s.api.RemoveVehicle(ctx, id); err != nil {
		return fmt.Errorf("removing vehicle: %w", err)
	}
	return nil
}
