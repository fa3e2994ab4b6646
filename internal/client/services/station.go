package services

import (
	"context"
	"fmt"

	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/client/models"
)

// StationService browses charging stations.
type StationService interface {
	Nearby(ctx context.Context, lat, lng, radiusKM float64) ([]models.Station, error)
	Get(ctx context.Context, id string) (*models.Station, error)
}

type stationService struct {
	api api.Client
}

func NewStationService(client api.Client) StationService {
	return &stationService{api: client}
}

func (s *stationService) Nearby(ctx context.Context, lat, lng, radiusKM float64) ([]models.Station, error) {
	stations, err := s.api.ListStations(ctx, lat, lng, radiusKM)
	if err != nil {
		return nil, fmt.Errorf("listing stations: %w", err)
	}
	return stations, nil
}

func (s *stationService) Get(ctx context.Context, id string) (*models.Station, error) {
	station, err := s.api.GetStation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading station: %w", err)
	}
	return station, nil
}
