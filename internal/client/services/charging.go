package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/client/models"
	"github.com/voltmate/voltmate/internal/common"
)

// ChargingService starts and stops charging runs and follows their progress.
type ChargingService interface {
	Start(ctx context.Context, connectorID, vehicleID string) (*models.ChargingSession, error)
	Stop(ctx context.Context, sessionID string) (*models.ChargingSession, error)
	Status(ctx context.Context, sessionID string) (*models.ChargingSession, error)
	// Watch polls the session at the given interval, reporting each snapshot
	// to onUpdate, until the session leaves the active state or ctx is done.
	// It returns the last snapshot seen.
	Watch(ctx context.Context, sessionID string, interval time.Duration, onUpdate func(*models.ChargingSession)) (*models.ChargingSession, error)
}

type chargingService struct {
	api api.Client
}

func NewChargingService(client api.Client) ChargingService {
	return &chargingService{api: client}
}

func (s *chargingService) Start(ctx context.Context, connectorID, vehicleID string) (*models.ChargingSession, error) {
	sess, err := s.api.StartCharging(ctx, connectorID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("starting charge: %w", err)
	}
	return sess, nil
}

func (s *chargingService) Stop(ctx context.Context, sessionID string) (*models.ChargingSession, error) {
	sess, err := s.api.StopCharging(ctx, sessionID)
	if err != nil {
		// The backend reports an unknown or already-finished session as 404.
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoActiveCharge
		}
		return nil, fmt.Errorf("stopping charge: %w", err)
	}
	return sess, nil
}

func (s *chargingService) Status(ctx context.Context, sessionID string) (*models.ChargingSession, error) {
	sess, err := s.api.GetChargingSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading charging session: %w", err)
	}
	return sess, nil
}

func (s *chargingService) Watch(ctx context.Context, sessionID string, interval time.Duration, onUpdate func(*models.ChargingSession)) (*models.ChargingSession, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last *models.ChargingSession
	for {
		sess, err := s.api.GetChargingSession(ctx, sessionID)
		if err != nil {
			return last, fmt.Errorf("polling charging session: %w", err)
		}
		last = sess
		if onUpdate != nil {
			onUpdate(sess)
		}
		if sess.Status != models.ChargingStatusActive {
			return sess, nil
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}
	}
}
