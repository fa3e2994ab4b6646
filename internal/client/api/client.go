// Package api is the HTTP client for the VoltMate backend.
//
// It owns request plumbing only: bearer attachment, rate limiting, JSON
// codecs, and error mapping. Session state lives in the session package;
// this layer merely reads the current access token through a TokenSource
// and signals authentication failures on the notification bus.
package api

import (
	"context"
	"time"

	"github.com/voltmate/voltmate/internal/client/models"
)

// TokenSource yields the access token to attach to outgoing requests.
// An empty string means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// TokenPair is the credential pair returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BookingRequest asks the backend to reserve a connector for a time window.
type BookingRequest struct {
	StationID   string    `json:"stationId"`
	ConnectorID string    `json:"connectorId"`
	VehicleID   string    `json:"vehicleId"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
}

// PaymentRequest creates a payment intent for a booking or charging session.
type PaymentRequest struct {
	BookingID string  `json:"bookingId,omitempty"`
	SessionID string  `json:"sessionId,omitempty"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// Client defines the remote operations the VoltMate client performs.
//
// All methods honor context cancellation and return errors matching the
// sentinels in internal/common via errors.Is.
type Client interface {
	// Auth.
	Login(ctx context.Context, email string, password []byte) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetProfile(ctx context.Context) (*models.User, error)

	// Stations and bookings.
	ListStations(ctx context.Context, lat, lng, radiusKM float64) ([]models.Station, error)
	GetStation(ctx context.Context, id string) (*models.Station, error)
	ListBookings(ctx context.Context, stationID string, day time.Time) ([]models.Booking, error)
	CreateBooking(ctx context.Context, req *BookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) error

	// Vehicles and plans.
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	AddVehicle(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	RemoveVehicle(ctx context.Context, id string) error
	ListPlans(ctx context.Context) ([]models.Plan, error)
	Subscribe(ctx context.Context, planID string) error

	// Charging sessions.
	StartCharging(ctx context.Context, connectorID, vehicleID string) (*models.ChargingSession, error)
	StopCharging(ctx context.Context, sessionID string) (*models.ChargingSession, error)
	GetChargingSession(ctx context.Context, sessionID string) (*models.ChargingSession, error)

	// Payments.
	CreatePayment(ctx context.Context, req *PaymentRequest) (*models.Payment, error)

	// Ping checks backend liveness.
	Ping(ctx context.Context) error

	// Close releases underlying transport resources.
	Close() error
}
