package services

import (
	"context"
	"fmt"

	"github.com/voltmate/voltmate/internal/client/api"
	"github.com/voltmate/voltmate/internal/client/models"
)

// PaymentService creates payment intents against the payment gateway.
type PaymentService interface {
	PayBooking(ctx context.Context, bookingID string, amount float64, currency string) (*models.Payment, error)
	PaySession(ctx context.Context, sessionID string, amount float64, currency string) (*models.Payment, error)
}

type paymentService struct {
	api api.Client
}

func NewPaymentService(client api.Client) PaymentService {
	return &paymentService{api: client}
}

func (s *paymentService) PayBooking(ctx context.Context, bookingID string, amount float64, currency string) (*models.Payment, error) {
	return s.create(ctx, &api.PaymentRequest{BookingID: bookingID, Amount: amount, Currency: currency})
}

func (s *paymentService) PaySession(ctx context.Context, sessionID string, amount float64, currency string) (*models.Payment, error) {
	return s.create(ctx, &api.PaymentRequest{SessionID: sessionID, Amount: amount, Currency: currency})
}

func (s *paymentService) create(ctx context.Context, req *api.PaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	payment, err := s.api.CreatePayment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}
	return payment, nil
}
