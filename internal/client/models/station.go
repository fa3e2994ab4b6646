package models

import "time"

// Station is a public charging location with one or more connectors.
type Station struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Address    string      `json:"address"`
	Latitude   float64     `json:"lat"`
	Longitude  float64     `json:"lng"`
	OpensAt    string      `json:"opensAt"`  // "HH:MM", station local time
	ClosesAt   string      `json:"closesAt"` // "HH:MM"; "00:00"–"00:00" means 24h
	Connectors []Connector `json:"connectors"`
}

// Connector is a single charging point at a station.
type Connector struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"` // CCS, CHAdeMO, Type2
	MaxPowerKW  float64 `json:"maxPowerKw"`
	PricePerKWh float64 `json:"pricePerKwh"`
	Available   bool    `json:"available"`
}

// Booking and charging-session statuses as the backend reports them.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"

	ChargingStatusActive   = "charging"
	ChargingStatusFinished = "finished"
	ChargingStatusFaulted  = "faulted"
)

// Booking reserves a connector for a half-open time window [StartsAt, EndsAt).
type Booking struct {
	ID          string    `json:"id"`
	StationID   string    `json:"stationId"`
	ConnectorID string    `json:"connectorId"`
	VehicleID   string    `json:"vehicleId"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Status      string    `json:"status"` // confirmed, cancelled, completed
}

// Vehicle is a user-registered EV.
type Vehicle struct {
	ID            string `json:"id"`
	Plate         string `json:"plate"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	ConnectorType string `json:"connectorType"`
}

// Plan is a subscription tier.
type Plan struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MonthlyFee  float64 `json:"monthlyFee"`
	DiscountPct float64 `json:"discountPct"`
	IncludedKWh float64 `json:"includedKwh"`
}

// ChargingSession is a live or finished charging run on a connector.
type ChargingSession struct {
	ID          string     `json:"id"`
	ConnectorID string     `json:"connectorId"`
	VehicleID   string     `json:"vehicleId"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	EnergyKWh   float64    `json:"energyKwh"`
	Cost        float64    `json:"cost"`
	Status      string     `json:"status"` // charging, finished, faulted
}

// Payment is a payment intent created against the third-party gateway.
type Payment struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"` // pending, succeeded, failed
	CheckoutURL string  `json:"checkoutUrl,omitempty"`
}
