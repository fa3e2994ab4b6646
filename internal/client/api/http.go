package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/voltmate/voltmate/internal/client/bus"
	"github.com/voltmate/voltmate/internal/client/models"
	"github.com/voltmate/voltmate/internal/common"
	"github.com/voltmate/voltmate/internal/logging"
)

// HTTPClient implements Client over the backend's REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	tokens     TokenSource
	events     *bus.Bus
	log        logging.Logger
}

// Options configures an HTTPClient.
type Options struct {
	// BaseURL of the backend, e.g. "https://api.voltmate.example".
	BaseURL string
	// Timeout for a single request. Zero means 10s.
	Timeout time.Duration
	// RequestsPerSecond / Burst bound the outbound request rate.
	// Zero values mean no client-side limit.
	RequestsPerSecond int
	Burst             int
	// Tokens yields the bearer token per request. The session manager and
	// the transport reference each other, so this may also be installed
	// after construction via SetTokens.
	Tokens TokenSource
	// Events receives EventSessionInvalidated on 401 responses. Required.
	Events *bus.Bus
	// Log is used for transport-level diagnostics. Required.
	Log logging.Logger
}

func NewHTTPClient(opts Options) *HTTPClient {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = opts.Burst
		if burst <= 0 {
			burst = opts.RequestsPerSecond
		}
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		tokens:     opts.Tokens,
		events:     opts.Events,
		log:        opts.Log.With("component", "api"),
	}
}

// SetTokens installs the bearer source. Must be called before the first
// authenticated request when Options.Tokens was not set.
func (c *HTTPClient) SetTokens(src TokenSource) {
	c.tokens = src
}

type requestOptions struct {
	noAuth         bool
	idempotencyKey string
}

// do performs one JSON request/response cycle: rate limit, marshal, attach
// headers, execute, map the status, decode into out (which may be nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any, ro requestOptions) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if ro.idempotencyKey != "" {
		req.Header.Set(common.IdempotencyKeyHeaderName, ro.idempotencyKey)
	}

	authenticated := false
	if !ro.noAuth && c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
			authenticated = true
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", common.ErrorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}

		// Only a request that actually carried a bearer token can mean the
		// session is no longer accepted. One emit per failing response.
		if resp.StatusCode == http.StatusUnauthorized && authenticated {
			c.log.Warn(ctx, "authentication failure from backend", "method", method, "path", path)
			c.events.Emit(common.EventSessionInvalidated, apiErr.Message)
		}

		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// readMessage extracts the {message} envelope of an error response. An
// unreadable or non-JSON body yields "".
func readMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*TokenPair, error) {
	body := map[string]string{"email": email, "password": string(password)}
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &pair, requestOptions{noAuth: true})
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, body, &pair, requestOptions{noAuth: true})
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/accounts/me", nil, nil, &user, requestOptions{}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListStations(ctx context.Context, lat, lng, radiusKM float64) ([]models.Station, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%g", lat))
	query.Set("lng", fmt.Sprintf("%g", lng))
	query.Set("radius", fmt.Sprintf("%g", radiusKM))

	var stations []models.Station
	if err := c.do(ctx, http.MethodGet, "/stations", query, nil, &stations, requestOptions{}); err != nil {
		return nil, err
	}
	return stations, nil
}

func (c *HTTPClient) GetStation(ctx context.Context, id string) (*models.Station, error) {
	var station models.Station
	if err := c.do(ctx, http.MethodGet, "/stations/"+url.PathEscape(id), nil, nil, &station, requestOptions{}); err != nil {
		return nil, err
	}
	return &station, nil
}

func (c *HTTPClient) ListBookings(ctx context.Context, stationID string, day time.Time) ([]models.Booking, error) {
	query := url.Values{}
	query.Set("date", day.Format("2006-01-02"))

	var bookings []models.Booking
	path := "/stations/" + url.PathEscape(stationID) + "/bookings"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &bookings, requestOptions{}); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, req *BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	ro := requestOptions{idempotencyKey: uuid.NewString()}
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, req, &booking, ro); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *HTTPClient) CancelBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(id), nil, nil, nil, requestOptions{})
}

func (c *HTTPClient) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicles", nil, nil, &vehicles, requestOptions{}); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *HTTPClient) AddVehicle(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	var created models.Vehicle
	if err := c.do(ctx, http.MethodPost, "/vehicles", nil, v, &created, requestOptions{}); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) RemoveVehicle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/vehicles/"+url.PathEscape(id), nil, nil, nil, requestOptions{})
}

func (c *HTTPClient) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	if err := c.do(ctx, http.MethodGet, "/plans", nil, nil, &plans, requestOptions{}); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *HTTPClient) Subscribe(ctx context.Context, planID string) error {
	body := map[string]string{"planId": planID}
	return c.do(ctx, http.MethodPost, "/subscriptions", nil, body, nil, requestOptions{})
}

func (c *HTTPClient) StartCharging(ctx context.Context, connectorID, vehicleID string) (*models.ChargingSession, error) {
	body := map[string]string{"connectorId": connectorID, "vehicleId": vehicleID}
	var session models.ChargingSession
	if err := c.do(ctx, http.MethodPost, "/charging-sessions", nil, body, &session, requestOptions{}); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) StopCharging(ctx context.Context, sessionID string) (*models.ChargingSession, error) {
	var session models.ChargingSession
	path := "/charging-sessions/" + url.PathEscape(sessionID) + "/stop"
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &session, requestOptions{}); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) GetChargingSession(ctx context.Context, sessionID string) (*models.ChargingSession, error) {
	var session models.ChargingSession
	path := "/charging-sessions/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &session, requestOptions{}); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) CreatePayment(ctx context.Context, req *PaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	ro := requestOptions{idempotencyKey: uuid.NewString()}
	if err := c.do(ctx, http.MethodPost, "/payments", nil, req, &payment, ro); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil, requestOptions{noAuth: true})
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

var _ Client = (*HTTPClient)(nil)
