package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"fuelpos-backend/internal/models"
)

// Client talks to the head-office shift API. It is a pure reader/writer of
// remote state; all coordination logic lives in internal/shift.
type Client struct {
	BaseURL   string
	Token     string
	StationID string
	HTTP      *http.Client

	mu          sync.Mutex
	lastProbe   time.Time
	lastOffline bool
}

func New(baseURL, token, stationID string) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Token:     token,
		StationID: stationID,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

// StoreError is a rejection from the head office. The message is the
// server's own and is surfaced to the caller verbatim.
type StoreError struct {
	Status  int
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

func IsNotFound(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

type startShiftRequest struct {
	OpeningCash float64  `json:"opening_cash"`
	EmployeeIDs []string `json:"employee_ids"`
}

type closeShiftRequest struct {
	ClosingCash    float64                     `json:"closing_cash"`
	PaymentMethods []models.PaymentMethodEntry `json:"payment_methods,omitempty"`
}

type salesTotalResponse struct {
	Total float64 `json:"total"`
}

// GetSystemActiveShift returns the station-wide open shift, or (nil, nil)
// when the head office confirms there is none.
func (c *Client) GetSystemActiveShift(ctx context.Context) (*models.Shift, error) {
	var shift models.Shift
	path := fmt.Sprintf("/api/stations/%s/shifts/active", c.StationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &shift); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

// GetActiveShiftForIdentity returns the open shift the given employee is
// assigned to, or (nil, nil) when the head office confirms there is none.
func (c *Client) GetActiveShiftForIdentity(ctx context.Context, employeeID string) (*models.Shift, error) {
	var shift models.Shift
	path := fmt.Sprintf("/api/stations/%s/employees/%s/shifts/active", c.StationID, employeeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &shift); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func (c *Client) StartShift(ctx context.Context, openingCash float64, employeeIDs []string) (*models.Shift, error) {
	var shift models.Shift
	path := fmt.Sprintf("/api/stations/%s/shifts", c.StationID)
	body := startShiftRequest{OpeningCash: openingCash, EmployeeIDs: employeeIDs}
	if err := c.do(ctx, http.MethodPost, path, body, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (c *Client) CloseShift(ctx context.Context, shiftID string, closingCash float64, entries []models.PaymentMethodEntry) (*models.Shift, error) {
	var shift models.Shift
	path := fmt.Sprintf("/api/stations/%s/shifts/%s/close", c.StationID, shiftID)
	body := closeShiftRequest{ClosingCash: closingCash, PaymentMethods: entries}
	if err := c.do(ctx, http.MethodPost, path, body, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (c *Client) GetShiftPaymentMethods(ctx context.Context, shiftID string) ([]models.PaymentMethodEntry, error) {
	var entries []models.PaymentMethodEntry
	path := fmt.Sprintf("/api/stations/%s/shifts/%s/payment-methods", c.StationID, shiftID)
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) AddShiftPaymentMethods(ctx context.Context, shiftID string, entries []models.PaymentMethodEntry) error {
	path := fmt.Sprintf("/api/stations/%s/shifts/%s/payment-methods", c.StationID, shiftID)
	return c.do(ctx, http.MethodPost, path, entries, nil)
}

func (c *Client) DeleteShiftPaymentMethods(ctx context.Context, shiftID string) error {
	path := fmt.Sprintf("/api/stations/%s/shifts/%s/payment-methods", c.StationID, shiftID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) GetShiftSalesTotal(ctx context.Context, shiftID string) (float64, error) {
	var resp salesTotalResponse
	path := fmt.Sprintf("/api/stations/%s/shifts/%s/sales-total", c.StationID, shiftID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Total, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("head office request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		if msg == "" {
			msg = resp.Status
		}
		return &StoreError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
