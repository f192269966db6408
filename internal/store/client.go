package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rentadmin/internal/config"
	"rentadmin/internal/metrics"
	"rentadmin/internal/models"
)

// ErrUpdateUnsupported is returned when the record store has no update
// operation for billing records. The form controller then falls back
// to create-then-delete.
var ErrUpdateUnsupported = errors.New("record store does not support update")

// Client talks to the external record store over JSON/HTTP. One round
// trip per call, no caching, no retry: the store is the single source
// of truth and callers re-fetch after every mutation.
type Client struct {
	baseURL    string
	apiKey     string
	apiExtra   string
	httpClient *http.Client
}

// NewClient constructs a store client from config.
func NewClient(cfg config.StoreConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = models.DefaultStoreTimeoutSeconds * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiExtra:   cfg.APIExtra,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchProperties returns all properties in server order.
func (c *Client) FetchProperties(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := c.doGet(ctx, "fetch_properties", c.baseURL+"/api/properties", &props); err != nil {
		return nil, err
	}
	return props, nil
}

// FetchBilling returns the denormalized customer+property join rows.
func (c *Client) FetchBilling(ctx context.Context) ([]models.Customer, error) {
	var rows []models.Customer
	if err := c.doGet(ctx, "fetch_billing", c.baseURL+"/api/billing-data", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateProperty adds a property. Not idempotent: a repeat produces a
// duplicate record.
func (c *Client) CreateProperty(ctx context.Context, input models.PropertyInput) error {
	return c.doJSON(ctx, "create_property", http.MethodPost, c.baseURL+"/api/add-property", input, nil)
}

// CreateCustomer adds a billing record; the store marks the referenced
// property rented as a side effect.
func (c *Client) CreateCustomer(ctx context.Context, input models.CustomerInput) error {
	return c.doJSON(ctx, "create_customer", http.MethodPost, c.baseURL+"/api/add-customer", input, nil)
}

// UpdateCustomer replaces a billing record in place. Stores that
// predate the update endpoint answer 405 or 501, reported as
// ErrUpdateUnsupported.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, input models.CustomerInput) error {
	endpoint := fmt.Sprintf("%s/api/billing/%d", c.baseURL, id)
	err := c.doJSON(ctx, "update_customer", http.MethodPut, endpoint, input, nil)
	var se *StatusError
	if errors.As(err, &se) && (se.Code == http.StatusMethodNotAllowed || se.Code == http.StatusNotImplemented) {
		return ErrUpdateUnsupported
	}
	return err
}

// DeleteRecord removes one record. Deleting a billing record reverts
// its property to available; that contract belongs to the store, not
// to this client.
func (c *Client) DeleteRecord(ctx context.Context, resource string, id int64) error {
	if resource != models.ResourceProperties && resource != models.ResourceBilling {
		return fmt.Errorf("unknown resource %q", resource)
	}
	endpoint := fmt.Sprintf("%s/api/%s/%d", c.baseURL, resource, id)
	return c.doJSON(ctx, "delete_"+resource, http.MethodDelete, endpoint, nil, nil)
}

// FetchFragment retrieves a shared markup fragment (header, footer)
// for splicing into rendered pages.
func (c *Client) FetchFragment(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/templates/%s.html", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	c.addHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncStore("fetch_fragment", "error")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.IncStore("fetch_fragment", "error")
		return "", &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncStore("fetch_fragment", "error")
		return "", err
	}
	metrics.IncStore("fetch_fragment", "ok")
	return string(data), nil
}

// StatusError reports a non-2xx store response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("record store returned http %d", e.Code)
}

func (c *Client) doGet(ctx context.Context, op, endpoint string, out any) error {
	return c.doJSON(ctx, op, http.MethodGet, endpoint, nil, out)
}

func (c *Client) doJSON(ctx context.Context, op, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.addHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncStore(op, "error")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.IncStore(op, "error")
		return &StatusError{Code: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			metrics.IncStore(op, "error")
			return fmt.Errorf("decode %s response: %w", op, err)
		}
	}

	metrics.IncStore(op, "ok")
	return nil
}

func (c *Client) addHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if c.apiExtra != "" {
		req.Header.Set("x-api-extra", c.apiExtra)
	}
}
