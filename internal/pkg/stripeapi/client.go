package stripeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pagebound/BookCrate/internal/pkg/catalogsync"
	"github.com/pagebound/BookCrate/internal/pkg/env"
)

const defaultAPIBaseURL = "https://api.stripe.com/v1"

// Client is a minimal HTTP client for the provider's product and price
// endpoints. Writes are form-encoded, reads are JSON, auth is a bearer
// secret key. It implements catalogsync.BillingClient.
type Client struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

// NewClientFromEnv builds a client from STRIPE_SECRET_KEY and the optional
// STRIPE_API_BASE_URL override (used by tests and mock servers).
func NewClientFromEnv() *Client {
	return &Client{
		SecretKey:  strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		APIBaseURL: strings.TrimRight(env.GetEnv("STRIPE_API_BASE_URL", defaultAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type productPayload struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Images      []string          `json:"images"`
	URL         string            `json:"url"`
	Metadata    map[string]string `json:"metadata"`
	Active      bool              `json:"active"`
}

type pricePayload struct {
	ID         string `json:"id"`
	Product    string `json:"product"`
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unit_amount"`
	Active     bool   `json:"active"`
}

type priceListPayload struct {
	Data []pricePayload `json:"data"`
}

func (p productPayload) toProduct() *catalogsync.Product {
	return &catalogsync.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Images:      p.Images,
		URL:         p.URL,
		Metadata:    p.Metadata,
		Active:      p.Active,
	}
}

func (p pricePayload) toPrice() catalogsync.Price {
	return catalogsync.Price{
		ID:         p.ID,
		ProductID:  p.Product,
		Currency:   p.Currency,
		UnitAmount: p.UnitAmount,
		Active:     p.Active,
	}
}

func productForm(params catalogsync.ProductParams) url.Values {
	form := url.Values{}
	form.Set("name", params.Name)
	form.Set("description", params.Description)
	if params.URL != "" {
		form.Set("url", params.URL)
	}
	for i, img := range params.Images {
		form.Set(fmt.Sprintf("images[%d]", i), img)
	}
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}
	return form
}

// CreateProduct creates a remote product and returns its representation.
func (c *Client) CreateProduct(ctx context.Context, params catalogsync.ProductParams) (*catalogsync.Product, error) {
	body, err := c.do(ctx, http.MethodPost, "/products", productForm(params))
	if err != nil {
		return nil, err
	}
	var out productPayload
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return nil, errors.New("product create response missing id")
	}
	return out.toProduct(), nil
}

// UpdateProduct pushes the mutable product fields in place.
func (c *Client) UpdateProduct(ctx context.Context, id string, params catalogsync.ProductParams) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("product id is required")
	}
	_, err := c.do(ctx, http.MethodPost, "/products/"+id, productForm(params))
	return err
}

func (c *Client) RetrieveProduct(ctx context.Context, id string) (*catalogsync.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("product id is required")
	}
	body, err := c.do(ctx, http.MethodGet, "/products/"+id, nil)
	if err != nil {
		return nil, err
	}
	var out productPayload
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out.toProduct(), nil
}

func (c *Client) ListPrices(ctx context.Context, productID string) ([]catalogsync.Price, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("product id is required")
	}
	body, err := c.do(ctx, http.MethodGet, "/prices?product="+url.QueryEscape(productID)+"&limit=100", nil)
	if err != nil {
		return nil, err
	}
	var out priceListPayload
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	prices := make([]catalogsync.Price, 0, len(out.Data))
	for _, p := range out.Data {
		prices = append(prices, p.toPrice())
	}
	return prices, nil
}

// CreatePrice issues a new price object. Prices are immutable after
// creation; amount changes require a new price.
func (c *Client) CreatePrice(ctx context.Context, productID, currency string, unitAmount int64) (*catalogsync.Price, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New("product id is required")
	}
	form := url.Values{}
	form.Set("product", productID)
	form.Set("currency", currency)
	form.Set("unit_amount", strconv.FormatInt(unitAmount, 10))

	body, err := c.do(ctx, http.MethodPost, "/prices", form)
	if err != nil {
		return nil, err
	}
	var out pricePayload
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return nil, errors.New("price create response missing id")
	}
	price := out.toPrice()
	return &price, nil
}

// UpdatePrice toggles the active flag; the only mutable bit of a price.
func (c *Client) UpdatePrice(ctx context.Context, id string, active bool) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("price id is required")
	}
	form := url.Values{}
	form.Set("active", strconv.FormatBool(active))
	_, err := c.do(ctx, http.MethodPost, "/prices/"+id, form)
	return err
}

func (c *Client) RetrievePrice(ctx context.Context, id string) (*catalogsync.Price, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("price id is required")
	}
	body, err := c.do(ctx, http.MethodGet, "/prices/"+id, nil)
	if err != nil {
		return nil, err
	}
	var out pricePayload
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	price := out.toPrice()
	return &price, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not configured")
	}

	base := c.APIBaseURL
	if base == "" {
		base = defaultAPIBaseURL
	}

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe %s %s failed: status=%d body=%s", method, path, resp.StatusCode, string(body))
	}
	return body, nil
}
