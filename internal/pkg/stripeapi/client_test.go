package stripeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/BookCrate/internal/pkg/catalogsync"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		SecretKey:  "sk_test_123",
		APIBaseURL: srv.URL,
		HTTPClient: srv.Client(),
	}
}

func TestCreateProductSendsFormAndAuth(t *testing.T) {
	var gotAuth, gotContentType string
	var gotForm map[string][]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/products", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "prod_123",
			"name":   r.PostForm.Get("name"),
			"active": true,
		})
	})

	product, err := client.CreateProduct(context.Background(), catalogsync.ProductParams{
		Name:        "Cozy Winter Crate",
		Description: "Three cozy reads",
		Images:      []string{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"},
		URL:         "https://bookcrate.example/packages/cozy-winter-crate",
		Metadata:    map[string]string{"slug": "cozy-winter-crate", "theme_id": "null"},
	})
	require.NoError(t, err)

	assert.Equal(t, "prod_123", product.ID)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "Cozy Winter Crate", gotForm["name"][0])
	assert.Equal(t, "https://cdn.example/a.jpg", gotForm["images[0]"][0])
	assert.Equal(t, "https://cdn.example/b.jpg", gotForm["images[1]"][0])
	assert.Equal(t, "cozy-winter-crate", gotForm["metadata[slug]"][0])
	assert.Equal(t, "null", gotForm["metadata[theme_id]"][0])
}

func TestCreateProductRejectsMissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.CreateProduct(context.Background(), catalogsync.ProductParams{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestRetrieveProductDecodesPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/products/prod_9", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": "prod_9",
			"name": "Crate",
			"metadata": {"slug": "crate", "theme_id": "7"},
			"active": true
		}`))
	})

	product, err := client.RetrieveProduct(context.Background(), "prod_9")
	require.NoError(t, err)
	assert.Equal(t, "prod_9", product.ID)
	assert.Equal(t, "7", product.Metadata["theme_id"])
	assert.True(t, product.Active)
}

func TestCreatePriceSendsUnitAmount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "prod_9", r.PostForm.Get("product"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "2999", r.PostForm.Get("unit_amount"))

		_, _ = w.Write([]byte(`{"id": "price_1", "product": "prod_9", "currency": "usd", "unit_amount": 2999, "active": true}`))
	})

	price, err := client.CreatePrice(context.Background(), "prod_9", "usd", 2999)
	require.NoError(t, err)
	assert.Equal(t, "price_1", price.ID)
	assert.Equal(t, int64(2999), price.UnitAmount)
}

func TestUpdatePriceTogglesActive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/prices/price_1", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "false", r.PostForm.Get("active"))
		_, _ = w.Write([]byte(`{"id": "price_1", "active": false}`))
	})

	require.NoError(t, client.UpdatePrice(context.Background(), "price_1", false))
}

func TestListPricesFiltersByProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "prod_9", r.URL.Query().Get("product"))
		_, _ = w.Write([]byte(`{"data": [
			{"id": "price_1", "product": "prod_9", "unit_amount": 1000, "active": false},
			{"id": "price_2", "product": "prod_9", "unit_amount": 1250, "active": true}
		]}`))
	})

	prices, err := client.ListPrices(context.Background(), "prod_9")
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, int64(1250), prices[1].UnitAmount)
}

func TestErrorResponseIncludesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	})

	_, err := client.RetrieveProduct(context.Background(), "prod_9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestMissingSecretKeyFailsFast(t *testing.T) {
	client := &Client{HTTPClient: http.DefaultClient}

	_, err := client.RetrieveProduct(context.Background(), "prod_9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
}

func TestEmptyIDValidation(t *testing.T) {
	client := &Client{SecretKey: "sk", HTTPClient: http.DefaultClient}

	_, err := client.RetrieveProduct(context.Background(), "")
	assert.Error(t, err)
	_, err = client.RetrievePrice(context.Background(), " ")
	assert.Error(t, err)
	assert.Error(t, client.UpdateProduct(context.Background(), "", catalogsync.ProductParams{}))
	assert.Error(t, client.UpdatePrice(context.Background(), "", true))
}
