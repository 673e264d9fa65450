package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeProviderCreateSession(t *testing.T) {
	var form map[string]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		form = map[string]string{}
		for k, v := range r.PostForm {
			form[k] = v[0]
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
	}))
	defer srv.Close()

	p := NewStripeProvider(StripeConfig{SecretKey: "sk_test_123", APIURL: srv.URL, HTTPClient: srv.Client()})
	require.True(t, p.Configured())

	url, err := p.CreateSession(context.Background(), SessionRequest{
		Plan:       "annual",
		UserID:     "u-1",
		Email:      "u-1@temp.com",
		Price:      Price{PriceID: "price_a", Mode: ModePayment},
		SuccessURL: "https://pelada.app/?success=true",
		CancelURL:  "https://pelada.app/upgrade?canceled=true",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", url)

	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "price_a", form["line_items[0][price]"])
	assert.Equal(t, "1", form["line_items[0][quantity]"])
	assert.Equal(t, "payment", form["mode"])
	assert.Equal(t, "card", form["payment_method_types[0]"])
	assert.Equal(t, "u-1", form["client_reference_id"])
	assert.Equal(t, "u-1@temp.com", form["customer_email"])
	assert.Equal(t, "u-1", form["metadata[userId]"])
	assert.Equal(t, "annual", form["metadata[plan]"])
	assert.Equal(t, "https://pelada.app/?success=true", form["success_url"])
	assert.Equal(t, "https://pelada.app/upgrade?canceled=true", form["cancel_url"])
}

func TestStripeProviderErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such price: 'price_x'"}}`))
	}))
	defer srv.Close()

	p := NewStripeProvider(StripeConfig{SecretKey: "sk_test_123", APIURL: srv.URL, HTTPClient: srv.Client()})
	_, err := p.CreateSession(context.Background(), SessionRequest{Plan: "monthly", UserID: "u-1", Price: Price{PriceID: "price_x", Mode: ModeSubscription}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such price")
	assert.Equal(t, 1, calls)

	unconfigured := NewStripeProvider(StripeConfig{})
	assert.False(t, unconfigured.Configured())
	_, err = unconfigured.CreateSession(context.Background(), SessionRequest{})
	assert.ErrorIs(t, err, ErrProviderUnconfigured)
}
