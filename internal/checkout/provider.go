package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"pelada/internal/logger"
)

// SessionRequest is one hosted checkout session to open.
type SessionRequest struct {
	Plan       string
	UserID     string
	Email      string
	Price      Price
	SuccessURL string
	CancelURL  string
}

type Provider interface {
	Configured() bool
	CreateSession(ctx context.Context, req SessionRequest) (string, error)
}

type StripeConfig struct {
	SecretKey string
	// APIURL overrides the processor endpoint; empty means production.
	APIURL     string
	HTTPClient *http.Client
}

type StripeProvider struct {
	api        *client.API
	configured bool
}

func NewStripeProvider(cfg StripeConfig) *StripeProvider {
	backendConfig := &stripe.BackendConfig{
		HTTPClient:        cfg.HTTPClient,
		LeveledLogger:     logger.Leveled(),
		MaxNetworkRetries: stripe.Int64(0),
	}
	if cfg.APIURL != "" {
		backendConfig.URL = stripe.String(cfg.APIURL)
	}

	apiBackend := stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig)
	sc := &client.API{}
	sc.Init(cfg.SecretKey, &stripe.Backends{
		API:     apiBackend,
		Connect: apiBackend,
		Uploads: apiBackend,
	})

	return &StripeProvider{api: sc, configured: cfg.SecretKey != ""}
}

func (p *StripeProvider) Configured() bool {
	return p != nil && p.configured
}

func (p *StripeProvider) CreateSession(ctx context.Context, req SessionRequest) (string, error) {
	if !p.Configured() {
		return "", ErrProviderUnconfigured
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.Price.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(req.Price.Mode)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.UserID),
		CustomerEmail:     stripe.String(req.Email),
	}
	params.Context = ctx
	params.AddMetadata("userId", req.UserID)
	params.AddMetadata("plan", req.Plan)

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return "", fmt.Errorf("create checkout session: %s (%s)", stripeErr.Msg, stripeErr.Code)
		}
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if s.URL == "" {
		return "", errors.New("create checkout session: processor returned no url")
	}
	return s.URL, nil
}
