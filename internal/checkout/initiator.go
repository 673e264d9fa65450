package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pelada/internal/backend"
	"pelada/internal/logger"
	"pelada/internal/metrics"
	"pelada/internal/profile"
)

// Initiator opens hosted checkout sessions for the paid plans.
type Initiator struct {
	provider Provider
	prices   PriceTable
	contacts profile.Reader
	siteURL  string
}

func NewInitiator(provider Provider, prices PriceTable, contacts profile.Reader, siteURL string) *Initiator {
	return &Initiator{
		provider: provider,
		prices:   prices,
		contacts: contacts,
		siteURL:  strings.TrimSuffix(siteURL, "/"),
	}
}

// CreateSession returns the URL the user should be sent to for payment.
func (i *Initiator) CreateSession(ctx context.Context, plan, userID string) (string, error) {
	if plan == "" || userID == "" {
		metrics.RecordCheckoutFailure("validation")
		return "", &ValidationError{Message: MsgMissingFields}
	}
	price, ok := i.prices.Lookup(plan)
	if !ok {
		metrics.RecordCheckoutFailure("validation")
		return "", &ValidationError{Message: MsgInvalidPlan}
	}

	if i.provider == nil || !i.provider.Configured() {
		metrics.RecordCheckoutFailure("unconfigured")
		return "", fmt.Errorf("%w: %w", ErrUpstream, ErrProviderUnconfigured)
	}

	email, err := i.contactEmail(ctx, userID)
	if err != nil {
		metrics.RecordCheckoutFailure("unconfigured")
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	url, err := i.provider.CreateSession(ctx, SessionRequest{
		Plan:       plan,
		UserID:     userID,
		Email:      email,
		Price:      price,
		SuccessURL: i.siteURL + "/?success=true",
		CancelURL:  i.siteURL + "/upgrade?canceled=true",
	})
	if err != nil {
		metrics.RecordCheckoutFailure("upstream")
		logger.Error("checkout session failed", "plan", plan, "user_id", userID, "error", err)
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	metrics.RecordCheckoutSession(plan, string(price.Mode))
	logger.Info("checkout session created", "plan", plan, "user_id", userID, "mode", price.Mode)
	return url, nil
}

// contactEmail picks the address the processor pre-fills. Missing or
// unreadable profiles fall back to a placeholder; an unconfigured backend
// does not.
func (i *Initiator) contactEmail(ctx context.Context, userID string) (string, error) {
	placeholder := userID + "@temp.com"
	if i.contacts == nil {
		return placeholder, nil
	}

	p, err := i.contacts.GetContact(ctx, userID)
	if err != nil {
		if errors.Is(err, backend.ErrUnavailable) {
			return "", err
		}
		logger.Warn("checkout contact lookup failed, using placeholder", "user_id", userID, "error", err)
		return placeholder, nil
	}
	if p != nil && p.Username != nil && *p.Username != "" {
		return *p.Username, nil
	}
	return placeholder, nil
}
