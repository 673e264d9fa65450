package checkout

import (
	"pelada/internal/config"
	"pelada/internal/subscription"
)

type Mode string

const (
	ModeSubscription Mode = config.CheckoutModeSubscription
	ModePayment      Mode = config.CheckoutModePayment
)

// Price is what the processor charges for one plan.
type Price struct {
	PriceID string
	Mode    Mode
}

type PriceTable map[subscription.Plan]Price

func PriceTableFromConfig(cfg *config.Config) PriceTable {
	return PriceTable{
		subscription.PlanMonthly: {PriceID: cfg.StripePriceMonthly, Mode: Mode(cfg.StripeModeMonthly)},
		subscription.PlanAnnual:  {PriceID: cfg.StripePriceAnnual, Mode: Mode(cfg.StripeModeAnnual)},
	}
}

func (t PriceTable) Lookup(plan string) (Price, bool) {
	p, ok := t[subscription.Plan(plan)]
	return p, ok
}
