package subscription

import "time"

type Plan string

const (
	PlanFree    Plan = "free"
	PlanMonthly Plan = "monthly"
	PlanAnnual  Plan = "annual"

	StatusActive = "active"
)

type Subscription struct {
	ID                   string    `db:"id" json:"id,omitempty"`
	UserID               string    `db:"user_id" json:"user_id"`
	Plan                 Plan      `db:"plan" json:"plan"`
	Status               string    `db:"status" json:"status,omitempty"`
	StripeSubscriptionID *string   `db:"stripe_subscription_id" json:"stripe_subscription_id,omitempty"`
	StripeCustomerID     *string   `db:"stripe_customer_id" json:"stripe_customer_id,omitempty"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// Free is the subscription of a user with no active paid plan.
func Free(userID string) Subscription {
	return Subscription{UserID: userID, Plan: PlanFree}
}

func (s Subscription) IsPremium() bool {
	return s.Plan.IsPaid()
}

func (p Plan) IsPaid() bool {
	return p == PlanMonthly || p == PlanAnnual
}
