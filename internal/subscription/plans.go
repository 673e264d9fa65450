package subscription

import "errors"

var ErrUnknownPlan = errors.New("unknown plan")

// PlanInfo is the sales description of a paid plan.
type PlanInfo struct {
	ID           Plan     `json:"id"`
	Name         string   `json:"name"`
	PriceCents   int64    `json:"price_cents"`
	Currency     string   `json:"currency"`
	PriceDisplay string   `json:"price_display"`
	Period       string   `json:"period"`
	Features     []string `json:"features"`
}

func getPlans() []PlanInfo {
	return []PlanInfo{
		{
			ID:           PlanMonthly,
			Name:         "Premium Mensal",
			PriceCents:   999,
			Currency:     "BRL",
			PriceDisplay: "R$ 9,99",
			Period:       "mês",
			Features: []string{
				"Treinos ilimitados",
				"Avaliações de risco avançadas",
				"Insights detalhados",
				"Suporte prioritário",
				"Comunidade premium",
			},
		},
		{
			ID:           PlanAnnual,
			Name:         "Premium Anual",
			PriceCents:   9990,
			Currency:     "BRL",
			PriceDisplay: "R$ 99,90",
			Period:       "ano",
			Features: []string{
				"Tudo do plano mensal",
				"2 meses grátis",
				"Relatórios avançados",
				"Consultoria personalizada",
				"Acesso antecipado a novos recursos",
			},
		},
	}
}

// Plans lists the purchasable plans.
func Plans() []PlanInfo {
	return getPlans()
}

func FindPlan(id string) (PlanInfo, error) {
	for _, p := range getPlans() {
		if string(p.ID) == id {
			return p, nil
		}
	}
	return PlanInfo{}, ErrUnknownPlan
}
