package shell

type Screen string

const (
	ScreenDashboard      Screen = "dashboard"
	ScreenProfile        Screen = "profile"
	ScreenRiskAssessment Screen = "risk-assessment"
	ScreenWarmup         Screen = "warmup"
	ScreenTraining       Screen = "training"
	ScreenDiary          Screen = "diary"
	ScreenCommunity      Screen = "community"
	ScreenInsights       Screen = "insights"
	ScreenQA             Screen = "qa"
	ScreenUpgrade        Screen = "upgrade"
)

const DefaultScreen = ScreenDashboard

type NavItem struct {
	ID     Screen `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// navigation is the menu order. The upgrade screen is reachable but not listed.
var navigation = []NavItem{
	{ID: ScreenDashboard, Label: "Dashboard"},
	{ID: ScreenProfile, Label: "Perfil"},
	{ID: ScreenRiskAssessment, Label: "Avaliação"},
	{ID: ScreenWarmup, Label: "Aquecimento"},
	{ID: ScreenTraining, Label: "Treinos"},
	{ID: ScreenDiary, Label: "Diário"},
	{ID: ScreenCommunity, Label: "Comunidade"},
	{ID: ScreenInsights, Label: "Insights"},
	{ID: ScreenQA, Label: "Q&A"},
}

func ParseScreen(s string) (Screen, bool) {
	screen := Screen(s)
	if screen == ScreenUpgrade {
		return screen, true
	}
	for _, item := range navigation {
		if item.ID == screen {
			return screen, true
		}
	}
	return "", false
}

func (s Screen) Label() string {
	if s == ScreenUpgrade {
		return "Premium"
	}
	for _, item := range navigation {
		if item.ID == s {
			return item.Label
		}
	}
	return string(s)
}

// Navigation returns the menu with the current screen marked.
func Navigation(current Screen) []NavItem {
	items := make([]NavItem, len(navigation))
	for i, item := range navigation {
		item.Active = item.ID == current
		items[i] = item
	}
	return items
}
