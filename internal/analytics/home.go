package analytics

import (
	"time"

	"medicost-dashboard/internal/insurance"
	"medicost-dashboard/internal/predictor"
	"medicost-dashboard/internal/prefs"
)

// ClockRefresh is how often the home page clock should be re-fetched.
const ClockRefresh = 60 * time.Second

type QuickAction struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Target      prefs.Section `json:"target"`
}

type Activity struct {
	Action string         `json:"action"`
	When   string         `json:"when"`
	Tone   insurance.Tone `json:"tone"`
}

type HealthTip struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// StatCard is one of the four headline numbers, already formatted.
type StatCard struct {
	Title   string `json:"title"`
	Value   string `json:"value"`
	Caption string `json:"caption"`
}

// HomePage is the content of the home section.
type HomePage struct {
	Title          string        `json:"title"`
	Subtitle       string        `json:"subtitle"`
	Date           string        `json:"date"`
	Time           string        `json:"time"`
	RefreshSeconds int           `json:"refresh_seconds"`
	Stats          []StatCard    `json:"stats"`
	QuickActions   []QuickAction `json:"quick_actions"`
	RecentActivity []Activity    `json:"recent_activity"`
	HealthTips     []HealthTip   `json:"health_tips"`
}

func QuickActions() []QuickAction {
	return []QuickAction{
		{Title: "New Prediction", Description: "Calculate insurance cost", Target: prefs.Prediction},
		{Title: "View Analytics", Description: "Explore data insights", Target: prefs.Analytics},
	}
}

func RecentActivity() []Activity {
	return []Activity{
		{Action: "High-risk patient identified", When: "2 min ago", Tone: insurance.ToneWarning},
		{Action: "New prediction completed", When: "5 min ago", Tone: insurance.ToneSuccess},
		{Action: "Analytics report generated", When: "12 min ago", Tone: insurance.ToneInfo},
		{Action: "Model accuracy improved", When: "1 hour ago", Tone: insurance.ToneSuccess},
	}
}

func HealthTips() []HealthTip {
	return []HealthTip{
		{Title: "BMI Management", Body: "Maintaining a healthy BMI between 18.5-24.9 can significantly reduce insurance costs."},
		{Title: "Smoking Cessation", Body: "Quitting smoking can reduce insurance premiums by up to 50% and improve overall health."},
		{Title: "Regular Checkups", Body: "Annual health screenings help catch issues early and may qualify for insurance discounts."},
	}
}

// StatCards formats dashboard stats for display.
func StatCards(s predictor.DashboardStats) []StatCard {
	return []StatCard{
		{Title: "Total Predictions", Value: insurance.FormatNumber(s.TotalPredictions), Caption: "+12% from last month"},
		{Title: "Average Cost", Value: insurance.FormatCurrency(s.AvgCost), Caption: "+2.1% from last month"},
		{Title: "High Risk Patients", Value: insurance.FormatNumber(s.HighRiskPatients), Caption: "Require immediate attention"},
		{Title: "Recent Predictions", Value: insurance.FormatNumber(s.RecentPredictions), Caption: "Last 24 hours"},
	}
}

// BuildHome assembles the home page for the given moment and stats.
func BuildHome(now time.Time, stats predictor.DashboardStats) HomePage {
	return HomePage{
		Title:          "Welcome to MediCost Dashboard",
		Subtitle:       "Intelligent medical insurance cost prediction powered by machine learning",
		Date:           now.Format("Monday, January 2, 2006"),
		Time:           now.Format("03:04 PM"),
		RefreshSeconds: int(ClockRefresh / time.Second),
		Stats:          StatCards(stats),
		QuickActions:   QuickActions(),
		RecentActivity: RecentActivity(),
		HealthTips:     HealthTips(),
	}
}
