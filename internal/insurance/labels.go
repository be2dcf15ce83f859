package insurance

// Tone is a presentation hint for a label.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// HealthStatus buckets a BMI value.
type HealthStatus string

const (
	Underweight HealthStatus = "Underweight"
	Normal      HealthStatus = "Normal"
	Overweight  HealthStatus = "Overweight"
	Obese       HealthStatus = "Obese"
)

// Boundaries belong to the higher bucket.
const (
	bmiNormalFrom     = 18.5
	bmiOverweightFrom = 25.0
	bmiObeseFrom      = 30.0
)

// HealthStatusOf returns the health label for a BMI.
func HealthStatusOf(bmi float64) HealthStatus {
	switch {
	case bmi < bmiNormalFrom:
		return Underweight
	case bmi < bmiOverweightFrom:
		return Normal
	case bmi < bmiObeseFrom:
		return Overweight
	default:
		return Obese
	}
}

func (h HealthStatus) Tone() Tone {
	switch h {
	case Underweight:
		return ToneInfo
	case Normal:
		return ToneSuccess
	case Overweight:
		return ToneWarning
	default:
		return ToneDanger
	}
}

// RiskLevel buckets a predicted annual cost.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

const (
	riskMediumFrom = 5000.0
	riskHighFrom   = 15000.0
)

// RiskLevelOf returns the risk tier for a predicted cost.
func RiskLevelOf(cost float64) RiskLevel {
	switch {
	case cost < riskMediumFrom:
		return RiskLow
	case cost < riskHighFrom:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func (r RiskLevel) Tone() Tone {
	switch r {
	case RiskLow:
		return ToneSuccess
	case RiskMedium:
		return ToneWarning
	default:
		return ToneDanger
	}
}

// Assessment bundles the display labels derived from one prediction.
type Assessment struct {
	Health        HealthStatus `json:"health_status"`
	HealthTone    Tone         `json:"health_tone"`
	Risk          RiskLevel    `json:"risk_level"`
	RiskTone      Tone         `json:"risk_tone"`
	FormattedCost string       `json:"formatted_cost"`
}

// Assess derives the health and risk labels independently of each other.
func Assess(bmi, cost float64) Assessment {
	health := HealthStatusOf(bmi)
	risk := RiskLevelOf(cost)
	return Assessment{
		Health:        health,
		HealthTone:    health.Tone(),
		Risk:          risk,
		RiskTone:      risk.Tone(),
		FormattedCost: FormatCurrency(cost),
	}
}
