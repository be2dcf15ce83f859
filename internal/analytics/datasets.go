// Package analytics serves the dashboard's fixed sample datasets and the
// home page content. Nothing here is computed from live predictions.
package analytics

// SmokerCost compares average annual cost by smoking status.
type SmokerCost struct {
	Name        string  `json:"name"`
	AverageCost float64 `json:"average_cost"`
	Count       int     `json:"count"`
}

type AgeBand struct {
	AgeGroup string  `json:"age_group"`
	Count    int     `json:"count"`
	AvgCost  float64 `json:"avg_cost"`
}

type BMIBand struct {
	BMI      string  `json:"bmi"`
	AvgCost  float64 `json:"avg_cost"`
	Category string  `json:"category"`
}

// RegionShare is one slice of the region pie; Color is the slice's hex colour.
type RegionShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Datasets is everything the analytics section charts.
type Datasets struct {
	Smoker          []SmokerCost  `json:"smoker"`
	AgeDistribution []AgeBand     `json:"age_distribution"`
	BMIVsCharges    []BMIBand     `json:"bmi_vs_charges"`
	Regions         []RegionShare `json:"regions"`
}

var (
	smokerData = []SmokerCost{
		{Name: "Non-Smoker", AverageCost: 8434, Count: 1064},
		{Name: "Smoker", AverageCost: 32050, Count: 274},
	}

	ageData = []AgeBand{
		{AgeGroup: "18-25", Count: 145, AvgCost: 9500},
		{AgeGroup: "26-35", Count: 280, AvgCost: 10800},
		{AgeGroup: "36-45", Count: 267, AvgCost: 13200},
		{AgeGroup: "46-55", Count: 290, AvgCost: 16800},
		{AgeGroup: "56-65", Count: 356, AvgCost: 21500},
	}

	bmiData = []BMIBand{
		{BMI: "18.5-25", AvgCost: 8200, Category: "Normal"},
		{BMI: "25-30", AvgCost: 11400, Category: "Overweight"},
		{BMI: "30-35", AvgCost: 15600, Category: "Obese I"},
		{BMI: "35-40", AvgCost: 19800, Category: "Obese II"},
		{BMI: "40+", AvgCost: 24500, Category: "Obese III"},
	}

	regionData = []RegionShare{
		{Name: "Northeast", Value: 324, Color: "#3b82f6"},
		{Name: "Northwest", Value: 325, Color: "#10b981"},
		{Name: "Southeast", Value: 364, Color: "#f59e0b"},
		{Name: "Southwest", Value: 325, Color: "#ef4444"},
	}
)

// Load returns copies of the sample datasets, safe for the caller to modify.
func Load() Datasets {
	return Datasets{
		Smoker:          append([]SmokerCost(nil), smokerData...),
		AgeDistribution: append([]AgeBand(nil), ageData...),
		BMIVsCharges:    append([]BMIBand(nil), bmiData...),
		Regions:         append([]RegionShare(nil), regionData...),
	}
}

// SampleSize is the number of records across all regions.
func (d Datasets) SampleSize() int {
	total := 0
	for _, r := range d.Regions {
		total += r.Value
	}
	return total
}

// SmokerPremium is how many times more a smoker pays on average. Zero when
// either group is missing.
func (d Datasets) SmokerPremium() float64 {
	var smoker, non float64
	for _, s := range d.Smoker {
		switch s.Name {
		case "Smoker":
			smoker = s.AverageCost
		case "Non-Smoker":
			non = s.AverageCost
		}
	}
	if smoker == 0 || non == 0 {
		return 0
	}
	return smoker / non
}
