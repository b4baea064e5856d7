package dataset

// Sample returns the built-in conservation dataset: five layers running from
// activity pattern through reproduction strategy, habitat and population
// trend to the predicted risk outcome. Link values are animal counts.
func Sample() *Dataset {
	return MustNew(sampleNodes(), sampleLinks())
}

func sampleNodes() []Node {
	return []Node{
		{ID: 0, Name: "Diurnal", Layer: 0, Category: CategoryActivity, RiskScore: 0.35},
		{ID: 1, Name: "Nocturnal", Layer: 0, Category: CategoryActivity, RiskScore: 0.55},
		{ID: 2, Name: "Crepuscular", Layer: 0, Category: CategoryActivity, RiskScore: 0.45},

		{ID: 3, Name: "Few Offspring", Layer: 1, Category: CategoryReproduction, RiskScore: 0.68},
		{ID: 4, Name: "Many Offspring", Layer: 1, Category: CategoryReproduction, RiskScore: 0.22},

		{ID: 5, Name: "Tropical Forest", Layer: 2, Category: CategoryHabitat, RiskScore: 0.72},
		{ID: 6, Name: "Ocean", Layer: 2, Category: CategoryHabitat, RiskScore: 0.58},
		{ID: 7, Name: "Grassland", Layer: 2, Category: CategoryHabitat, RiskScore: 0.40},
		{ID: 8, Name: "Mountain", Layer: 2, Category: CategoryHabitat, RiskScore: 0.62},

		{ID: 9, Name: "Decreasing Population", Layer: 3, Category: CategoryTrend, RiskScore: 0.85},
		{ID: 10, Name: "Stable Population", Layer: 3, Category: CategoryTrend, RiskScore: 0.30},
		{ID: 11, Name: "Increasing Population", Layer: 3, Category: CategoryTrend, RiskScore: 0.12},

		{ID: 12, Name: "High Risk", Layer: 4, Category: CategoryOutcome, RiskScore: 0.90, IsOutcome: true, Count: IntPtr(390)},
		{ID: 13, Name: "Moderate Risk", Layer: 4, Category: CategoryOutcome, RiskScore: 0.50, IsOutcome: true, Count: IntPtr(268)},
		{ID: 14, Name: "Low Risk", Layer: 4, Category: CategoryOutcome, RiskScore: 0.10, IsOutcome: true, Count: IntPtr(352)},
	}
}

func sampleLinks() []Link {
	return []Link{
		{Source: 0, Target: 3, Value: 120},
		{Source: 0, Target: 4, Value: 260},
		{Source: 1, Target: 3, Value: 210},
		{Source: 1, Target: 4, Value: 150},
		{Source: 2, Target: 3, Value: 90},
		{Source: 2, Target: 4, Value: 180},

		{Source: 3, Target: 5, Value: 170},
		{Source: 3, Target: 6, Value: 110},
		{Source: 3, Target: 8, Value: 140},
		{Source: 4, Target: 5, Value: 90},
		{Source: 4, Target: 6, Value: 120},
		{Source: 4, Target: 7, Value: 260},
		{Source: 4, Target: 8, Value: 120},

		{Source: 5, Target: 9, Value: 180},
		{Source: 5, Target: 10, Value: 80},
		{Source: 6, Target: 9, Value: 120},
		{Source: 6, Target: 10, Value: 70},
		{Source: 6, Target: 11, Value: 40},
		{Source: 7, Target: 9, Value: 60},
		{Source: 7, Target: 10, Value: 110},
		{Source: 7, Target: 11, Value: 90},
		{Source: 8, Target: 9, Value: 150},
		{Source: 8, Target: 10, Value: 70},
		{Source: 8, Target: 11, Value: 40},

		{Source: 9, Target: 12, Value: 350},
		{Source: 9, Target: 13, Value: 160},
		{Source: 10, Target: 12, Value: 40},
		{Source: 10, Target: 13, Value: 100},
		{Source: 10, Target: 14, Value: 190},
		{Source: 11, Target: 13, Value: 8},
		{Source: 11, Target: 14, Value: 162},
	}
}
