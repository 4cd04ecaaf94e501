package model

import "time"

// DefaultAssumptions 缺省假设集
// "恢复默认" 即重新提供这份值，不存在跨请求的可变状态
func DefaultAssumptions() AssumptionSet {
	return AssumptionSet{
		CompanyName: "KELP Laboratory LLC",
		StartYear:   time.Now().Year(),
		Staffing: []StaffRole{
			{Role: "Lab Director", Headcount: 1, AnnualSalary: 125000},
			{Role: "Sr Scientist", Headcount: 4, AnnualSalary: 93000},
			{Role: "Lab Tech", Headcount: 2, AnnualSalary: 51000},
			{Role: "Admin", Headcount: 0.5, AnnualSalary: 49000},
		},
		BenefitsLoadPct: 0.25,
		FixedLineItems: map[string]float64{
			"Lab rent":              21945,
			"Instrument leases":     14000,
			"Utilities":             2000,
			"UHP argon packs":       5324,
			"OEM service contracts": 5000,
			"Insurance":             2500,
			"Lab cleaning":          1500,
			"IT & LIMS SaaS":        4000,
			"Regulatory & PT fees":  1960,
			"Other fixed G&A":       500,
		},
		Pricing: UnitPricing{
			Mode:                PricingFlat,
			RevenuePerUnit:      120,
			VariableCostPerUnit: 22,
		},
		MonthlyVolume: 1400,
		Projection: ProjectionParams{
			HorizonYears:     5,
			VolumeGrowthPct:  20,
			PriceGrowthPct:   3,
			CostInflationPct: 4,
		},
	}
}
