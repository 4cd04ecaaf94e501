package model

// BudgetRow 运营预算表的一行（已归一化）
// 来源列: Name / Monthly USD
type BudgetRow struct {
	Name       string  `json:"name"`
	MonthlyUSD float64 `json:"monthlyUSD"`
}

// PriceRow 检测项目价目表的一行（已归一化）
// 来源列: Analyte / Price；后出现的同名项目覆盖先前的
type PriceRow struct {
	Analyte string  `json:"analyte"`
	Price   float64 `json:"price"`
}
