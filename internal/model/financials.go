package model

// KPI 核心指标
// BreakEvenVolume 在贡献边际 <= 0 时为 +Inf，表示不可达盈亏平衡
type KPI struct {
	MonthlyFixedCost    float64 `json:"monthlyFixedCost"`
	RevenuePerUnit      float64 `json:"revenuePerUnit"`
	VariableCostPerUnit float64 `json:"variableCostPerUnit"`
	ContributionMargin  float64 `json:"contributionMargin"`
	BreakEvenVolume     float64 `json:"breakEvenVolume"`
	MonthlyProfit       float64 `json:"monthlyProfit"`
}

// CurvePoint 利润-通量曲线上的一个采样点
type CurvePoint struct {
	Volume int     `json:"volume"`
	Profit float64 `json:"profit"`
}

// YearRow 多年预测的一行，全部为年化口径
type YearRow struct {
	Year         int     `json:"year"`
	Volume       float64 `json:"volume"`       // 年样本量
	Revenue      float64 `json:"revenue"`      // 年收入
	VariableCost float64 `json:"variableCost"` // 年变动成本
	FixedCost    float64 `json:"fixedCost"`    // 年固定成本
	EBITDA       float64 `json:"ebitda"`
}

// DerivedFinancials 一次测算的完整输出
// 由 AssumptionSet 完全决定，任一输入变化即整体重算
type DerivedFinancials struct {
	KPI KPI `json:"kpi"`

	// 试剂相关行项合计（来自预算表，无预算表时为 0）
	ReagentHint float64 `json:"reagentHint"`
	// 建议单样本变动成本（提示值，调用方可覆盖）
	SuggestedVariableCost float64 `json:"suggestedVariableCost"`

	ProfitCurve []CurvePoint `json:"profitCurve"`
	Projection  []YearRow    `json:"projection"`
}
