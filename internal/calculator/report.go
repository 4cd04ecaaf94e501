package calculator

import (
	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// ReportOptions 报表展示参数（非业务输入）
type ReportOptions struct {
	CurveMaxVolume int // 利润曲线采样上限
	CurveStep      int // 利润曲线采样步长
}

// BuildReport 由假设集一次性推导全部财务输出
// 纯函数：固定成本汇总 -> 单样本经济性 -> 盈亏平衡/利润曲线 -> 多年预测
func BuildReport(a model.AssumptionSet, opts ReportOptions) model.DerivedFinancials {
	monthlyFixed, reagentHint := AggregateFixedCost(a)
	revenuePerUnit, variableCost := ResolveUnitEconomics(a.Pricing, reagentHint, a.MonthlyVolume)

	margin := revenuePerUnit - variableCost
	volume := float64(a.MonthlyVolume)

	return model.DerivedFinancials{
		KPI: model.KPI{
			MonthlyFixedCost:    monthlyFixed,
			RevenuePerUnit:      revenuePerUnit,
			VariableCostPerUnit: variableCost,
			ContributionMargin:  margin,
			BreakEvenVolume:     BreakEven(monthlyFixed, revenuePerUnit, variableCost),
			MonthlyProfit:       volume*revenuePerUnit - volume*variableCost - monthlyFixed,
		},
		ReagentHint:           reagentHint,
		SuggestedVariableCost: VariableCostHint(reagentHint, a.MonthlyVolume),
		ProfitCurve:           BuildProfitCurve(revenuePerUnit, variableCost, monthlyFixed, opts.CurveMaxVolume, opts.CurveStep),
		Projection:            ProjectYears(a.MonthlyVolume, revenuePerUnit, variableCost, monthlyFixed, a.StartYear, a.Projection),
	}
}
