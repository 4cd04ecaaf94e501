package calculator

import (
	"strings"

	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// reagentKeywords 预算行名称中标记"随样本量变动"的关键词（不区分大小写）
var reagentKeywords = []string{"consumable", "reagent", "media", "chem"}

// AggregateFixedCost 汇总月固定成本
// 手工口径 = 月工资（含福利负担）+ 各固定行项 + 设备融资月供；
// 提供了非空预算表时，其 Monthly USD 合计整体取代手工口径（不做部分合并）。
// 同时返回试剂相关行项合计，供变动成本提示值使用。
func AggregateFixedCost(a model.AssumptionSet) (monthlyFixed, reagentHint float64) {
	var annualPayroll float64
	for _, s := range a.Staffing {
		annualPayroll += s.Headcount * s.AnnualSalary
	}
	monthlyPayroll := annualPayroll * (1 + a.BenefitsLoadPct) / 12

	manualFixed := monthlyPayroll
	for _, amount := range a.FixedLineItems {
		manualFixed += amount
	}
	if a.Financing != nil {
		manualFixed += LeasePayment(a.Financing.Principal, a.Financing.AnnualRatePct, a.Financing.TermMonths)
	}

	monthlyFixed = manualFixed
	if len(a.LedgerOverride) > 0 {
		var ledgerSum float64
		for _, row := range a.LedgerOverride {
			ledgerSum += row.MonthlyUSD
			if matchesReagentKeyword(row.Name) {
				reagentHint += row.MonthlyUSD
			}
		}
		monthlyFixed = ledgerSum
	}

	return monthlyFixed, reagentHint
}

// MonthlyPayroll 月工资支出（含福利与工资税负担）
func MonthlyPayroll(a model.AssumptionSet) float64 {
	var annualPayroll float64
	for _, s := range a.Staffing {
		annualPayroll += s.Headcount * s.AnnualSalary
	}
	return annualPayroll * (1 + a.BenefitsLoadPct) / 12
}

// matchesReagentKeyword 预算行名称是否命中任一试剂关键词
func matchesReagentKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range reagentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
