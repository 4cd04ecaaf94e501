package calculator

import (
	"math"

	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// defaultVariableCost 无预算表信息时的单样本变动成本缺省值
const defaultVariableCost = 22.0

// ResolveUnitEconomics 解析单样本收入与变动成本
// 收入按定价模式计算；变动成本优先取用户显式设置的值，
// 否则使用试剂提示值（见 VariableCostHint）。
func ResolveUnitEconomics(p model.UnitPricing, reagentHint float64, monthlyVolume int) (revenuePerUnit, variableCostPerUnit float64) {
	switch p.Mode {
	case model.PricingSelection:
		for _, item := range p.SelectedItems {
			revenuePerUnit += p.PriceList[item]
		}
	case model.PricingMix:
		// 占比按原值加权，不归一化到 100
		for _, c := range p.TestMix {
			revenuePerUnit += c.PercentOfVolume / 100 * c.Price
		}
	default:
		revenuePerUnit = p.RevenuePerUnit
	}

	if p.Mode == model.PricingMix {
		for _, c := range p.TestMix {
			variableCostPerUnit += c.PercentOfVolume / 100 * c.VariableCost
		}
		return revenuePerUnit, variableCostPerUnit
	}

	variableCostPerUnit = p.VariableCostPerUnit
	if !p.VariableCostManual {
		variableCostPerUnit = VariableCostHint(reagentHint, monthlyVolume)
	}
	return revenuePerUnit, variableCostPerUnit
}

// VariableCostHint 单样本变动成本提示值
// 预算表含试剂行项时按月样本量摊薄并保留两位小数；月样本量为 0 时按 1 计，
// 避免除零。无试剂信息时返回固定缺省值。
func VariableCostHint(reagentHint float64, monthlyVolume int) float64 {
	if reagentHint <= 0 {
		return defaultVariableCost
	}
	volume := monthlyVolume
	if volume < 1 {
		volume = 1
	}
	return math.Round(reagentHint/float64(volume)*100) / 100
}
