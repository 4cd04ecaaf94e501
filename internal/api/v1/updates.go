package v1

import (
	"fmt"

	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// applyScalarUpdate 应用单个标量字段更新
// JSON 数值统一以 float64 到达，此处做类型与范围检查
func applyScalarUpdate(a *model.AssumptionSet, key string, value interface{}) error {
	switch key {
	case "companyName":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("companyName 须为字符串")
		}
		a.CompanyName = s

	case "startYear":
		v, err := asInt(value)
		if err != nil {
			return fmt.Errorf("startYear 须为整数")
		}
		a.StartYear = v

	case "benefitsLoadPct":
		v, ok := value.(float64)
		if !ok || v < 0 || v > 1 {
			return fmt.Errorf("benefitsLoadPct 须为 0~1 的数值")
		}
		a.BenefitsLoadPct = v

	case "monthlyVolume":
		v, err := asInt(value)
		if err != nil || v < 0 {
			return fmt.Errorf("monthlyVolume 须为非负整数")
		}
		a.MonthlyVolume = v

	case "pricingMode":
		s, ok := value.(string)
		mode := model.PricingMode(s)
		if !ok || (mode != model.PricingFlat && mode != model.PricingSelection && mode != model.PricingMix) {
			return fmt.Errorf("pricingMode 须为 flat/selection/mix")
		}
		a.Pricing.Mode = mode

	case "revenuePerUnit":
		v, ok := value.(float64)
		if !ok || v < 0 {
			return fmt.Errorf("revenuePerUnit 须为非负数值")
		}
		a.Pricing.RevenuePerUnit = v

	case "variableCostPerUnit":
		v, ok := value.(float64)
		if !ok || v < 0 {
			return fmt.Errorf("variableCostPerUnit 须为非负数值")
		}
		a.Pricing.VariableCostPerUnit = v
		// 用户显式设置后，试剂提示值不再覆盖
		a.Pricing.VariableCostManual = true

	case "variableCostManual":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("variableCostManual 须为布尔值")
		}
		a.Pricing.VariableCostManual = b

	case "horizonYears":
		v, err := asInt(value)
		if err != nil || v < 1 {
			return fmt.Errorf("horizonYears 须为正整数")
		}
		a.Projection.HorizonYears = v

	case "volumeGrowthPct":
		v, ok := value.(float64)
		if !ok {
			return fmt.Errorf("volumeGrowthPct 须为数值")
		}
		a.Projection.VolumeGrowthPct = v

	case "priceGrowthPct":
		v, ok := value.(float64)
		if !ok {
			return fmt.Errorf("priceGrowthPct 须为数值")
		}
		a.Projection.PriceGrowthPct = v

	case "costInflationPct":
		v, ok := value.(float64)
		if !ok {
			return fmt.Errorf("costInflationPct 须为数值")
		}
		a.Projection.CostInflationPct = v

	default:
		return fmt.Errorf("不支持的字段: %s", key)
	}
	return nil
}

// asInt JSON 数值（float64）转整数，要求无小数部分
func asInt(value interface{}) (int, error) {
	f, ok := value.(float64)
	if !ok || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}
