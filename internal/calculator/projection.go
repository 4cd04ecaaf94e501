package calculator

import (
	"math"

	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// ProjectYears 多年经营预测
// 增速/通胀均为复合年增长率，可为负（收缩情形），EBITDA 不设下限。
// 输出统一为年化口径：样本量、收入、变动成本、固定成本全部 x12，
// 保证 ebitda = revenue - variableCost - fixedCost 在行内自洽。
func ProjectYears(monthlyVolume int, revenuePerUnit, variableCostPerUnit, monthlyFixedCost float64,
	startYear int, p model.ProjectionParams) []model.YearRow {

	horizon := p.HorizonYears
	if horizon < 1 {
		horizon = 5
	}

	rows := make([]model.YearRow, 0, horizon)
	for y := 0; y < horizon; y++ {
		fy := float64(y)
		volumeMonthly := float64(monthlyVolume) * math.Pow(1+p.VolumeGrowthPct/100, fy)
		volumeAnnual := volumeMonthly * 12

		revenue := volumeAnnual * revenuePerUnit * math.Pow(1+p.PriceGrowthPct/100, fy)
		variable := volumeAnnual * variableCostPerUnit * math.Pow(1+p.CostInflationPct/100, fy)
		fixed := monthlyFixedCost * 12 * math.Pow(1+p.CostInflationPct/100, fy)

		rows = append(rows, model.YearRow{
			Year:         startYear + y,
			Volume:       volumeAnnual,
			Revenue:      revenue,
			VariableCost: variable,
			FixedCost:    fixed,
			EBITDA:       revenue - variable - fixed,
		})
	}
	return rows
}
