package calculator

import (
	"math"

	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// BreakEven 盈亏平衡月样本量
// 贡献边际 <= 0 时返回 +Inf：无论多大通量都无法覆盖固定成本
func BreakEven(monthlyFixedCost, revenuePerUnit, variableCostPerUnit float64) float64 {
	margin := revenuePerUnit - variableCostPerUnit
	if margin <= 0 {
		return math.Inf(1)
	}
	return monthlyFixedCost / margin
}

// BuildProfitCurve 利润-通量曲线
// volume = 0, step, 2*step, ... <= maxVolume；profit = 贡献边际*volume - 固定成本。
// maxVolume 与 step 是展示参数，step 非正时按 1 计
func BuildProfitCurve(revenuePerUnit, variableCostPerUnit, monthlyFixedCost float64, maxVolume, step int) []model.CurvePoint {
	if step < 1 {
		step = 1
	}
	if maxVolume < 0 {
		maxVolume = 0
	}

	margin := revenuePerUnit - variableCostPerUnit
	points := make([]model.CurvePoint, 0, maxVolume/step+1)
	for v := 0; v <= maxVolume; v += step {
		points = append(points, model.CurvePoint{
			Volume: v,
			Profit: margin*float64(v) - monthlyFixedCost,
		})
	}
	return points
}
