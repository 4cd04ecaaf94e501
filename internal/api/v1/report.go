package v1

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ErmiasKetos/kelpbiz/internal/calculator"
	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// KPIView 展示用 KPI
// 盈亏平衡不可达时 BreakEvenVolume 为 null、BreakEvenReachable 为 false
type KPIView struct {
	MonthlyFixedCost    float64  `json:"monthlyFixedCost"`
	RevenuePerUnit      float64  `json:"revenuePerUnit"`
	VariableCostPerUnit float64  `json:"variableCostPerUnit"`
	ContributionMargin  float64  `json:"contributionMargin"`
	BreakEvenVolume     *float64 `json:"breakEvenVolume"`
	BreakEvenReachable  bool     `json:"breakEvenReachable"`
	MonthlyProfit       float64  `json:"monthlyProfit"`
}

// ReportResponse 测算结果响应
type ReportResponse struct {
	KPI                   KPIView            `json:"kpi"`
	ReagentHint           float64            `json:"reagentHint"`
	SuggestedVariableCost float64            `json:"suggestedVariableCost"`
	ProfitCurve           []model.CurvePoint `json:"profitCurve"`
	Projection            []model.YearRow    `json:"projection"`
}

// GetReport 全量测算
// GET /api/report?maxVolume=2500&step=100
func (h *Handler) GetReport(c *gin.Context) {
	a, err := h.store.LoadAssumptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "加载假设失败"})
		return
	}

	opts := calculator.ReportOptions{
		CurveMaxVolume: queryInt(c, "maxVolume", h.defaults.CurveMaxVolume),
		CurveStep:      queryInt(c, "step", h.defaults.CurveStep),
	}

	report := calculator.BuildReport(a, opts)
	c.JSON(http.StatusOK, buildReportResponse(report))
}

// buildReportResponse 内部结果转展示结构：KPI 取整/保留两位，
// +Inf 哨兵转为 null（JSON 无法承载 Inf）
func buildReportResponse(r model.DerivedFinancials) ReportResponse {
	kpi := KPIView{
		MonthlyFixedCost:    math.Round(r.KPI.MonthlyFixedCost),
		RevenuePerUnit:      round2(r.KPI.RevenuePerUnit),
		VariableCostPerUnit: round2(r.KPI.VariableCostPerUnit),
		ContributionMargin:  round2(r.KPI.ContributionMargin),
		MonthlyProfit:       math.Round(r.KPI.MonthlyProfit),
	}
	if !math.IsInf(r.KPI.BreakEvenVolume, 1) {
		be := math.Round(r.KPI.BreakEvenVolume)
		kpi.BreakEvenVolume = &be
		kpi.BreakEvenReachable = true
	}

	rows := make([]model.YearRow, len(r.Projection))
	for i, row := range r.Projection {
		rows[i] = model.YearRow{
			Year:         row.Year,
			Volume:       math.Round(row.Volume),
			Revenue:      math.Round(row.Revenue),
			VariableCost: math.Round(row.VariableCost),
			FixedCost:    math.Round(row.FixedCost),
			EBITDA:       math.Round(row.EBITDA),
		}
	}

	return ReportResponse{
		KPI:                   kpi,
		ReagentHint:           r.ReagentHint,
		SuggestedVariableCost: r.SuggestedVariableCost,
		ProfitCurve:           r.ProfitCurve,
		Projection:            rows,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// queryInt 解析查询参数中的整数，缺失或非法时用缺省值
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
