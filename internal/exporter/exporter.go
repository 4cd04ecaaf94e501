// Package exporter 生成测算报告工作簿。
// 与月报类导出不同，这里没有定稿模板，每次从空工作簿生成：
// 概览页（KPI + 假设快照）和预测页（逐年年化行）。
package exporter

import (
	"fmt"
	"math"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

const (
	sheetOverview   = "模型概览"
	sheetProjection = "多年预测"
)

// BuildWorkbook 由假设集与测算结果生成工作簿
func BuildWorkbook(a model.AssumptionSet, report model.DerivedFinancials) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), sheetOverview); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("重命名概览页失败: %w", err)
	}
	if _, err := f.NewSheet(sheetProjection); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("创建预测页失败: %w", err)
	}

	if err := fillOverview(f, a, report); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := fillProjection(f, report.Projection); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func fillOverview(f *excelize.File, a model.AssumptionSet, report model.DerivedFinancials) error {
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return err
	}
	unitStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}

	kpi := report.KPI
	rows := []struct {
		label string
		value interface{}
		style int
	}{
		{"公司", a.CompanyName, 0},
		{"月固定成本 (USD)", kpi.MonthlyFixedCost, moneyStyle},
		{"单样本收入 (USD)", kpi.RevenuePerUnit, unitStyle},
		{"单样本变动成本 (USD)", kpi.VariableCostPerUnit, unitStyle},
		{"单样本贡献边际 (USD)", kpi.ContributionMargin, unitStyle},
		{"盈亏平衡样本量 (月)", breakEvenCell(kpi.BreakEvenVolume), moneyStyle},
		{"月利润 @ 当前通量 (USD)", kpi.MonthlyProfit, moneyStyle},
		{"月样本量假设", a.MonthlyVolume, 0},
		{"试剂行项合计 (USD/月)", report.ReagentHint, moneyStyle},
		{"建议单样本变动成本 (USD)", report.SuggestedVariableCost, unitStyle},
	}

	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		valueCell := fmt.Sprintf("B%d", i+1)
		if err := f.SetCellValue(sheetOverview, labelCell, row.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetOverview, valueCell, row.value); err != nil {
			return err
		}
		if row.style != 0 {
			if _, ok := row.value.(float64); ok {
				if err := f.SetCellStyle(sheetOverview, valueCell, valueCell, row.style); err != nil {
					return err
				}
			}
		}
	}

	// 固定成本行项快照（按名称排序保证输出稳定）
	startRow := len(rows) + 2
	if err := f.SetCellValue(sheetOverview, fmt.Sprintf("A%d", startRow), "固定成本行项 (USD/月)"); err != nil {
		return err
	}
	categories := make([]string, 0, len(a.FixedLineItems))
	for c := range a.FixedLineItems {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for i, category := range categories {
		r := startRow + 1 + i
		if err := f.SetCellValue(sheetOverview, fmt.Sprintf("A%d", r), category); err != nil {
			return err
		}
		cell := fmt.Sprintf("B%d", r)
		if err := f.SetCellValue(sheetOverview, cell, a.FixedLineItems[category]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetOverview, cell, cell, moneyStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetOverview, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(sheetOverview, "B", "B", 18)
}

func fillProjection(f *excelize.File, rows []model.YearRow) error {
	headers := []interface{}{"年份", "年样本量", "收入 (USD)", "变动成本 (USD)", "固定成本 (USD)", "EBITDA (USD)"}
	if err := f.SetSheetRow(sheetProjection, "A1", &headers); err != nil {
		return err
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return err
	}

	for i, row := range rows {
		values := []interface{}{
			row.Year,
			math.Round(row.Volume),
			math.Round(row.Revenue),
			math.Round(row.VariableCost),
			math.Round(row.FixedCost),
			math.Round(row.EBITDA),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetProjection, cell, &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetProjection,
			fmt.Sprintf("B%d", i+2), fmt.Sprintf("F%d", i+2), moneyStyle); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetProjection, "A", "F", 16)
}

// breakEvenCell 不可达盈亏平衡在单元格中显示为文本
func breakEvenCell(v float64) interface{} {
	if math.IsInf(v, 1) {
		return "不可达"
	}
	return v
}
