package exporter

import (
	"math"
	"testing"

	"github.com/ErmiasKetos/kelpbiz/internal/calculator"
	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

func TestBuildWorkbook(t *testing.T) {
	a := model.DefaultAssumptions()
	report := calculator.BuildReport(a, calculator.ReportOptions{CurveMaxVolume: 2500, CurveStep: 100})

	f, err := BuildWorkbook(a, report)
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets=%v", sheets)
	}

	// 概览页第二行为月固定成本
	label, err := f.GetCellValue("模型概览", "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if label != "月固定成本 (USD)" {
		t.Fatalf("A2=%q", label)
	}

	// 预测页应有表头 + 5 年数据
	rows, err := f.GetRows("多年预测")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("预测页行数=%d want=6", len(rows))
	}
	if rows[0][0] != "年份" {
		t.Fatalf("表头=%v", rows[0])
	}
}

func TestBuildWorkbook_UnreachableBreakEven(t *testing.T) {
	a := model.DefaultAssumptions()
	a.Pricing.RevenuePerUnit = 10
	a.Pricing.VariableCostPerUnit = 22
	a.Pricing.VariableCostManual = true

	report := calculator.BuildReport(a, calculator.ReportOptions{CurveMaxVolume: 100, CurveStep: 10})
	if !math.IsInf(report.KPI.BreakEvenVolume, 1) {
		t.Fatalf("前置条件失败: breakEven=%v", report.KPI.BreakEvenVolume)
	}

	f, err := BuildWorkbook(a, report)
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	v, err := f.GetCellValue("模型概览", "B6")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "不可达" {
		t.Fatalf("不可达盈亏平衡应显示为文本: %q", v)
	}
}
