// Package parser 解析上传的两类表格文件并归一化为内存行。
// 支持 CSV 与 Excel (取第一个工作表)；列缺失返回校验错误，
// 由调用方回退到手工汇总/直接定价，不中断测算。
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

const (
	budgetNameColumn   = "Name"
	budgetAmountColumn = "Monthly USD"
	priceNameColumn    = "Analyte"
	priceValueColumn   = "Price"
)

// ParseBudget 解析运营预算表 (Name / Monthly USD)
func ParseBudget(reader io.Reader, filename string) ([]model.BudgetRow, error) {
	rows, err := readTable(reader, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty table")
	}

	headers := rows[0]
	nameIdx, ok := findColumn(headers, budgetNameColumn)
	if !ok {
		return nil, fmt.Errorf("missing required column %q", budgetNameColumn)
	}
	amountIdx, ok := findColumn(headers, budgetAmountColumn)
	if !ok {
		return nil, fmt.Errorf("missing required column %q", budgetAmountColumn)
	}

	result := make([]model.BudgetRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		amount, err := parseAmount(cellAt(row, amountIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		result = append(result, model.BudgetRow{
			Name:       strings.TrimSpace(cellAt(row, nameIdx)),
			MonthlyUSD: amount,
		})
	}
	return result, nil
}

// ParsePrices 解析检测项目价目表 (Analyte / Price)
// 后出现的同名项目覆盖先前的，与调用方构造 map 的行为一致
func ParsePrices(reader io.Reader, filename string) ([]model.PriceRow, error) {
	rows, err := readTable(reader, filename)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty table")
	}

	headers := rows[0]
	nameIdx, ok := findColumn(headers, priceNameColumn)
	if !ok {
		return nil, fmt.Errorf("missing required column %q", priceNameColumn)
	}
	priceIdx, ok := findColumn(headers, priceValueColumn)
	if !ok {
		return nil, fmt.Errorf("missing required column %q", priceValueColumn)
	}

	result := make([]model.PriceRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		price, err := parseAmount(cellAt(row, priceIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		result = append(result, model.PriceRow{
			Analyte: strings.TrimSpace(cellAt(row, nameIdx)),
			Price:   price,
		})
	}
	return result, nil
}

// PriceMap 价目行转 map，后出现的同名项目覆盖先前的
func PriceMap(rows []model.PriceRow) map[string]float64 {
	prices := make(map[string]float64, len(rows))
	for _, r := range rows {
		prices[r.Analyte] = r.Price
	}
	return prices
}

// readTable 按扩展名分流读取：.csv 走 CSV，其余按 Excel 处理
func readTable(reader io.Reader, filename string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(reader)
	}
	return readExcel(reader)
}

func readCSV(reader io.Reader) ([][]string, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

func readExcel(reader io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
