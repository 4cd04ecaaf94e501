package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// normalizeHeader 归一化列名用于匹配：去空白、去 BOM、转小写
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.TrimSpace(s))
}

// findColumn 在表头行中定位列（列名匹配不区分大小写）
func findColumn(headers []string, name string) (int, bool) {
	want := normalizeHeader(name)
	for i, h := range headers {
		if normalizeHeader(h) == want {
			return i, true
		}
	}
	return -1, false
}

// parseAmount 解析金额单元格
// 容忍 "$1,234.56" / "1 234" 这类带货币符号、千分位的写法
func parseAmount(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", cell)
	}
	return v, nil
}

// cellAt 安全取行内单元格，越界返回空串
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// isBlankRow 整行是否为空
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
