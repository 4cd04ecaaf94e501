package store

import (
	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// ReplaceBudgetRows 整表替换运营预算行
func (s *Store) ReplaceBudgetRows(rows []model.BudgetRow, sourceFile string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM budget_rows"); err != nil {
		return err
	}
	for i, row := range rows {
		if _, err := tx.Exec(`
			INSERT INTO budget_rows (row_no, name, monthly_usd, source_file) VALUES (?, ?, ?, ?)
		`, i+1, row.Name, row.MonthlyUSD, sourceFile); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetBudgetRows 按原始行序返回预算行；无预算表时返回 nil
func (s *Store) GetBudgetRows() ([]model.BudgetRow, error) {
	rows, err := s.db.Query("SELECT name, monthly_usd FROM budget_rows ORDER BY row_no")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.BudgetRow
	for rows.Next() {
		var r model.BudgetRow
		if err := rows.Scan(&r.Name, &r.MonthlyUSD); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ClearBudgetRows 删除预算表（回到手工汇总口径）
func (s *Store) ClearBudgetRows() error {
	return s.Exec("DELETE FROM budget_rows")
}

// CountBudgetRows 预算行数
func (s *Store) CountBudgetRows() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM budget_rows").Scan(&count)
	return count, err
}

// ReplacePriceRows 整表替换价目行，并清掉不再存在的选中项目
func (s *Store) ReplacePriceRows(rows []model.PriceRow, sourceFile string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM price_rows"); err != nil {
		return err
	}
	for i, row := range rows {
		if _, err := tx.Exec(`
			INSERT INTO price_rows (row_no, analyte, price, source_file) VALUES (?, ?, ?, ?)
		`, i+1, row.Analyte, row.Price, sourceFile); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		DELETE FROM selected_analytes WHERE analyte NOT IN (SELECT analyte FROM price_rows)
	`); err != nil {
		return err
	}

	return tx.Commit()
}

// GetPriceRows 按原始行序返回价目行；无价目表时返回 nil
func (s *Store) GetPriceRows() ([]model.PriceRow, error) {
	rows, err := s.db.Query("SELECT analyte, price FROM price_rows ORDER BY row_no")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PriceRow
	for rows.Next() {
		var r model.PriceRow
		if err := rows.Scan(&r.Analyte, &r.Price); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ClearPriceRows 删除价目表及选中项目
func (s *Store) ClearPriceRows() error {
	if err := s.Exec("DELETE FROM selected_analytes"); err != nil {
		return err
	}
	return s.Exec("DELETE FROM price_rows")
}

// CountPriceRows 价目行数
func (s *Store) CountPriceRows() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM price_rows").Scan(&count)
	return count, err
}

// SetSelectedAnalytes 设置 selection 定价模式下选中的项目集合
func (s *Store) SetSelectedAnalytes(analytes []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM selected_analytes"); err != nil {
		return err
	}
	for _, a := range analytes {
		if _, err := tx.Exec("INSERT OR IGNORE INTO selected_analytes (analyte) VALUES (?)", a); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetSelectedAnalytes 获取选中的项目集合
func (s *Store) GetSelectedAnalytes() ([]string, error) {
	rows, err := s.db.Query("SELECT analyte FROM selected_analytes ORDER BY analyte")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
