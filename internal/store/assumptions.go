package store

import (
	"fmt"

	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// 假设集在 config 表中使用的键
const (
	keyCompanyName        = "company_name"
	keyStartYear          = "start_year"
	keyBenefitsLoadPct    = "benefits_load_pct"
	keyPricingMode        = "pricing_mode"
	keyRevenuePerUnit     = "revenue_per_unit"
	keyVariableCost       = "variable_cost_per_unit"
	keyVariableCostManual = "variable_cost_manual"
	keyMonthlyVolume      = "monthly_volume"
	keyHorizonYears       = "horizon_years"
	keyVolumeGrowthPct    = "volume_growth_pct"
	keyPriceGrowthPct     = "price_growth_pct"
	keyCostInflationPct   = "cost_inflation_pct"
	keyFinancingEnabled   = "financing_enabled"
	keyFinancingPrincipal = "financing_principal"
	keyFinancingRatePct   = "financing_rate_pct"
	keyFinancingTermMo    = "financing_term_months"
)

// ensureDefaults 首次打开会话库时写入缺省假设
func (s *Store) ensureDefaults() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM config").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.SaveAssumptions(model.DefaultAssumptions())
}

// SaveAssumptions 整体写入手工假设（不含上传的表格，那部分走 Replace*Rows）
func (s *Store) SaveAssumptions(a model.AssumptionSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	set := func(key, value string) {
		if err == nil {
			_, err = tx.Exec(`
				INSERT INTO config (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
			`, key, value, value)
		}
	}

	set(keyCompanyName, a.CompanyName)
	set(keyStartYear, fmt.Sprintf("%d", a.StartYear))
	set(keyBenefitsLoadPct, formatFloat(a.BenefitsLoadPct))
	set(keyPricingMode, string(a.Pricing.Mode))
	set(keyRevenuePerUnit, formatFloat(a.Pricing.RevenuePerUnit))
	set(keyVariableCost, formatFloat(a.Pricing.VariableCostPerUnit))
	set(keyVariableCostManual, formatBool(a.Pricing.VariableCostManual))
	set(keyMonthlyVolume, fmt.Sprintf("%d", a.MonthlyVolume))
	set(keyHorizonYears, fmt.Sprintf("%d", a.Projection.HorizonYears))
	set(keyVolumeGrowthPct, formatFloat(a.Projection.VolumeGrowthPct))
	set(keyPriceGrowthPct, formatFloat(a.Projection.PriceGrowthPct))
	set(keyCostInflationPct, formatFloat(a.Projection.CostInflationPct))

	if a.Financing != nil {
		set(keyFinancingEnabled, "1")
		set(keyFinancingPrincipal, formatFloat(a.Financing.Principal))
		set(keyFinancingRatePct, formatFloat(a.Financing.AnnualRatePct))
		set(keyFinancingTermMo, fmt.Sprintf("%d", a.Financing.TermMonths))
	} else {
		set(keyFinancingEnabled, "0")
	}
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM staffing"); err != nil {
		return err
	}
	for i, role := range a.Staffing {
		if _, err = tx.Exec(`
			INSERT INTO staffing (sort_no, role, headcount, annual_salary) VALUES (?, ?, ?, ?)
		`, i, role.Role, role.Headcount, role.AnnualSalary); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM fixed_line_items"); err != nil {
		return err
	}
	for category, amount := range a.FixedLineItems {
		if _, err = tx.Exec(`
			INSERT INTO fixed_line_items (category, monthly_usd) VALUES (?, ?)
		`, category, amount); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM test_mix"); err != nil {
		return err
	}
	for category, c := range a.Pricing.TestMix {
		if _, err = tx.Exec(`
			INSERT INTO test_mix (category, percent_of_volume, price, variable_cost) VALUES (?, ?, ?, ?)
		`, category, c.PercentOfVolume, c.Price, c.VariableCost); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM selected_analytes"); err != nil {
		return err
	}
	for _, item := range a.Pricing.SelectedItems {
		if _, err = tx.Exec(`
			INSERT OR IGNORE INTO selected_analytes (analyte) VALUES (?)
		`, item); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadAssumptions 组装当前会话的完整假设集
// 手工输入来自 config 与明细表，价目表/预算表来自上传数据
func (s *Store) LoadAssumptions() (model.AssumptionSet, error) {
	var a model.AssumptionSet

	cfg, err := s.GetAllConfig()
	if err != nil {
		return a, fmt.Errorf("failed to load config: %w", err)
	}

	a.CompanyName = cfg[keyCompanyName]
	a.StartYear = atoiOr(cfg[keyStartYear], 0)
	a.BenefitsLoadPct = atofOr(cfg[keyBenefitsLoadPct], 0)
	a.MonthlyVolume = atoiOr(cfg[keyMonthlyVolume], 0)
	a.Projection = model.ProjectionParams{
		HorizonYears:     atoiOr(cfg[keyHorizonYears], 5),
		VolumeGrowthPct:  atofOr(cfg[keyVolumeGrowthPct], 0),
		PriceGrowthPct:   atofOr(cfg[keyPriceGrowthPct], 0),
		CostInflationPct: atofOr(cfg[keyCostInflationPct], 0),
	}

	a.Pricing = model.UnitPricing{
		Mode:                model.PricingMode(cfg[keyPricingMode]),
		RevenuePerUnit:      atofOr(cfg[keyRevenuePerUnit], 0),
		VariableCostPerUnit: atofOr(cfg[keyVariableCost], 0),
		VariableCostManual:  cfg[keyVariableCostManual] == "1",
	}
	if a.Pricing.Mode == "" {
		a.Pricing.Mode = model.PricingFlat
	}

	if cfg[keyFinancingEnabled] == "1" {
		a.Financing = &model.EquipmentFinancing{
			Principal:     atofOr(cfg[keyFinancingPrincipal], 0),
			AnnualRatePct: atofOr(cfg[keyFinancingRatePct], 0),
			TermMonths:    atoiOr(cfg[keyFinancingTermMo], 0),
		}
	}

	if a.Staffing, err = s.getStaffing(); err != nil {
		return a, err
	}
	if a.FixedLineItems, err = s.getFixedLineItems(); err != nil {
		return a, err
	}
	if a.Pricing.TestMix, err = s.getTestMix(); err != nil {
		return a, err
	}
	if a.Pricing.SelectedItems, err = s.GetSelectedAnalytes(); err != nil {
		return a, err
	}

	priceRows, err := s.GetPriceRows()
	if err != nil {
		return a, err
	}
	if len(priceRows) > 0 {
		a.Pricing.PriceList = make(map[string]float64, len(priceRows))
		// 后出现的同名项目覆盖先前的
		for _, r := range priceRows {
			a.Pricing.PriceList[r.Analyte] = r.Price
		}
	}

	if a.LedgerOverride, err = s.GetBudgetRows(); err != nil {
		return a, err
	}

	return a, nil
}

// ResetAssumptions 恢复缺省假设并清空上传的表格（整个会话归零）
func (s *Store) ResetAssumptions() error {
	if err := s.ClearBudgetRows(); err != nil {
		return err
	}
	if err := s.ClearPriceRows(); err != nil {
		return err
	}
	return s.SaveAssumptions(model.DefaultAssumptions())
}

func (s *Store) getStaffing() ([]model.StaffRole, error) {
	rows, err := s.db.Query("SELECT role, headcount, annual_salary FROM staffing ORDER BY sort_no")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StaffRole
	for rows.Next() {
		var r model.StaffRole
		if err := rows.Scan(&r.Role, &r.Headcount, &r.AnnualSalary); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *Store) getFixedLineItems() (map[string]float64, error) {
	rows, err := s.db.Query("SELECT category, monthly_usd FROM fixed_line_items")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]float64)
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, err
		}
		result[category] = amount
	}
	return result, rows.Err()
}

func (s *Store) getTestMix() (map[string]model.MixComponent, error) {
	rows, err := s.db.Query("SELECT category, percent_of_volume, price, variable_cost FROM test_mix")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]model.MixComponent)
	for rows.Next() {
		var category string
		var c model.MixComponent
		if err := rows.Scan(&category, &c.PercentOfVolume, &c.Price, &c.VariableCost); err != nil {
			return nil, err
		}
		result[category] = c
	}
	if len(result) == 0 {
		return nil, rows.Err()
	}
	return result, rows.Err()
}
