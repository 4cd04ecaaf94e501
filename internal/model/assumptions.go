package model

// PricingMode 单样本定价模式
// 三种模式互斥，由 Mode 字段显式标记（不再靠可选字段是否存在来推断）
type PricingMode string

const (
	// PricingFlat 直接给定单样本收入
	PricingFlat PricingMode = "flat"
	// PricingSelection 按选中的检测项目价格求和
	PricingSelection PricingMode = "selection"
	// PricingMix 按检测组合占比加权
	PricingMix PricingMode = "mix"
)

// StaffRole 人员配置条目
type StaffRole struct {
	Role         string  `json:"role"`         // 岗位名称
	Headcount    float64 `json:"headcount"`    // 人数 (支持 0.5 等兼职折算)
	AnnualSalary float64 `json:"annualSalary"` // 年薪 (美元)
}

// EquipmentFinancing 设备融资条款
// 解析为等额月供后并入固定成本行项
type EquipmentFinancing struct {
	Principal     float64 `json:"principal"`     // 本金 (美元)
	AnnualRatePct float64 `json:"annualRatePct"` // 年利率 (%)
	TermMonths    int     `json:"termMonths"`    // 期数 (月)
}

// MixComponent 检测组合中的一类
type MixComponent struct {
	PercentOfVolume float64 `json:"percentOfVolume"` // 占样本量比例 (%)，按原值使用，不归一化
	Price           float64 `json:"price"`           // 单价
	VariableCost    float64 `json:"variableCost"`    // 单样本变动成本
}

// UnitPricing 单样本经济性输入
type UnitPricing struct {
	Mode PricingMode `json:"mode"`

	// flat 模式
	RevenuePerUnit float64 `json:"revenuePerUnit"`

	// selection 模式：价目表 + 选中项
	PriceList     map[string]float64 `json:"priceList,omitempty"`
	SelectedItems []string           `json:"selectedItems,omitempty"`

	// mix 模式
	TestMix map[string]MixComponent `json:"testMix,omitempty"`

	// 单样本变动成本。VariableCostManual 为 false 时
	// 由试剂提示值（或固定缺省值）填充，用户显式设置后不再覆盖
	VariableCostPerUnit float64 `json:"variableCostPerUnit"`
	VariableCostManual  bool    `json:"variableCostManual"`
}

// ProjectionParams 多年预测参数
type ProjectionParams struct {
	HorizonYears     int     `json:"horizonYears"`     // 预测年数
	VolumeGrowthPct  float64 `json:"volumeGrowthPct"`  // 年样本量增速 (%)
	PriceGrowthPct   float64 `json:"priceGrowthPct"`   // 年提价幅度 (%)
	CostInflationPct float64 `json:"costInflationPct"` // 成本年通胀 (%)
}

// AssumptionSet 一次测算的完整输入
// 每次测算请求构造一份新值，测算过程中不修改
type AssumptionSet struct {
	CompanyName string `json:"companyName"`
	StartYear   int    `json:"startYear"`

	Staffing        []StaffRole        `json:"staffing"`
	BenefitsLoadPct float64            `json:"benefitsLoadPct"` // 福利与工资税负担 (0~1)
	FixedLineItems  map[string]float64 `json:"fixedLineItems"`  // 分类 -> 月固定金额
	Financing       *EquipmentFinancing `json:"financing,omitempty"`

	// 运营预算表覆盖。非空时其合计整体取代手工汇总的月固定成本
	LedgerOverride []BudgetRow `json:"ledgerOverride,omitempty"`

	Pricing       UnitPricing      `json:"pricing"`
	MonthlyVolume int              `json:"monthlyVolume"` // 预期月样本量
	Projection    ProjectionParams `json:"projection"`
}
