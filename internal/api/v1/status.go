package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	CompanyName    string `json:"companyName"`    // 公司名称
	StartYear      int    `json:"startYear"`      // 预测起始年
	MonthlyVolume  int    `json:"monthlyVolume"`  // 当前月样本量假设
	BudgetRowCount int    `json:"budgetRowCount"` // 预算表行数
	PriceRowCount  int    `json:"priceRowCount"`  // 价目表行数
	BudgetLoaded   bool   `json:"budgetLoaded"`   // 是否启用预算表覆盖
	PricesLoaded   bool   `json:"pricesLoaded"`   // 是否已上传价目表
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	a, err := h.store.LoadAssumptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "加载假设失败"})
		return
	}

	budgetCount, err := h.store.CountBudgetRows()
	if err != nil {
		budgetCount = 0
	}
	priceCount, err := h.store.CountPriceRows()
	if err != nil {
		priceCount = 0
	}

	c.JSON(http.StatusOK, StatusResponse{
		CompanyName:    a.CompanyName,
		StartYear:      a.StartYear,
		MonthlyVolume:  a.MonthlyVolume,
		BudgetRowCount: budgetCount,
		PriceRowCount:  priceCount,
		BudgetLoaded:   budgetCount > 0,
		PricesLoaded:   priceCount > 0,
	})
}
