package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErmiasKetos/kelpbiz/internal/calculator"
	"github.com/ErmiasKetos/kelpbiz/internal/model"
)

// AssumptionsResponse 假设集响应
type AssumptionsResponse struct {
	model.AssumptionSet
	// 当前预算表下的建议单样本变动成本（提示值）
	SuggestedVariableCost float64 `json:"suggestedVariableCost"`
}

// GetAssumptions 获取当前假设集
// GET /api/assumptions
func (h *Handler) GetAssumptions(c *gin.Context) {
	a, err := h.store.LoadAssumptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "加载假设失败"})
		return
	}

	_, reagentHint := calculator.AggregateFixedCost(a)
	c.JSON(http.StatusOK, AssumptionsResponse{
		AssumptionSet:         a,
		SuggestedVariableCost: calculator.VariableCostHint(reagentHint, a.MonthlyVolume),
	})
}

// UpdateAssumptionsRequest 更新假设请求
// Updates 为标量字段的部分更新；列表/映射字段提供时整体替换
type UpdateAssumptionsRequest struct {
	Updates        map[string]interface{}          `json:"updates"`
	Staffing       *[]model.StaffRole              `json:"staffing,omitempty"`
	FixedLineItems *map[string]float64             `json:"fixedLineItems,omitempty"`
	TestMix        *map[string]model.MixComponent  `json:"testMix,omitempty"`
	Financing      *model.EquipmentFinancing       `json:"financing,omitempty"`
	ClearFinancing bool                            `json:"clearFinancing,omitempty"`
}

// UpdateAssumptions 更新假设（部分更新）
// PATCH /api/assumptions
func (h *Handler) UpdateAssumptions(c *gin.Context) {
	var req UpdateAssumptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	a, err := h.store.LoadAssumptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "加载假设失败"})
		return
	}

	for key, value := range req.Updates {
		if err := applyScalarUpdate(&a, key, value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": key})
			return
		}
	}

	if req.Staffing != nil {
		a.Staffing = *req.Staffing
	}
	if req.FixedLineItems != nil {
		a.FixedLineItems = *req.FixedLineItems
	}
	if req.TestMix != nil {
		a.Pricing.TestMix = *req.TestMix
	}
	if req.Financing != nil {
		a.Financing = req.Financing
	}
	if req.ClearFinancing {
		a.Financing = nil
	}

	if err := h.store.SaveAssumptions(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存假设失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "假设更新成功"})
}

// ResetAssumptions 恢复缺省假设并清空上传的表格
// POST /api/assumptions/reset
func (h *Handler) ResetAssumptions(c *gin.Context) {
	if err := h.store.ResetAssumptions(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "重置失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "已恢复缺省假设"})
}

// SelectAnalytesRequest 选中项目请求
type SelectAnalytesRequest struct {
	Analytes []string `json:"analytes"`
}

// SelectAnalytes 设置选中的检测项目并切换到 selection 定价模式
// POST /api/prices/select
func (h *Handler) SelectAnalytes(c *gin.Context) {
	var req SelectAnalytesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	a, err := h.store.LoadAssumptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "加载假设失败"})
		return
	}
	if len(a.Pricing.PriceList) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "尚未上传价目表"})
		return
	}
	for _, analyte := range req.Analytes {
		if _, ok := a.Pricing.PriceList[analyte]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "价目表中不存在该项目: " + analyte})
			return
		}
	}

	if err := h.store.SetSelectedAnalytes(req.Analytes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存选中项目失败"})
		return
	}
	if err := h.store.SetConfig("pricing_mode", string(model.PricingSelection)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "切换定价模式失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "选中项目已更新", "count": len(req.Analytes)})
}
