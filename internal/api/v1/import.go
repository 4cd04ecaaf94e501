package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ErmiasKetos/kelpbiz/internal/parser"
)

// ImportBudget 上传运营预算表 (Name / Monthly USD)
// 校验失败返回 400 并保留之前的状态（核心测算回退到手工汇总口径）
// POST /api/import/budget
func (h *Handler) ImportBudget(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	defer file.Close()

	rows, err := parser.ParseBudget(file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "预算表无效: " + err.Error()})
		return
	}

	if err := h.store.ReplaceBudgetRows(rows, header.Filename); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存预算表失败"})
		return
	}

	var total float64
	for _, r := range rows {
		total += r.MonthlyUSD
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "预算表已导入",
		"rowCount":   len(rows),
		"monthlyUSD": total,
	})
}

// DeleteBudget 删除预算表，回到手工汇总口径
// DELETE /api/import/budget
func (h *Handler) DeleteBudget(c *gin.Context) {
	if err := h.store.ClearBudgetRows(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除预算表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "预算表已删除"})
}

// ImportPrices 上传检测项目价目表 (Analyte / Price)
// POST /api/import/prices
func (h *Handler) ImportPrices(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	defer file.Close()

	rows, err := parser.ParsePrices(file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "价目表无效: " + err.Error()})
		return
	}

	if err := h.store.ReplacePriceRows(rows, header.Filename); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存价目表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "价目表已导入",
		"rowCount": len(rows),
	})
}

// DeletePrices 删除价目表及选中项目
// DELETE /api/import/prices
func (h *Handler) DeletePrices(c *gin.Context) {
	if err := h.store.ClearPriceRows(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除价目表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "价目表已删除"})
}
