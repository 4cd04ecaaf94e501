package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ErmiasKetos/kelpbiz/internal/store"
)

// ReportDefaults 报表展示缺省参数（来自应用配置）
type ReportDefaults struct {
	CurveMaxVolume int
	CurveStep      int
}

// Handler API 处理器
type Handler struct {
	store     *store.Store
	exportDir string
	defaults  ReportDefaults
	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(store *store.Store, exportDir string, defaults ReportDefaults) *Handler {
	if defaults.CurveMaxVolume <= 0 {
		defaults.CurveMaxVolume = 2500
	}
	if defaults.CurveStep <= 0 {
		defaults.CurveStep = 100
	}
	return &Handler{
		store:     store,
		exportDir: exportDir,
		defaults:  defaults,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 假设管理
	router.GET("/assumptions", h.GetAssumptions)
	router.PATCH("/assumptions", h.UpdateAssumptions)
	router.POST("/assumptions/reset", h.ResetAssumptions)

	// 表格上传
	router.POST("/import/budget", h.ImportBudget)
	router.DELETE("/import/budget", h.DeleteBudget)
	router.POST("/import/prices", h.ImportPrices)
	router.DELETE("/import/prices", h.DeletePrices)
	router.POST("/prices/select", h.SelectAnalytes)

	// 测算结果
	router.GET("/report", h.GetReport)

	// 导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
