package v1

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ErmiasKetos/kelpbiz/internal/calculator"
	"github.com/ErmiasKetos/kelpbiz/internal/exporter"
)

const downloadTokenTTL = 10 * time.Minute

// Export 生成测算报告工作簿并返回下载令牌
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	a, err := h.store.LoadAssumptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "加载假设失败"})
		return
	}

	report := calculator.BuildReport(a, calculator.ReportOptions{
		CurveMaxVolume: h.defaults.CurveMaxVolume,
		CurveStep:      h.defaults.CurveStep,
	})

	f, err := exporter.BuildWorkbook(a, report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成报告失败"})
		return
	}
	defer f.Close()

	if err := os.MkdirAll(h.exportDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建导出目录失败"})
		return
	}

	exportID := uuid.New().String()
	filename := fmt.Sprintf("财务测算_%s.xlsx", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(h.exportDir, exportID+".xlsx")

	if err := f.SaveAs(filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存导出文件失败"})
		return
	}

	token := h.downloads.put(filePath, filename, downloadTokenTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": filename,
	})
}

// DownloadExport 下载导出文件
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接不存在或已过期"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件已被清理"})
		return
	}

	c.FileAttachment(item.filePath, item.filename)
}
