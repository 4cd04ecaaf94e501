package v1

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ErmiasKetos/kelpbiz/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "kelpbiz.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	h := NewHandler(st, t.TempDir(), ReportDefaults{CurveMaxVolume: 2500, CurveStep: 100})
	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router, st
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func uploadCSV(t *testing.T, router *gin.Engine, path, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getReport(t *testing.T, router *gin.Engine) ReportResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodGet, "/api/report", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/report status=%d body=%s", w.Code, w.Body.String())
	}
	var resp ReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	return resp
}

func TestGetStatus_Defaults(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CompanyName != "KELP Laboratory LLC" || resp.MonthlyVolume != 1400 {
		t.Fatalf("resp=%+v", resp)
	}
	if resp.BudgetLoaded || resp.PricesLoaded {
		t.Fatalf("新会话不应有上传表格: %+v", resp)
	}
}

func TestGetReport_BaselineKPIs(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := getReport(t, router)

	// 缺省假设：工资 623500*1.25/12 + 固定行项 58729
	wantFixed := 623500.0*1.25/12 + 58729

	if resp.KPI.MonthlyFixedCost != float64(int(wantFixed+0.5)) {
		t.Fatalf("MonthlyFixedCost=%v want≈%v", resp.KPI.MonthlyFixedCost, wantFixed)
	}
	if resp.KPI.ContributionMargin != 98 {
		t.Fatalf("ContributionMargin=%v", resp.KPI.ContributionMargin)
	}
	if !resp.KPI.BreakEvenReachable || resp.KPI.BreakEvenVolume == nil {
		t.Fatalf("盈亏平衡应可达: %+v", resp.KPI)
	}

	// 曲线零点利润为负固定成本（未取整）
	if len(resp.ProfitCurve) != 26 {
		t.Fatalf("curve len=%d", len(resp.ProfitCurve))
	}
	if resp.ProfitCurve[0].Volume != 0 || resp.ProfitCurve[0].Profit >= 0 {
		t.Fatalf("curve[0]=%+v", resp.ProfitCurve[0])
	}

	if len(resp.Projection) != 5 {
		t.Fatalf("projection len=%d", len(resp.Projection))
	}
	if resp.Projection[0].Year != resp.Projection[1].Year-1 {
		t.Fatalf("年份不连续: %+v", resp.Projection[:2])
	}
}

func TestGetReport_CurveParams(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/report?maxVolume=1000&step=500", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp ReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.ProfitCurve) != 3 {
		t.Fatalf("curve len=%d want=3", len(resp.ProfitCurve))
	}
}

func TestImportBudget_OverridesFixedCost(t *testing.T) {
	router, _ := newTestRouter(t)

	w := uploadCSV(t, router, "/api/import/budget", "budget.csv",
		"Name,Monthly USD\nReagents Inc,3000\nRent,15000\n")
	if w.Code != http.StatusOK {
		t.Fatalf("upload status=%d body=%s", w.Code, w.Body.String())
	}

	resp := getReport(t, router)
	if resp.KPI.MonthlyFixedCost != 18000 {
		t.Fatalf("预算表应整体覆盖固定成本: %v", resp.KPI.MonthlyFixedCost)
	}
	if resp.ReagentHint != 3000 {
		t.Fatalf("ReagentHint=%v", resp.ReagentHint)
	}
	if resp.SuggestedVariableCost != 2.14 {
		t.Fatalf("SuggestedVariableCost=%v", resp.SuggestedVariableCost)
	}
}

func TestImportBudget_ValidationErrorKeepsState(t *testing.T) {
	router, _ := newTestRouter(t)

	w := uploadCSV(t, router, "/api/import/budget", "budget.csv",
		"Name,Amount\nRent,15000\n")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("缺列应返回 400: status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Monthly USD") {
		t.Fatalf("错误信息应点名缺失列: %s", w.Body.String())
	}

	// 核心测算回退到手工口径
	resp := getReport(t, router)
	if resp.KPI.MonthlyFixedCost == 15000 {
		t.Fatalf("校验失败的表格不应生效")
	}
	if resp.KPI.ContributionMargin != 98 {
		t.Fatalf("ContributionMargin=%v", resp.KPI.ContributionMargin)
	}
}

func TestUpdateAssumptions_ManualVariableCostWins(t *testing.T) {
	router, _ := newTestRouter(t)

	// 上传带试剂行的预算表并清除手工标记，提示值生效
	uploadCSV(t, router, "/api/import/budget", "budget.csv",
		"Name,Monthly USD\nReagents Inc,3000\nRent,15000\n")
	w := doJSON(t, router, http.MethodPatch, "/api/assumptions", map[string]interface{}{
		"updates": map[string]interface{}{"variableCostManual": false},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status=%d body=%s", w.Code, w.Body.String())
	}

	resp := getReport(t, router)
	if resp.KPI.VariableCostPerUnit != 2.14 {
		t.Fatalf("提示值应生效: %v", resp.KPI.VariableCostPerUnit)
	}

	// 用户显式设置后提示值不再覆盖
	w = doJSON(t, router, http.MethodPatch, "/api/assumptions", map[string]interface{}{
		"updates": map[string]interface{}{"variableCostPerUnit": 30.0},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status=%d", w.Code)
	}

	resp = getReport(t, router)
	if resp.KPI.VariableCostPerUnit != 30 {
		t.Fatalf("显式设置的变动成本应优先: %v", resp.KPI.VariableCostPerUnit)
	}
}

func TestUpdateAssumptions_RejectsBadValues(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []map[string]interface{}{
		{"benefitsLoadPct": 1.5},
		{"monthlyVolume": -1.0},
		{"pricingMode": "bogus"},
		{"unknownField": 1.0},
	}
	for _, updates := range cases {
		w := doJSON(t, router, http.MethodPatch, "/api/assumptions", map[string]interface{}{
			"updates": updates,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("非法更新应返回 400: %v -> %d", updates, w.Code)
		}
	}
}

func TestSelectAnalytes_Flow(t *testing.T) {
	router, _ := newTestRouter(t)

	// 未上传价目表时选择应失败
	w := doJSON(t, router, http.MethodPost, "/api/prices/select", SelectAnalytesRequest{
		Analytes: []string{"Lead"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("无价目表应返回 400: %d", w.Code)
	}

	uploadCSV(t, router, "/api/import/prices", "prices.csv",
		"Analyte,Price\nLead,45\nArsenic,60\nMercury,75\n")

	w = doJSON(t, router, http.MethodPost, "/api/prices/select", SelectAnalytesRequest{
		Analytes: []string{"Lead", "Mercury"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("select status=%d body=%s", w.Code, w.Body.String())
	}

	resp := getReport(t, router)
	if resp.KPI.RevenuePerUnit != 120 {
		t.Fatalf("selection 模式收入应为选中项之和: %v", resp.KPI.RevenuePerUnit)
	}

	// 选择不存在的项目
	w = doJSON(t, router, http.MethodPost, "/api/prices/select", SelectAnalytesRequest{
		Analytes: []string{"Gold"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("不存在的项目应返回 400: %d", w.Code)
	}
}

func TestGetReport_UnreachableBreakEven(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/api/assumptions", map[string]interface{}{
		"updates": map[string]interface{}{"revenuePerUnit": 10.0},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status=%d", w.Code)
	}

	resp := getReport(t, router)
	if resp.KPI.BreakEvenReachable || resp.KPI.BreakEvenVolume != nil {
		t.Fatalf("贡献边际为负时盈亏平衡应不可达: %+v", resp.KPI)
	}
	if resp.KPI.MonthlyProfit >= 0 {
		t.Fatalf("利润应为负: %v", resp.KPI.MonthlyProfit)
	}
}

func TestResetAssumptions_RestoresDefaultsAndDropsUploads(t *testing.T) {
	router, st := newTestRouter(t)

	uploadCSV(t, router, "/api/import/budget", "budget.csv",
		"Name,Monthly USD\nRent,15000\n")
	doJSON(t, router, http.MethodPatch, "/api/assumptions", map[string]interface{}{
		"updates": map[string]interface{}{"monthlyVolume": 50.0},
	})

	w := doJSON(t, router, http.MethodPost, "/api/assumptions/reset", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset status=%d", w.Code)
	}

	a, err := st.LoadAssumptions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if a.MonthlyVolume != 1400 || len(a.LedgerOverride) != 0 {
		t.Fatalf("重置后状态不正确: volume=%d ledger=%d", a.MonthlyVolume, len(a.LedgerOverride))
	}
}

func TestDeleteBudget_RestoresManualAggregation(t *testing.T) {
	router, _ := newTestRouter(t)

	uploadCSV(t, router, "/api/import/budget", "budget.csv",
		"Name,Monthly USD\nRent,15000\n")
	if resp := getReport(t, router); resp.KPI.MonthlyFixedCost != 15000 {
		t.Fatalf("覆盖未生效: %v", resp.KPI.MonthlyFixedCost)
	}

	w := doJSON(t, router, http.MethodDelete, "/api/import/budget", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status=%d", w.Code)
	}
	if resp := getReport(t, router); resp.KPI.MonthlyFixedCost == 15000 {
		t.Fatalf("删除预算表后应回到手工口径")
	}
}

func TestExportAndDownload(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Token    string `json:"token"`
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || !strings.HasSuffix(resp.Filename, ".xlsx") {
		t.Fatalf("resp=%+v", resp)
	}

	dl := doJSON(t, router, http.MethodGet, "/api/export/download/"+resp.Token, nil)
	if dl.Code != http.StatusOK {
		t.Fatalf("download status=%d", dl.Code)
	}
	if dl.Body.Len() == 0 {
		t.Fatalf("下载内容为空")
	}

	// 无效令牌
	bad := doJSON(t, router, http.MethodGet, "/api/export/download/nope", nil)
	if bad.Code != http.StatusNotFound {
		t.Fatalf("无效令牌应返回 404: %d", bad.Code)
	}
}
