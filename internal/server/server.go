package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	v1 "github.com/ErmiasKetos/kelpbiz/internal/api/v1"
	"github.com/ErmiasKetos/kelpbiz/internal/config"
	"github.com/ErmiasKetos/kelpbiz/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router     *gin.Engine
	store      *store.Store
	api        *v1.Handler
	sessionDir string
}

// NewServer 创建服务器
// 测算会话数据库放在每次运行独立的临时目录中，退出即弃
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	sessionDir, err := os.MkdirTemp("", "kelpbiz-session-")
	if err != nil {
		log.Fatalf("Failed to create session directory: %v", err)
	}
	dbPath := filepath.Join(sessionDir, "kelpbiz.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 导出目录落在持久数据目录下，供下载令牌使用
	exportDir := config.GetDataPath(cfg, "exports", "")

	apiHandler := v1.NewHandler(sqliteStore, exportDir, v1.ReportDefaults{
		CurveMaxVolume: cfg.Business.CurveMaxVolume,
		CurveStep:      cfg.Business.CurveStep,
	})

	s := &Server{
		router:     gin.Default(),
		store:      sqliteStore,
		api:        apiHandler,
		sessionDir: sessionDir,
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	api := s.router.Group("/api")
	{
		s.api.RegisterRoutes(api)
	}

	// 静态资源
	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		// 生产模式：使用embed的静态资源
		sub, _ := fs.Sub(staticFiles, "dist")

		// 静态资源 - assets 目录
		assetsSub, _ := fs.Sub(sub, "assets")
		s.router.StaticFS("/assets", http.FS(assetsSub))

		// favicon
		s.router.GET("/favicon.svg", func(c *gin.Context) {
			data, err := fs.ReadFile(sub, "favicon.svg")
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			c.Data(http.StatusOK, "image/svg+xml", data)
		})

		// 首页
		s.router.GET("/", func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})

		// SPA 路由 fallback
		s.router.NoRoute(func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭数据库并清理会话临时目录
func (s *Server) Close() error {
	err := s.store.Close()
	if s.sessionDir != "" {
		_ = os.RemoveAll(s.sessionDir)
	}
	return err
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
