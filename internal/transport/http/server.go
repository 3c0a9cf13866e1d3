package scorehttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"altscore/internal/logger"
	"altscore/internal/pipeline"

	"github.com/gin-gonic/gin"
)

// Server 提供打分 HTTP 服务（/api/v1 下的打分接口 + 健康检查）。
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig 描述打分 HTTP 服务依赖。
type ServerConfig struct {
	Addr     string
	Pipeline *pipeline.Pipeline
	History  HistorySink
	Version  string
}

// NewServer 构建打分 HTTP server。
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Pipeline == nil {
		return nil, errors.New("score http server requires a pipeline")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9980"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"model_loaded": cfg.Pipeline.Params() != nil,
			"model_id":     cfg.Pipeline.Params().ModelID,
			"version":      cfg.Version,
		})
	})

	scoreRouter := NewRouter(cfg.Pipeline, cfg.History)
	scoreRouter.Register(router.Group("/api/v1"))

	return &Server{addr: cfg.Addr, router: router}, nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		client := c.ClientIP()
		c.Next()
		dur := time.Since(start)
		status := c.Writer.Status()
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s", method, path, status, client, dur)
	}
}

// Addr 返回监听地址。
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Handler 暴露底层 handler（测试用）。
func (s *Server) Handler() http.Handler {
	if s == nil {
		return nil
	}
	return s.router
}

// Start 启动 HTTP 服务，直到 ctx 取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
