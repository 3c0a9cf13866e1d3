package app

import (
	"context"
	"fmt"

	ascfg "altscore/internal/config"
	"altscore/internal/logger"
	"altscore/internal/model"
	"altscore/internal/pipeline"
	"altscore/internal/store"
	"altscore/internal/store/sqlite"
	scorehttp "altscore/internal/transport/http"

	"golang.org/x/sync/errgroup"
)

// Version 由构建时注入。
var Version = "dev"

// App 负责应用级编排：加载模型制品→组装打分 pipeline→启动 HTTP 服务。
type App struct {
	cfg      *ascfg.Config
	pipeline *pipeline.Pipeline
	server   *scorehttp.Server
	history  *historyService
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *ascfg.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	params, err := model.LoadArtifact(cfg.Model.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("加载模型制品失败: %w", err)
	}
	pipe, err := pipeline.New(params)
	if err != nil {
		return nil, fmt.Errorf("初始化打分 pipeline 失败: %w", err)
	}

	var history *historyService
	if cfg.Store.Enabled {
		var st store.ScoreHistory
		st, err = sqlite.NewSqliteStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("初始化打分历史存储失败: %w", err)
		}
		history = newHistoryService(st, params)
		logger.Infof("✓ 打分历史库已就绪: %s", cfg.Store.Path)
	}

	serverCfg := scorehttp.ServerConfig{
		Addr:     cfg.App.HTTPAddr,
		Pipeline: pipe,
		Version:  Version,
	}
	if history != nil {
		serverCfg.History = history
	}
	server, err := scorehttp.NewServer(serverCfg)
	if err != nil {
		return nil, fmt.Errorf("初始化 HTTP 服务失败: %w", err)
	}

	logger.Infof("✓ 模型 %s 已载入 (特征=%d)", params.ModelID, len(params.Coefficients))
	return &App{cfg: cfg, pipeline: pipe, server: server, history: history}, nil
}

// Pipeline 暴露底层打分 pipeline（测试与报告工具使用）。
func (a *App) Pipeline() *pipeline.Pipeline {
	if a == nil {
		return nil
	}
	return a.pipeline
}

// Run 启动 HTTP 服务与制品变更监听，直到 ctx 取消。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Infof("HTTP 服务监听 %s", a.server.Addr())
		if err := a.server.Start(ctx); err != nil {
			return fmt.Errorf("score http server error: %w", err)
		}
		return nil
	})

	if a.cfg.Model.WatchChanges {
		group.Go(func() error {
			return model.WatchArtifact(ctx, a.cfg.Model.ArtifactPath)
		})
	}

	err := group.Wait()
	if a.history != nil {
		if cerr := a.history.Close(); cerr != nil {
			logger.Warnf("关闭打分历史存储失败: %v", cerr)
		}
	}
	return err
}
