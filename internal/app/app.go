// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/quickpost/post-sync-service/internal/dao"
	"github.com/quickpost/post-sync-service/internal/domain"
	"github.com/quickpost/post-sync-service/internal/service"
	pkgapp "github.com/quickpost/post-sync-service/pkg/app"
	"github.com/quickpost/post-sync-service/pkg/hashguard"
	"github.com/quickpost/post-sync-service/pkg/mailer"
	"github.com/quickpost/post-sync-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	PostRepo domain.PostRepository
	UserRepo domain.UserRepository

	// Service 层
	PostService    service.PostService
	SessionService service.SessionService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	HashGuard    *hashguard.HashGuard
	Mailer       *mailer.Mailer

	// 关闭信号
	shutdownCh chan struct{}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		shutdownCh: make(chan struct{}),
	}

	// 初始化 DAO
	a.Dao = dao.New(db)

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    pkgapp.DefaultTokenIssuer,
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化验证码哈希组件和邮件发送器
	a.HashGuard = hashguard.New()
	a.Mailer = mailer.NewMailer(cfg.Mail, logger)

	// 初始化 Repository 层
	a.PostRepo = dao.NewPostRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	svcConfig := cfg.GetServiceConfig()
	clock := timex.SystemClock{}

	a.PostService = service.NewPostService(a.PostRepo, clock, logger)
	a.SessionService = service.NewSessionService(
		a.UserRepo,
		service.NewMailNotifier(a.Mailer),
		a.HashGuard,
		a.TokenManager,
		clock,
		logger,
		svcConfig,
	)

	logger.Info("App container initialized successfully",
		zap.String("database", cfg.Database.Type),
		zap.Bool("mailEnabled", cfg.Mail.Enable))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	if err := a.Close(); err != nil {
		a.logger.Warn("App container shutdown completed with errors", zap.Error(err))
		return err
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}
