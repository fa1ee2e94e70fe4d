package task

import (
	"context"
	"time"

	"github.com/quickpost/post-sync-service/internal/app"

	"go.uber.org/zap"
)

// ChallengeCleanTask 清理已过期的登录挑战
// 过期挑战在登录路径上也会被拒绝，这里只是把残留字段从库里清掉
type ChallengeCleanTask struct {
	app    *app.App
	logger *zap.Logger
}

// NewChallengeCleanTask 创建清理任务
func NewChallengeCleanTask(a *app.App, logger *zap.Logger) *ChallengeCleanTask {
	return &ChallengeCleanTask{app: a, logger: logger}
}

// Name 返回任务名称
func (t *ChallengeCleanTask) Name() string {
	return "ChallengeCleanup"
}

// LoopInterval 返回执行间隔
func (t *ChallengeCleanTask) LoopInterval() time.Duration {
	return 10 * time.Minute
}

// IsStartupRun 是否立即执行一次
func (t *ChallengeCleanTask) IsStartupRun() bool {
	return true
}

// Run 执行清理任务
func (t *ChallengeCleanTask) Run(ctx context.Context) error {
	cleaned, err := t.app.SessionService.CleanupExpiredChallenges(ctx)
	if err != nil {
		return err
	}
	if cleaned > 0 {
		t.logger.Info("task log",
			zap.String("task", t.Name()),
			zap.Int("cleaned", cleaned))
	}
	return nil
}
