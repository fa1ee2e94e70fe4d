// Package task 实现后台定时任务调度
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/quickpost/post-sync-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器，基于 cron 周期触发
type Scheduler struct {
	logger *zap.Logger
	cron   *cron.Cron
	tasks  []Task
	sc     *safe_close.SafeClose
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		cron:   cron.New(),
		tasks:  make([]Task, 0),
		sc:     sc,
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务并挂接优雅关闭
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		if err := s.scheduleTask(task); err != nil {
			s.logger.Error("task schedule failed",
				zap.String("name", task.Name()),
				zap.Error(err))
		}
	}

	s.cron.Start()

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		stopCtx := s.cron.Stop()
		// 等待进行中的任务跑完
		<-stopCtx.Done()
		s.logger.Info("task scheduler stopped")
	})
}

// scheduleTask 注册单个任务
func (s *Scheduler) scheduleTask(task Task) error {
	if task.IsStartupRun() {
		go s.runTask(task)
	}

	spec := fmt.Sprintf("@every %s", task.LoopInterval())
	_, err := s.cron.AddFunc(spec, func() {
		s.runTask(task)
	})
	return err
}

// runTask 执行单个任务，panic 不打断调度
func (s *Scheduler) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String("name", task.Name()),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.Error(err))
	}
}
