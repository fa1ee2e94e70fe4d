// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickpost/post-sync-service/internal/domain"
	"github.com/quickpost/post-sync-service/internal/dto"
	"github.com/quickpost/post-sync-service/pkg/app"
	"github.com/quickpost/post-sync-service/pkg/code"
	"github.com/quickpost/post-sync-service/pkg/hashguard"
	"github.com/quickpost/post-sync-service/pkg/logger"
	"github.com/quickpost/post-sync-service/pkg/timex"
	"github.com/quickpost/post-sync-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionService 定义会话业务服务接口
// 登录流程：SendCode 签发一次性验证码 → Login 校验并换取 Token
type SessionService interface {
	// SendCode 为邮箱签发一次性登录验证码
	SendCode(ctx context.Context, params *dto.SendCodeRequest) error

	// Login 校验验证码并换取会话 Token
	Login(ctx context.Context, params *dto.LoginRequest, clientIP string) (*dto.SessionDTO, error)

	// GetInfo 获取当前会话的用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.SessionDTO, error)

	// CleanupExpiredChallenges 清理已过期的登录挑战，返回清理数量
	CleanupExpiredChallenges(ctx context.Context) (int, error)
}

// sessionService 实现 SessionService 接口
type sessionService struct {
	userRepo     domain.UserRepository
	notifier     domain.Notifier
	hashGuard    *hashguard.HashGuard
	tokenManager app.TokenManager
	clock        timex.Clock
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	hashGuard *hashguard.HashGuard,
	tokenManager app.TokenManager,
	clock timex.Clock,
	lg *zap.Logger,
	config *ServiceConfig,
) SessionService {
	if config == nil {
		config = NewServiceConfig()
	}
	return &sessionService{
		userRepo:     userRepo,
		notifier:     notifier,
		hashGuard:    hashGuard,
		tokenManager: tokenManager,
		clock:        clock,
		logger:       lg,
		config:       config,
	}
}

// SendCode 为邮箱签发一次性登录验证码
// 冷却期内重复请求直接拒绝，不触碰已有挑战
func (s *sessionService) SendCode(ctx context.Context, params *dto.SendCodeRequest) error {
	if !util.IsValidEmail(params.Email) {
		return code.ErrorEmailNotValid
	}

	now := s.clock.Now()

	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return code.ErrorDBQuery
	}

	if user != nil && user.InCooldown(now, s.config.Auth.CodeCooldown) {
		return code.ErrorSendCodeRateLimited
	}

	loginCode := util.GenerateLoginCode()

	codeHash, err := s.hashGuard.Hash(ctx, loginCode)
	if err != nil {
		s.logger.Error("login code hashing failed",
			zap.String(logger.FieldEmail, params.Email),
			zap.Error(err))
		return code.ErrorHashCode
	}

	if user == nil {
		if user, err = s.userRepo.CreateWithChallenge(ctx, params.Email, codeHash, now); err != nil {
			return code.ErrorDBQuery
		}
	} else {
		if err = s.userRepo.OverwriteChallenge(ctx, user.UID, codeHash, now); err != nil {
			return code.ErrorDBQuery
		}
	}

	// 投递失败只记日志，不回滚挑战也不重试
	if err := s.notifier.SendLoginCode(ctx, params.Email, loginCode); err != nil {
		s.logger.Error("login code delivery failed",
			zap.String(logger.FieldEmail, params.Email),
			zap.Int64(logger.FieldUID, user.UID),
			zap.Error(err))
	}

	return nil
}

// Login 校验验证码并换取会话 Token
// 格式错误、用户不存在、无挑战、过期、次数耗尽、验证码错误一律返回相同的未授权响应，
// 不向调用方暴露是哪一步失败
func (s *sessionService) Login(ctx context.Context, params *dto.LoginRequest, clientIP string) (*dto.SessionDTO, error) {
	if !util.IsValidEmail(params.Email) {
		return nil, code.ErrorUnauthorized
	}
	if !util.IsValidLoginCode(params.Code) {
		return nil, code.ErrorUnauthorized
	}

	now := s.clock.Now()

	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUnauthorized
		}
		return nil, code.ErrorDBQuery
	}

	if !user.HasChallenge() {
		return nil, code.ErrorUnauthorized
	}
	// 过期挑战不计入失败次数
	if user.ChallengeExpired(now, s.config.Auth.CodeExpiry) {
		return nil, code.ErrorUnauthorized
	}
	if user.ChallengeExhausted(s.config.Auth.CodeMaxAttempts) {
		return nil, code.ErrorUnauthorized
	}

	ok, err := s.hashGuard.Verify(ctx, user.CodeHash, params.Code)
	if err != nil {
		s.logger.Error("login code verification failed",
			zap.Int64(logger.FieldUID, user.UID),
			zap.Error(err))
		return nil, code.ErrorHashCode
	}

	if !ok {
		if err := s.userRepo.IncrementAttempts(ctx, user.UID); err != nil {
			return nil, code.ErrorDBQuery
		}
		return nil, code.ErrorUnauthorized
	}

	// 验证通过：挑战一次性消费，之后同一验证码不再可用
	if err := s.userRepo.ClearChallenge(ctx, user.UID); err != nil {
		return nil, code.ErrorDBQuery
	}

	token, err := s.tokenManager.Generate(user.UID, user.Email, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate
	}

	s.logger.Info("user logged in",
		zap.Int64(logger.FieldUID, user.UID),
		zap.String(logger.FieldIP, clientIP))

	return &dto.SessionDTO{
		UID:   user.UID,
		Email: user.Email,
		Token: token,
	}, nil
}

// GetInfo 获取当前会话的用户信息
func (s *sessionService) GetInfo(ctx context.Context, uid int64) (*dto.SessionDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUnauthorized
		}
		return nil, code.ErrorDBQuery
	}
	return &dto.SessionDTO{
		UID:   user.UID,
		Email: user.Email,
	}, nil
}

// CleanupExpiredChallenges 清理已过期的登录挑战
func (s *sessionService) CleanupExpiredChallenges(ctx context.Context) (int, error) {
	deadline := s.clock.Now().Add(-s.config.Auth.CodeExpiry)
	uids, err := s.userRepo.ListExpiredChallenges(ctx, deadline)
	if err != nil {
		return 0, fmt.Errorf("list expired challenges: %w", err)
	}

	cleaned := 0
	for _, uid := range uids {
		if err := s.userRepo.ClearChallenge(ctx, uid); err != nil {
			s.logger.Error("clear expired challenge failed",
				zap.Int64(logger.FieldUID, uid),
				zap.Error(err))
			continue
		}
		cleaned++
	}
	return cleaned, nil
}
