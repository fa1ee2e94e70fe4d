package service

import (
	"context"
	"testing"
	"time"

	"github.com/quickpost/post-sync-service/internal/dao"
	"github.com/quickpost/post-sync-service/internal/domain"
	"github.com/quickpost/post-sync-service/internal/dto"
	"github.com/quickpost/post-sync-service/internal/model"
	"github.com/quickpost/post-sync-service/pkg/app"
	"github.com/quickpost/post-sync-service/pkg/code"
	"github.com/quickpost/post-sync-service/pkg/hashguard"
	"github.com/quickpost/post-sync-service/pkg/timex"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeClock 可手动推进的时钟
type fakeClock struct {
	now timex.Time
}

func newFakeClock(s string) *fakeClock {
	t, err := timex.ParseRFC3339(s)
	if err != nil {
		panic(err)
	}
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() timex.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// fakeNotifier 记录投递的验证码
type fakeNotifier struct {
	codes   []string
	failErr error
}

func (n *fakeNotifier) SendLoginCode(_ context.Context, _ string, loginCode string) error {
	if n.failErr != nil {
		return n.failErr
	}
	n.codes = append(n.codes, loginCode)
	return nil
}

func (n *fakeNotifier) lastCode() string {
	if len(n.codes) == 0 {
		return ""
	}
	return n.codes[len(n.codes)-1]
}

type sessionFixture struct {
	svc      SessionService
	userRepo domain.UserRepository
	notifier *fakeNotifier
	clock    *fakeClock
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))

	userRepo := dao.NewUserRepository(dao.New(db))
	notifier := &fakeNotifier{}
	clock := newFakeClock("2026-01-01T10:00:00Z")
	tokenManager := app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"})

	svc := NewSessionService(
		userRepo,
		notifier,
		hashguard.New(),
		tokenManager,
		clock,
		zap.NewNop(),
		NewServiceConfig(),
	)
	return &sessionFixture{
		svc:      svc,
		userRepo: userRepo,
		notifier: notifier,
		clock:    clock,
	}
}

const testEmail = "a@example.com"

func (f *sessionFixture) mustSendCode(t *testing.T) string {
	t.Helper()
	require.NoError(t, f.svc.SendCode(context.Background(), &dto.SendCodeRequest{Email: testEmail}))
	c := f.notifier.lastCode()
	require.Len(t, c, 8)
	return c
}

func (f *sessionFixture) login(loginCode string) (*dto.SessionDTO, error) {
	return f.svc.Login(context.Background(), &dto.LoginRequest{Email: testEmail, Code: loginCode}, "127.0.0.1")
}

func TestSessionService_EndToEnd(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	loginCode := f.mustSendCode(t)

	// 错误验证码被拒绝并计入失败次数
	_, err := f.login("00000000")
	assert.ErrorIs(t, err, code.ErrorUnauthorized)

	// 正确验证码换取会话
	session, err := f.login(loginCode)
	require.NoError(t, err)
	assert.Equal(t, testEmail, session.Email)
	assert.NotEmpty(t, session.Token)

	// 挑战被一次性消费
	user, err := f.userRepo.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.False(t, user.HasChallenge())
	assert.Empty(t, user.CodeHash)
	assert.Nil(t, user.CodeCreatedAt)
	assert.Equal(t, 0, user.CodeAttempts)

	// 同一验证码不能复用
	_, err = f.login(loginCode)
	assert.ErrorIs(t, err, code.ErrorUnauthorized)

	// 会话信息可读取
	info, err := f.svc.GetInfo(ctx, session.UID)
	require.NoError(t, err)
	assert.Equal(t, testEmail, info.Email)
	assert.Empty(t, info.Token)
}

func TestSessionService_AttemptExhaustion(t *testing.T) {
	f := newSessionFixture(t)

	loginCode := f.mustSendCode(t)

	// 连续三次错误后，第四次即使验证码正确也拒绝
	for i := 0; i < 3; i++ {
		_, err := f.login("00000000")
		assert.ErrorIs(t, err, code.ErrorUnauthorized)
	}
	_, err := f.login(loginCode)
	assert.ErrorIs(t, err, code.ErrorUnauthorized)
}

func TestSessionService_Expiry(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	loginCode := f.mustSendCode(t)

	// 过期后正确验证码也拒绝，且不计入失败次数
	f.clock.Advance(10*time.Minute + time.Second)
	_, err := f.login(loginCode)
	assert.ErrorIs(t, err, code.ErrorUnauthorized)

	user, err := f.userRepo.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, 0, user.CodeAttempts)
}

func TestSessionService_ExpiryExactBoundary(t *testing.T) {
	f := newSessionFixture(t)

	loginCode := f.mustSendCode(t)

	// 恰好到达有效期边界时验证码仍可用
	f.clock.Advance(10 * time.Minute)
	session, err := f.login(loginCode)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestSessionService_RateLimiting(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	f.mustSendCode(t)
	before, err := f.userRepo.GetByEmail(ctx, testEmail)
	require.NoError(t, err)

	// 冷却期内（120 秒冷却，60 秒时请求）被拒绝，已有挑战保持不变
	f.clock.Advance(60 * time.Second)
	err = f.svc.SendCode(ctx, &dto.SendCodeRequest{Email: testEmail})
	assert.ErrorIs(t, err, code.ErrorSendCodeRateLimited)

	unchanged, err := f.userRepo.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, before.CodeHash, unchanged.CodeHash)
	require.NotNil(t, unchanged.CodeCreatedAt)
	assert.True(t, unchanged.CodeCreatedAt.Equal(*before.CodeCreatedAt))

	// 121 秒时重新签发成功，哈希更换
	f.clock.Advance(61 * time.Second)
	require.NoError(t, f.svc.SendCode(ctx, &dto.SendCodeRequest{Email: testEmail}))

	reissued, err := f.userRepo.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.NotEqual(t, before.CodeHash, reissued.CodeHash)
}

func TestSessionService_UnknownEmail(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@example.com",
		Code:  "12345678",
	}, "")
	assert.ErrorIs(t, err, code.ErrorUnauthorized)
}

func TestSessionService_InvalidInput(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	err := f.svc.SendCode(ctx, &dto.SendCodeRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, code.ErrorEmailNotValid)

	// 登录时格式错误和验证码错误不可区分，统一返回未授权
	f.mustSendCode(t)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: testEmail, Code: "1234"}, "")
	assert.ErrorIs(t, err, code.ErrorUnauthorized)

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "bad", Code: "12345678"}, "")
	assert.ErrorIs(t, err, code.ErrorUnauthorized)

	_, wrongErr := f.svc.Login(ctx, &dto.LoginRequest{Email: testEmail, Code: "00000000"}, "")
	assert.Equal(t, wrongErr, err)
}

func TestSessionService_DeliveryFailureStillIssuesChallenge(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	// 投递失败只记日志，挑战照常落库
	f.notifier.failErr = assert.AnError
	require.NoError(t, f.svc.SendCode(ctx, &dto.SendCodeRequest{Email: testEmail}))

	user, err := f.userRepo.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.True(t, user.HasChallenge())
}

func TestSessionService_CleanupExpiredChallenges(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	f.mustSendCode(t)

	// 未过期时不清理
	cleaned, err := f.svc.CleanupExpiredChallenges(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleaned)

	f.clock.Advance(11 * time.Minute)
	cleaned, err = f.svc.CleanupExpiredChallenges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleaned)

	user, err := f.userRepo.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.False(t, user.HasChallenge())
}
