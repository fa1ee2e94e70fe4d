// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import "time"

// 登录挑战的默认参数
const (
	// DefaultCodeCooldown 验证码重发冷却时间
	DefaultCodeCooldown = 120 * time.Second
	// DefaultCodeExpiry 验证码有效期
	DefaultCodeExpiry = 10 * time.Minute
	// DefaultCodeMaxAttempts 单个验证码允许的失败验证次数
	DefaultCodeMaxAttempts = 3
	// DefaultListLimit 列表默认每页数量
	DefaultListLimit = 10
	// MaxListLimit 列表每页数量上限
	MaxListLimit = 1000
)

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Auth AuthServiceConfig // Auth related config // 认证相关配置
}

// AuthServiceConfig auth service configuration
// AuthServiceConfig 认证服务配置
type AuthServiceConfig struct {
	CodeCooldown    time.Duration // Resend cooldown // 重发冷却时间
	CodeExpiry      time.Duration // Code time-to-live // 验证码有效期
	CodeMaxAttempts int           // Max failed attempts per code // 单个验证码的失败验证上限
}

// NewServiceConfig 创建带默认值的服务层配置
func NewServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		Auth: AuthServiceConfig{
			CodeCooldown:    DefaultCodeCooldown,
			CodeExpiry:      DefaultCodeExpiry,
			CodeMaxAttempts: DefaultCodeMaxAttempts,
		},
	}
}
