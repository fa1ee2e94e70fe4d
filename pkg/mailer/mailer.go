// Package mailer sends transactional mail over SMTP.
// Package mailer 通过 SMTP 发送事务性邮件
package mailer

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Config SMTP 配置
type Config struct {
	// Enable 关闭时邮件只写日志不真正发送，用于本地开发
	Enable   bool   `yaml:"enable" default:"false"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" default:"587"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// From 发件人地址，为空时使用 Username
	From string `yaml:"from"`
}

// Mailer SMTP 邮件发送器
type Mailer struct {
	config Config
	logger *zap.Logger
}

func NewMailer(cfg Config, lg *zap.Logger) *Mailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Mailer{config: cfg, logger: lg}
}

// Send 发送一封纯文本邮件
// 未启用 SMTP 时把邮件内容写进日志后直接返回成功
func (m *Mailer) Send(to, subject, body string) error {
	if !m.config.Enable {
		m.logger.Info("mail delivery disabled, logging message instead",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("body", body))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.config.Host, m.config.Port, m.config.Username, m.config.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "send mail")
	}
	return nil
}
