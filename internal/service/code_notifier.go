package service

import (
	"context"
	"fmt"

	"github.com/quickpost/post-sync-service/internal/domain"
	"github.com/quickpost/post-sync-service/pkg/mailer"
)

// mailNotifier 通过 SMTP 投递登录验证码
type mailNotifier struct {
	mailer *mailer.Mailer
}

// NewMailNotifier 创建基于邮件的验证码投递器
func NewMailNotifier(m *mailer.Mailer) domain.Notifier {
	return &mailNotifier{mailer: m}
}

// SendLoginCode 把一次性验证码发送到目标邮箱
func (n *mailNotifier) SendLoginCode(_ context.Context, email, loginCode string) error {
	subject := "Your login code"
	body := fmt.Sprintf("Your one-time login code is: %s\n\nIt expires in 10 minutes. If you did not request it, ignore this mail.", loginCode)
	return n.mailer.Send(email, subject, body)
}
