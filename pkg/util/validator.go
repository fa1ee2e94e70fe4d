package util

import (
	"regexp"
)

var (
	emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	codeRegexp  = regexp.MustCompile(`^[0-9]{8}$`)
)

// IsValidEmail verifies if the email format is correct
// IsValidEmail 验证邮箱格式是否正确
// email: email string to be verified
// email: 待验证的邮箱字符串
// return: true if email format is correct, false otherwise
// 返回值: 如果邮箱格式正确返回true，否则返回false
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// IsValidLoginCode verifies the one-time login code format
// IsValidLoginCode 验证一次性登录验证码格式
// 验证码必须是 8 位 ASCII 数字
// return: true if the code is exactly 8 ASCII digits
func IsValidLoginCode(code string) bool {
	return codeRegexp.MatchString(code)
}
