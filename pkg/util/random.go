package util

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// idAlphabet 帖子 ID 使用的 62 个字符
const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// IDLength 服务端生成帖子 ID 的长度
const IDLength = 21

// GenerateID 生成 21 位随机 ID（62 字符字母表）
// 使用加密随机源，客户端未提供 ID 时由服务端调用
func GenerateID() string {
	b := make([]byte, IDLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand 在受支持平台上不会失败，这里保持非空返回
			b[i] = idAlphabet[mrand.Intn(len(idAlphabet))]
			continue
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return string(b)
}

// GenerateLoginCode 生成 8 位数字验证码
// 每一位独立取自加密随机源，允许前导零，数字分布均匀
func GenerateLoginCode() string {
	b := make([]byte, 8)
	ten := big.NewInt(10)
	for i := range b {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			b[i] = byte('0' + mrand.Intn(10))
			continue
		}
		b[i] = byte('0' + n.Int64())
	}
	return string(b)
}

// GetRandomString 生成指定长度的随机字符串
// 用于生成默认配置中的密钥，不要求加密强度
func GetRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[mrand.Intn(len(idAlphabet))]
	}
	return string(b)
}
