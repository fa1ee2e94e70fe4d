// Package hashguard provides CPU-bounded password hashing.
// Package hashguard 提供受并发限制的口令哈希能力
//
// argon2 是内存密集型算法，无限并发会耗尽服务内存，
// 这里用加权信号量把同时进行的哈希运算数量限制在固定上限内。
package hashguard

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// ErrHashTimeout 等待哈希槽位或计算超时
var ErrHashTimeout = errors.New("hashing operation timed out")

const (
	// argon2i 参数
	argonMemory  uint32 = 3000 // KiB
	argonTime    uint32 = 3
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16

	// DefaultMaxConcurrent 同时执行的哈希运算上限
	DefaultMaxConcurrent int64 = 8
	// DefaultTimeout 单次操作（含排队）的最长等待时间
	DefaultTimeout = 5 * time.Second
)

// HashGuard 封装 argon2i 哈希与校验，并发受信号量约束
type HashGuard struct {
	sem     *semaphore.Weighted
	timeout time.Duration
}

// New 创建使用默认并发上限与超时的 HashGuard
func New() *HashGuard {
	return NewWithLimits(DefaultMaxConcurrent, DefaultTimeout)
}

// NewWithLimits 创建自定义并发上限与超时的 HashGuard
func NewWithLimits(maxConcurrent int64, timeout time.Duration) *HashGuard {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HashGuard{
		sem:     semaphore.NewWeighted(maxConcurrent),
		timeout: timeout,
	}
}

// Hash computes an argon2i hash of the secret in PHC string format.
// Hash 计算口令的 argon2i 哈希，输出 PHC 编码字符串
// 超时（含排队等待）返回 ErrHashTimeout
func (g *HashGuard) Hash(ctx context.Context, secret string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", ErrHashTimeout
	}

	type result struct {
		encoded string
		err     error
	}
	done := make(chan result, 1)

	go func() {
		// 无论调用方是否还在等待，槽位都必须释放
		defer g.sem.Release(1)
		encoded, err := hashEncode(secret)
		done <- result{encoded: encoded, err: err}
	}()

	select {
	case r := <-done:
		return r.encoded, r.err
	case <-ctx.Done():
		return "", ErrHashTimeout
	}
}

// Verify checks the secret against a stored PHC hash.
// Verify 校验口令与存储的 PHC 哈希是否匹配
// 存储哈希无法解析时按不匹配处理，返回 (false, nil)
func (g *HashGuard) Verify(ctx context.Context, encoded, secret string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return false, ErrHashTimeout
	}

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)

	go func() {
		defer g.sem.Release(1)
		ok, err := verifyEncoded(encoded, secret)
		done <- result{ok: ok, err: err}
	}()

	select {
	case r := <-done:
		return r.ok, r.err
	case <-ctx.Done():
		return false, ErrHashTimeout
	}
}

// hashEncode 生成随机盐并输出 PHC 格式哈希
func hashEncode(secret string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}

	key := argon2.Key([]byte(secret), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2i$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// verifyEncoded 解析 PHC 字符串并做常数时间比较
// 格式: $argon2i$v=19$m=3000,t=3,p=4$<salt>$<hash>
func verifyEncoded(encoded, secret string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2i" {
		return false, nil
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, nil
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, nil
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return false, nil
	}
	want, err := b64.DecodeString(parts[5])
	if err != nil {
		return false, nil
	}

	got := argon2.Key([]byte(secret), salt, iterations, memory, parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
