// Package timex 提供数据库与 API 边界共用的时间类型
// 存储使用无时区的 UTC（秒级精度），API 边界使用带时区的 RFC3339 文本
package timex

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// StorageLayout 数据库中保存的无时区格式
const StorageLayout = "2006-01-02 15:04:05"

// Time 无时区 UTC 时间，序列化为 RFC3339（UTC 使用 Z 后缀）
type Time time.Time

// Now 返回当前 UTC 时间，截断到秒
// 秒级截断保证同一请求内生成的时间戳可以做严格比较
func Now() Time {
	return Time(time.Now().UTC().Truncate(time.Second))
}

// ParseRFC3339 解析 RFC3339 时间文本并归一化为 UTC
func ParseRFC3339(s string) (Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Time{}, fmt.Errorf("invalid timestamp format: %s", s)
	}
	return Time(t.UTC()), nil
}

// Time 转换为标准库时间
func (t Time) Time() time.Time {
	return time.Time(t)
}

// IsZero 是否为零值
func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

// Before 严格早于
func (t Time) Before(u Time) bool {
	return time.Time(t).Before(time.Time(u))
}

// After 严格晚于
func (t Time) After(u Time) bool {
	return time.Time(t).After(time.Time(u))
}

// Equal 时间相等
func (t Time) Equal(u Time) bool {
	return time.Time(t).Equal(time.Time(u))
}

// Add 偏移指定时长
func (t Time) Add(d time.Duration) Time {
	return Time(time.Time(t).Add(d))
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

// ToRFC3339 输出 RFC3339 文本，UTC 时区使用 Z 后缀
func (t Time) ToRFC3339() string {
	s := time.Time(t).UTC().Format(time.RFC3339)
	return strings.Replace(s, "+00:00", "Z", 1)
}

// String 实现 fmt.Stringer
func (t Time) String() string {
	return t.ToRFC3339()
}

// MarshalJSON 实现 json.Marshaler
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.ToRFC3339() + `"`), nil
}

// UnmarshalJSON 实现 json.Unmarshaler
// 标准库的 time.Time 解析要求带时区，这里保持一致并统一转为 UTC
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*t = Time{}
		return nil
	}
	parsed, err := ParseRFC3339(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value 实现 driver.Valuer，落库为无时区 UTC 文本
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t).UTC().Format(StorageLayout), nil
}

// Scan 实现 sql.Scanner
func (t *Time) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = Time{}
		return nil
	case time.Time:
		*t = Time(v.UTC())
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("unsupported time type: %T", value)
	}
}

func (t *Time) scanString(s string) error {
	if s == "" {
		*t = Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(StorageLayout, s, time.UTC)
	if err != nil {
		// 兼容带时区写入的历史数据
		// fall back for rows written with an explicit zone
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid stored time: %s", s)
		}
	}
	*t = Time(parsed.UTC())
	return nil
}

// Clock 时钟接口，业务层注入以便测试
type Clock interface {
	Now() Time
}

// SystemClock 真实时钟
type SystemClock struct{}

// Now 实现 Clock
func (SystemClock) Now() Time {
	return Now()
}
