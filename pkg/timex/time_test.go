package timex

import (
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}
	if tt.UnixMicro() != now.UnixMicro() {
		t.Errorf("UnixMicro() = %v, want %v", tt.UnixMicro(), now.UnixMicro())
	}
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}
}

func TestTime_RFC3339Boundary(t *testing.T) {
	// UTC 输出必须带 Z 后缀
	tt := Time(time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC))
	if got := tt.ToRFC3339(); got != "2024-06-01T08:30:00Z" {
		t.Errorf("ToRFC3339() = %v, want 2024-06-01T08:30:00Z", got)
	}

	// 带时区输入统一归一化为 UTC
	parsed, err := ParseRFC3339("2024-06-01T16:30:00+08:00")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.ToRFC3339() != "2024-06-01T08:30:00Z" {
		t.Errorf("ParseRFC3339 normalize = %v, want 2024-06-01T08:30:00Z", parsed.ToRFC3339())
	}

	if _, err := ParseRFC3339("not-a-time"); err == nil {
		t.Error("ParseRFC3339 should reject malformed input")
	}
}

func TestTime_JSONRoundTrip(t *testing.T) {
	tt := Time(time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC))

	data, err := tt.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-06-01T08:30:00Z"` {
		t.Errorf("MarshalJSON = %s", data)
	}

	var back Time
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if !back.Time().Equal(tt.Time()) {
		t.Errorf("round trip mismatch: %v != %v", back, tt)
	}
}

func TestTime_StorageRoundTrip(t *testing.T) {
	// 落库为无时区 UTC 文本，读回保持相等
	tt := Time(time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC))

	v, err := tt.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != "2024-06-01 08:30:00" {
		t.Errorf("Value() = %v, want 2024-06-01 08:30:00", v)
	}

	var back Time
	if err := back.Scan(v); err != nil {
		t.Fatal(err)
	}
	if !back.Time().Equal(tt.Time()) {
		t.Errorf("scan round trip mismatch: %v != %v", back, tt)
	}

	// NULL 列读回为零值
	var zero Time
	if err := zero.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if !zero.IsZero() {
		t.Error("scan nil should yield zero time")
	}
}

func TestNow_SecondPrecision(t *testing.T) {
	now := Now()
	if now.Time().Nanosecond() != 0 {
		t.Errorf("Now() should be truncated to seconds, got %dns", now.Time().Nanosecond())
	}
	if now.Time().Location() != time.UTC {
		t.Errorf("Now() should be UTC, got %v", now.Time().Location())
	}
}
