package hashguard

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestHashGuard_HashAndVerify(t *testing.T) {
	g := New()
	ctx := context.Background()

	encoded, err := g.Hash(ctx, "73920415")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2i$v=19$m=3000,t=3,p=4$") {
		t.Errorf("unexpected PHC prefix: %s", encoded)
	}

	ok, err := g.Verify(ctx, encoded, "73920415")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Error("Verify should succeed for the original secret")
	}

	ok, err = g.Verify(ctx, encoded, "00000000")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Error("Verify should fail for a wrong secret")
	}
}

func TestHashGuard_HashIsSalted(t *testing.T) {
	g := New()
	ctx := context.Background()

	a, err := g.Hash(ctx, "12345678")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	b, err := g.Hash(ctx, "12345678")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same secret should differ (random salt)")
	}
}

func TestHashGuard_VerifyUnparseableHash(t *testing.T) {
	g := New()
	ctx := context.Background()

	// 无法解析的存储哈希按不匹配处理，不报错
	cases := []string{
		"",
		"not-a-phc-string",
		"$argon2id$v=19$m=3000,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2i$v=18$m=3000,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2i$v=19$m=3000,t=3,p=4$!!!$aGFzaA",
		"$argon2i$v=19$bad$c2FsdA$aGFzaA",
	}
	for _, stored := range cases {
		ok, err := g.Verify(ctx, stored, "12345678")
		if err != nil {
			t.Errorf("Verify(%q) returned error: %v", stored, err)
		}
		if ok {
			t.Errorf("Verify(%q) should not match", stored)
		}
	}
}

func TestHashGuard_Timeout(t *testing.T) {
	// 并发上限 1 且超时极短：先占住唯一槽位，后续请求必然超时
	g := NewWithLimits(1, 50*time.Millisecond)
	if !g.sem.TryAcquire(1) {
		t.Fatal("failed to occupy the only slot")
	}
	defer g.sem.Release(1)

	if _, err := g.Hash(context.Background(), "12345678"); err != ErrHashTimeout {
		t.Errorf("expected ErrHashTimeout, got %v", err)
	}
	if _, err := g.Verify(context.Background(), "$argon2i$v=19$m=3000,t=3,p=4$c2FsdA$aGFzaA", "x"); err != ErrHashTimeout {
		t.Errorf("expected ErrHashTimeout, got %v", err)
	}
}

func TestHashGuard_SlotReleasedAfterTimeout(t *testing.T) {
	g := NewWithLimits(1, 2*time.Second)

	// 正常完成一次后槽位应可复用
	if _, err := g.Hash(context.Background(), "12345678"); err != nil {
		t.Fatalf("first Hash failed: %v", err)
	}
	if _, err := g.Hash(context.Background(), "87654321"); err != nil {
		t.Fatalf("second Hash failed: %v", err)
	}
}
