package app

import (
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    24 * time.Hour,
		Issuer:    "user-issuer",
	}
	tm := NewTokenManager(cfg)

	uid := int64(1001)
	email := "a@example.com"
	ip := "127.0.0.1"

	// 1. 测试生成和解析
	token, err := tm.Generate(uid, email, ip)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, claims.UID)
	}
	if claims.Email != email {
		t.Errorf("Expected Email %s, got %s", email, claims.Email)
	}

	// 验证 ExpiresAt (由于只存了秒级 Unix 戳，允许 1 秒内的误差)
	expectedExp := time.Now().Add(cfg.Expiry)
	if claims.ExpiresAt.Unix() < expectedExp.Unix()-1 || claims.ExpiresAt.Unix() > expectedExp.Unix()+1 {
		t.Errorf("Expected ExpiresAt around %v, got %v", expectedExp, claims.ExpiresAt)
	}

	// 2. 测试错误的密钥
	wrongCfg := cfg
	wrongCfg.SecretKey = "wrong-secret"
	tmWrong := NewTokenManager(wrongCfg)

	wrongToken, _ := tmWrong.Generate(uid, email, ip)
	if _, err := tm.Parse(wrongToken); err == nil {
		t.Error("Expected error when parsing token with wrong secret key, but got nil")
	}

	// 3. 测试篡改后的 Token
	tampered := token + "tampered"
	if _, err := tm.Parse(tampered); err == nil {
		t.Error("Expected error for tampered token, but got nil")
	}
}

func TestTokenManager_Validate(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "user-secret"})

	token, err := tm.Generate(7, "b@example.com", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := tm.Validate(token); err != nil {
		t.Errorf("Validate failed for fresh token: %v", err)
	}
	if err := tm.Validate("garbage"); err == nil {
		t.Error("Validate should fail for garbage token")
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	// 负的过期时间直接生成已过期 Token
	tm := NewTokenManager(TokenConfig{SecretKey: "user-secret", Expiry: -time.Hour})

	token, err := tm.Generate(7, "b@example.com", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := tm.Parse(token); err == nil {
		t.Error("Expected error for expired token, but got nil")
	}
}
