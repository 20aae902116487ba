package auth_test

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonesrussell/gosabda/internal/auth"
	"github.com/jonesrussell/gosabda/internal/config"
	"github.com/jonesrussell/gosabda/internal/logger"
)

const testFlutterKey = "test_flutter_key"

func newTestService(secret string, lifetime time.Duration) *auth.Service {
	cfg := &config.AuthConfig{
		SecretKey:     secret,
		TokenLifetime: lifetime,
	}
	apiKeys := map[string]string{
		"flutter_app": testFlutterKey,
		"mobile_app":  "test_mobile_key",
	}
	return auth.New(cfg, apiKeys, logger.NewNoOp())
}

func TestGenerateToken_ValidKey(t *testing.T) {
	svc := newTestService("test-secret-key-32-chars-minimum", 24*time.Hour)

	token, expiresAt, err := svc.GenerateToken(testFlutterKey)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("GenerateToken() token has %d dots, want 2", strings.Count(token, "."))
	}

	wantExpiry := time.Now().Add(24 * time.Hour)
	if expiresAt.Before(wantExpiry.Add(-time.Minute)) || expiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("GenerateToken() expiresAt = %v, want about %v", expiresAt, wantExpiry)
	}
}

func TestGenerateToken_UnknownKey(t *testing.T) {
	svc := newTestService("test-secret-key-32-chars-minimum", 24*time.Hour)

	_, _, err := svc.GenerateToken("not-a-registered-key")
	if !errors.Is(err, auth.ErrInvalidAPIKey) {
		t.Errorf("GenerateToken() error = %v, want ErrInvalidAPIKey", err)
	}
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	svc := newTestService("test-secret-key-32-chars-minimum", 24*time.Hour)

	token, _, err := svc.GenerateToken(testFlutterKey)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, ok := svc.VerifyToken(token)
	if !ok {
		t.Fatal("VerifyToken() rejected a freshly issued token")
	}

	digest := sha256.Sum256([]byte(testFlutterKey))
	if claims.APIKey != hex.EncodeToString(digest[:]) {
		t.Errorf("VerifyToken() api_key claim = %s, want SHA-256 of the key", claims.APIKey)
	}
	if claims.APIKey == testFlutterKey {
		t.Error("VerifyToken() claims carry the raw API key")
	}
}

func TestVerifyToken_TamperedSignature(t *testing.T) {
	svc := newTestService("test-secret-key-32-chars-minimum", 24*time.Hour)

	token, _, err := svc.GenerateToken(testFlutterKey)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Flip the first signature character. The final character holds unused
	// padding bits that non-strict base64 decoding ignores.
	sigStart := strings.LastIndex(token, ".") + 1
	flipped := byte('A')
	if token[sigStart] == 'A' {
		flipped = 'B'
	}
	tampered := token[:sigStart] + string(flipped) + token[sigStart+1:]

	if _, ok := svc.VerifyToken(tampered); ok {
		t.Error("VerifyToken() accepted a tampered token")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	svc := newTestService("test-secret-key-32-chars-minimum", -time.Hour)

	token, _, err := svc.GenerateToken(testFlutterKey)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, ok := svc.VerifyToken(token); ok {
		t.Error("VerifyToken() accepted an expired token")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := newTestService("secret-key-one-32-chars-minimum1", 24*time.Hour)
	verifier := newTestService("secret-key-two-32-chars-minimum2", 24*time.Hour)

	token, _, err := issuer.GenerateToken(testFlutterKey)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, ok := verifier.VerifyToken(token); ok {
		t.Error("VerifyToken() accepted a token signed with a different secret")
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	svc := newTestService("test-secret-key-32-chars-minimum", 24*time.Hour)

	invalidTokens := []string{
		"",
		"not-a-token",
		"only.two.parts.here",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		if _, ok := svc.VerifyToken(token); ok {
			t.Errorf("VerifyToken(%q) accepted a malformed token", token)
		}
	}
}

func TestClientFor(t *testing.T) {
	svc := newTestService("test-secret-key-32-chars-minimum", 24*time.Hour)

	tests := []struct {
		name     string
		apiKey   string
		wantName string
		wantOK   bool
	}{
		{"flutter key", testFlutterKey, "flutter_app", true},
		{"mobile key", "test_mobile_key", "mobile_app", true},
		{"unknown key", "nope", "", false},
		{"empty key", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := svc.ClientFor(tt.apiKey)
			if name != tt.wantName || ok != tt.wantOK {
				t.Errorf("ClientFor(%q) = (%q, %v), want (%q, %v)", tt.apiKey, name, ok, tt.wantName, tt.wantOK)
			}
		})
	}
}

func TestLifetime(t *testing.T) {
	svc := newTestService("test-secret-key-32-chars-minimum", 12*time.Hour)

	if svc.Lifetime() != 12*time.Hour {
		t.Errorf("Lifetime() = %v, want 12h", svc.Lifetime())
	}
}
