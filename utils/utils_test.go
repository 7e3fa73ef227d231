package utils

import (
	"encoding/base64"
	"testing"
	"time"

	userModel "flight-booking/models/user"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	account := &userModel.User{
		Uuid:  "11111111-2222-3333-4444-555555555555",
		Email: "traveller@example.com",
		Role:  "customer",
	}

	token, err := GenerateToken(account)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error: %v", err)
	}
	if claims["uuid"] != account.Uuid {
		t.Fatalf("uuid claim = %v, want %s", claims["uuid"], account.Uuid)
	}
	if claims["email"] != account.Email {
		t.Fatalf("email claim = %v, want %s", claims["email"], account.Email)
	}
	if claims["role"] != account.Role {
		t.Fatalf("role claim = %v, want %s", claims["role"], account.Role)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken(&userModel.User{Uuid: "u", Email: "e", Role: "customer"})
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, err := VerifyToken(token); err == nil {
		t.Fatal("VerifyToken() accepted a token signed with another secret")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := GenerateToken(&userModel.User{}); err == nil {
		t.Fatal("GenerateToken() succeeded without JWT_SECRET")
	}
}

func TestDayWindow(t *testing.T) {
	date := time.Date(2026, 3, 15, 13, 45, 12, 0, time.UTC)
	start, end := DayWindow(date)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("window start = %v, want beginning of day", start)
	}
	if start.Day() != 15 || end.Day() != 15 {
		t.Fatalf("window crossed days: %v .. %v", start, end)
	}
	if !end.After(date) || !start.Before(date) {
		t.Fatalf("window [%v, %v] does not contain %v", start, end, date)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		cents    int64
		currency string
		want     string
	}{
		{34999, "usd", "349.99 USD"},
		{100, "EUR", "1.00 EUR"},
		{5, "USD", "0.05 USD"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.cents, tc.currency); got != tc.want {
			t.Errorf("FormatAmount(%d, %q) = %q, want %q", tc.cents, tc.currency, got, tc.want)
		}
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	plaintext := "pi_123_secret_abc"
	encrypted, err := EncryptData(plaintext)
	if err != nil {
		t.Fatalf("EncryptData() error: %v", err)
	}
	if encrypted == plaintext {
		t.Fatal("EncryptData() returned the plaintext")
	}

	decrypted, err := DecryptData(encrypted)
	if err != nil {
		t.Fatalf("DecryptData() error: %v", err)
	}
	if decrypted != plaintext {
		t.Fatalf("round trip = %q, want %q", decrypted, plaintext)
	}
}

// A raw 32-char key that is also parseable base64 (any hex string is) must be
// used verbatim, not decoded down to 24 bytes.
func TestEncryptDataAcceptsRawHexShapedKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "00112233445566778899aabbccddeeff")

	encrypted, err := EncryptData("secret")
	if err != nil {
		t.Fatalf("EncryptData() error with raw 32-byte key: %v", err)
	}
	decrypted, err := DecryptData(encrypted)
	if err != nil || decrypted != "secret" {
		t.Fatalf("round trip = %q, %v", decrypted, err)
	}
}

func TestEncryptDataAcceptsBase64Key(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	t.Setenv("ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(raw))

	encrypted, err := EncryptData("secret")
	if err != nil {
		t.Fatalf("EncryptData() error with base64 key: %v", err)
	}
	decrypted, err := DecryptData(encrypted)
	if err != nil || decrypted != "secret" {
		t.Fatalf("round trip = %q, %v", decrypted, err)
	}
}

func TestEncryptDataRejectsShortKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "too-short")
	if _, err := EncryptData("secret"); err == nil {
		t.Fatal("EncryptData() accepted a key shorter than 32 bytes")
	}
}

func TestEncryptDataEmptyInput(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")
	out, err := EncryptData("")
	if err != nil || out != "" {
		t.Fatalf("EncryptData(\"\") = %q, %v; want empty, nil", out, err)
	}
}
