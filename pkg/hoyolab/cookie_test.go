package hoyolab

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCookie_AllFields(t *testing.T) {
	cred, err := ParseCookie("ltoken=abc123; ltuid=901234567; cookie_token=ct456; account_id=901234567; mi18nLang=fr-fr")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cred.LToken != "abc123" {
		t.Errorf("Expected ltoken 'abc123', got '%s'", cred.LToken)
	}
	if cred.LTUID != 901234567 {
		t.Errorf("Expected ltuid 901234567, got %d", cred.LTUID)
	}
	if cred.CookieToken != "ct456" {
		t.Errorf("Expected cookie_token 'ct456', got '%s'", cred.CookieToken)
	}
	if cred.AccountID != 901234567 {
		t.Errorf("Expected account_id 901234567, got %d", cred.AccountID)
	}
	if cred.Language != "fr-fr" {
		t.Errorf("Expected language 'fr-fr', got '%s'", cred.Language)
	}
}

func TestParseCookie_RoundTrip(t *testing.T) {
	original, err := ParseCookie("ltoken=abc123; ltuid=901234567; cookie_token=ct456")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	serialized, err := original.Cookie()
	if err != nil {
		t.Fatalf("Unexpected error serializing: %v", err)
	}

	parsed, err := ParseCookie(serialized)
	if err != nil {
		t.Fatalf("Unexpected error re-parsing %q: %v", serialized, err)
	}

	if parsed.LToken != original.LToken || parsed.LTUID != original.LTUID || parsed.CookieToken != original.CookieToken {
		t.Errorf("Round trip mismatch: %+v vs %+v", parsed, original)
	}
}

func TestParseCookie_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing ltoken", "ltuid=901234567"},
		{"missing ltuid", "ltoken=abc123"},
		{"empty", ""},
		{"unrelated keys", "foo=bar; baz=qux"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCookie(tc.raw)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var credErr *CredentialError
			if !errors.As(err, &credErr) {
				t.Errorf("Expected *CredentialError, got %T", err)
			}
		})
	}
}

func TestParseCookie_DerivesLTUIDFromAccountID(t *testing.T) {
	cred, err := ParseCookie("ltoken=abc123; account_id=901234567")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cred.LTUID != 901234567 {
		t.Errorf("Expected ltuid derived from account_id, got %d", cred.LTUID)
	}
}

func TestParseCookie_NonNumericLTUID(t *testing.T) {
	_, err := ParseCookie("ltoken=abc123; ltuid=not-a-number")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	var credErr *CredentialError
	if !errors.As(err, &credErr) {
		t.Errorf("Expected *CredentialError, got %T", err)
	}
}

func TestCookie_DerivesAccountID(t *testing.T) {
	cred := &Credential{LToken: "abc123", LTUID: 901234567}

	serialized, err := cred.Cookie()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(serialized, "account_id=901234567") {
		t.Errorf("Expected account_id derived from ltuid in %q", serialized)
	}
}

func TestCookie_LanguageKeySentVerbatim(t *testing.T) {
	cred := &Credential{LToken: "abc123", LTUID: 901234567, Language: "fr-fr"}

	serialized, err := cred.Cookie()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(serialized, "mi18nLang=fr-fr") {
		t.Errorf("Expected mi18nLang key on the wire, got %q", serialized)
	}
	if strings.Contains(serialized, "mi18n_lang") {
		t.Errorf("Expected no snake_case language key, got %q", serialized)
	}

	parsed, err := ParseCookie(serialized)
	if err != nil {
		t.Fatalf("Unexpected error re-parsing %q: %v", serialized, err)
	}
	if parsed.Language != "fr-fr" {
		t.Errorf("Expected language 'fr-fr' after round trip, got %q", parsed.Language)
	}
}

func TestCookie_MissingRequiredFields(t *testing.T) {
	cred := &Credential{CookieToken: "ct456"}

	_, err := cred.Cookie()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	var credErr *CredentialError
	if !errors.As(err, &credErr) {
		t.Errorf("Expected *CredentialError, got %T", err)
	}
}

func TestKeyTranslation(t *testing.T) {
	cases := []struct {
		snake string
		camel string
	}{
		{"ltoken", "ltoken"},
		{"cookie_token", "cookieToken"},
		{"account_id", "accountId"},
		{"mi18n_lang", "mi18nLang"},
	}

	for _, tc := range cases {
		if got := snakeToCamel(tc.snake); got != tc.camel {
			t.Errorf("snakeToCamel(%q) = %q, want %q", tc.snake, got, tc.camel)
		}
		if got := camelToSnake(tc.camel); got != tc.snake {
			t.Errorf("camelToSnake(%q) = %q, want %q", tc.camel, got, tc.snake)
		}
	}
}
