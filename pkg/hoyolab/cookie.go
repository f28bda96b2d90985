package hoyolab

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Credential is the authentication data extracted from a HoYoLAB cookie.
// LToken and LTUID are required; AccountID is derived from LTUID when only
// one of the two is present. A Credential is not mutated by the client
// after being passed to NewClient.
type Credential struct {
	LToken      string
	LTUID       int64
	CookieToken string
	AccountID   int64
	Language    string
}

// cookie keys in canonical (camelCase) form, in serialization order.
var cookieKeyOrder = []string{"ltoken", "ltuid", "cookieToken", "accountId", "mi18nLang"}

// ParseCookie converts a raw browser cookie string (semicolon-separated
// key=value pairs) into a Credential. Keys are accepted in either snake_case
// or camelCase form. ltoken and ltuid must be present.
func ParseCookie(raw string) (*Credential, error) {
	fields := make(map[string]string)
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		fields[snakeToCamel(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	cred := &Credential{
		LToken:      fields["ltoken"],
		CookieToken: fields["cookieToken"],
		Language:    fields["mi18nLang"],
	}

	if v, ok := fields["ltuid"]; ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &CredentialError{Message: fmt.Sprintf("ltuid %q is not numeric", v)}
		}
		cred.LTUID = id
	}
	if v, ok := fields["accountId"]; ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &CredentialError{Message: fmt.Sprintf("account_id %q is not numeric", v)}
		}
		cred.AccountID = id
	}

	// Each of ltuid/account_id stands in for the other when only one is set.
	if cred.LTUID == 0 {
		cred.LTUID = cred.AccountID
	}
	if cred.AccountID == 0 {
		cred.AccountID = cred.LTUID
	}

	if err := cred.Validate(); err != nil {
		return nil, err
	}
	return cred, nil
}

// Validate checks that the required fields are present.
func (c *Credential) Validate() error {
	if c == nil {
		return &CredentialError{Message: "credential is nil"}
	}
	if c.LToken == "" {
		return &CredentialError{Message: "ltoken is required"}
	}
	if c.LTUID == 0 && c.AccountID == 0 {
		return &CredentialError{Message: "ltuid is required"}
	}
	return nil
}

// Cookie serializes the Credential back to the wire cookie-string format.
// account_id is re-derived from ltuid when absent.
func (c *Credential) Cookie() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	ltuid := c.LTUID
	if ltuid == 0 {
		ltuid = c.AccountID
	}
	accountID := c.AccountID
	if accountID == 0 {
		accountID = ltuid
	}

	values := map[string]string{
		"ltoken":      c.LToken,
		"ltuid":       strconv.FormatInt(ltuid, 10),
		"cookieToken": c.CookieToken,
		"accountId":   strconv.FormatInt(accountID, 10),
		"mi18nLang":   c.Language,
	}

	var pairs []string
	for _, key := range cookieKeyOrder {
		if values[key] == "" {
			continue
		}
		pairs = append(pairs, wireKey(key)+"="+values[key])
	}
	return strings.Join(pairs, "; "), nil
}

// wireKey maps a canonical key to the form the service reads. mi18nLang
// goes over the wire verbatim; the service ignores mi18n_lang.
func wireKey(key string) string {
	if key == "mi18nLang" {
		return key
	}
	return camelToSnake(key)
}

// snakeToCamel maps a snake_case cookie key to camelCase: the first segment
// is kept as-is, subsequent segments are capitalized and concatenated.
func snakeToCamel(key string) string {
	segments := strings.Split(key, "_")
	var b strings.Builder
	b.WriteString(segments[0])
	for _, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		b.WriteString(strings.ToUpper(seg[:1]))
		b.WriteString(seg[1:])
	}
	return b.String()
}

// camelToSnake is the inverse mapping: an underscore is inserted before
// each uppercase letter and the whole key is lowercased.
func camelToSnake(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
