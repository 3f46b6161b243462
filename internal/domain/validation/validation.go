// Package validation holds the acceptance rules for user-supplied names,
// email addresses and passwords. Every check is pure.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	nameMinLength     = 2
	nameMaxLength     = 100
	passwordMinLength = 8
	passwordMaxLength = 128
	specialChars      = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Rule messages.
const (
	MsgNameRequired   = "name is required"
	MsgNameLength     = "name must be between 2 and 100 characters"
	MsgNameCharacters = "name may only contain letters, spaces, hyphens and apostrophes"

	MsgEmailRequired   = "email is required"
	MsgEmailFormat     = "invalid email format"
	MsgEmailDisposable = "disposable email addresses are not allowed"
	MsgEmailDomain     = "email domain is not valid"

	MsgPasswordRequired   = "password is required"
	MsgPasswordTooShort   = "password must be at least 8 characters"
	MsgPasswordTooLong    = "password must be at most 128 characters"
	MsgPasswordLower      = "password must contain at least one lowercase letter"
	MsgPasswordUpper      = "password must contain at least one uppercase letter"
	MsgPasswordDigit      = "password must contain at least one number"
	MsgPasswordSpecial    = "password must contain at least one special character (" + specialChars + ")"
	MsgPasswordCommon     = "this password is too common, choose a more secure one"
	MsgPasswordSequential = "password cannot contain sequences like '123' or 'abc'"
)

var (
	nameRegex   = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	domainRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]?\.[a-zA-Z]{2,}$`)
)

var disposableDomains = map[string]struct{}{
	"10minutemail.com":  {},
	"tempmail.org":      {},
	"guerrillamail.com": {},
	"mailinator.com":    {},
	"yopmail.com":       {},
	"temp-mail.org":     {},
	"throwaway.email":   {},
	"getnada.com":       {},
	"maildrop.cc":       {},
}

var knownDomains = map[string]struct{}{
	"gmail.com":      {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"live.com":       {},
	"msn.com":        {},
	"icloud.com":     {},
	"me.com":         {},
	"protonmail.com": {},
	"yandex.com":     {},
	"mail.ru":        {},
	"aol.com":        {},
	"zoho.com":       {},
	"fastmail.com":   {},
	"tutanota.com":   {},
	"gmx.com":        {},
}

var commonPasswords = map[string]struct{}{
	"password":    {},
	"123456":      {},
	"123456789":   {},
	"qwerty":      {},
	"abc123":      {},
	"password123": {},
	"admin":       {},
	"letmein":     {},
	"welcome":     {},
	"monkey":      {},
	"1234567890":  {},
	"password1":   {},
	"qwerty123":   {},
	"dragon":      {},
	"master":      {},
}

// Name reports whether name is acceptable as a display name.
func Name(name string) (bool, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false, MsgNameRequired
	}

	n := utf8.RuneCountInString(trimmed)
	if n < nameMinLength || n > nameMaxLength {
		return false, MsgNameLength
	}

	if !nameRegex.MatchString(trimmed) {
		return false, MsgNameCharacters
	}
	return true, ""
}

// Email reports whether email looks like a real, non-disposable address.
func Email(email string) (bool, string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, MsgEmailRequired
	}

	if !emailRegex.MatchString(email) {
		return false, MsgEmailFormat
	}

	domain := strings.ToLower(email[strings.LastIndex(email, "@")+1:])
	if _, ok := disposableDomains[domain]; ok {
		return false, MsgEmailDisposable
	}

	if _, ok := knownDomains[domain]; ok {
		return true, ""
	}
	if !domainRegex.MatchString(domain) {
		return false, MsgEmailDomain
	}
	return true, ""
}

// Password reports whether password meets the strength rules. Rules are
// checked in a fixed order and the first failure is reported.
func Password(password string) (bool, string) {
	if strings.TrimSpace(password) == "" {
		return false, MsgPasswordRequired
	}

	n := utf8.RuneCountInString(password)
	if n < passwordMinLength {
		return false, MsgPasswordTooShort
	}
	if n > passwordMaxLength {
		return false, MsgPasswordTooLong
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(specialChars, r) {
			hasSpecial = true
		}
	}

	switch {
	case !hasLower:
		return false, MsgPasswordLower
	case !hasUpper:
		return false, MsgPasswordUpper
	case !hasDigit:
		return false, MsgPasswordDigit
	case !hasSpecial:
		return false, MsgPasswordSpecial
	}

	// No current denylist entry passes the composition rules above.
	lower := strings.ToLower(password)
	if _, ok := commonPasswords[lower]; ok {
		return false, MsgPasswordCommon
	}

	if hasSequentialRun(lower) {
		return false, MsgPasswordSequential
	}
	return true, ""
}

// hasSequentialRun reports whether s holds three consecutive ASCII digits or
// letters that step by +1 or -1 ("123", "cba").
func hasSequentialRun(s string) bool {
	b := []byte(s)
	for i := 0; i+2 < len(b); i++ {
		x, y, z := b[i], b[i+1], b[i+2]
		if !(sameClass(x, y) && sameClass(y, z)) {
			continue
		}
		d1, d2 := int(y)-int(x), int(z)-int(y)
		if d1 == d2 && (d1 == 1 || d1 == -1) {
			return true
		}
	}
	return false
}

func sameClass(a, b byte) bool {
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	isLetter := func(c byte) bool { return c >= 'a' && c <= 'z' }
	return (isDigit(a) && isDigit(b)) || (isLetter(a) && isLetter(b))
}
