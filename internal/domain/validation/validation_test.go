package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOK  bool
		wantMsg string
	}{
		{name: "simple", input: "Ana", wantOK: true},
		{name: "accented", input: "José Conceição", wantOK: true},
		{name: "hyphen and apostrophe", input: "Mary-Jane O'Neil", wantOK: true},
		{name: "non latin letters", input: "Zoë Ωmega", wantOK: true},
		{name: "empty", input: "", wantMsg: MsgNameRequired},
		{name: "blank", input: "   ", wantMsg: MsgNameRequired},
		{name: "too short", input: "A", wantMsg: MsgNameLength},
		{name: "too long", input: strings.Repeat("a", 101), wantMsg: MsgNameLength},
		{name: "exactly 100", input: strings.Repeat("a", 100), wantOK: true},
		{name: "digits", input: "Ana2", wantMsg: MsgNameCharacters},
		{name: "symbols", input: "Ana!", wantMsg: MsgNameCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := Name(tt.input)
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Errorf("Name(%q) = (%v, %q), want (%v, %q)", tt.input, ok, msg, tt.wantOK, tt.wantMsg)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOK  bool
		wantMsg string
	}{
		{name: "known provider", input: "ana@gmail.com", wantOK: true},
		{name: "known provider uppercase", input: "Ana@GMAIL.com", wantOK: true},
		{name: "custom domain", input: "ana@nestfin.io", wantOK: true},
		{name: "plus addressing", input: "ana+fin@outlook.com", wantOK: true},
		{name: "empty", input: "", wantMsg: MsgEmailRequired},
		{name: "no at", input: "ana.gmail.com", wantMsg: MsgEmailFormat},
		{name: "no tld", input: "ana@localhost", wantMsg: MsgEmailFormat},
		{name: "disposable", input: "ana@mailinator.com", wantMsg: MsgEmailDisposable},
		{name: "disposable uppercase", input: "ana@YOPMAIL.com", wantMsg: MsgEmailDisposable},
		{name: "subdomain fails shape", input: "ana@mail.example.com", wantMsg: MsgEmailDomain},
		{name: "leading hyphen", input: "ana@-bad.com", wantMsg: MsgEmailDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := Email(tt.input)
			if ok != tt.wantOK || msg != tt.wantMsg {
				t.Errorf("Email(%q) = (%v, %q), want (%v, %q)", tt.input, ok, msg, tt.wantOK, tt.wantMsg)
			}
		})
	}
}

func TestPassword_SingleRuleFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty", input: "", wantMsg: MsgPasswordRequired},
		{name: "blank", input: "        ", wantMsg: MsgPasswordRequired},
		{name: "too short", input: "Su#y7", wantMsg: MsgPasswordTooShort},
		{name: "too long", input: "Sunny#Day7" + strings.Repeat("x", 119), wantMsg: MsgPasswordTooLong},
		{name: "no lowercase", input: "SUNNY#DAY7", wantMsg: MsgPasswordLower},
		{name: "no uppercase", input: "sunny#day7", wantMsg: MsgPasswordUpper},
		{name: "no digit", input: "Sunny#Days", wantMsg: MsgPasswordDigit},
		{name: "no special", input: "SunnyDay7x", wantMsg: MsgPasswordSpecial},
		{name: "ascending digits", input: "Sunny#Day789", wantMsg: MsgPasswordSequential},
		{name: "descending digits", input: "Sunny#Day321", wantMsg: MsgPasswordSequential},
		{name: "ascending letters", input: "Xyz#Sunny7", wantMsg: MsgPasswordSequential},
		{name: "descending letters mixed case", input: "Sunny#CBa7", wantMsg: MsgPasswordSequential},
		{name: "sequential letters and digit", input: "Abcdef1!", wantMsg: MsgPasswordSequential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := Password(tt.input)
			if ok {
				t.Fatalf("Password(%q) accepted, want rejection", tt.input)
			}
			if msg != tt.wantMsg {
				t.Errorf("Password(%q) message = %q, want %q", tt.input, msg, tt.wantMsg)
			}
		})
	}
}

func TestPassword_Valid(t *testing.T) {
	for _, pw := range []string{"Sunny#Day7", "Ana#2025Fin", "Tr0ub4dor&3", strings.Repeat("Aa1!", 32)} {
		if ok, msg := Password(pw); !ok {
			t.Errorf("Password(%q) rejected: %s", pw, msg)
		}
	}
}

// Every denylisted password fails a length or composition rule first, so
// MsgPasswordCommon is never the reported message for them.
func TestPassword_CommonListIsShadowed(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{"password", MsgPasswordUpper},
		{"PASSWORD", MsgPasswordLower},
		{"Password123", MsgPasswordSpecial},
		{"qwerty", MsgPasswordTooShort},
		{"123456789", MsgPasswordLower},
	}
	for _, tt := range tests {
		if ok, msg := Password(tt.input); ok || msg != tt.wantMsg {
			t.Errorf("Password(%q) = (%v, %q), want (false, %q)", tt.input, ok, msg, tt.wantMsg)
		}
	}

	for pw := range commonPasswords {
		for _, in := range []string{pw, strings.ToUpper(pw)} {
			ok, msg := Password(in)
			if ok {
				t.Errorf("Password(%q) accepted a common password", in)
			}
			if msg == MsgPasswordCommon {
				t.Errorf("Password(%q) reached the denylist; update this test", in)
			}
		}
	}
}

func TestHasSequentialRun(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abc", true},
		{"cba", true},
		{"xyz", true},
		{"012", true},
		{"987", true},
		{"a1b2c3", false},
		{"ab1", false},
		{"aab", false},
		{"135", false},
		{"ab", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := hasSequentialRun(tt.in); got != tt.want {
				t.Errorf("hasSequentialRun(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestError(t *testing.T) {
	err := fmt.Errorf("create: %w", NewError("description", "description is required"))
	if !IsValidationError(err) {
		t.Fatal("IsValidationError() = false for wrapped *Error")
	}

	var ve *Error
	if !errors.As(err, &ve) || ve.Field != "description" {
		t.Errorf("errors.As() = %+v", ve)
	}
	if IsValidationError(errors.New("boom")) {
		t.Error("IsValidationError() = true for plain error")
	}
}

func TestRequiredAndMaxLength(t *testing.T) {
	if err := Required("name", ""); err == nil || err.Error() != "name is required" {
		t.Errorf("Required() = %v", err)
	}
	if err := Required("name", "x"); err != nil {
		t.Errorf("Required() = %v, want nil", err)
	}
	if err := MaxLength("notes", strings.Repeat("é", 5), 5); err != nil {
		t.Errorf("MaxLength() counts bytes instead of characters: %v", err)
	}
	if err := MaxLength("notes", "abcdef", 5); err == nil {
		t.Error("MaxLength() = nil for value over the limit")
	}
}
