// Package messages holds the user-facing email texts. Defaults are embedded;
// a JSON file can override any of them.
package messages

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

//go:embed defaults.json
var defaultsJSON []byte

type MessageText struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Messages struct {
	Verification  MessageText `json:"verification"`
	PasswordReset MessageText `json:"password_reset"`
}

var (
	defaults     Messages
	defaultsOnce sync.Once
)

// Default returns the embedded message set.
func Default() *Messages {
	defaultsOnce.Do(func() {
		if err := json.Unmarshal(defaultsJSON, &defaults); err != nil {
			panic(fmt.Sprintf("messages: invalid embedded defaults: %v", err))
		}
	})
	m := defaults
	return &m
}

// Load reads a messages JSON file on top of the embedded defaults.
// Fields missing from the file keep their default text.
func Load(path string) (*Messages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}

	m := Default()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse messages file: %w", err)
	}
	return m, nil
}

// Render replaces {{key}} placeholders in s.
func Render(s string, vars map[string]string) string {
	if len(vars) == 0 {
		return s
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
