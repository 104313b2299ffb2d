package commands

import (
	"bufio"
	"errors"
	"strings"
	"testing"
)

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		want     error
	}{
		{"Valid", "styret", "secret", "secret", nil},
		{"Empty username", "", "secret", "secret", ErrEmptyUsername},
		{"Colon in username", "sty:ret", "secret", "secret", ErrUsernameColon},
		{"Empty password", "styret", "", "", ErrEmptyPassword},
		{"Mismatch", "styret", "secret", "secret2", ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkCredentials(tt.username, tt.password, tt.confirm); !errors.Is(err, tt.want) {
				t.Errorf("checkCredentials() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("styret \nlast"))
	if got, err := readLine(r); err != nil || got != "styret" {
		t.Errorf("readLine() = %q, %v", got, err)
	}
	if got, err := readLine(r); err != nil || got != "last" {
		t.Errorf("readLine() without newline = %q, %v", got, err)
	}
	if _, err := readLine(r); err == nil {
		t.Error("Expected EOF on empty input")
	}
}
