package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/terraincognita07/localediff/internal/security"
)

func scriptedSecrets(values ...string) func() (string, error) {
	index := 0
	return func() (string, error) {
		if index >= len(values) {
			return "", io.ErrUnexpectedEOF
		}
		value := values[index]
		index++
		return value, nil
	}
}

func TestHashPasswordInteractivePrintsBcryptHash(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	if err := hashPasswordInteractive(scriptedSecrets("StrongPass1", "StrongPass1"), &output); err != nil {
		t.Fatalf("hashPasswordInteractive returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "ADMIN_PASSWORD_HASH='") || !strings.HasSuffix(last, "'") {
		t.Fatalf("unexpected hash line %q", last)
	}
	hash := strings.TrimSuffix(strings.TrimPrefix(last, "ADMIN_PASSWORD_HASH='"), "'")
	if !security.CheckPassword(hash, "StrongPass1") {
		t.Fatalf("printed hash does not match the password: %q", hash)
	}
	if strings.Contains(output.String(), "StrongPass1") {
		t.Fatal("output must not contain the plain password")
	}
}

func TestHashPasswordInteractiveRejectsMismatch(t *testing.T) {
	t.Parallel()

	err := hashPasswordInteractive(scriptedSecrets("StrongPass1", "StrongPass2"), io.Discard)
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestHashPasswordInteractiveRejectsShortPassword(t *testing.T) {
	t.Parallel()

	err := hashPasswordInteractive(scriptedSecrets("short", "short"), io.Discard)
	if !errors.Is(err, security.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestHashPasswordInteractiveReportsReadFailure(t *testing.T) {
	t.Parallel()

	err := hashPasswordInteractive(scriptedSecrets("StrongPass1"), io.Discard)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected wrapped io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadSecretLine(t *testing.T) {
	t.Parallel()

	reader := strings.NewReader("first\r\nsecond\nlast")
	for _, want := range []string{"first", "second", "last"} {
		got, err := readSecretLine(reader)
		if err != nil {
			t.Fatalf("readSecretLine returned error: %v", err)
		}
		if got != want {
			t.Fatalf("readSecretLine = %q, want %q", got, want)
		}
	}
	if _, err := readSecretLine(reader); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF at end of input, got %v", err)
	}
}

func TestReadSecretLineRejectsOverlongInput(t *testing.T) {
	t.Parallel()

	reader := strings.NewReader(strings.Repeat("a", maxSecretLineLength+1) + "\n")
	if _, err := readSecretLine(reader); err == nil {
		t.Fatal("expected error for overlong input")
	}
}
