package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/localediff/internal/security"
)

const maxSecretLineLength = 1024

var ErrPasswordMismatch = errors.New("passwords do not match")

// RunHashPasswordCommand prompts twice for the admin password without echo
// and prints the bcrypt hash to use as ADMIN_PASSWORD_HASH.
func RunHashPasswordCommand(stdin *os.File, stdout io.Writer) error {
	return hashPasswordInteractive(func() (string, error) {
		return readSecretNoEcho(stdin)
	}, stdout)
}

func hashPasswordInteractive(readSecret func() (string, error), stdout io.Writer) error {
	fmt.Fprint(stdout, "Admin password: ")
	password, err := readSecret()
	fmt.Fprintln(stdout)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(stdout, "Repeat password: ")
	confirmation, err := readSecret()
	fmt.Fprintln(stdout)
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}

	if password != confirmation {
		return ErrPasswordMismatch
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "ADMIN_PASSWORD_HASH='%s'\n", hash)
	return nil
}

// readSecretLine reads up to the next newline one byte at a time so nothing
// past the line is consumed from reader.
func readSecretLine(reader io.Reader) (string, error) {
	var line strings.Builder
	buffer := make([]byte, 1)
	for {
		n, err := reader.Read(buffer)
		if n == 1 {
			if buffer[0] == '\n' {
				break
			}
			if line.Len() >= maxSecretLineLength {
				return "", fmt.Errorf("input longer than %d bytes", maxSecretLineLength)
			}
			line.WriteByte(buffer[0])
		}
		if errors.Is(err, io.EOF) {
			if line.Len() == 0 {
				return "", io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(line.String(), "\r"), nil
}
