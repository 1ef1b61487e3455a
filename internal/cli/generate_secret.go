package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/localediff/internal/security"
)

const (
	generatedSecretLength   = 48
	generatedSecretAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

// RunGenerateSecretCommand prints a random SECRET_KEY value.
func RunGenerateSecretCommand(stdout io.Writer) error {
	secret, err := generateSecretKey(generatedSecretLength)
	if err != nil {
		return fmt.Errorf("generate secret key: %w", err)
	}
	fmt.Fprintf(stdout, "SECRET_KEY=%s\n", secret)
	return nil
}

func generateSecretKey(length int) (string, error) {
	if length < 32 {
		length = 32
	}
	return security.RandomString(length, generatedSecretAlphabet)
}
