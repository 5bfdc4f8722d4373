package crypto

import (
	"crypto/rand"
	"fmt"

	"github.com/memetcircus/whisper-core/internal/domain"
)

// Random returns n bytes from the platform entropy source.
func Random(n int) ([]byte, error) {
	b := make([]byte, n)
	if err := Fill(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Fill overwrites b with random bytes.
func Fill(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRandomGenerationFailure, err)
	}
	return nil
}
