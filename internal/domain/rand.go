package domain

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// entropy fills b from the system's cryptographic random source.
// A failure here is terminal for the caller; nothing is retried.
func entropy(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("read system entropy: %w", err)
	}
	return nil
}

func randUint16() (uint16, error) {
	var b [2]byte
	if err := entropy(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func randBytes8() ([8]byte, error) {
	var b [8]byte
	if err := entropy(b[:]); err != nil {
		return b, err
	}
	return b, nil
}
