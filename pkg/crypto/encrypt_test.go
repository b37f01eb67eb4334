package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte(`[{"id":"r1","post_id":"100","kind":"video"}]`)

	encrypted, err := Encrypt(plaintext, "correct horse")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if bytes.Contains(encrypted, plaintext) {
		t.Error("ciphertext must not contain the plaintext")
	}
	if !IsEncrypted(encrypted) {
		t.Error("IsEncrypted should recognize the output")
	}

	decrypted, err := Decrypt(encrypted, "correct horse")
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), "right")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if _, err := Decrypt(encrypted, "wrong"); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("error = %v, want ErrDecryptFailed", err)
	}
}

func TestDecryptTamperedData(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), "pw")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	encrypted[len(encrypted)-1] ^= 0xff
	if _, err := Decrypt(encrypted, "pw"); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("error = %v, want ErrDecryptFailed", err)
	}
}

func TestDecryptRejectsForeignData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "too short", data: []byte("XRSV")},
		{name: "wrong magic", data: bytes.Repeat([]byte("A"), HeaderSize+16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decrypt(tt.data, "pw"); !errors.Is(err, ErrInvalidMagic) {
				t.Errorf("error = %v, want ErrInvalidMagic", err)
			}
		})
	}
}
