package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// Scrypt parameters sized for interactive key derivation on a laptop
	scryptN             = 1 << 15
	scryptR             = 8
	scryptP             = 1
	keyLength           = 32
	SaltLength          = 16
	nonceLength         = 12
	minCiphertextLength = nonceLength + 1
)

var (
	ErrPassphraseEmpty     = errors.New("vault passphrase cannot be empty")
	ErrInvalidSalt         = errors.New("vault salt must be 16 bytes")
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	ErrDecryptionFailed    = errors.New("decryption failed")
)

// Vault provides field-level encryption for records at rest. Ciphertexts are
// base64(nonce || AES-256-GCM sealed plaintext) with the key derived from the
// user passphrase via scrypt. Safe for concurrent use once constructed.
type Vault struct {
	aead cipher.AEAD
}

// New derives the vault key from passphrase and salt and returns a ready vault.
func New(passphrase string, salt []byte) (*Vault, error) {
	if passphrase == "" {
		return nil, ErrPassphraseEmpty
	}
	if len(salt) != SaltLength {
		return nil, ErrInvalidSalt
	}

	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to derive vault key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return &Vault{aead: aead}, nil
}

// GenerateSalt returns a fresh random salt for a new vault.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate vault salt: %w", err)
	}
	return salt, nil
}

// Encrypt seals plaintext and returns a base64 ciphertext. Encrypting the
// empty string is valid; it round-trips to an empty plaintext.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := v.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a ciphertext produced by Encrypt. Returns
// ErrMalformedCiphertext for undecodable input and ErrDecryptionFailed when
// authentication fails (tampered data or wrong passphrase).
func (v *Vault) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	if len(raw) < minCiphertextLength {
		return "", ErrMalformedCiphertext
	}

	nonce, sealed := raw[:nonceLength], raw[nonceLength:]
	plaintext, err := v.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
