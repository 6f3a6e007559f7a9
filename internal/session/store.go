// Package session persists the admin's bearer credential between runs.
// The token is sealed with an AEAD under a random master key; both files
// live in the user's dotfile directory with owner-only permissions. There
// is no refresh or expiry handling here: a rejected token means the admin
// logs in again.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"accessdesk/internal/api"
)

var (
	// ErrNoCredentials is returned when no sealed credential exists.
	ErrNoCredentials = errors.New("no stored credentials; run login first")
	// ErrCorruptCredentials is returned when the sealed file cannot be
	// opened with the master key.
	ErrCorruptCredentials = errors.New("stored credentials are corrupt")
)

// Store seals and opens the credential file.
type Store struct {
	credentialFile string
	masterKeyFile  string
}

// NewStore builds a store over the two file paths.
func NewStore(credentialFile, masterKeyFile string) *Store {
	return &Store{credentialFile: credentialFile, masterKeyFile: masterKeyFile}
}

// masterKey reads the key file, generating one on first use.
func (s *Store) masterKey() ([]byte, error) {
	raw, err := os.ReadFile(s.masterKeyFile)
	if err == nil {
		key, decodeErr := hex.DecodeString(string(raw))
		if decodeErr != nil || len(key) != chacha20poly1305.KeySize {
			return nil, ErrCorruptCredentials
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read master key: %w", err)
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.masterKeyFile), 0o700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(s.masterKeyFile, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("write master key: %w", err)
	}
	return key, nil
}

// Save seals creds into the credential file, replacing any previous one.
func (s *Store) Save(creds api.Credentials) error {
	key, err := s.masterKey()
	if err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(creds.Token), nil)

	if err := os.MkdirAll(filepath.Dir(s.credentialFile), 0o700); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}
	if err := os.WriteFile(s.credentialFile, sealed, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Load opens the sealed credential file.
func (s *Store) Load() (api.Credentials, error) {
	sealed, err := os.ReadFile(s.credentialFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return api.Credentials{}, ErrNoCredentials
		}
		return api.Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	key, err := s.masterKey()
	if err != nil {
		return api.Credentials{}, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return api.Credentials{}, fmt.Errorf("init cipher: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return api.Credentials{}, ErrCorruptCredentials
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	token, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return api.Credentials{}, ErrCorruptCredentials
	}
	return api.Credentials{Token: string(token)}, nil
}

// Clear removes the sealed credential. Missing files are fine; the
// master key stays for the next login.
func (s *Store) Clear() error {
	if err := os.Remove(s.credentialFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
