package auth

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// ErrNoSession indicates no session has been persisted yet.
var ErrNoSession = errors.New("no stored session")

// Store persists the session across client restarts.
type Store interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

const saltSize = 16

// FileStore keeps the session in a single file, sealed with a key
// derived from the configured secret. It stands in for the device
// secure storage a mobile build would use.
type FileStore struct {
	path   string
	secret []byte
}

// NewFileStore constructs a FileStore rooted at path.
func NewFileStore(path, secret string) *FileStore {
	return &FileStore{path: path, secret: []byte(secret)}
}

func (s *FileStore) deriveKey(salt []byte) ([]byte, error) {
	return scrypt.Key(s.secret, salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
}

// Save seals and writes the session document.
func (s *FileStore) Save(sess *Session) error {
	plain, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	key, err := s.deriveKey(salt)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	sealed := append(salt, nonce...)
	sealed = aead.Seal(sealed, nonce, plain, nil)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, sealed, 0o600)
}

// Load reads and opens the persisted session. A missing or undecipherable
// file yields ErrNoSession so startup degrades to the login screen.
func (s *FileStore) Load() (*Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if len(raw) < saltSize+chacha20poly1305.NonceSize {
		return nil, ErrNoSession
	}

	salt := raw[:saltSize]
	nonce := raw[saltSize : saltSize+chacha20poly1305.NonceSize]
	ciphertext := raw[saltSize+chacha20poly1305.NonceSize:]

	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrNoSession
	}

	var sess Session
	if err := json.Unmarshal(plain, &sess); err != nil {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Clear removes the persisted session.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
