package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys are kept in a per-user file (0600) sealed with AES-GCM. This keeps
// them out of plain-text config; it is not a replacement for an OS keychain.

const fileName = "keys.yaml"

var ErrNotFound = errors.New("secrets: key not found")

type keyFile struct {
	Keys map[string]string `yaml:"keys"` // provider -> base64(nonce|ciphertext)
}

// Store reads and writes provider keys under Dir.
type Store struct {
	Dir string
}

// DefaultStore uses the assetiq directory under the user config dir.
func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{Dir: filepath.Join(dir, "assetiq")}, nil
}

func (s *Store) Put(provider, key string) error {
	if provider = norm(provider); provider == "" {
		return fmt.Errorf("secrets: provider required")
	}
	kf, err := s.load()
	if err != nil {
		return err
	}
	sealed, err := seal([]byte(strings.TrimSpace(key)))
	if err != nil {
		return err
	}
	kf.Keys[provider] = base64.StdEncoding.EncodeToString(sealed)
	return s.save(kf)
}

func (s *Store) Get(provider string) (string, error) {
	if provider = norm(provider); provider == "" {
		return "", fmt.Errorf("secrets: provider required")
	}
	kf, err := s.load()
	if err != nil {
		return "", err
	}
	enc, ok := kf.Keys[provider]
	if !ok {
		return "", ErrNotFound
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("secrets: decode %s: %w", provider, err)
	}
	plain, err := open(raw)
	if err != nil {
		return "", fmt.Errorf("secrets: open %s: %w", provider, err)
	}
	return string(plain), nil
}

func (s *Store) Delete(provider string) error {
	if provider = norm(provider); provider == "" {
		return fmt.Errorf("secrets: provider required")
	}
	kf, err := s.load()
	if err != nil {
		return err
	}
	delete(kf.Keys, provider)
	return s.save(kf)
}

func (s *Store) path() string { return filepath.Join(s.Dir, fileName) }

func (s *Store) load() (keyFile, error) {
	kf := keyFile{Keys: map[string]string{}}
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return kf, nil
		}
		return kf, err
	}
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return kf, fmt.Errorf("secrets: parse %s: %w", s.path(), err)
	}
	if kf.Keys == nil {
		kf.Keys = map[string]string{}
	}
	return kf, nil
}

func (s *Store) save(kf keyFile) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(kf)
	if err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func aead() (cipher.AEAD, error) {
	key := sha256.Sum256([]byte(fmt.Sprintf("assetiq-%s-%s", runtime.GOOS, os.Getenv("USER"))))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seal(plain []byte) ([]byte, error) {
	gcm, err := aead()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func open(sealed []byte) ([]byte, error) {
	gcm, err := aead()
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	return gcm.Open(nil, sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():], nil)
}
