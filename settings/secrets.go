// Package settings persists gtrans state between runs.
//
// State lives in the XDG data directory:
//
//	$XDG_DATA_HOME/gtrans/  (default: ~/.local/share/gtrans/)
//
// Files stored:
//   - secrets.json  token secrets keyed by service host
//
// A secret is only good for the hour it was issued in, so a saved one lets
// commands run in the same hour skip the landing page download. Older
// entries are harmless: the token store refreshes them on first use.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minios-linux/gtrans/gtoken"
)

const (
	dataDirName = "gtrans"
	fileName    = "secrets.json"
)

// Entry is one saved secret.
type Entry struct {
	// TKK is the secret in its "epoch.value" form.
	TKK string `json:"tkk"`
	// Saved is a Unix timestamp.
	Saved int64 `json:"saved"`
}

// Store holds saved secrets keyed by host.
type Store map[string]*Entry

// ---------------------------------------------------------------------------
// File path
// ---------------------------------------------------------------------------

// dataDir respects $XDG_DATA_HOME and falls back to ~/.local/share.
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", dataDirName), nil
}

func filePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// FilePath returns the secrets file path for display purposes.
func FilePath() string {
	p, err := filePath()
	if err != nil {
		return ""
	}
	return p
}

// DataDir returns the gtrans data directory path.
func DataDir() (string, error) {
	return dataDir()
}

// ---------------------------------------------------------------------------
// Load / Save
// ---------------------------------------------------------------------------

// Load reads the saved secrets. A missing or unreadable file gives an
// empty store.
func Load() Store {
	path, err := filePath()
	if err != nil {
		return make(Store)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return make(Store)
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil || store == nil {
		return make(Store)
	}
	return store
}

// Save writes the store with 0600 permissions.
func Save(store Store) error {
	path, err := filePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling secrets: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing secrets file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Secrets
// ---------------------------------------------------------------------------

// GetSecret returns the saved secret for host. Entries that no longer parse
// are treated as missing.
func GetSecret(host string) (gtoken.Secret, bool) {
	entry := Load()[host]
	if entry == nil {
		return gtoken.Secret{}, false
	}
	secret, err := gtoken.ParseSecret(entry.TKK)
	if err != nil || secret.IsZero() {
		return gtoken.Secret{}, false
	}
	return secret, true
}

// SetSecret saves secret for host. The zero secret is never saved.
func SetSecret(host string, secret gtoken.Secret) error {
	if secret.IsZero() {
		return nil
	}
	store := Load()
	if cur := store[host]; cur != nil && cur.TKK == secret.String() {
		return nil
	}
	store[host] = &Entry{TKK: secret.String(), Saved: time.Now().Unix()}
	return Save(store)
}

// RemoveAll deletes the secrets file.
func RemoveAll() error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing secrets file: %w", err)
	}
	return nil
}
