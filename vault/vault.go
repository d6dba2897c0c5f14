package vault

import (
	"encoding/base64"
	"errors"
	"sync"

	"sniper-control/storage"
)

// storageKey is the single persisted slot for the remembered password.
const storageKey = "sol_sniper_pwd"

// Vault holds the wallet-decryption password for the duration of one
// operation, and can optionally persist a base64-obfuscated copy for
// convenience.
//
// WARNING: the persisted form is obfuscation, NOT encryption. Anyone
// with access to the local store can recover it. Convenience only; do
// not rely on it for meaningful funds.
type Vault struct {
	store *storage.DB

	mu      sync.Mutex
	current string
}

func New(store *storage.DB) *Vault {
	return &Vault{store: store}
}

// Use places a password in memory for the next operation. It stays
// there until Clear is called; callers clear it once the triggering
// call resolves.
func (v *Vault) Use(password string) {
	v.mu.Lock()
	v.current = password
	v.mu.Unlock()
}

// Current returns the in-memory password, falling back to the
// remembered copy when nothing is in memory. Only this value is ever
// placed into outbound requests.
func (v *Vault) Current() string {
	v.mu.Lock()
	if v.current != "" {
		p := v.current
		v.mu.Unlock()
		return p
	}
	v.mu.Unlock()

	p, err := v.Recall()
	if err != nil {
		return ""
	}
	return p
}

// Clear drops the in-memory password.
func (v *Vault) Clear() {
	v.mu.Lock()
	v.current = ""
	v.mu.Unlock()
}

// Remember persists encode(password) under the single storage key.
func (v *Vault) Remember(password string) error {
	if v.store == nil {
		return errors.New("vault has no backing store")
	}
	return v.store.SetValue(storageKey, encode(password))
}

// Recall returns the decoded remembered password, or "" when none is
// saved.
func (v *Vault) Recall() (string, error) {
	if v.store == nil {
		return "", nil
	}

	stored, err := v.store.GetValue(storageKey)
	if err == storage.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return decode(stored)
}

// Forget removes the remembered password.
func (v *Vault) Forget() error {
	if v.store == nil {
		return nil
	}
	return v.store.DeleteValue(storageKey)
}

// HasSaved reports whether a remembered password exists.
func (v *Vault) HasSaved() bool {
	if v.store == nil {
		return false
	}
	_, err := v.store.GetValue(storageKey)
	return err == nil
}

func encode(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password))
}

func decode(stored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
