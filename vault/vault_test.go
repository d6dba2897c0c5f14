package vault

import (
	"path/filepath"
	"testing"

	"sniper-control/storage"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// decode(encode(p)) == p must hold for any password
	passwords := []string{
		"abcdefgh",
		"",
		"with spaces and symbols !@#$%^&*()",
		"unicode пароль 密码 🔑",
		"very-long-" + string(make([]byte, 256)),
	}

	for _, p := range passwords {
		decoded, err := decode(encode(p))
		if err != nil {
			t.Fatalf("Decode failed for %q: %v", p, err)
		}
		if decoded != p {
			t.Errorf("Round trip broke for %q", p)
		}
	}
}

func TestRememberRecallForget(t *testing.T) {
	v := newTestVault(t)

	t.Run("RecallEmpty", func(t *testing.T) {
		p, err := v.Recall()
		if err != nil {
			t.Fatal(err)
		}
		if p != "" {
			t.Errorf("Expected empty recall, got %q", p)
		}
		if v.HasSaved() {
			t.Error("HasSaved should be false before Remember")
		}
	})

	t.Run("RememberAndRecall", func(t *testing.T) {
		if err := v.Remember("hunter22"); err != nil {
			t.Fatal(err)
		}

		p, err := v.Recall()
		if err != nil {
			t.Fatal(err)
		}
		if p != "hunter22" {
			t.Errorf("Expected hunter22, got %q", p)
		}
		if !v.HasSaved() {
			t.Error("HasSaved should be true after Remember")
		}
	})

	t.Run("Forget", func(t *testing.T) {
		if err := v.Forget(); err != nil {
			t.Fatal(err)
		}

		p, _ := v.Recall()
		if p != "" {
			t.Errorf("Expected empty recall after Forget, got %q", p)
		}
	})
}

func TestInMemoryLifecycle(t *testing.T) {
	v := newTestVault(t)

	t.Run("UseAndClear", func(t *testing.T) {
		v.Use("transient")
		if v.Current() != "transient" {
			t.Error("Current should return in-memory password")
		}

		v.Clear()
		if v.Current() != "" {
			t.Error("Current should be empty after Clear")
		}
	})

	t.Run("CurrentFallsBackToRemembered", func(t *testing.T) {
		if err := v.Remember("saved-pw"); err != nil {
			t.Fatal(err)
		}
		v.Clear()

		if v.Current() != "saved-pw" {
			t.Error("Current should fall back to remembered password")
		}
	})

	t.Run("InMemoryWinsOverRemembered", func(t *testing.T) {
		v.Use("fresh")
		if v.Current() != "fresh" {
			t.Error("In-memory password should take precedence")
		}
		v.Clear()
	})
}
