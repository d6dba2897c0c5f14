package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
)

func TestValidatePrivateKey(t *testing.T) {
	t.Run("ValidKey", func(t *testing.T) {
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}

		encoded := base58.Encode(priv)
		if err := ValidatePrivateKey(encoded); err != nil {
			t.Errorf("Valid key rejected: %v", err)
		}
	})

	t.Run("NotBase58", func(t *testing.T) {
		if err := ValidatePrivateKey("not-base58-0OIl"); err == nil {
			t.Error("Should reject non-base58 input")
		}
	})

	t.Run("WrongLength", func(t *testing.T) {
		short := base58.Encode([]byte{1, 2, 3})
		if err := ValidatePrivateKey(short); err == nil {
			t.Error("Should reject wrong-length key")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if err := ValidatePrivateKey(""); err == nil {
			t.Error("Should reject empty key")
		}
	})
}

func TestValidateMnemonic(t *testing.T) {
	t.Run("ValidMnemonic", func(t *testing.T) {
		entropy, err := bip39.NewEntropy(128)
		if err != nil {
			t.Fatal(err)
		}
		mnemonic, err := bip39.NewMnemonic(entropy)
		if err != nil {
			t.Fatal(err)
		}

		if err := ValidateMnemonic(mnemonic); err != nil {
			t.Errorf("Valid mnemonic rejected: %v", err)
		}
	})

	t.Run("InvalidMnemonic", func(t *testing.T) {
		if err := ValidateMnemonic("this is definitely not a valid seed phrase at all"); err == nil {
			t.Error("Should reject invalid mnemonic")
		}
	})
}

func TestValidateAddress(t *testing.T) {
	t.Run("ValidAddress", func(t *testing.T) {
		// Wrapped SOL mint, a well-known valid address
		if err := ValidateAddress("So11111111111111111111111111111111111111112"); err != nil {
			t.Errorf("Valid address rejected: %v", err)
		}
	})

	t.Run("InvalidAddress", func(t *testing.T) {
		if err := ValidateAddress("tooshort"); err == nil {
			t.Error("Should reject invalid address")
		}
	})
}
