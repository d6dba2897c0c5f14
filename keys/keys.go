package keys

import (
	"crypto/ed25519"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
)

// Local sanity checks for key material before it is sent to the
// backend. Actual derivation and encryption happen server-side; this
// package only rejects obviously bad input without a round trip.

var (
	ErrInvalidPrivateKey = errors.New("invalid private key format")
	ErrInvalidMnemonic   = errors.New("invalid mnemonic phrase")
	ErrInvalidAddress    = errors.New("invalid wallet address")
)

// ValidatePrivateKey checks that the string is base58 and decodes to
// an ed25519 private key.
func ValidatePrivateKey(privateKeyBase58 string) error {
	decoded, err := base58.Decode(privateKeyBase58)
	if err != nil {
		return ErrInvalidPrivateKey
	}
	if len(decoded) != ed25519.PrivateKeySize {
		return ErrInvalidPrivateKey
	}
	return nil
}

// ValidateMnemonic checks a BIP39 seed phrase.
func ValidateMnemonic(mnemonic string) error {
	if !bip39.IsMnemonicValid(mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// ValidateAddress checks a base58 Solana public key.
func ValidateAddress(address string) error {
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		return ErrInvalidAddress
	}
	return nil
}
