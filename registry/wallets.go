package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sniper-control/api"
	"sniper-control/keys"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrKeyOrMnemonic    = errors.New("provide exactly one of private key or mnemonic")
	ErrWalletNotFound   = errors.New("wallet not found")
)

// WalletRegistry is the local cache of wallet identity and balance.
// Balances are snapshots; the ledger is authoritative. All state is
// instance-scoped and injected, never package-global.
type WalletRegistry struct {
	client *api.Client

	mu         sync.RWMutex
	wallets    []api.Wallet
	selectedID int64 // 0 means no selection
}

func NewWalletRegistry(client *api.Client) *WalletRegistry {
	return &WalletRegistry{client: client}
}

// List fetches the wallet list. With includeBalance false the backend
// answers immediately with zero-balance placeholders; a later
// List(true) refreshes balances in place. Whichever response lands
// last wins: the cache is replaced wholesale under the lock at
// completion time, so a slow placeholder fetch cannot clobber fresher
// balances out of order relative to its own completion.
func (r *WalletRegistry) List(ctx context.Context, includeBalance bool) ([]api.Wallet, error) {
	wallets, err := r.client.ListWallets(ctx, includeBalance)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.wallets = wallets
	r.pruneSelectionLocked()
	r.mu.Unlock()

	return wallets, nil
}

// Create makes a new wallet. The cached list is refetched wholesale
// afterwards, never patched.
func (r *WalletRegistry) Create(ctx context.Context, password, label string) (*api.Wallet, error) {
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	wallet, err := r.client.CreateWallet(ctx, api.CreateWalletRequest{Password: password, Label: label})
	if err != nil {
		return nil, err
	}

	r.adopt(ctx, *wallet)
	return wallet, nil
}

// Import brings an existing wallet in from a private key or mnemonic.
// Exactly one of the two must be set, and it is validated locally
// before any network call.
func (r *WalletRegistry) Import(ctx context.Context, password, label, privateKey, mnemonic string) (*api.Wallet, error) {
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if (privateKey == "") == (mnemonic == "") {
		return nil, ErrKeyOrMnemonic
	}

	if privateKey != "" {
		if err := keys.ValidatePrivateKey(privateKey); err != nil {
			return nil, err
		}
	} else {
		if err := keys.ValidateMnemonic(mnemonic); err != nil {
			return nil, err
		}
	}

	wallet, err := r.client.ImportWallet(ctx, api.ImportWalletRequest{
		PrivateKey: privateKey,
		Mnemonic:   mnemonic,
		Password:   password,
		Label:      label,
	})
	if err != nil {
		return nil, err
	}

	r.adopt(ctx, *wallet)
	return wallet, nil
}

// Delete removes a wallet. A wallet unknown to the backend fails
// loudly; nothing is deleted locally in that case.
func (r *WalletRegistry) Delete(ctx context.Context, id int64) error {
	if err := r.client.DeleteWallet(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	if r.selectedID == id {
		r.selectedID = 0
	}
	r.mu.Unlock()

	// Replace, don't patch.
	r.refresh(ctx)
	return nil
}

// Select marks a cached wallet as the active one.
func (r *WalletRegistry) Select(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.wallets {
		if w.ID == id {
			r.selectedID = id
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrWalletNotFound, id)
}

func (r *WalletRegistry) ClearSelection() {
	r.mu.Lock()
	r.selectedID = 0
	r.mu.Unlock()
}

// Selected returns the active wallet, if any.
func (r *WalletRegistry) Selected() (api.Wallet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.selectedID == 0 {
		return api.Wallet{}, false
	}
	for _, w := range r.wallets {
		if w.ID == r.selectedID {
			return w, true
		}
	}
	return api.Wallet{}, false
}

// Wallets returns a copy of the cached list.
func (r *WalletRegistry) Wallets() []api.Wallet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]api.Wallet, len(r.wallets))
	copy(out, r.wallets)
	return out
}

// adopt folds a just-created wallet into the cache and selects it when
// nothing was selected before. The refresh is best-effort; the wallet
// itself came straight from the backend, so it stays present and
// selectable even when the list fetch fails.
func (r *WalletRegistry) adopt(ctx context.Context, wallet api.Wallet) {
	r.refresh(ctx)

	r.mu.Lock()
	found := false
	for _, cached := range r.wallets {
		if cached.ID == wallet.ID {
			found = true
			break
		}
	}
	if !found {
		r.wallets = append(r.wallets, wallet)
	}
	if r.selectedID == 0 {
		r.selectedID = wallet.ID
	}
	r.mu.Unlock()
}

// refresh replaces the cached list; a failed refresh leaves the old
// snapshot in place rather than guessing at a merge.
func (r *WalletRegistry) refresh(ctx context.Context) {
	wallets, err := r.client.ListWallets(ctx, false)
	if err != nil {
		return
	}

	r.mu.Lock()
	r.wallets = wallets
	r.pruneSelectionLocked()
	r.mu.Unlock()
}

func (r *WalletRegistry) pruneSelectionLocked() {
	if r.selectedID == 0 {
		return
	}
	for _, w := range r.wallets {
		if w.ID == r.selectedID {
			return
		}
	}
	r.selectedID = 0
}
