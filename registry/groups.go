package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sniper-control/api"
)

var (
	ErrGroupCount    = errors.New("group size must be between 1 and 1000")
	ErrGroupNotFound = errors.New("group not found")
)

// GroupRegistry caches wallet groups and their members.
type GroupRegistry struct {
	client *api.Client

	mu         sync.RWMutex
	groups     []api.Group
	selectedID int64
}

func NewGroupRegistry(client *api.Client) *GroupRegistry {
	return &GroupRegistry{client: client}
}

func (r *GroupRegistry) List(ctx context.Context) ([]api.Group, error) {
	groups, err := r.client.ListGroups(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.groups = groups
	r.pruneSelectionLocked()
	r.mu.Unlock()

	return groups, nil
}

// Create derives count wallets under one shared password. The response
// carries each wallet's mnemonic exactly once — the backend never
// returns them again — so it is handed straight back to the caller for
// off-system backup and not retained here.
func (r *GroupRegistry) Create(ctx context.Context, name, description string, count int, password string) (*api.CreateGroupResponse, error) {
	if count < 1 || count > 1000 {
		return nil, ErrGroupCount
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	resp, err := r.client.CreateGroup(ctx, api.CreateGroupRequest{
		Name:        name,
		Description: description,
		Count:       count,
		Password:    password,
	})
	if err != nil {
		return nil, err
	}

	r.refresh(ctx)
	return resp, nil
}

func (r *GroupRegistry) Delete(ctx context.Context, id int64) error {
	if err := r.client.DeleteGroup(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	if r.selectedID == id {
		r.selectedID = 0
	}
	r.mu.Unlock()

	r.refresh(ctx)
	return nil
}

// AddWallet moves an existing ungrouped wallet into a group. The
// backend rejects wallets already in a group; the refreshed list keeps
// wallet_count equal to the member count.
func (r *GroupRegistry) AddWallet(ctx context.Context, groupID, walletID int64) error {
	if err := r.client.AddWalletToGroup(ctx, api.AddWalletToGroupRequest{
		WalletID: walletID,
		GroupID:  groupID,
	}); err != nil {
		return err
	}

	r.refresh(ctx)
	return nil
}

// RemoveWallet detaches a wallet from its group without deleting it.
func (r *GroupRegistry) RemoveWallet(ctx context.Context, walletID int64) error {
	if err := r.client.RemoveWalletFromGroup(ctx, api.RemoveWalletFromGroupRequest{
		WalletID: walletID,
	}); err != nil {
		return err
	}

	r.refresh(ctx)
	return nil
}

func (r *GroupRegistry) Wallets(ctx context.Context, id int64) ([]api.GroupWallet, error) {
	return r.client.GroupWallets(ctx, id)
}

func (r *GroupRegistry) Balances(ctx context.Context, id int64) (*api.GroupBalances, error) {
	return r.client.GroupBalances(ctx, id)
}

// Detail fetches a group's wallets and balances concurrently — two
// independent round trips — and merges them by wallet id. A wallet the
// balance fetch didn't cover keeps a nil balance: unknown, not zero.
func (r *GroupRegistry) Detail(ctx context.Context, id int64) ([]api.GroupWallet, error) {
	var (
		wg       sync.WaitGroup
		wallets  []api.GroupWallet
		balances *api.GroupBalances
		wErr     error
		bErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		wallets, wErr = r.client.GroupWallets(ctx, id)
	}()
	go func() {
		defer wg.Done()
		balances, bErr = r.client.GroupBalances(ctx, id)
	}()
	wg.Wait()

	if wErr != nil {
		return nil, wErr
	}

	// Balances failing is not fatal: members render as balance-pending.
	byID := make(map[int64]*float64)
	if bErr == nil && balances != nil {
		for _, b := range balances.Wallets {
			byID[b.ID] = b.Balance
		}
	}

	for i := range wallets {
		if bal, ok := byID[wallets[i].ID]; ok {
			wallets[i].Balance = bal
		} else {
			wallets[i].Balance = nil
		}
	}

	return wallets, nil
}

func (r *GroupRegistry) Select(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.groups {
		if g.ID == id {
			r.selectedID = id
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrGroupNotFound, id)
}

func (r *GroupRegistry) ClearSelection() {
	r.mu.Lock()
	r.selectedID = 0
	r.mu.Unlock()
}

func (r *GroupRegistry) Selected() (api.Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.selectedID == 0 {
		return api.Group{}, false
	}
	for _, g := range r.groups {
		if g.ID == r.selectedID {
			return g, true
		}
	}
	return api.Group{}, false
}

func (r *GroupRegistry) Groups() []api.Group {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]api.Group, len(r.groups))
	copy(out, r.groups)
	return out
}

func (r *GroupRegistry) refresh(ctx context.Context) {
	groups, err := r.client.ListGroups(ctx)
	if err != nil {
		return
	}

	r.mu.Lock()
	r.groups = groups
	r.pruneSelectionLocked()
	r.mu.Unlock()
}

func (r *GroupRegistry) pruneSelectionLocked() {
	if r.selectedID == 0 {
		return
	}
	for _, g := range r.groups {
		if g.ID == r.selectedID {
			return
		}
	}
	r.selectedID = 0
}
