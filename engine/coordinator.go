package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"sniper-control/api"
	"sniper-control/keys"
	"sniper-control/notify"
	"sniper-control/storage"
	"sniper-control/vault"
)

// OpKind identifies one class of bulk operation. The in-flight gate is
// keyed on it: one call per kind at a time, different kinds free-run.
type OpKind string

const (
	OpDistribute OpKind = "distribute"
	OpCollect    OpKind = "collect"
	OpBulkBuy    OpKind = "bulk_buy"
	OpBulkSell   OpKind = "bulk_sell"
)

var (
	ErrOperationInFlight = errors.New("operation of this kind already in flight")
	ErrAmountRequired    = errors.New("amount must be greater than zero")
	ErrPercentageRange   = errors.New("percentage must be between 1 and 100")
	ErrPasswordRequired  = errors.New("password is required")
	ErrNegativeSlippage  = errors.New("slippage cannot be negative")
	ErrNegativeLeave     = errors.New("leave amount cannot be negative")
)

// Coordinator dispatches bulk fund-movement and bulk trade operations.
// Each invocation is exactly one outbound call; duplicate dispatch of
// the same kind is rejected while the prior call is in flight, since
// the backend is not idempotent per call and a replay can double-spend.
// Nothing here retries: a retry is a new user action.
type Coordinator struct {
	client   *api.Client
	store    *storage.DB      // optional history log
	notifier *notify.Notifier // optional
	creds    *vault.Vault     // optional; cleared after each dispatch

	mu       sync.Mutex
	inflight map[OpKind]bool
}

func NewCoordinator(client *api.Client, store *storage.DB, notifier *notify.Notifier, creds *vault.Vault) *Coordinator {
	return &Coordinator{
		client:   client,
		store:    store,
		notifier: notifier,
		creds:    creds,
		inflight: make(map[OpKind]bool),
	}
}

func (c *Coordinator) begin(kind OpKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight[kind] {
		return fmt.Errorf("%w: %s", ErrOperationInFlight, kind)
	}
	c.inflight[kind] = true
	return nil
}

func (c *Coordinator) end(kind OpKind) {
	c.mu.Lock()
	c.inflight[kind] = false
	c.mu.Unlock()

	// The password was placed into exactly one request; drop the
	// in-memory copy now that the call has resolved.
	if c.creds != nil {
		c.creds.Clear()
	}
}

// InFlight reports whether a call of the given kind is outstanding.
// UIs use it to disable the triggering control.
func (c *Coordinator) InFlight(kind OpKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[kind]
}

// DistributeSOL funds every member of a group from one source wallet.
func (c *Coordinator) DistributeSOL(ctx context.Context, fromWalletID, groupID int64, amountPerWallet float64, password string) (*api.BulkResult, error) {
	if amountPerWallet <= 0 {
		return nil, ErrAmountRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	if err := c.begin(OpDistribute); err != nil {
		return nil, err
	}
	defer c.end(OpDistribute)

	res, err := c.client.DistributeSOL(ctx, api.DistributeSOLRequest{
		FromWalletID:    fromWalletID,
		ToGroupID:       groupID,
		AmountPerWallet: amountPerWallet,
		Password:        password,
	})
	if err != nil {
		return nil, err
	}

	c.record(OpDistribute, groupID, res)
	c.announce(fmt.Sprintf("💸 Distribute: %d/%d wallets funded, %.4f SOL sent",
		res.Successful, res.TotalWallets, res.TotalSOLSent))
	return res, nil
}

// CollectSOL sweeps member balances into one destination wallet,
// leaving leaveAmount behind in each for rent and fees. Zero is a
// valid leave amount (drain fully); the customary 0.001 default is a
// call-site concern. Members whose balance is at or below leaveAmount
// come back as failed with a reason, not silently skipped.
func (c *Coordinator) CollectSOL(ctx context.Context, groupID, toWalletID int64, password string, leaveAmount float64) (*api.BulkResult, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if leaveAmount < 0 {
		return nil, ErrNegativeLeave
	}

	if err := c.begin(OpCollect); err != nil {
		return nil, err
	}
	defer c.end(OpCollect)

	res, err := c.client.CollectSOL(ctx, api.CollectSOLRequest{
		FromGroupID: groupID,
		ToWalletID:  toWalletID,
		Password:    password,
		LeaveAmount: leaveAmount,
	})
	if err != nil {
		return nil, err
	}

	c.record(OpCollect, groupID, res)
	c.announce(fmt.Sprintf("🏦 Collect: %.4f SOL from %d/%d wallets",
		res.TotalCollected, res.Successful, res.TotalWallets))
	return res, nil
}

// BulkBuy buys the same token from every member wallet.
func (c *Coordinator) BulkBuy(ctx context.Context, groupID int64, tokenAddress string, solAmount, slippage float64, password string) (*api.BulkResult, error) {
	if solAmount <= 0 {
		return nil, ErrAmountRequired
	}
	if slippage < 0 {
		return nil, ErrNegativeSlippage
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if err := keys.ValidateAddress(tokenAddress); err != nil {
		return nil, err
	}

	if err := c.begin(OpBulkBuy); err != nil {
		return nil, err
	}
	defer c.end(OpBulkBuy)

	res, err := c.client.BulkBuy(ctx, api.BulkBuyRequest{
		GroupID:      groupID,
		TokenAddress: tokenAddress,
		SOLAmount:    solAmount,
		Slippage:     slippage,
		Password:     password,
	})
	if err != nil {
		return nil, err
	}

	c.record(OpBulkBuy, groupID, res)
	c.announce(fmt.Sprintf("🟢 Bulk buy %s: %d/%d wallets",
		shortAddr(tokenAddress), res.Successful, res.TotalWallets))
	return res, nil
}

// BulkSell sells a percentage of each member's holdings of a token.
func (c *Coordinator) BulkSell(ctx context.Context, groupID int64, tokenAddress string, percentage int, slippage float64, password string) (*api.BulkResult, error) {
	if percentage < 1 || percentage > 100 {
		return nil, ErrPercentageRange
	}
	if slippage < 0 {
		return nil, ErrNegativeSlippage
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if err := keys.ValidateAddress(tokenAddress); err != nil {
		return nil, err
	}

	if err := c.begin(OpBulkSell); err != nil {
		return nil, err
	}
	defer c.end(OpBulkSell)

	res, err := c.client.BulkSell(ctx, api.BulkSellRequest{
		GroupID:      groupID,
		TokenAddress: tokenAddress,
		Percentage:   percentage,
		Slippage:     slippage,
		Password:     password,
	})
	if err != nil {
		return nil, err
	}

	c.record(OpBulkSell, groupID, res)
	c.announce(fmt.Sprintf("🔴 Bulk sell %s (%d%%): %d/%d wallets",
		shortAddr(tokenAddress), percentage, res.Successful, res.TotalWallets))
	return res, nil
}

// record logs the result locally. Best-effort: a history failure never
// fails the operation that produced it.
func (c *Coordinator) record(kind OpKind, groupID int64, res *api.BulkResult) {
	if c.store == nil {
		return
	}
	if _, err := c.store.RecordOperation(string(kind), groupID, res); err != nil {
		log.Printf("History write failed for %s: %v", kind, err)
	}
}

func (c *Coordinator) announce(msg string) {
	c.notifier.Send(msg)
}

func shortAddr(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:8] + "…"
}
