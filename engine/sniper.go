package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"sniper-control/api"
	"sniper-control/keys"
	"sniper-control/notify"
	"sniper-control/registry"
	"sniper-control/storage"
	"sniper-control/vault"
)

// SniperState is the local view of the backend's pool-monitoring
// process.
type SniperState int32

const (
	SniperStopped SniperState = iota
	SniperStarting
	SniperRunning
	SniperStopping
)

func (s SniperState) String() string {
	switch s {
	case SniperStopped:
		return "stopped"
	case SniperStarting:
		return "starting"
	case SniperRunning:
		return "running"
	case SniperStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

var (
	ErrPlatformsRequired = errors.New("at least one platform is required")
	ErrNotStopped        = errors.New("sniper must be stopped first")
	ErrNotRunning        = errors.New("sniper is not running")
	ErrNoGroupSelected   = errors.New("group mode requires a selected group")
	ErrSnipeInFlight     = errors.New("snipe already in flight")
)

// SniperController owns the start/stop/status lifecycle of the remote
// sniper. Status is pulled, never pushed: while Running, a Poller
// fetches /sniper/status at a fixed interval and republishes it; the
// poller dies the instant state leaves Running, on every exit path.
type SniperController struct {
	client       *api.Client
	groups       *registry.GroupRegistry // for group-mode validation, may be nil
	creds        *vault.Vault            // optional
	store        *storage.DB             // optional, logs group snipes
	notifier     *notify.Notifier        // optional
	pollInterval time.Duration

	mu            sync.Mutex
	state         SniperState
	poller        *Poller
	lastStatus    api.SniperStatus
	snipeInFlight bool

	statusChan chan api.SniperStatus
}

func NewSniperController(client *api.Client, groups *registry.GroupRegistry, creds *vault.Vault, store *storage.DB, notifier *notify.Notifier, pollInterval time.Duration) *SniperController {
	if pollInterval == 0 {
		pollInterval = 3 * time.Second
	}
	return &SniperController{
		client:       client,
		groups:       groups,
		creds:        creds,
		store:        store,
		notifier:     notifier,
		pollInterval: pollInterval,
		statusChan:   make(chan api.SniperStatus, 16),
	}
}

func (s *SniperController) State() SniperState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the channel status snapshots are republished on.
// Snapshots are dropped, not queued, when the consumer lags.
func (s *SniperController) Status() <-chan api.SniperStatus {
	return s.statusChan
}

// LastStatus is the most recent snapshot; after a stop it is the
// terminal report with the cumulative counters.
func (s *SniperController) LastStatus() api.SniperStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// StartOptions describes one start attempt. GroupMode requires a
// selected group in the group registry.
type StartOptions struct {
	WalletID  int64
	GroupMode bool
	Password  string
	Platforms []string
}

// Start moves Stopped → Starting → Running. All validation happens
// before the network call; a backend rejection lands back in Stopped
// with config untouched. The password is dropped from memory once the
// call resolves.
func (s *SniperController) Start(ctx context.Context, opts StartOptions) error {
	if len(opts.Platforms) == 0 {
		return ErrPlatformsRequired
	}
	if opts.Password == "" {
		return ErrPasswordRequired
	}

	var groupID int64
	if opts.GroupMode {
		if s.groups == nil {
			return ErrNoGroupSelected
		}
		g, ok := s.groups.Selected()
		if !ok {
			return ErrNoGroupSelected
		}
		groupID = g.ID
	}

	if state := s.State(); state != SniperStopped {
		return fmt.Errorf("%w (currently %s)", ErrNotStopped, state)
	}
	// Local Stopped is not enough: another window may have started the
	// sniper, and this process starts cold.
	if running, err := s.remoteRunning(ctx); err != nil {
		return fmt.Errorf("sniper status check: %w", err)
	} else if running {
		return fmt.Errorf("%w (backend reports running)", ErrNotStopped)
	}

	s.mu.Lock()
	if s.state != SniperStopped {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w (currently %s)", ErrNotStopped, state)
	}
	s.state = SniperStarting
	s.mu.Unlock()

	resp, err := s.client.SniperStart(ctx, api.SniperStartRequest{
		WalletID:  opts.WalletID,
		GroupID:   groupID,
		Password:  opts.Password,
		Platforms: opts.Platforms,
	})
	if s.creds != nil {
		s.creds.Clear()
	}
	if err != nil {
		s.setState(SniperStopped)
		return err
	}
	if resp != nil && resp.Message != "" {
		log.Printf("Sniper start: %s", resp.Message)
	}

	s.mu.Lock()
	s.state = SniperRunning
	s.poller = NewPoller(s.pollInterval, s.pollStatus)
	s.poller.Start()
	s.mu.Unlock()

	s.notifier.Send("🎯 Sniper started")
	return nil
}

// Stop moves Running → Stopping → Stopped. The last status snapshot
// before the ack becomes the terminal report.
func (s *SniperController) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.state != SniperRunning {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w (currently %s)", ErrNotRunning, state)
	}
	s.state = SniperStopping
	poller := s.poller
	s.poller = nil
	s.mu.Unlock()

	if poller != nil {
		poller.Stop()
	}

	if err := s.client.SniperStop(ctx); err != nil {
		// Stop not acked: the remote process is still running.
		s.mu.Lock()
		s.state = SniperRunning
		s.poller = NewPoller(s.pollInterval, s.pollStatus)
		s.poller.Start()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.state = SniperStopped
	s.lastStatus.IsRunning = false
	final := s.lastStatus
	s.mu.Unlock()

	s.publish(final)
	s.notifier.Send(fmt.Sprintf("🛑 Sniper stopped — %d pools seen, %d bought, %d skipped",
		final.PoolsDetected, final.TokensBought, final.TokensSkipped))
	return nil
}

// pollStatus is the Running-state tick. Returning false retires the
// poller from inside the tick, which is how a remote shutdown
// (is_running=false) tears the local state down without an orphaned
// timer.
func (s *SniperController) pollStatus() bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.pollInterval)
	defer cancel()

	status, err := s.client.SniperStatus(ctx)
	if err != nil {
		log.Printf("Sniper status poll failed: %v", err)
		return s.State() == SniperRunning
	}

	s.mu.Lock()
	s.lastStatus = *status
	stillRunning := s.state == SniperRunning
	if stillRunning && !status.IsRunning {
		// Backend stopped on its own; mirror it.
		s.state = SniperStopped
		s.poller = nil
		stillRunning = false
	}
	s.mu.Unlock()

	s.publish(*status)
	return stillRunning
}

// remoteRunning fetches the backend's status and refreshes the cached
// snapshot. Mutations gated on Stopped consult this rather than the
// local state machine alone.
func (s *SniperController) remoteRunning(ctx context.Context) (bool, error) {
	status, err := s.client.SniperStatus(ctx)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.lastStatus = *status
	s.mu.Unlock()
	return status.IsRunning, nil
}

func (s *SniperController) publish(status api.SniperStatus) {
	select {
	case s.statusChan <- status:
	default:
		// Drop
	}
}

func (s *SniperController) setState(state SniperState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// SaveConfig writes the sniper configuration. Permitted only while the
// sniper is stopped, both locally and per the backend's own status;
// the config write itself is never issued while either reports
// running.
func (s *SniperController) SaveConfig(ctx context.Context, cfg api.SniperConfig) (*api.SniperConfig, error) {
	if cfg.BuyAmount <= 0 {
		return nil, ErrAmountRequired
	}
	if cfg.Slippage < 0 {
		return nil, ErrNegativeSlippage
	}
	if cfg.MinSafetyScore < 0 || cfg.MinSafetyScore > 100 {
		return nil, errors.New("min safety score must be between 0 and 100")
	}

	if state := s.State(); state != SniperStopped {
		return nil, fmt.Errorf("%w: cannot change config while %s", ErrNotStopped, state)
	}
	if running, err := s.remoteRunning(ctx); err != nil {
		return nil, fmt.Errorf("sniper status check: %w", err)
	} else if running {
		return nil, fmt.Errorf("%w: backend reports the sniper running", ErrNotStopped)
	}

	return s.client.SaveSniperConfig(ctx, cfg)
}

// Config fetches the stored configuration for a wallet.
func (s *SniperController) Config(ctx context.Context, walletID int64) (*api.SniperConfig, error) {
	return s.client.SniperConfig(ctx, walletID)
}

// ManualSnipe fires a one-shot buy from a single wallet, independent
// of whether the continuous sniper is running.
func (s *SniperController) ManualSnipe(ctx context.Context, walletID int64, tokenAddress string, buyAmount float64, password string) (*api.MemberResult, error) {
	if buyAmount <= 0 {
		return nil, ErrAmountRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if err := keys.ValidateAddress(tokenAddress); err != nil {
		return nil, err
	}
	if err := s.beginSnipe(); err != nil {
		return nil, err
	}
	defer s.endSnipe()

	return s.client.ManualSnipe(ctx, api.ManualSnipeRequest{
		WalletID:     walletID,
		TokenAddress: tokenAddress,
		BuyAmount:    buyAmount,
		Password:     password,
	})
}

// GroupSnipe fans a one-shot buy out to every member of a group and
// reports per-wallet outcomes like a bulk operation.
func (s *SniperController) GroupSnipe(ctx context.Context, groupID int64, tokenAddress string, buyAmount float64, password string) (*api.BulkResult, error) {
	if buyAmount <= 0 {
		return nil, ErrAmountRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if err := keys.ValidateAddress(tokenAddress); err != nil {
		return nil, err
	}
	if err := s.beginSnipe(); err != nil {
		return nil, err
	}
	defer s.endSnipe()

	res, err := s.client.GroupSnipe(ctx, api.GroupSnipeRequest{
		GroupID:      groupID,
		TokenAddress: tokenAddress,
		BuyAmount:    buyAmount,
		Password:     password,
	})
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if _, err := s.store.RecordOperation("group_snipe", groupID, res); err != nil {
			log.Printf("History write failed for group snipe: %v", err)
		}
	}
	s.notifier.Send(fmt.Sprintf("🎯 Group snipe %s: %d/%d wallets",
		shortAddr(tokenAddress), res.Successful, res.TotalWallets))
	return res, nil
}

// Shutdown tears the controller down at process exit. Any live poller
// is cancelled; the remote process is left as-is.
func (s *SniperController) Shutdown() {
	s.mu.Lock()
	poller := s.poller
	s.poller = nil
	s.mu.Unlock()

	if poller != nil {
		poller.Stop()
	}
}

func (s *SniperController) beginSnipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snipeInFlight {
		return ErrSnipeInFlight
	}
	s.snipeInFlight = true
	return nil
}

func (s *SniperController) endSnipe() {
	s.mu.Lock()
	s.snipeInFlight = false
	s.mu.Unlock()

	if s.creds != nil {
		s.creds.Clear()
	}
}
