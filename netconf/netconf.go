package netconf

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sniper-control/api"
	"sniper-control/engine"
)

var (
	ErrConfirmationRequired = errors.New("switching to mainnet requires confirmation")
	ErrEndpointsRequired    = errors.New("rpc and ws endpoints are required")
)

// State tracks the backend's current network (devnet/mainnet/testnet)
// and endpoints. Consumers never cache it themselves: a recurring poll
// detects out-of-band switches (another window changing network) and
// republishes.
type State struct {
	client  *api.Client
	confirm func(target api.NetworkSettings) bool

	mu      sync.RWMutex
	current api.NetworkSettings

	poller     *engine.Poller
	changeChan chan api.NetworkSettings
}

// New builds the state container. confirm gates switches to mainnet;
// returning false aborts the switch before any network call.
func New(client *api.Client, confirm func(api.NetworkSettings) bool) *State {
	return &State{
		client:     client,
		confirm:    confirm,
		changeChan: make(chan api.NetworkSettings, 4),
	}
}

// Get fetches the current settings from the backend and updates the
// local snapshot.
func (s *State) Get(ctx context.Context) (api.NetworkSettings, error) {
	ns, err := s.client.NetworkSettings(ctx)
	if err != nil {
		return api.NetworkSettings{}, err
	}

	s.update(*ns)
	return *ns, nil
}

// Current returns the last snapshot without a round trip.
func (s *State) Current() api.NetworkSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set switches the backend network. Mainnet as the target requires the
// confirmation hook to approve; the WS endpoint is probed with a live
// dial before the switch is committed.
func (s *State) Set(ctx context.Context, ns api.NetworkSettings) error {
	if ns.RPCEndpoint == "" || ns.WSEndpoint == "" {
		return ErrEndpointsRequired
	}

	if ns.Network == "mainnet" {
		if s.confirm == nil || !s.confirm(ns) {
			return ErrConfirmationRequired
		}
	}

	if err := probeWS(ctx, ns.WSEndpoint); err != nil {
		return fmt.Errorf("ws endpoint unreachable: %w", err)
	}

	if err := s.client.SetNetworkSettings(ctx, ns); err != nil {
		return err
	}

	s.update(ns)
	return nil
}

// Changes delivers snapshots whenever the polled network differs from
// the previous one.
func (s *State) Changes() <-chan api.NetworkSettings {
	return s.changeChan
}

// Watch starts the recurring poll. Stop it with StopWatch when the
// owning view goes away; the ticker never outlives its owner.
func (s *State) Watch(interval time.Duration) {
	if interval == 0 {
		interval = 10 * time.Second
	}

	s.mu.Lock()
	if s.poller != nil {
		s.mu.Unlock()
		return
	}
	p := engine.NewPoller(interval, s.poll)
	s.poller = p
	s.mu.Unlock()

	p.Start()
}

func (s *State) StopWatch() {
	s.mu.Lock()
	p := s.poller
	s.poller = nil
	s.mu.Unlock()

	if p != nil {
		p.Stop()
	}
}

func (s *State) poll() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ns, err := s.client.NetworkSettings(ctx)
	if err != nil {
		log.Printf("Network poll failed: %v", err)
		return true
	}

	s.update(*ns)
	return true
}

// update replaces the snapshot and publishes on change.
func (s *State) update(ns api.NetworkSettings) {
	s.mu.Lock()
	changed := s.current != ns
	s.current = ns
	s.mu.Unlock()

	if changed {
		select {
		case s.changeChan <- ns:
		default:
			// Drop
		}
	}
}

// probeWS dials the websocket endpoint and closes immediately. A
// network switch to an endpoint nothing answers on is rejected here
// rather than discovered later by the sniper.
func probeWS(ctx context.Context, endpoint string) error {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	return conn.Close()
}
