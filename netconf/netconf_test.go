package netconf

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"sniper-control/api"
)

// netBackend serves the settings endpoints plus a /ws route that
// accepts websocket upgrades, so probes have something real to dial.
type netBackend struct {
	mu       sync.Mutex
	settings api.NetworkSettings
	setCalls atomic.Int32
	upgrader websocket.Upgrader
}

func (b *netBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/ws":
			conn, err := b.upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			conn.Close()

		case r.Method == http.MethodGet && r.URL.Path == "/settings/network":
			b.mu.Lock()
			ns := b.settings
			b.mu.Unlock()
			json.NewEncoder(w).Encode(ns)

		case r.Method == http.MethodPost && r.URL.Path == "/settings/network":
			b.setCalls.Add(1)
			b.mu.Lock()
			json.NewDecoder(r.Body).Decode(&b.settings)
			b.mu.Unlock()
			w.Write([]byte(`{"success": true}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func netTestState(t *testing.T, backend *netBackend, confirm func(api.NetworkSettings) bool) (*State, string) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	return New(api.NewClient(srv.URL, 5*time.Second), confirm), wsURL
}

func TestNetworkGet(t *testing.T) {
	backend := &netBackend{settings: api.NetworkSettings{
		Network: "devnet", RPCEndpoint: "https://api.devnet.solana.com", WSEndpoint: "wss://api.devnet.solana.com",
	}}
	state, _ := netTestState(t, backend, nil)

	ns, err := state.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ns.Network != "devnet" {
		t.Errorf("Expected devnet, got %q", ns.Network)
	}
	if state.Current() != ns {
		t.Error("Current should carry the fetched snapshot")
	}
}

func TestNetworkSet(t *testing.T) {
	t.Run("EndpointsRequired", func(t *testing.T) {
		backend := &netBackend{}
		state, _ := netTestState(t, backend, nil)

		err := state.Set(context.Background(), api.NetworkSettings{Network: "devnet"})
		if err != ErrEndpointsRequired {
			t.Errorf("Expected ErrEndpointsRequired, got %v", err)
		}
		if backend.setCalls.Load() != 0 {
			t.Error("Missing endpoints must not reach the backend")
		}
	})

	t.Run("MainnetNeedsConfirmation", func(t *testing.T) {
		backend := &netBackend{}
		state, wsURL := netTestState(t, backend, func(api.NetworkSettings) bool { return false })

		err := state.Set(context.Background(), api.NetworkSettings{
			Network: "mainnet", RPCEndpoint: "https://rpc", WSEndpoint: wsURL,
		})
		if err != ErrConfirmationRequired {
			t.Errorf("Expected ErrConfirmationRequired, got %v", err)
		}
		if backend.setCalls.Load() != 0 {
			t.Error("Declined confirmation must not reach the backend")
		}
	})

	t.Run("MainnetConfirmed", func(t *testing.T) {
		backend := &netBackend{}
		var asked atomic.Int32
		state, wsURL := netTestState(t, backend, func(ns api.NetworkSettings) bool {
			asked.Add(1)
			return ns.Network == "mainnet"
		})

		target := api.NetworkSettings{Network: "mainnet", RPCEndpoint: "https://rpc", WSEndpoint: wsURL}
		if err := state.Set(context.Background(), target); err != nil {
			t.Fatal(err)
		}
		if asked.Load() != 1 {
			t.Error("Confirmation hook should run exactly once")
		}
		if state.Current() != target {
			t.Error("Snapshot not updated after commit")
		}
	})

	t.Run("DevnetSkipsConfirmation", func(t *testing.T) {
		backend := &netBackend{}
		state, wsURL := netTestState(t, backend, func(api.NetworkSettings) bool {
			t.Error("Devnet switch must not ask for confirmation")
			return false
		})

		err := state.Set(context.Background(), api.NetworkSettings{
			Network: "devnet", RPCEndpoint: "https://rpc", WSEndpoint: wsURL,
		})
		if err != nil {
			t.Fatal(err)
		}
	})

	t.Run("DeadWSEndpointRejected", func(t *testing.T) {
		backend := &netBackend{}
		state, _ := netTestState(t, backend, nil)

		err := state.Set(context.Background(), api.NetworkSettings{
			Network: "devnet", RPCEndpoint: "https://rpc", WSEndpoint: "ws://127.0.0.1:1/ws",
		})
		if err == nil {
			t.Fatal("Unreachable WS endpoint should abort the switch")
		}
		if backend.setCalls.Load() != 0 {
			t.Error("Failed probe must not reach the backend")
		}
	})
}

func TestNetworkWatch(t *testing.T) {
	backend := &netBackend{settings: api.NetworkSettings{
		Network: "devnet", RPCEndpoint: "r1", WSEndpoint: "w1",
	}}
	state, _ := netTestState(t, backend, nil)

	state.Watch(20 * time.Millisecond)
	defer state.StopWatch()

	// First poll publishes the initial snapshot.
	select {
	case ns := <-state.Changes():
		if ns.Network != "devnet" {
			t.Errorf("Expected devnet first, got %q", ns.Network)
		}
	case <-time.After(time.Second):
		t.Fatal("Initial snapshot never published")
	}

	// Out-of-band switch on the backend side.
	backend.mu.Lock()
	backend.settings = api.NetworkSettings{Network: "mainnet", RPCEndpoint: "r2", WSEndpoint: "w2"}
	backend.mu.Unlock()

	select {
	case ns := <-state.Changes():
		if ns.Network != "mainnet" {
			t.Errorf("Expected mainnet change, got %q", ns.Network)
		}
	case <-time.After(time.Second):
		t.Fatal("Out-of-band switch never observed")
	}

	if state.Current().Network != "mainnet" {
		t.Error("Current should track the polled value")
	}
}
