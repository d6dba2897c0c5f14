package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"sniper-control/api"
)

func groupTestServer(t *testing.T, handler http.HandlerFunc) *GroupRegistry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGroupRegistry(api.NewClient(srv.URL, 5*time.Second))
}

func TestGroupCreate(t *testing.T) {
	t.Run("CountMatchesMembers", func(t *testing.T) {
		// Property: create(count) yields wallet_count == count and
		// exactly count member entries, across the allowed range.
		for _, count := range []int{1, 5, 1000} {
			reg := groupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/group/list" {
					json.NewEncoder(w).Encode(map[string][]api.Group{"groups": nil})
					return
				}

				var req api.CreateGroupRequest
				json.NewDecoder(r.Body).Decode(&req)

				wallets := make([]api.CreatedGroupWallet, req.Count)
				for i := range wallets {
					wallets[i] = api.CreatedGroupWallet{
						ID:       int64(i + 1),
						Index:    i + 1,
						Address:  fmt.Sprintf("addr%d", i+1),
						Mnemonic: fmt.Sprintf("phrase %d", i+1),
					}
				}
				json.NewEncoder(w).Encode(api.CreateGroupResponse{
					Success: true, GroupID: 1, GroupName: req.Name,
					WalletCount: req.Count, Wallets: wallets,
				})
			})

			resp, err := reg.Create(context.Background(), "G", "", count, "abcdefgh")
			if err != nil {
				t.Fatalf("count=%d: %v", count, err)
			}
			if resp.WalletCount != count || len(resp.Wallets) != count {
				t.Errorf("count=%d: wallet_count=%d members=%d", count, resp.WalletCount, len(resp.Wallets))
			}
		}
	})

	t.Run("CountOutOfRange", func(t *testing.T) {
		reg := groupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("Out-of-range count must not reach the backend")
		})

		for _, count := range []int{0, -1, 1001} {
			if _, err := reg.Create(context.Background(), "G", "", count, "abcdefgh"); err != ErrGroupCount {
				t.Errorf("count=%d: expected ErrGroupCount, got %v", count, err)
			}
		}
	})

	t.Run("ShortPassword", func(t *testing.T) {
		reg := groupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("Short password must not reach the backend")
		})

		if _, err := reg.Create(context.Background(), "G", "", 5, "short"); err != ErrPasswordTooShort {
			t.Errorf("Expected ErrPasswordTooShort, got %v", err)
		}
	})
}

func TestGroupMembershipMutation(t *testing.T) {
	var (
		mu    sync.Mutex
		count = 2
	)
	reg := groupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/group/list":
			mu.Lock()
			n := count
			mu.Unlock()
			json.NewEncoder(w).Encode(map[string][]api.Group{"groups": {
				{ID: 7, Name: "G", WalletCount: n},
			}})

		case "/group/add-wallet":
			var req api.AddWalletToGroupRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.WalletID == 99 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"detail": "Wallet is already in a group"}`))
				return
			}
			mu.Lock()
			count++
			mu.Unlock()
			w.Write([]byte(`{"success": true}`))

		case "/group/remove-wallet":
			mu.Lock()
			count--
			mu.Unlock()
			w.Write([]byte(`{"success": true}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	if _, err := reg.List(ctx); err != nil {
		t.Fatal(err)
	}

	t.Run("AddRefreshesCount", func(t *testing.T) {
		if err := reg.AddWallet(ctx, 7, 42); err != nil {
			t.Fatal(err)
		}
		if got := reg.Groups()[0].WalletCount; got != 3 {
			t.Errorf("wallet_count should track membership, got %d", got)
		}
	})

	t.Run("AlreadyGroupedRejected", func(t *testing.T) {
		err := reg.AddWallet(ctx, 7, 99)
		if err == nil {
			t.Fatal("Adding a wallet that already has a group must fail")
		}
		if got := reg.Groups()[0].WalletCount; got != 3 {
			t.Errorf("Failed add must not change the cached count, got %d", got)
		}
	})

	t.Run("RemoveRefreshesCount", func(t *testing.T) {
		if err := reg.RemoveWallet(ctx, 42); err != nil {
			t.Fatal(err)
		}
		if got := reg.Groups()[0].WalletCount; got != 2 {
			t.Errorf("wallet_count should track membership, got %d", got)
		}
	})
}

func TestGroupDetailMerge(t *testing.T) {
	bal := func(f float64) *float64 { return &f }

	t.Run("MergeByID", func(t *testing.T) {
		reg := groupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/group/7/wallets":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"group_id": 7,
					"wallets": []api.GroupWallet{
						{ID: 1, Index: 1, Label: "W1", Address: "a1"},
						{ID: 2, Index: 2, Label: "W2", Address: "a2"},
						{ID: 3, Index: 3, Label: "W3", Address: "a3"},
					},
				})
			case "/group/7/balances":
				// Wallet 3 missing: balance unknown, not zero.
				json.NewEncoder(w).Encode(api.GroupBalances{
					GroupID: 7, TotalBalance: 0.3,
					Wallets: []api.GroupWallet{
						{ID: 1, Balance: bal(0.1)},
						{ID: 2, Balance: bal(0.2)},
					},
				})
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		})

		wallets, err := reg.Detail(context.Background(), 7)
		if err != nil {
			t.Fatal(err)
		}
		if len(wallets) != 3 {
			t.Fatalf("Expected 3 members, got %d", len(wallets))
		}

		if wallets[0].Balance == nil || *wallets[0].Balance != 0.1 {
			t.Error("Balance for wallet 1 not merged")
		}
		if wallets[2].Balance != nil {
			t.Error("Wallet absent from balances must stay balance-unknown (nil)")
		}
	})

	t.Run("BalanceFetchFailureNotFatal", func(t *testing.T) {
		reg := groupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/group/7/wallets":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"wallets": []api.GroupWallet{{ID: 1, Index: 1, Address: "a1"}},
				})
			case "/group/7/balances":
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"detail": "rpc down"}`))
			}
		})

		wallets, err := reg.Detail(context.Background(), 7)
		if err != nil {
			t.Fatalf("Wallets present, balances down: should succeed, got %v", err)
		}
		if wallets[0].Balance != nil {
			t.Error("All balances should be pending when the balance fetch fails")
		}
	})

	t.Run("WalletFetchFailureIsFatal", func(t *testing.T) {
		reg := groupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/group/7/wallets":
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"detail": "Group not found"}`))
			case "/group/7/balances":
				json.NewEncoder(w).Encode(api.GroupBalances{})
			}
		})

		if _, err := reg.Detail(context.Background(), 7); err == nil {
			t.Error("Detail must fail when the member list cannot be fetched")
		}
	})
}

func TestGroupSelection(t *testing.T) {
	reg := groupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]api.Group{"groups": {
			{ID: 1, Name: "G1", WalletCount: 5},
			{ID: 2, Name: "G2", WalletCount: 3},
		}})
	})

	if _, err := reg.List(context.Background()); err != nil {
		t.Fatal(err)
	}

	t.Run("SelectKnown", func(t *testing.T) {
		if err := reg.Select(2); err != nil {
			t.Fatal(err)
		}
		g, ok := reg.Selected()
		if !ok || g.ID != 2 {
			t.Error("Selection not applied")
		}
	})

	t.Run("SelectUnknown", func(t *testing.T) {
		if err := reg.Select(99); err == nil {
			t.Error("Selecting an unknown group should fail")
		}
	})
}
