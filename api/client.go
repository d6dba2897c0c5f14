package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// APIError is a non-2xx answer from the backend. Detail carries the
// backend-supplied message verbatim so callers can surface it as-is.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend error %d", e.Status)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doRequest performs a single HTTP round trip. There is deliberately
// no retry loop: the backend is not idempotent per call and a replayed
// bulk operation can double-move funds. Retries are user actions.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Detail: errorDetail(respBody)}
	}

	return respBody, nil
}

// errorDetail pulls the FastAPI-style "detail" field out of an error
// body without committing to its full shape.
func errorDetail(body []byte) string {
	if d := gjson.GetBytes(body, "detail"); d.Exists() {
		return d.String()
	}
	return string(body)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := c.doRequest(ctx, http.MethodPost, path, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// Wallets

func (c *Client) ListWallets(ctx context.Context, includeBalance bool) ([]Wallet, error) {
	path := fmt.Sprintf("/wallet/list?include_balance=%t", includeBalance)
	var wallets []Wallet
	if err := c.getJSON(ctx, path, &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

func (c *Client) CreateWallet(ctx context.Context, req CreateWalletRequest) (*Wallet, error) {
	var w Wallet
	if err := c.postJSON(ctx, "/wallet/create", req, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) ImportWallet(ctx context.Context, req ImportWalletRequest) (*Wallet, error) {
	var w Wallet
	if err := c.postJSON(ctx, "/wallet/import", req, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) DeleteWallet(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/wallet/%d", id), nil)
	return err
}

// Groups

func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var resp struct {
		Groups []Group `json:"groups"`
	}
	if err := c.getJSON(ctx, "/group/list", &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

func (c *Client) CreateGroup(ctx context.Context, req CreateGroupRequest) (*CreateGroupResponse, error) {
	var resp CreateGroupResponse
	if err := c.postJSON(ctx, "/group/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/group/%d", id), nil)
	return err
}

func (c *Client) AddWalletToGroup(ctx context.Context, req AddWalletToGroupRequest) error {
	return c.postJSON(ctx, "/group/add-wallet", req, nil)
}

func (c *Client) RemoveWalletFromGroup(ctx context.Context, req RemoveWalletFromGroupRequest) error {
	return c.postJSON(ctx, "/group/remove-wallet", req, nil)
}

func (c *Client) GroupWallets(ctx context.Context, id int64) ([]GroupWallet, error) {
	var resp struct {
		GroupID int64         `json:"group_id"`
		Wallets []GroupWallet `json:"wallets"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/group/%d/wallets", id), &resp); err != nil {
		return nil, err
	}
	return resp.Wallets, nil
}

func (c *Client) GroupBalances(ctx context.Context, id int64) (*GroupBalances, error) {
	var resp GroupBalances
	if err := c.getJSON(ctx, fmt.Sprintf("/group/%d/balances", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Bulk operations. Each is exactly one round trip; a *BulkResult comes
// back iff the call succeeded at the transport level. Per-member
// failures live inside the result.

func (c *Client) DistributeSOL(ctx context.Context, req DistributeSOLRequest) (*BulkResult, error) {
	var res BulkResult
	if err := c.postJSON(ctx, "/group/distribute-sol", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CollectSOL(ctx context.Context, req CollectSOLRequest) (*BulkResult, error) {
	var res BulkResult
	if err := c.postJSON(ctx, "/group/collect-sol", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) BulkBuy(ctx context.Context, req BulkBuyRequest) (*BulkResult, error) {
	var res BulkResult
	if err := c.postJSON(ctx, "/group/bulk-buy", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) BulkSell(ctx context.Context, req BulkSellRequest) (*BulkResult, error) {
	var res BulkResult
	if err := c.postJSON(ctx, "/group/bulk-sell", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Sniper

func (c *Client) SniperConfig(ctx context.Context, walletID int64) (*SniperConfig, error) {
	var cfg SniperConfig
	if err := c.getJSON(ctx, fmt.Sprintf("/sniper/config/%d", walletID), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) SaveSniperConfig(ctx context.Context, cfg SniperConfig) (*SniperConfig, error) {
	var saved SniperConfig
	if err := c.postJSON(ctx, "/sniper/config", cfg, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) SniperStart(ctx context.Context, req SniperStartRequest) (*SniperStartResponse, error) {
	var resp SniperStartResponse
	if err := c.postJSON(ctx, "/sniper/start", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SniperStop(ctx context.Context) error {
	return c.postJSON(ctx, "/sniper/stop", nil, nil)
}

func (c *Client) SniperStatus(ctx context.Context) (*SniperStatus, error) {
	var status SniperStatus
	if err := c.getJSON(ctx, "/sniper/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) ManualSnipe(ctx context.Context, req ManualSnipeRequest) (*MemberResult, error) {
	var res MemberResult
	if err := c.postJSON(ctx, "/sniper/manual", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GroupSnipe(ctx context.Context, req GroupSnipeRequest) (*BulkResult, error) {
	var res BulkResult
	if err := c.postJSON(ctx, "/sniper/group/setup", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Settings

func (c *Client) NetworkSettings(ctx context.Context) (*NetworkSettings, error) {
	var ns NetworkSettings
	if err := c.getJSON(ctx, "/settings/network", &ns); err != nil {
		return nil, err
	}
	return &ns, nil
}

func (c *Client) SetNetworkSettings(ctx context.Context, ns NetworkSettings) error {
	return c.postJSON(ctx, "/settings/network", ns, nil)
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.getJSON(ctx, "/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}
