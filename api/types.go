package api

// Wire types for the trading backend. Field names match the backend's
// JSON exactly; everything here is a snapshot, never authoritative.

type Wallet struct {
	ID        int64   `json:"id"`
	Label     string  `json:"label"`
	PublicKey string  `json:"public_key"`
	Balance   float64 `json:"balance"`
	IsPrimary bool    `json:"is_primary"`
}

type Group struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	WalletCount int    `json:"wallet_count"`
	CreatedAt   string `json:"created_at"`
}

// GroupWallet is a member of a group. Balance is nil when the backend
// has not reported one; nil means unknown, not zero.
type GroupWallet struct {
	ID      int64    `json:"id"`
	Index   int      `json:"index"`
	Label   string   `json:"label"`
	Address string   `json:"address"`
	Balance *float64 `json:"balance,omitempty"`
}

// CreatedGroupWallet carries the one-time mnemonic returned by group
// creation. The mnemonic is not retrievable again; callers must
// surface it for backup and drop it.
type CreatedGroupWallet struct {
	ID       int64  `json:"id"`
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Address  string `json:"address"`
	Mnemonic string `json:"mnemonic"`
}

type CreateGroupResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	GroupID     int64                `json:"group_id"`
	GroupName   string               `json:"group_name"`
	WalletCount int                  `json:"wallet_count"`
	Wallets     []CreatedGroupWallet `json:"wallets"`
}

type GroupBalances struct {
	GroupID      int64         `json:"group_id"`
	TotalBalance float64       `json:"total_balance"`
	Wallets      []GroupWallet `json:"wallets"`
}

// MemberResult is the per-wallet outcome inside a bulk operation.
// Success/Error form a tagged pair: exactly one of Signature or Error
// is meaningful.
type MemberResult struct {
	WalletID  int64   `json:"wallet_id"`
	Index     int     `json:"wallet_index"`
	Address   string  `json:"address"`
	Amount    float64 `json:"amount,omitempty"`
	Signature string  `json:"signature,omitempty"`
	Error     string  `json:"error,omitempty"`
	Success   bool    `json:"success"`
}

// Ok reports whether this member's transfer or trade landed.
func (m MemberResult) Ok() bool {
	return m.Success
}

// BulkResult aggregates one bulk operation across a whole group.
// Successful + Failed always equals TotalWallets.
type BulkResult struct {
	TotalWallets   int            `json:"total_wallets"`
	Successful     int            `json:"successful"`
	Failed         int            `json:"failed"`
	TotalSOLSent   float64        `json:"total_sol_sent,omitempty"`
	TotalCollected float64        `json:"total_collected,omitempty"`
	TargetWallet   string         `json:"target_wallet,omitempty"`
	Results        []MemberResult `json:"results"`
}

type SniperConfig struct {
	ID                     int64   `json:"id,omitempty"`
	WalletID               int64   `json:"wallet_id"`
	BuyAmount              float64 `json:"buy_amount"`
	Slippage               float64 `json:"slippage"`
	MinLiquidity           float64 `json:"min_liquidity"`
	MinSafetyScore         int     `json:"min_safety_score"`
	RequireMintRenounced   bool    `json:"require_mint_renounced"`
	RequireFreezeRenounced bool    `json:"require_freeze_renounced"`
	MaxBuyTax              float64 `json:"max_buy_tax"`
	MaxSellTax             float64 `json:"max_sell_tax"`
	IsActive               bool    `json:"is_active"`
}

type SniperStatus struct {
	IsRunning     bool    `json:"is_running"`
	PoolsDetected int     `json:"pools_detected"`
	TokensBought  int     `json:"tokens_bought"`
	TokensSkipped int     `json:"tokens_skipped"`
	SuccessRate   float64 `json:"success_rate"`
}

type NetworkSettings struct {
	Network     string `json:"network"`
	RPCEndpoint string `json:"rpc_endpoint"`
	WSEndpoint  string `json:"ws_endpoint"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Network string `json:"network,omitempty"`
}

// Request bodies.

type CreateWalletRequest struct {
	Password string `json:"password"`
	Label    string `json:"label"`
}

type ImportWalletRequest struct {
	PrivateKey string `json:"private_key,omitempty"`
	Mnemonic   string `json:"mnemonic,omitempty"`
	Password   string `json:"password"`
	Label      string `json:"label"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	Password    string `json:"password"`
}

type AddWalletToGroupRequest struct {
	WalletID int64 `json:"wallet_id"`
	GroupID  int64 `json:"group_id"`
}

// RemoveWalletFromGroupRequest names only the wallet: a wallet belongs
// to at most one group, so the backend resolves the group itself.
type RemoveWalletFromGroupRequest struct {
	WalletID int64 `json:"wallet_id"`
}

type DistributeSOLRequest struct {
	FromWalletID    int64   `json:"from_wallet_id"`
	ToGroupID       int64   `json:"to_group_id"`
	AmountPerWallet float64 `json:"amount_per_wallet"`
	Password        string  `json:"password"`
}

type CollectSOLRequest struct {
	FromGroupID int64   `json:"from_group_id"`
	ToWalletID  int64   `json:"to_wallet_id"`
	Password    string  `json:"password"`
	LeaveAmount float64 `json:"leave_amount"`
}

type BulkBuyRequest struct {
	GroupID      int64   `json:"group_id"`
	TokenAddress string  `json:"token_address"`
	SOLAmount    float64 `json:"sol_amount"`
	Slippage     float64 `json:"slippage"`
	Password     string  `json:"password"`
}

type BulkSellRequest struct {
	GroupID      int64   `json:"group_id"`
	TokenAddress string  `json:"token_address"`
	Percentage   int     `json:"percentage"`
	Slippage     float64 `json:"slippage"`
	Password     string  `json:"password"`
}

type SniperStartRequest struct {
	WalletID  int64    `json:"wallet_id"`
	GroupID   int64    `json:"group_id,omitempty"`
	Password  string   `json:"password"`
	Platforms []string `json:"platforms"`
}

type ManualSnipeRequest struct {
	WalletID     int64   `json:"wallet_id"`
	TokenAddress string  `json:"token_address"`
	BuyAmount    float64 `json:"buy_amount"`
	Password     string  `json:"password"`
}

type GroupSnipeRequest struct {
	GroupID      int64   `json:"group_id"`
	TokenAddress string  `json:"token_address"`
	BuyAmount    float64 `json:"buy_amount"`
	Password     string  `json:"password"`
}

type SniperStartResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
