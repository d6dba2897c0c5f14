package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"sniper-control/api"
	"sniper-control/config"
	"sniper-control/engine"
	"sniper-control/netconf"
	"sniper-control/notify"
	"sniper-control/registry"
	"sniper-control/storage"
	"sniper-control/vault"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold)
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

type app struct {
	cfg     *config.Config
	client  *api.Client
	store   *storage.DB
	creds   *vault.Vault
	wallets *registry.WalletRegistry
	groups  *registry.GroupRegistry
	coord   *engine.Coordinator
	sniper  *engine.SniperController
	network *netconf.State
}

func main() {
	configPath := flag.String("config", "config/config.json", "Config path")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0755)
	store, err := storage.New(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Storage error: %v", err)
	}
	defer store.Close()

	notifier, err := notify.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.Printf("Telegram disabled: %v", err)
	}
	defer notifier.Close()

	client := api.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	creds := vault.New(store)
	groups := registry.NewGroupRegistry(client)

	a := &app{
		cfg:     cfg,
		client:  client,
		store:   store,
		creds:   creds,
		wallets: registry.NewWalletRegistry(client),
		groups:  groups,
		coord:   engine.NewCoordinator(client, store, notifier, creds),
		sniper: engine.NewSniperController(client, groups, creds, store, notifier,
			time.Duration(cfg.Polling.SniperStatusSeconds)*time.Second),
		network: netconf.New(client, confirmMainnet),
	}
	defer a.sniper.Shutdown()

	if err := a.run(flag.Args()); err != nil {
		red.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	cyan.Println("sniperctl — control surface for the sniper backend")
	fmt.Println(`
Commands:
  health                                  backend liveness
  wallets [-balances]                     list wallets
  create-wallet -label L -password P      create a wallet
  import-wallet -label L -password P (-key K | -mnemonic M)
  delete-wallet -id N                     delete a wallet
  groups                                  list groups
  create-group -name N -count C -password P [-desc D]
  delete-group -id N                      delete a group
  group -id N                             group members with balances
  add-to-group -group G -wallet W         add an ungrouped wallet to a group
  remove-from-group -wallet W             detach a wallet (wallet kept)
  distribute -from W -group G -amount A -password P
  collect -group G -to W -password P [-leave 0.001]
  bulk-buy -group G -token T -amount A -password P [-slippage S]
  bulk-sell -group G -token T -pct P -password P [-slippage S]
  sniper-config -wallet W [flags]         save sniper config
  sniper-start -wallet W -password P [-platforms raydium,pumpfun] [-group-mode]
  sniper-stop
  sniper-status [-watch]
  snipe -wallet W -token T -amount A -password P
  group-snipe -group G -token T -amount A -password P
  network                                 show network settings
  set-network -net N -rpc URL -ws URL
  history [-limit 20]
  remember-password -password P / forget-password`)
}

func (a *app) run(args []string) error {
	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "health":
		return a.cmdHealth(ctx)
	case "wallets":
		return a.cmdWallets(ctx, rest)
	case "create-wallet":
		return a.cmdCreateWallet(ctx, rest)
	case "import-wallet":
		return a.cmdImportWallet(ctx, rest)
	case "delete-wallet":
		return a.cmdDeleteWallet(ctx, rest)
	case "groups":
		return a.cmdGroups(ctx)
	case "create-group":
		return a.cmdCreateGroup(ctx, rest)
	case "delete-group":
		return a.cmdDeleteGroup(ctx, rest)
	case "group":
		return a.cmdGroupDetail(ctx, rest)
	case "add-to-group":
		return a.cmdAddToGroup(ctx, rest)
	case "remove-from-group":
		return a.cmdRemoveFromGroup(ctx, rest)
	case "distribute":
		return a.cmdDistribute(ctx, rest)
	case "collect":
		return a.cmdCollect(ctx, rest)
	case "bulk-buy":
		return a.cmdBulkBuy(ctx, rest)
	case "bulk-sell":
		return a.cmdBulkSell(ctx, rest)
	case "sniper-config":
		return a.cmdSniperConfig(ctx, rest)
	case "sniper-start":
		return a.cmdSniperStart(ctx, rest)
	case "sniper-stop":
		return a.sniperStop(ctx)
	case "sniper-status":
		return a.cmdSniperStatus(ctx, rest)
	case "snipe":
		return a.cmdManualSnipe(ctx, rest)
	case "group-snipe":
		return a.cmdGroupSnipe(ctx, rest)
	case "network":
		return a.cmdNetwork(ctx)
	case "set-network":
		return a.cmdSetNetwork(ctx, rest)
	case "history":
		return a.cmdHistory(rest)
	case "remember-password":
		return a.cmdRememberPassword(rest)
	case "forget-password":
		return a.creds.Forget()
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// password resolves the -password flag against the vault: an explicit
// flag wins, otherwise the remembered password is used.
func (a *app) password(flagValue string) string {
	if flagValue != "" {
		a.creds.Use(flagValue)
		return flagValue
	}
	return a.creds.Current()
}

func (a *app) cmdHealth(ctx context.Context) error {
	h, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	green.Printf("✅ Backend %s", h.Status)
	if h.Network != "" {
		fmt.Printf(" (network: %s)", h.Network)
	}
	fmt.Println()
	return nil
}

func (a *app) cmdWallets(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("wallets", flag.ExitOnError)
	balances := fs.Bool("balances", false, "Include balances")
	fs.Parse(args)

	wallets, err := a.wallets.List(ctx, *balances)
	if err != nil {
		return err
	}

	cyan.Printf("Wallets (%d)\n", len(wallets))
	for _, w := range wallets {
		primary := " "
		if w.IsPrimary {
			primary = "*"
		}
		if *balances {
			fmt.Printf("%s [%d] %-20s %s  %.4f SOL\n", primary, w.ID, w.Label, w.PublicKey, w.Balance)
		} else {
			fmt.Printf("%s [%d] %-20s %s\n", primary, w.ID, w.Label, w.PublicKey)
		}
	}
	return nil
}

func (a *app) cmdCreateWallet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-wallet", flag.ExitOnError)
	label := fs.String("label", "", "Wallet label")
	password := fs.String("password", "", "Encryption password (min 8 chars)")
	fs.Parse(args)

	w, err := a.wallets.Create(ctx, a.password(*password), *label)
	if err != nil {
		return err
	}
	green.Printf("✅ Created wallet [%d] %s\n", w.ID, w.PublicKey)
	return nil
}

func (a *app) cmdImportWallet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import-wallet", flag.ExitOnError)
	label := fs.String("label", "", "Wallet label")
	password := fs.String("password", "", "Encryption password")
	key := fs.String("key", "", "Base58 private key")
	mnemonic := fs.String("mnemonic", "", "BIP39 seed phrase")
	fs.Parse(args)

	w, err := a.wallets.Import(ctx, a.password(*password), *label, *key, *mnemonic)
	if err != nil {
		return err
	}
	green.Printf("✅ Imported wallet [%d] %s\n", w.ID, w.PublicKey)
	return nil
}

func (a *app) cmdDeleteWallet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-wallet", flag.ExitOnError)
	id := fs.Int64("id", 0, "Wallet id")
	fs.Parse(args)

	if !confirm(fmt.Sprintf("Delete wallet %d? This cannot be undone", *id)) {
		return nil
	}
	if err := a.wallets.Delete(ctx, *id); err != nil {
		return err
	}
	green.Println("✅ Wallet deleted")
	return nil
}

func (a *app) cmdGroups(ctx context.Context) error {
	groups, err := a.groups.List(ctx)
	if err != nil {
		return err
	}

	cyan.Printf("Groups (%d)\n", len(groups))
	for _, g := range groups {
		fmt.Printf("[%d] %-20s %d wallets  %s\n", g.ID, g.Name, g.WalletCount, g.Description)
	}
	return nil
}

func (a *app) cmdCreateGroup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-group", flag.ExitOnError)
	name := fs.String("name", "", "Group name")
	desc := fs.String("desc", "", "Description")
	count := fs.Int("count", 10, "Number of wallets (1-1000)")
	password := fs.String("password", "", "Shared encryption password")
	fs.Parse(args)

	resp, err := a.groups.Create(ctx, *name, *desc, *count, a.password(*password))
	if err != nil {
		return err
	}

	green.Printf("✅ Created group [%d] %s with %d wallets\n", resp.GroupID, resp.GroupName, resp.WalletCount)
	yellow.Println("\n⚠️  SAVE THESE MNEMONICS NOW — they are not retrievable again:")
	for _, w := range resp.Wallets {
		fmt.Printf("  %2d. %s\n      %s\n", w.Index, w.Address, w.Mnemonic)
	}
	return nil
}

func (a *app) cmdDeleteGroup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-group", flag.ExitOnError)
	id := fs.Int64("id", 0, "Group id")
	fs.Parse(args)

	if !confirm(fmt.Sprintf("Delete group %d and all its wallets? This cannot be undone", *id)) {
		return nil
	}
	if err := a.groups.Delete(ctx, *id); err != nil {
		return err
	}
	green.Println("✅ Group deleted")
	return nil
}

func (a *app) cmdGroupDetail(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("group", flag.ExitOnError)
	id := fs.Int64("id", 0, "Group id")
	fs.Parse(args)

	wallets, err := a.groups.Detail(ctx, *id)
	if err != nil {
		return err
	}

	cyan.Printf("Group %d members (%d)\n", *id, len(wallets))
	for _, w := range wallets {
		if w.Balance != nil {
			fmt.Printf("  %2d. %-20s %s  %.4f SOL\n", w.Index, w.Label, w.Address, *w.Balance)
		} else {
			fmt.Printf("  %2d. %-20s %s  (balance pending)\n", w.Index, w.Label, w.Address)
		}
	}
	return nil
}

func (a *app) cmdAddToGroup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-to-group", flag.ExitOnError)
	group := fs.Int64("group", 0, "Group id")
	wallet := fs.Int64("wallet", 0, "Wallet id (must not already be in a group)")
	fs.Parse(args)

	if err := a.groups.AddWallet(ctx, *group, *wallet); err != nil {
		return err
	}
	green.Printf("✅ Wallet %d added to group %d\n", *wallet, *group)
	return nil
}

func (a *app) cmdRemoveFromGroup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove-from-group", flag.ExitOnError)
	wallet := fs.Int64("wallet", 0, "Wallet id")
	fs.Parse(args)

	if err := a.groups.RemoveWallet(ctx, *wallet); err != nil {
		return err
	}
	green.Printf("✅ Wallet %d removed from its group (wallet kept)\n", *wallet)
	return nil
}

func (a *app) cmdDistribute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("distribute", flag.ExitOnError)
	from := fs.Int64("from", 0, "Source wallet id")
	group := fs.Int64("group", 0, "Target group id")
	amount := fs.Float64("amount", 0, "SOL per member wallet")
	password := fs.String("password", "", "Wallet password")
	fs.Parse(args)

	res, err := a.coord.DistributeSOL(ctx, *from, *group, *amount, a.password(*password))
	if err != nil {
		return err
	}
	printBulkResult("Distribute", res)
	return nil
}

func (a *app) cmdCollect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("collect", flag.ExitOnError)
	group := fs.Int64("group", 0, "Source group id")
	to := fs.Int64("to", 0, "Destination wallet id")
	leave := fs.Float64("leave", a.cfg.Trading.DefaultLeaveSOL, "SOL left per wallet for rent")
	password := fs.String("password", "", "Wallet password")
	fs.Parse(args)

	res, err := a.coord.CollectSOL(ctx, *group, *to, a.password(*password), *leave)
	if err != nil {
		return err
	}
	printBulkResult("Collect", res)
	return nil
}

func (a *app) cmdBulkBuy(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bulk-buy", flag.ExitOnError)
	group := fs.Int64("group", 0, "Group id")
	token := fs.String("token", "", "Token mint address")
	amount := fs.Float64("amount", 0, "SOL per wallet")
	slippage := fs.Float64("slippage", a.cfg.Trading.DefaultSlippagePct, "Slippage percent")
	password := fs.String("password", "", "Wallet password")
	fs.Parse(args)

	if !confirm("Execute bulk buy from all wallets in this group?") {
		return nil
	}
	res, err := a.coord.BulkBuy(ctx, *group, *token, *amount, *slippage, a.password(*password))
	if err != nil {
		return err
	}
	printBulkResult("Bulk buy", res)
	return nil
}

func (a *app) cmdBulkSell(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bulk-sell", flag.ExitOnError)
	group := fs.Int64("group", 0, "Group id")
	token := fs.String("token", "", "Token mint address")
	pct := fs.Int("pct", 100, "Percentage of holdings to sell (1-100)")
	slippage := fs.Float64("slippage", a.cfg.Trading.DefaultSlippagePct, "Slippage percent")
	password := fs.String("password", "", "Wallet password")
	fs.Parse(args)

	if !confirm("Execute bulk sell from all wallets in this group?") {
		return nil
	}
	res, err := a.coord.BulkSell(ctx, *group, *token, *pct, *slippage, a.password(*password))
	if err != nil {
		return err
	}
	printBulkResult("Bulk sell", res)
	return nil
}

func (a *app) cmdSniperConfig(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sniper-config", flag.ExitOnError)
	wallet := fs.Int64("wallet", 0, "Wallet id")
	buyAmount := fs.Float64("buy-amount", 0.1, "SOL per snipe")
	slippage := fs.Float64("slippage", 5.0, "Slippage percent")
	minLiquidity := fs.Float64("min-liquidity", 5.0, "Minimum pool liquidity in SOL")
	minSafety := fs.Int("min-safety", 70, "Minimum safety score 0-100")
	mintRenounced := fs.Bool("require-mint-renounced", true, "Require mint authority renounced")
	freezeRenounced := fs.Bool("require-freeze-renounced", true, "Require freeze authority renounced")
	maxBuyTax := fs.Float64("max-buy-tax", 10.0, "Maximum buy tax percent")
	maxSellTax := fs.Float64("max-sell-tax", 10.0, "Maximum sell tax percent")
	fs.Parse(args)

	saved, err := a.sniper.SaveConfig(ctx, api.SniperConfig{
		WalletID:               *wallet,
		BuyAmount:              *buyAmount,
		Slippage:               *slippage,
		MinLiquidity:           *minLiquidity,
		MinSafetyScore:         *minSafety,
		RequireMintRenounced:   *mintRenounced,
		RequireFreezeRenounced: *freezeRenounced,
		MaxBuyTax:              *maxBuyTax,
		MaxSellTax:             *maxSellTax,
	})
	if err != nil {
		return err
	}
	green.Printf("✅ Sniper config saved for wallet %d (buy %.3f SOL, slippage %.1f%%)\n",
		saved.WalletID, saved.BuyAmount, saved.Slippage)
	return nil
}

func (a *app) cmdSniperStart(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sniper-start", flag.ExitOnError)
	wallet := fs.Int64("wallet", 0, "Wallet id")
	password := fs.String("password", "", "Wallet password")
	platforms := fs.String("platforms", strings.Join(a.cfg.Trading.DefaultPlatforms, ","), "Comma-separated platforms")
	groupMode := fs.Bool("group-mode", false, "Snipe with the selected group")
	fs.Parse(args)

	var plats []string
	for _, p := range strings.Split(*platforms, ",") {
		if p = strings.TrimSpace(p); p != "" {
			plats = append(plats, p)
		}
	}

	err := a.sniper.Start(ctx, engine.StartOptions{
		WalletID:  *wallet,
		GroupMode: *groupMode,
		Password:  a.password(*password),
		Platforms: plats,
	})
	if err != nil {
		return err
	}

	green.Println("✅ Sniper running — polling status, Ctrl-C to detach (sniper keeps running)")
	return a.watchStatus()
}

func (a *app) sniperStop(ctx context.Context) error {
	// The CLI starts cold, so sync local state with the backend first.
	status, err := a.client.SniperStatus(ctx)
	if err != nil {
		return err
	}
	if !status.IsRunning {
		yellow.Println("Sniper is not running")
		return nil
	}

	if err := a.client.SniperStop(ctx); err != nil {
		return err
	}
	green.Printf("🛑 Sniper stopped — %d pools seen, %d bought, %d skipped (%.1f%% success)\n",
		status.PoolsDetected, status.TokensBought, status.TokensSkipped, status.SuccessRate)
	return nil
}

func (a *app) cmdSniperStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sniper-status", flag.ExitOnError)
	watch := fs.Bool("watch", false, "Keep polling")
	fs.Parse(args)

	status, err := a.client.SniperStatus(ctx)
	if err != nil {
		return err
	}
	printStatus(*status)

	if !*watch || !status.IsRunning {
		return nil
	}

	interval := time.Duration(a.cfg.Polling.SniperStatusSeconds) * time.Second
	done := make(chan error, 1)
	var failures int
	p := engine.NewPoller(interval, func() bool {
		s, err := a.client.SniperStatus(ctx)
		if err != nil {
			failures++
			if failures >= 3 {
				done <- fmt.Errorf("status poll failing (%v), detaching", err)
				return false
			}
			return true
		}
		failures = 0
		printStatus(*s)
		if !s.IsRunning {
			done <- nil
			return false
		}
		return true
	})
	p.Start()
	werr := <-done
	p.Stop()
	if werr == nil {
		yellow.Println("Sniper stopped")
	}
	return werr
}

// watchStatus drains the controller's status feed. A feed that goes
// quiet for several poll intervals means the polls themselves are
// failing; detach instead of blocking on a channel nobody feeds.
func (a *app) watchStatus() error {
	interval := time.Duration(a.cfg.Polling.SniperStatusSeconds) * time.Second
	for {
		select {
		case status := <-a.sniper.Status():
			printStatus(status)
			if !status.IsRunning {
				return nil
			}
		case <-time.After(5 * interval):
			if a.sniper.State() != engine.SniperRunning {
				return nil
			}
			return fmt.Errorf("no status updates, detaching (sniper may still be running)")
		}
	}
}

func (a *app) cmdManualSnipe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("snipe", flag.ExitOnError)
	wallet := fs.Int64("wallet", 0, "Wallet id")
	token := fs.String("token", "", "Token mint address")
	amount := fs.Float64("amount", 0, "SOL to spend")
	password := fs.String("password", "", "Wallet password")
	fs.Parse(args)

	res, err := a.sniper.ManualSnipe(ctx, *wallet, *token, *amount, a.password(*password))
	if err != nil {
		return err
	}
	if res.Ok() {
		green.Printf("✅ Sniped %s (tx %s)\n", *token, res.Signature)
	} else {
		red.Printf("❌ Snipe failed: %s\n", res.Error)
	}
	return nil
}

func (a *app) cmdGroupSnipe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("group-snipe", flag.ExitOnError)
	group := fs.Int64("group", 0, "Group id")
	token := fs.String("token", "", "Token mint address")
	amount := fs.Float64("amount", 0, "SOL per wallet")
	password := fs.String("password", "", "Wallet password")
	fs.Parse(args)

	res, err := a.sniper.GroupSnipe(ctx, *group, *token, *amount, a.password(*password))
	if err != nil {
		return err
	}
	printBulkResult("Group snipe", res)
	return nil
}

func (a *app) cmdNetwork(ctx context.Context) error {
	ns, err := a.network.Get(ctx)
	if err != nil {
		return err
	}
	cyan.Printf("Network: %s\n", ns.Network)
	fmt.Printf("  RPC: %s\n  WS:  %s\n", ns.RPCEndpoint, ns.WSEndpoint)
	return nil
}

func (a *app) cmdSetNetwork(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("set-network", flag.ExitOnError)
	net := fs.String("net", "", "devnet, testnet or mainnet")
	rpc := fs.String("rpc", "", "RPC endpoint")
	ws := fs.String("ws", "", "WS endpoint")
	fs.Parse(args)

	err := a.network.Set(ctx, api.NetworkSettings{Network: *net, RPCEndpoint: *rpc, WSEndpoint: *ws})
	if err != nil {
		return err
	}
	green.Printf("✅ Network switched to %s (backend restart may be required)\n", *net)
	return nil
}

func (a *app) cmdHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Max records")
	fs.Parse(args)

	records, err := a.store.RecentOperations(*limit)
	if err != nil {
		return err
	}

	cyan.Printf("Recent operations (%d)\n", len(records))
	for _, r := range records {
		ts := time.Unix(r.CreatedAt, 0).Format("2006-01-02 15:04")
		fmt.Printf("[%d] %s  %-12s group=%d  %d/%d ok  %.4f SOL\n",
			r.ID, ts, r.Kind, r.GroupID, r.Successful, r.TotalWallets, r.TotalSOL)
	}
	return nil
}

func (a *app) cmdRememberPassword(args []string) error {
	fs := flag.NewFlagSet("remember-password", flag.ExitOnError)
	password := fs.String("password", "", "Password to remember")
	fs.Parse(args)

	if *password == "" {
		return fmt.Errorf("password is required")
	}
	if err := a.creds.Remember(*password); err != nil {
		return err
	}
	yellow.Println("⚠️  Password stored obfuscated, not encrypted — convenience only")
	return nil
}

func printBulkResult(title string, res *api.BulkResult) {
	if res.Failed == 0 {
		green.Printf("✅ %s: %d/%d wallets succeeded\n", title, res.Successful, res.TotalWallets)
	} else {
		yellow.Printf("⚠️  %s: %d succeeded, %d failed of %d\n", title, res.Successful, res.Failed, res.TotalWallets)
	}
	if res.TotalSOLSent > 0 {
		fmt.Printf("   Total sent: %.4f SOL\n", res.TotalSOLSent)
	}
	if res.TotalCollected > 0 {
		fmt.Printf("   Total collected: %.4f SOL\n", res.TotalCollected)
	}
	for _, m := range res.Results {
		if m.Ok() {
			fmt.Printf("   ✅ [%d] %s  %.4f SOL  %s\n", m.WalletID, shortAddr(m.Address), m.Amount, m.Signature)
		} else {
			fmt.Printf("   ❌ [%d] %s  %s\n", m.WalletID, shortAddr(m.Address), m.Error)
		}
	}
}

func printStatus(s api.SniperStatus) {
	state := "RUNNING"
	if !s.IsRunning {
		state = "STOPPED"
	}
	fmt.Printf("[%s] pools: %d  bought: %d  skipped: %d  success: %.1f%%\n",
		state, s.PoolsDetected, s.TokensBought, s.TokensSkipped, s.SuccessRate)
}

func confirm(prompt string) bool {
	yellow.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func confirmMainnet(ns api.NetworkSettings) bool {
	return confirm(fmt.Sprintf("Switch to MAINNET (%s)? Real funds will move", ns.RPCEndpoint))
}

func shortAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
