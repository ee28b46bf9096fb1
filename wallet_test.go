package walletadapter

import (
	"context"
	"errors"
	"testing"

	"github.com/solstandard/wallet-adapter-go/host"
	"github.com/solstandard/wallet-adapter-go/host/hosttest"
)

func TestParseWallet(t *testing.T) {
	sim := hosttest.NewSimWallet("Phantom")

	wallet, err := ParseWallet(sim.Definition())
	if err != nil {
		t.Fatalf("ParseWallet() error = %v", err)
	}
	if wallet.Name() != "Phantom" {
		t.Errorf("Name() = %q", wallet.Name())
	}
	if wallet.Version() != (SemverVersion{Major: 1}) {
		t.Errorf("Version() = %v", wallet.Version())
	}
	if !wallet.SupportedChains().DevNet {
		t.Errorf("devnet support missing: %+v", wallet.SupportedChains())
	}
	if !wallet.CanSignIn() || !wallet.CanSignMessage() || !wallet.CanSignTransaction() ||
		!wallet.CanSignAllTransactions() || !wallet.CanSignAndSendTransaction() {
		t.Errorf("capability flags incomplete: %+v", wallet.SupportedFeatures())
	}
}

func TestParseWalletRejectsBadVersion(t *testing.T) {
	_, err := ParseWallet(host.Wrap(map[string]any{
		"name":     "Broken",
		"version":  "latest",
		"features": map[string]any{},
	}))
	if !errors.Is(err, ErrInvalidWalletVersion) {
		t.Fatalf("ParseWallet() error = %v, want ErrInvalidWalletVersion", err)
	}
}

func TestParseWalletRejectsForeignChain(t *testing.T) {
	sim := hosttest.NewSimWallet("Hybrid")
	sim.Chains = []string{"solana:devnet", "solana:unknownnet"}

	_, err := ParseWallet(sim.Definition())
	if !errors.Is(err, ErrUnsupportedChain) {
		t.Fatalf("ParseWallet() error = %v, want ErrUnsupportedChain", err)
	}
}

func TestParseWalletIgnoresNonSolanaChains(t *testing.T) {
	sim := hosttest.NewSimWallet("Hybrid")
	sim.Chains = []string{"solana:devnet", "eip155:1"}

	wallet, err := ParseWallet(sim.Definition())
	if err != nil {
		t.Fatalf("ParseWallet() error = %v", err)
	}
	if got := len(wallet.Chains()); got != 1 {
		t.Errorf("Chains() = %v, want only devnet", wallet.Chains())
	}
}

func TestWalletEqual(t *testing.T) {
	a, err := ParseWallet(hosttest.NewSimWallet("Phantom").Definition())
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseWallet(hosttest.NewSimWallet("Phantom").Definition())
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("wallets with the same identity compare unequal")
	}

	c, err := ParseWallet(hosttest.NewSimWallet("Solflare").Definition())
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Errorf("wallets with different names compare equal")
	}
}

func TestWalletConnectAdoptsAccounts(t *testing.T) {
	sim := hosttest.NewSimWallet("Phantom")
	wallet, err := ParseWallet(sim.Definition())
	if err != nil {
		t.Fatal(err)
	}

	accounts, err := wallet.Connect(context.Background())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if len(accounts) != 1 || accounts[0].Address != sim.CurrentAddress() {
		t.Errorf("Connect() = %v, want the wallet's current account", accounts)
	}
	if _, err := wallet.Account(sim.CurrentAddress()); err != nil {
		t.Errorf("Account() after connect error = %v", err)
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	phantom, err := ParseWallet(hosttest.NewSimWallet("Phantom").Definition())
	if err != nil {
		t.Fatal(err)
	}
	solflare, err := ParseWallet(hosttest.NewSimWallet("Solflare").Definition())
	if err != nil {
		t.Fatal(err)
	}
	registry.Insert(phantom)
	registry.Insert(solflare)

	if registry.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", registry.Len())
	}

	// Lookups are case insensitive.
	got, err := registry.Get("PHANTOM")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != phantom {
		t.Errorf("Get() returned the wrong wallet")
	}

	if _, err := registry.Get("backpack"); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("Get() error = %v, want ErrWalletNotFound", err)
	}

	wallets := registry.Wallets()
	if len(wallets) != 2 || wallets[0] != phantom || wallets[1] != solflare {
		t.Errorf("Wallets() order = %v", wallets)
	}

	// Re-registration replaces in place without growing the registry.
	replacement, err := ParseWallet(hosttest.NewSimWallet("phantom").Definition())
	if err != nil {
		t.Fatal(err)
	}
	registry.Insert(replacement)
	if registry.Len() != 2 {
		t.Errorf("Len() after replacement = %d, want 2", registry.Len())
	}
	got, _ = registry.Get("Phantom")
	if got != replacement {
		t.Errorf("replacement not visible through Get()")
	}
}
