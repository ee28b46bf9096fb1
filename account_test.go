package walletadapter

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/solstandard/wallet-adapter-go/host"
)

func accountMap(key solana.PublicKey) map[string]any {
	return map[string]any{
		"address":   key.String(),
		"publicKey": key.Bytes(),
		"chains":    []any{"solana:devnet", "solana:mainnet"},
		"features":  []any{"solana:signMessage", "solana:signTransaction"},
		"label":     "Main account",
	}
}

func TestParseWalletAccount(t *testing.T) {
	key := solana.NewWallet().PrivateKey.PublicKey()

	account, err := parseWalletAccount(host.Wrap(accountMap(key)))
	if err != nil {
		t.Fatalf("parseWalletAccount() error = %v", err)
	}
	if account.Address != key.String() {
		t.Errorf("Address = %q, want %q", account.Address, key.String())
	}
	if !account.PublicKey.Equals(key) {
		t.Errorf("PublicKey = %v, want %v", account.PublicKey, key)
	}
	if account.Label != "Main account" {
		t.Errorf("Label = %q", account.Label)
	}

	chains := account.SupportedChains()
	if !chains.DevNet || !chains.MainNet || chains.TestNet || chains.LocalNet {
		t.Errorf("SupportedChains() = %+v", chains)
	}
	features := account.SupportedFeatures()
	if !features.SignMessage || !features.SignTransaction || features.SignIn {
		t.Errorf("SupportedFeatures() = %+v", features)
	}
}

func TestParseWalletAccountMissingFields(t *testing.T) {
	key := solana.NewWallet().PrivateKey.PublicKey()

	t.Run("no address", func(t *testing.T) {
		m := accountMap(key)
		delete(m, "address")
		if _, err := parseWalletAccount(host.Wrap(m)); !errors.Is(err, ErrExpectedValueNotFound) {
			t.Errorf("error = %v, want ErrExpectedValueNotFound", err)
		}
	})

	t.Run("no public key", func(t *testing.T) {
		m := accountMap(key)
		delete(m, "publicKey")
		if _, err := parseWalletAccount(host.Wrap(m)); !errors.Is(err, ErrExpectedValueNotFound) {
			t.Errorf("error = %v, want ErrExpectedValueNotFound", err)
		}
	})

	t.Run("short public key", func(t *testing.T) {
		m := accountMap(key)
		m["publicKey"] = []byte{1, 2, 3}
		if _, err := parseWalletAccount(host.Wrap(m)); !errors.Is(err, ErrExpected32ByteLength) {
			t.Errorf("error = %v, want ErrExpected32ByteLength", err)
		}
	})
}

func TestWalletAccountEqual(t *testing.T) {
	key := solana.NewWallet().PrivateKey.PublicKey()

	a, err := parseWalletAccount(host.Wrap(accountMap(key)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := parseWalletAccount(host.Wrap(accountMap(key)))
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(&b) {
		t.Errorf("identical accounts compare unequal")
	}

	b.Label = "Other"
	if a.Equal(&b) {
		t.Errorf("accounts with different labels compare equal")
	}

	other := solana.NewWallet().PrivateKey.PublicKey()
	c, err := parseWalletAccount(host.Wrap(accountMap(other)))
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(&c) {
		t.Errorf("accounts with different keys compare equal")
	}
}

func TestShortenAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		n       int
		want    string
		wantErr error
	}{
		{"default width", "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T", 4, "4Nd1...DB4T", nil},
		{"wide", "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T", 6, "4Nd1mB...4gDB4T", nil},
		{"too short", "abcdefgh", 4, "", ErrAddressTooShort},
		{"zero width", "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T", 0, "", ErrAddressTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShortenAddressN(tt.address, tt.n)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ShortenAddressN() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShortenAddressN() = %q, want %q", got, tt.want)
			}
		})
	}
}
