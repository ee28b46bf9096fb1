package walletadapter

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/solstandard/wallet-adapter-go/host"
)

// WalletAccount is one account a wallet exposed through connect or an
// account-change notification.
type WalletAccount struct {
	// Address is the base58 encoded account address.
	Address string

	// PublicKey is the Ed25519 public key behind the address.
	PublicKey solana.PublicKey

	// Chains lists the namespaced chain identifiers the account declared.
	Chains []string

	// Features lists the capability identifiers the account declared.
	Features []string

	// Label is an optional human readable account name.
	Label string

	// Icon is an optional data URI for the account icon.
	Icon string

	supportedChains   ChainSupport
	supportedFeatures FeatureSupport

	raw host.Value
}

// parseWalletAccount reflects a host account object into a WalletAccount.
// The address and a 32 byte public key are required; everything else is
// optional.
func parseWalletAccount(v host.Value) (WalletAccount, error) {
	account := WalletAccount{raw: v}

	addressValue, ok := v.Get("address")
	if !ok {
		return WalletAccount{}, fmt.Errorf("%w: address", ErrExpectedValueNotFound)
	}
	address, ok := addressValue.AsString()
	if !ok || address == "" {
		return WalletAccount{}, fmt.Errorf("%w: address", ErrExpectedValueNotFound)
	}
	account.Address = address

	keyValue, ok := v.Get("publicKey")
	if !ok {
		return WalletAccount{}, fmt.Errorf("%w: publicKey", ErrExpectedValueNotFound)
	}
	keyBytes, ok := keyValue.AsBytes()
	if !ok {
		return WalletAccount{}, fmt.Errorf("%w: publicKey", ErrExpectedValueNotFound)
	}
	if len(keyBytes) != 32 {
		return WalletAccount{}, fmt.Errorf("%w: publicKey has %d bytes", ErrExpected32ByteLength, len(keyBytes))
	}
	account.PublicKey = solana.PublicKeyFromBytes(keyBytes)

	if chainsValue, ok := v.Get("chains"); ok {
		if chains, ok := chainsValue.AsArray(); ok {
			for _, chainValue := range chains {
				chain, ok := chainValue.AsString()
				if !ok {
					continue
				}
				account.Chains = append(account.Chains, chain)
				if !strings.HasPrefix(chain, NetworkNamespace+":") {
					continue
				}
				cluster, err := clusterFromChain(chain)
				if err != nil {
					return WalletAccount{}, err
				}
				account.supportedChains.mark(cluster)
			}
		}
	}

	if featuresValue, ok := v.Get("features"); ok {
		if features, ok := featuresValue.AsArray(); ok {
			for _, featureValue := range features {
				feature, ok := featureValue.AsString()
				if !ok {
					continue
				}
				account.Features = append(account.Features, feature)
				account.markFeature(feature)
			}
		}
	}

	if labelValue, ok := v.Get("label"); ok {
		if label, ok := labelValue.AsString(); ok {
			account.Label = label
		}
	}
	if iconValue, ok := v.Get("icon"); ok {
		if icon, ok := iconValue.AsString(); ok {
			account.Icon = icon
		}
	}

	return account, nil
}

func (a *WalletAccount) markFeature(feature string) {
	switch feature {
	case StandardConnect:
		a.supportedFeatures.Connect = true
	case StandardDisconnect:
		a.supportedFeatures.Disconnect = true
	case StandardEvents:
		a.supportedFeatures.Events = true
	case SolanaSignIn:
		a.supportedFeatures.SignIn = true
	case SolanaSignMessage:
		a.supportedFeatures.SignMessage = true
	case SolanaSignTransaction:
		a.supportedFeatures.SignTransaction = true
	case SolanaSignAndSendTransaction:
		a.supportedFeatures.SignAndSendTransaction = true
	case SolanaSignAllTransactions:
		a.supportedFeatures.SignAllTransactions = true
	}
}

// SupportedChains reports the clusters the account declared support for.
func (a *WalletAccount) SupportedChains() ChainSupport {
	return a.supportedChains
}

// SupportedFeatures reports the capabilities the account declared support for.
func (a *WalletAccount) SupportedFeatures() FeatureSupport {
	return a.supportedFeatures
}

// Equal reports whether two accounts describe the same account. The
// underlying host object is excluded from the comparison.
func (a *WalletAccount) Equal(other *WalletAccount) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.Address != other.Address || !a.PublicKey.Equals(other.PublicKey) {
		return false
	}
	if a.Label != other.Label || a.Icon != other.Icon {
		return false
	}
	if len(a.Chains) != len(other.Chains) || len(a.Features) != len(other.Features) {
		return false
	}
	for i, chain := range a.Chains {
		if other.Chains[i] != chain {
			return false
		}
	}
	for i, feature := range a.Features {
		if other.Features[i] != feature {
			return false
		}
	}
	return true
}

// ShortenedAddress returns the address shortened for display with the
// default 4 character head and tail.
func (a *WalletAccount) ShortenedAddress() string {
	short, err := ShortenAddress(a.Address)
	if err != nil {
		return a.Address
	}
	return short
}

// ShortenAddress shortens a base58 address for display, keeping 4
// characters on each side: "AbCd...WxYz".
func ShortenAddress(address string) (string, error) {
	return ShortenAddressN(address, 4)
}

// ShortenAddressN shortens a base58 address keeping n characters on each
// side. Addresses that would not actually shrink are rejected.
func ShortenAddressN(address string, n int) (string, error) {
	if n < 1 || len(address) <= 2*n+3 {
		return "", fmt.Errorf("%w: %q", ErrAddressTooShort, address)
	}
	var b strings.Builder
	b.WriteString(address[:n])
	b.WriteString("...")
	b.WriteString(address[len(address)-n:])
	return b.String(), nil
}
