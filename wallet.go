package walletadapter

import (
	"fmt"
	"strings"

	"github.com/solstandard/wallet-adapter-go/host"
)

// Wallet is a parsed wallet standard wallet: its identity, the clusters
// and capabilities it advertises, and the accounts it exposed so far.
type Wallet struct {
	name     string
	version  SemverVersion
	icon     string
	chains   []Cluster
	accounts []WalletAccount

	features       Features
	featureSupport FeatureSupport
	chainSupport   ChainSupport

	raw host.Value
}

// ParseWallet reflects a host wallet object into a typed Wallet. Chains
// outside the Solana namespace are ignored; a malformed capability map
// rejects the whole wallet.
func ParseWallet(v host.Value) (*Wallet, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: wallet", ErrValueNotFound)
	}
	wallet := &Wallet{raw: v}

	nameValue, ok := v.Get("name")
	if !ok {
		return nil, fmt.Errorf("%w: name", ErrExpectedValueNotFound)
	}
	name, ok := nameValue.AsString()
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: name", ErrExpectedValueNotFound)
	}
	wallet.name = name

	versionValue, ok := v.Get("version")
	if !ok {
		return nil, ErrVersionNotFound
	}
	versionStr, ok := versionValue.AsString()
	if !ok {
		return nil, ErrVersionNotFound
	}
	version, err := ParseSemverVersion(versionStr)
	if err != nil {
		return nil, err
	}
	wallet.version = version

	if iconValue, ok := v.Get("icon"); ok {
		if icon, ok := iconValue.AsString(); ok {
			wallet.icon = icon
		}
	}

	if chainsValue, ok := v.Get("chains"); ok {
		if chains, ok := chainsValue.AsArray(); ok {
			for _, chainValue := range chains {
				chain, ok := chainValue.AsString()
				if !ok || !strings.HasPrefix(chain, NetworkNamespace+":") {
					continue
				}
				cluster, err := clusterFromChain(chain)
				if err != nil {
					return nil, err
				}
				wallet.chains = append(wallet.chains, cluster)
				wallet.chainSupport.mark(cluster)
			}
		}
	}

	features, support, err := parseFeatures(v)
	if err != nil {
		return nil, err
	}
	wallet.features = features
	wallet.featureSupport = support

	if accountsValue, ok := v.Get("accounts"); ok {
		if accounts, ok := accountsValue.AsArray(); ok {
			for _, accountValue := range accounts {
				account, err := parseWalletAccount(accountValue)
				if err != nil {
					return nil, err
				}
				wallet.accounts = append(wallet.accounts, account)
			}
		}
	}

	return wallet, nil
}

// Name returns the wallet's self-reported name.
func (w *Wallet) Name() string {
	return w.name
}

// Version returns the wallet standard version the wallet implements.
func (w *Wallet) Version() SemverVersion {
	return w.version
}

// Icon returns the wallet's icon data URI, when it declared one.
func (w *Wallet) Icon() string {
	return w.icon
}

// Chains returns the Solana clusters the wallet supports.
func (w *Wallet) Chains() []Cluster {
	return w.chains
}

// Accounts returns the accounts the wallet has exposed.
func (w *Wallet) Accounts() []WalletAccount {
	return w.accounts
}

// Account returns the account with the given base58 address.
func (w *Wallet) Account(address string) (WalletAccount, error) {
	for _, account := range w.accounts {
		if account.Address == address {
			return account, nil
		}
	}
	return WalletAccount{}, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
}

// Extensions returns the wallet's non-standard capability keys.
func (w *Wallet) Extensions() []string {
	return w.features.Extensions()
}

// SupportedFeatures reports the capabilities the wallet advertises.
func (w *Wallet) SupportedFeatures() FeatureSupport {
	return w.featureSupport
}

// SupportedChains reports the clusters the wallet advertises.
func (w *Wallet) SupportedChains() ChainSupport {
	return w.chainSupport
}

// SupportsCluster reports whether the wallet declared the cluster.
func (w *Wallet) SupportsCluster(cluster Cluster) bool {
	switch cluster {
	case ClusterMainNet:
		return w.chainSupport.MainNet
	case ClusterTestNet:
		return w.chainSupport.TestNet
	case ClusterLocalNet:
		return w.chainSupport.LocalNet
	default:
		return w.chainSupport.DevNet
	}
}

// CanSignIn reports whether the wallet advertises solana:signIn.
func (w *Wallet) CanSignIn() bool {
	return w.featureSupport.SignIn
}

// CanSignMessage reports whether the wallet advertises solana:signMessage.
func (w *Wallet) CanSignMessage() bool {
	return w.featureSupport.SignMessage
}

// CanSignTransaction reports whether the wallet advertises solana:signTransaction.
func (w *Wallet) CanSignTransaction() bool {
	return w.featureSupport.SignTransaction
}

// CanSignAllTransactions reports whether the wallet advertises
// solana:signAllTransactions.
func (w *Wallet) CanSignAllTransactions() bool {
	return w.featureSupport.SignAllTransactions
}

// CanSignAndSendTransaction reports whether the wallet advertises
// solana:signAndSendTransaction.
func (w *Wallet) CanSignAndSendTransaction() bool {
	return w.featureSupport.SignAndSendTransaction
}

// Equal reports whether two wallets describe the same wallet: same name,
// version and declared clusters. Accounts and callbacks are excluded.
func (w *Wallet) Equal(other *Wallet) bool {
	if w == nil || other == nil {
		return w == other
	}
	if w.name != other.name || w.version != other.version {
		return false
	}
	if len(w.chains) != len(other.chains) {
		return false
	}
	for i, chain := range w.chains {
		if other.chains[i] != chain {
			return false
		}
	}
	return true
}
