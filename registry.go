package walletadapter

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Registry is the set of wallets that have announced themselves. Lookups
// are keyed by the SHA3-256 digest of the lowercased wallet name, so
// lookups are case insensitive and re-registration replaces in place.
type Registry struct {
	mu      sync.RWMutex
	wallets map[[32]byte]*Wallet
	order   [][32]byte
}

// NewRegistry returns an empty wallet registry.
func NewRegistry() *Registry {
	return &Registry{wallets: make(map[[32]byte]*Wallet)}
}

func registryKey(name string) [32]byte {
	return sha3.Sum256([]byte(strings.ToLower(name)))
}

// Insert registers a wallet, replacing any wallet with the same name.
func (r *Registry) Insert(wallet *Wallet) {
	key := registryKey(wallet.Name())

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.wallets[key]; !exists {
		r.order = append(r.order, key)
	}
	r.wallets[key] = wallet
}

// Get returns the wallet registered under the given name.
func (r *Registry) Get(name string) (*Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.wallets[registryKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, name)
	}
	return wallet, nil
}

// Wallets returns the registered wallets in registration order.
func (r *Registry) Wallets() []*Wallet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallets := make([]*Wallet, 0, len(r.order))
	for _, key := range r.order {
		wallets = append(wallets, r.wallets[key])
	}
	return wallets
}

// Len returns the number of registered wallets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.wallets)
}
