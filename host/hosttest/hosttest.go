// Package hosttest provides an in-process simulated wallet for testing
// code that drives wallets through the host boundary. The simulated
// wallet holds real Ed25519 keys and produces real signatures, so
// response validation exercises the same paths as a browser wallet.
package hosttest

import (
	"context"
	"errors"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/solstandard/wallet-adapter-go/host"
)

// ErrUserRejected simulates the user dismissing a wallet prompt.
var ErrUserRejected = errors.New("user rejected the request")

// SimWallet is a simulated wallet standard wallet. It signs with real
// keys, supports multiple accounts and can push change notifications to
// subscribed listeners.
type SimWallet struct {
	// Name is the wallet's self-reported name.
	Name string

	// Chains are the namespaced chain identifiers the wallet declares.
	Chains []string

	// RejectAll makes every capability call fail with ErrUserRejected.
	RejectAll bool

	// TamperSignedMessage makes signMessage and signIn answer with a
	// mutated signed-message payload.
	TamperSignedMessage bool

	keys      []solana.PrivateKey
	current   int
	listeners []host.ChangeListener
}

// NewSimWallet returns a simulated wallet with one freshly generated
// account, declaring devnet support.
func NewSimWallet(name string) *SimWallet {
	return &SimWallet{
		Name:   name,
		Chains: []string{"solana:devnet"},
		keys:   []solana.PrivateKey{solana.NewWallet().PrivateKey},
	}
}

// AddAccount generates another account and returns its address.
func (w *SimWallet) AddAccount() string {
	key := solana.NewWallet().PrivateKey
	w.keys = append(w.keys, key)
	return key.PublicKey().String()
}

// Address returns the base58 address of the account at index i.
func (w *SimWallet) Address(i int) string {
	return w.keys[i].PublicKey().String()
}

// CurrentAddress returns the base58 address of the current account.
func (w *SimWallet) CurrentAddress() string {
	return w.Address(w.current)
}

// SwitchAccount makes the account at index i current and notifies
// subscribed listeners.
func (w *SimWallet) SwitchAccount(i int) {
	w.current = i
	w.notify([]host.Value{host.Wrap(w.accountObject(i))})
}

// NotifyCurrentAccount re-announces the current account to listeners.
func (w *SimWallet) NotifyCurrentAccount() {
	w.notify([]host.Value{host.Wrap(w.accountObject(w.current))})
}

// NotifyNoAccounts pushes a change notification without any account,
// simulating the wallet revoking access.
func (w *SimWallet) NotifyNoAccounts() {
	w.notify(nil)
}

func (w *SimWallet) notify(accounts []host.Value) {
	for _, listener := range w.listeners {
		listener(accounts)
	}
}

// accountObject builds the host-shaped account map for the account at
// index i.
func (w *SimWallet) accountObject(i int) map[string]any {
	key := w.keys[i].PublicKey()
	chains := make([]any, len(w.Chains))
	for j, chain := range w.Chains {
		chains[j] = chain
	}
	return map[string]any{
		"address":   key.String(),
		"publicKey": key.Bytes(),
		"chains":    chains,
		"features": []any{
			"solana:signMessage",
			"solana:signTransaction",
			"solana:signAndSendTransaction",
			"solana:signAllTransactions",
			"solana:signIn",
		},
	}
}

// Definition builds the host wallet object the wallet would register on
// the shared global, with every capability bound to this SimWallet.
func (w *SimWallet) Definition() host.Value {
	versioned := func(extra map[string]any) map[string]any {
		capability := map[string]any{"version": "1.0.0"}
		for key, value := range extra {
			capability[key] = value
		}
		return capability
	}
	chains := make([]any, len(w.Chains))
	for i, chain := range w.Chains {
		chains[i] = chain
	}
	txVersions := []any{"legacy", uint64(0)}

	return host.Wrap(map[string]any{
		"name":    w.Name,
		"version": "1.0.0",
		"icon":    "data:image/svg+xml;base64,",
		"chains":  chains,
		"features": map[string]any{
			"standard:connect":    versioned(map[string]any{"connect": host.Func(w.connect)}),
			"standard:disconnect": versioned(map[string]any{"disconnect": host.Func(w.disconnect)}),
			"standard:events":     versioned(map[string]any{"on": host.Func(w.on)}),
			"solana:signIn":       versioned(map[string]any{"signIn": host.Func(w.signIn)}),
			"solana:signMessage":  versioned(map[string]any{"signMessage": host.Func(w.signMessage)}),
			"solana:signTransaction": versioned(map[string]any{
				"signTransaction":              host.Func(w.signTransaction),
				"supportedTransactionVersions": txVersions,
			}),
			"solana:signAllTransactions": versioned(map[string]any{
				"signAllTransactions":          host.Func(w.signAllTransactions),
				"supportedTransactionVersions": txVersions,
			}),
			"solana:signAndSendTransaction": versioned(map[string]any{
				"signAndSendTransaction":       host.Func(w.signAndSendTransaction),
				"supportedTransactionVersions": txVersions,
			}),
		},
	})
}

func (w *SimWallet) connect(ctx context.Context, arg map[string]any) (host.Value, error) {
	if w.RejectAll {
		return nil, ErrUserRejected
	}
	return host.Wrap(map[string]any{
		"accounts": []any{w.accountObject(w.current)},
	}), nil
}

func (w *SimWallet) disconnect(ctx context.Context, arg map[string]any) (host.Value, error) {
	if w.RejectAll {
		return nil, ErrUserRejected
	}
	return nil, nil
}

func (w *SimWallet) on(ctx context.Context, arg map[string]any) (host.Value, error) {
	listener, ok := arg["listener"].(host.ChangeListener)
	if !ok {
		return nil, errors.New("events subscription without a listener")
	}
	w.listeners = append(w.listeners, listener)
	return nil, nil
}

func (w *SimWallet) signIn(ctx context.Context, arg map[string]any) (host.Value, error) {
	if w.RejectAll {
		return nil, ErrUserRejected
	}
	message := []byte(renderSignIn(arg))
	if w.TamperSignedMessage {
		message = append(message, '!')
	}
	signature, err := w.keys[w.current].Sign(message)
	if err != nil {
		return nil, err
	}
	return host.Wrap(map[string]any{
		"account":       w.accountObject(w.current),
		"signedMessage": message,
		"signature":     signature[:],
	}), nil
}

func (w *SimWallet) signMessage(ctx context.Context, arg map[string]any) (host.Value, error) {
	if w.RejectAll {
		return nil, ErrUserRejected
	}
	message, _ := arg["message"].([]byte)
	signed := message
	if w.TamperSignedMessage {
		signed = append(append([]byte{}, message...), '!')
	}
	signature, err := w.keys[w.current].Sign(signed)
	if err != nil {
		return nil, err
	}
	return host.Wrap(map[string]any{
		"signedMessage": signed,
		"signature":     signature[:],
	}), nil
}

func (w *SimWallet) signTransaction(ctx context.Context, arg map[string]any) (host.Value, error) {
	if w.RejectAll {
		return nil, ErrUserRejected
	}
	tx, _ := arg["transaction"].([]byte)
	return host.Wrap(map[string]any{"signedTransaction": tx}), nil
}

func (w *SimWallet) signAllTransactions(ctx context.Context, arg map[string]any) (host.Value, error) {
	if w.RejectAll {
		return nil, ErrUserRejected
	}
	txs, _ := arg["transactions"].([]any)
	return host.Wrap(map[string]any{"signedTransactions": txs}), nil
}

func (w *SimWallet) signAndSendTransaction(ctx context.Context, arg map[string]any) (host.Value, error) {
	if w.RejectAll {
		return nil, ErrUserRejected
	}
	tx, _ := arg["transaction"].([]byte)
	signature, err := w.keys[w.current].Sign(tx)
	if err != nil {
		return nil, err
	}
	return host.Wrap(map[string]any{"signature": signature[:]}), nil
}

// renderSignIn renders the sign-in payload into the canonical message
// text, the way a real wallet builds the text it shows and signs.
func renderSignIn(payload map[string]any) string {
	str := func(key string) string {
		value, _ := payload[key].(string)
		return value
	}

	var b strings.Builder
	b.WriteString(str("domain"))
	b.WriteString(" wants you to sign in with your Solana account:\n")
	b.WriteString(str("address"))
	b.WriteString("\n\n")
	b.WriteString(str("statement"))
	b.WriteString("\n")

	field := func(label, key string) {
		if value := str(key); value != "" {
			b.WriteString("\n")
			b.WriteString(label)
			b.WriteString(": ")
			b.WriteString(value)
		}
	}
	field("URI", "uri")
	field("Version", "version")
	field("Chain ID", "chainId")
	field("Nonce", "nonce")
	field("Issued At", "issuedAt")
	field("Expiration Time", "expirationTime")
	field("Not Before", "notBefore")
	field("Request ID", "requestId")

	if resources, ok := payload["resources"].([]any); ok && len(resources) != 0 {
		b.WriteString("\nResources:")
		for _, resource := range resources {
			if uri, ok := resource.(string); ok {
				b.WriteString("\n- ")
				b.WriteString(uri)
			}
		}
	}
	return b.String()
}
