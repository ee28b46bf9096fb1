package walletadapter

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/solstandard/wallet-adapter-go/host"
	"github.com/solstandard/wallet-adapter-go/siws"
)

// defaultEventCapacity is the event channel capacity used when the
// application does not configure one.
const defaultEventCapacity = 8

// Adapter is the application's session with wallet standard wallets: it
// holds the registry of announced wallets, the connection state of the
// currently connected wallet, and the event stream of state transitions.
type Adapter struct {
	registry *Registry

	mu   sync.RWMutex
	conn ConnectionInfo

	// signal is closed to cancel the change-listener task of the current
	// connection; connecting again replaces it.
	signal chan struct{}

	events       chan WalletEvent
	dropWhenFull bool

	log logrus.FieldLogger
}

// Option configures an Adapter.
type Option func(*options)

type options struct {
	capacity     int
	dropWhenFull bool
	log          logrus.FieldLogger
}

// WithChannelCapacity sets the event channel capacity. Values below one
// are ignored.
func WithChannelCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithDropWhenFull makes event emission drop events when the channel is
// full instead of blocking the emitting task.
func WithDropWhenFull() Option {
	return func(o *options) {
		o.dropWhenFull = true
	}
}

// WithLogger sets the logger used for anomaly reporting.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// New returns a disconnected adapter with an empty registry.
func New(opts ...Option) *Adapter {
	o := options{
		capacity: defaultEventCapacity,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Adapter{
		registry:     NewRegistry(),
		events:       make(chan WalletEvent, o.capacity),
		dropWhenFull: o.dropWhenFull,
		log:          o.log,
	}
}

// Register parses a host wallet object and adds it to the registry,
// replacing any wallet with the same name. It is the entry point for
// host-side wallet registration broadcasts.
func (a *Adapter) Register(v host.Value) (*Wallet, error) {
	wallet, err := ParseWallet(v)
	if err != nil {
		return nil, err
	}
	a.registry.Insert(wallet)
	return wallet, nil
}

// Wallets returns the registered wallets in registration order.
func (a *Adapter) Wallets() []*Wallet {
	return a.registry.Wallets()
}

// GetWallet returns the registered wallet with the given name.
func (a *Adapter) GetWallet(name string) (*Wallet, error) {
	return a.registry.Get(name)
}

// Events returns the channel on which connection state transitions are
// delivered.
func (a *Adapter) Events() <-chan WalletEvent {
	return a.events
}

// Connect connects to a wallet: it invokes the wallet's connect callback,
// adopts the first granted account, emits a Connected event and subscribes
// to the wallet's change notifications. Connecting while already connected
// supersedes the previous change subscription.
func (a *Adapter) Connect(ctx context.Context, wallet *Wallet) (WalletAccount, error) {
	if wallet == nil {
		return WalletAccount{}, ErrWalletNotFound
	}

	accounts, err := wallet.Connect(ctx)
	if err != nil {
		return WalletAccount{}, err
	}
	account := accounts[0]

	a.mu.Lock()
	if a.signal != nil {
		close(a.signal)
	}
	signal := make(chan struct{})
	a.signal = signal
	a.conn.setConnected(wallet, account)
	a.mu.Unlock()

	a.emit(WalletEvent{Kind: EventConnected, Account: &account})

	if err := a.listenForChanges(ctx, wallet, signal); err != nil {
		// The connection stands; the wallet just cannot notify us about
		// account changes.
		a.log.WithError(err).WithField("wallet", wallet.Name()).
			Warn("wallet change subscription failed")
	}

	return account, nil
}

// ConnectByName connects to the registered wallet with the given name.
func (a *Adapter) ConnectByName(ctx context.Context, name string) (WalletAccount, error) {
	wallet, err := a.registry.Get(name)
	if err != nil {
		return WalletAccount{}, err
	}
	return a.Connect(ctx, wallet)
}

// listenForChanges subscribes to the wallet's change notifications and
// feeds them through the state machine until the signal channel is closed.
func (a *Adapter) listenForChanges(ctx context.Context, wallet *Wallet, signal chan struct{}) error {
	changes := make(chan []host.Value, 1)
	listener := func(accounts []host.Value) {
		select {
		case changes <- accounts:
		case <-signal:
		}
	}
	if err := wallet.OnChange(ctx, listener); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-signal:
				return
			case accounts := <-changes:
				a.handleChange(wallet.Name(), accounts)
			}
		}
	}()
	return nil
}

// handleChange parses a change notification and applies it to the state
// machine. Notifications arriving while no wallet is connected are logged
// and dropped.
func (a *Adapter) handleChange(walletName string, values []host.Value) {
	var incoming *WalletAccount
	if len(values) != 0 {
		account, err := parseWalletAccount(values[0])
		if err != nil {
			a.log.WithError(err).WithField("wallet", walletName).
				Warn("dropping change notification with malformed account")
			return
		}
		incoming = &account
	}

	a.mu.Lock()
	if a.conn.wallet == nil {
		a.mu.Unlock()
		a.log.WithField("wallet", walletName).
			Warn("dropping change notification while no wallet is connected")
		return
	}
	event := a.conn.processChange(walletName, incoming)
	a.mu.Unlock()

	a.emit(event)
}

// Disconnect invokes the wallet's disconnect callback, clears all
// connection state and emits a Disconnected event.
func (a *Adapter) Disconnect(ctx context.Context) error {
	a.mu.RLock()
	wallet := a.conn.wallet
	a.mu.RUnlock()
	if wallet == nil {
		return ErrWalletNotFound
	}

	if err := wallet.Disconnect(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	if a.signal != nil {
		close(a.signal)
		a.signal = nil
	}
	a.conn.reset()
	a.mu.Unlock()

	a.emit(WalletEvent{Kind: EventDisconnected})
	return nil
}

// emit delivers an event to the application, honoring the configured
// backpressure policy.
func (a *Adapter) emit(event WalletEvent) {
	if a.dropWhenFull {
		select {
		case a.events <- event:
		default:
			a.log.WithField("event", event.Kind.String()).
				Warn("event channel full, dropping event")
		}
		return
	}
	a.events <- event
}

// connected snapshots the wallet and account of the current connection.
func (a *Adapter) connected() (*Wallet, WalletAccount, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.conn.wallet == nil {
		return nil, WalletAccount{}, ErrWalletNotFound
	}
	if a.conn.account == nil {
		return nil, WalletAccount{}, ErrAccountNotFound
	}
	return a.conn.wallet, *a.conn.account, nil
}

// SignIn sends a sign-in request to the connected wallet.
func (a *Adapter) SignIn(ctx context.Context, input *siws.SignInInput) (*SignInOutput, error) {
	a.mu.RLock()
	wallet := a.conn.wallet
	a.mu.RUnlock()
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	return wallet.SignIn(ctx, input)
}

// SignMessage asks the connected wallet to sign a byte string with the
// current account.
func (a *Adapter) SignMessage(ctx context.Context, message []byte) (*SignedMessageOutput, error) {
	wallet, account, err := a.connected()
	if err != nil {
		return nil, err
	}
	return wallet.SignMessage(ctx, account, message)
}

// SignTransaction asks the connected wallet to sign one serialized
// transaction.
func (a *Adapter) SignTransaction(ctx context.Context, tx []byte, cluster *Cluster) ([]byte, error) {
	wallet, account, err := a.connected()
	if err != nil {
		return nil, err
	}
	return wallet.SignTransaction(ctx, account, tx, cluster)
}

// SignAllTransactions asks the connected wallet to sign a batch of
// serialized transactions in one approval.
func (a *Adapter) SignAllTransactions(ctx context.Context, txs [][]byte, cluster *Cluster) ([][]byte, error) {
	wallet, account, err := a.connected()
	if err != nil {
		return nil, err
	}
	return wallet.SignAllTransactions(ctx, account, txs, cluster)
}

// SignAndSendTransaction asks the connected wallet to sign a serialized
// transaction and submit it to the cluster.
func (a *Adapter) SignAndSendTransaction(ctx context.Context, tx []byte, cluster *Cluster, opts *SendOptions) (solana.Signature, error) {
	wallet, account, err := a.connected()
	if err != nil {
		return solana.Signature{}, err
	}
	return wallet.SignAndSendTransaction(ctx, account, tx, cluster, opts)
}

// IsConnected reports whether a wallet and account are connected.
func (a *Adapter) IsConnected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn.wallet != nil && a.conn.account != nil
}

// ConnectedWallet returns the connected wallet, nil when disconnected.
func (a *Adapter) ConnectedWallet() *Wallet {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn.wallet
}

// ConnectedAccount returns the current account, nil when none is
// connected.
func (a *Adapter) ConnectedAccount() *WalletAccount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn.account
}

// PreviousAccounts returns a copy of the account history.
func (a *Adapter) PreviousAccounts() []WalletAccount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	history := make([]WalletAccount, len(a.conn.previousAccounts))
	copy(history, a.conn.previousAccounts)
	return history
}

// CanSignIn reports whether the connected wallet advertises solana:signIn.
func (a *Adapter) CanSignIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn.wallet != nil && a.conn.wallet.CanSignIn()
}

// CanSignMessage reports whether the connected wallet advertises
// solana:signMessage.
func (a *Adapter) CanSignMessage() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn.wallet != nil && a.conn.wallet.CanSignMessage()
}

// CanSignTransaction reports whether the connected wallet advertises
// solana:signTransaction.
func (a *Adapter) CanSignTransaction() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn.wallet != nil && a.conn.wallet.CanSignTransaction()
}

// CanSignAndSendTransaction reports whether the connected wallet
// advertises solana:signAndSendTransaction.
func (a *Adapter) CanSignAndSendTransaction() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn.wallet != nil && a.conn.wallet.CanSignAndSendTransaction()
}

// SupportsCluster reports whether the connected wallet declared the
// cluster.
func (a *Adapter) SupportsCluster(cluster Cluster) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conn.wallet != nil && a.conn.wallet.SupportsCluster(cluster)
}
