package walletadapter

// WalletEventKind classifies a connection state transition.
type WalletEventKind uint8

const (
	// EventSkip marks a notification that changed nothing.
	EventSkip WalletEventKind = iota
	// EventConnected marks the first account adoption of a session.
	EventConnected
	// EventReconnected marks re-adoption of a previously seen account.
	EventReconnected
	// EventAccountChanged marks a switch to a different account.
	EventAccountChanged
	// EventDisconnected marks the wallet withdrawing its account.
	EventDisconnected
)

// String implements fmt.Stringer.
func (k WalletEventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventReconnected:
		return "reconnected"
	case EventAccountChanged:
		return "account-changed"
	case EventDisconnected:
		return "disconnected"
	default:
		return "skip"
	}
}

// WalletEvent is one connection state transition delivered to the
// application.
type WalletEvent struct {
	// Kind classifies the transition.
	Kind WalletEventKind

	// Account is the account adopted by the transition, nil for
	// disconnect and skip events.
	Account *WalletAccount
}

// ConnectionInfo is the connection state of an adapter: the connected
// wallet, its current account and the history of accounts seen before.
// It is not safe for concurrent use; the adapter guards it with its lock.
type ConnectionInfo struct {
	wallet           *Wallet
	account          *WalletAccount
	previousAccounts []WalletAccount
}

// Wallet returns the connected wallet, nil when disconnected.
func (c *ConnectionInfo) Wallet() *Wallet {
	return c.wallet
}

// Account returns the current account, nil when none is connected.
func (c *ConnectionInfo) Account() *WalletAccount {
	return c.account
}

// PreviousAccounts returns the history of accounts that were current
// before, most recent last.
func (c *ConnectionInfo) PreviousAccounts() []WalletAccount {
	return c.previousAccounts
}

// setConnected adopts a wallet and account pair after a successful
// connect call.
func (c *ConnectionInfo) setConnected(wallet *Wallet, account WalletAccount) {
	c.wallet = wallet
	c.account = &account
}

// reset clears all connection state including the account history.
func (c *ConnectionInfo) reset() {
	c.wallet = nil
	c.account = nil
	c.previousAccounts = nil
}

// processChange applies an account-change notification from the named
// wallet and returns the resulting event. Rules are evaluated strictly in
// order; a rule that matches wins even when a later rule would also match,
// so the reconnect rule only fires for wallets whose notification carries
// an account absent from the history match of the rule before it.
func (c *ConnectionInfo) processChange(walletName string, incoming *WalletAccount) WalletEvent {
	sameWallet := c.wallet != nil && c.wallet.Name() == walletName

	switch {
	case incoming != nil && c.account == nil && c.wallet == nil && len(c.previousAccounts) == 0:
		c.account = incoming
		return WalletEvent{Kind: EventConnected, Account: incoming}

	case incoming != nil && c.account == nil && c.wallet != nil && c.historyHas(incoming):
		c.pushPreviousAccount()
		c.account = incoming
		return WalletEvent{Kind: EventConnected, Account: incoming}

	case incoming != nil && sameWallet && c.account == nil && c.historyHas(incoming):
		c.pushPreviousAccount()
		c.account = incoming
		return WalletEvent{Kind: EventReconnected, Account: incoming}

	case incoming != nil && sameWallet && c.account != nil:
		c.pushPreviousAccount()
		c.account = incoming
		return WalletEvent{Kind: EventAccountChanged, Account: incoming}

	case incoming == nil && sameWallet:
		c.pushPreviousAccount()
		c.account = nil
		return WalletEvent{Kind: EventDisconnected}

	default:
		return WalletEvent{Kind: EventSkip}
	}
}

// historyHas reports whether the history contains an account with the
// same public key as the given one.
func (c *ConnectionInfo) historyHas(account *WalletAccount) bool {
	for i := range c.previousAccounts {
		if c.previousAccounts[i].PublicKey.Equals(account.PublicKey) {
			return true
		}
	}
	return false
}

// pushPreviousAccount appends the current account to the history and
// removes consecutive duplicates. Deduplication is adjacent-only: the same
// account may appear twice in the history when a different account was
// current in between.
func (c *ConnectionInfo) pushPreviousAccount() {
	if c.account != nil {
		c.previousAccounts = append(c.previousAccounts, *c.account)
	}
	c.previousAccounts = dedupAdjacent(c.previousAccounts)
}

func dedupAdjacent(accounts []WalletAccount) []WalletAccount {
	if len(accounts) < 2 {
		return accounts
	}
	deduped := accounts[:1]
	for i := 1; i < len(accounts); i++ {
		last := &deduped[len(deduped)-1]
		if !accounts[i].Equal(last) {
			deduped = append(deduped, accounts[i])
		}
	}
	return deduped
}
