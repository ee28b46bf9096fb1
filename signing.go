package walletadapter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/solstandard/wallet-adapter-go/host"
	"github.com/solstandard/wallet-adapter-go/siws"
)

// SignInOutput is the verified result of a solana:signIn call.
type SignInOutput struct {
	// Account is the account the wallet signed in with.
	Account WalletAccount

	// Message is the structured form of the text the wallet signed.
	Message *siws.SignInInput

	// SignedMessage is the exact byte string the wallet signed.
	SignedMessage []byte

	// Signature is the Ed25519 signature over SignedMessage.
	Signature solana.Signature

	// PublicKey is the key that produced the signature.
	PublicKey solana.PublicKey
}

// SignedMessageOutput is the verified result of a solana:signMessage call.
type SignedMessageOutput struct {
	// SignedMessage is the byte string the wallet signed, verified to be
	// the message that was sent.
	SignedMessage []byte

	// Signature is the Ed25519 signature over SignedMessage.
	Signature solana.Signature
}

// SendOptions tunes how the wallet submits a transaction for
// solana:signAndSendTransaction. The zero value requests finalized
// preflight commitment with preflight enabled and default retries.
type SendOptions struct {
	// PreflightCommitment is the commitment level for the preflight check.
	PreflightCommitment Commitment

	// SkipPreflight disables the preflight transaction check.
	SkipPreflight bool

	// MaxRetries caps how often the RPC node retries submission.
	MaxRetries uint8
}

func (o *SendOptions) payload() map[string]any {
	return map[string]any{
		"preflightCommitment": o.PreflightCommitment.String(),
		"skipPreflight":       o.SkipPreflight,
		"maxRetries":          uint64(o.MaxRetries),
	}
}

// Connect invokes the wallet's standard:connect callback and returns the
// accounts it granted. The wallet's account list is replaced with the
// response.
func (w *Wallet) Connect(ctx context.Context) ([]WalletAccount, error) {
	if w.features.connect.call == nil {
		return nil, ErrMissingConnectFunction
	}
	response, err := w.features.connect.call(ctx, nil)
	if err != nil {
		return nil, hostErr(err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: connect response", ErrValueNotFound)
	}

	accountsValue, ok := response.Get("accounts")
	if !ok {
		return nil, fmt.Errorf("%w: accounts", ErrExpectedValueNotFound)
	}
	values, ok := accountsValue.AsArray()
	if !ok {
		return nil, fmt.Errorf("%w: accounts", ErrExpectedValueNotFound)
	}

	accounts := make([]WalletAccount, 0, len(values))
	for _, value := range values {
		account, err := parseWalletAccount(value)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if len(accounts) == 0 {
		return nil, ErrConnectHasNoAccounts
	}

	w.accounts = accounts
	return accounts, nil
}

// Disconnect invokes the wallet's standard:disconnect callback.
func (w *Wallet) Disconnect(ctx context.Context) error {
	if w.features.disconnect.call == nil {
		return ErrMissingDisconnectFunction
	}
	if _, err := w.features.disconnect.call(ctx, nil); err != nil {
		return hostErr(err)
	}
	return nil
}

// OnChange subscribes a listener to the wallet's standard:events change
// notifications.
func (w *Wallet) OnChange(ctx context.Context, listener host.ChangeListener) error {
	if w.features.events.call == nil {
		return ErrMissingEventsFunction
	}
	arg := map[string]any{
		"event":    "change",
		"listener": listener,
	}
	if _, err := w.features.events.call(ctx, arg); err != nil {
		return hostErr(err)
	}
	return nil
}

// SignIn sends a sign-in request to the wallet's solana:signIn callback
// and verifies the response: the signed text must parse back into exactly
// the request that was sent, the signature must be 64 bytes and the public
// key 32 bytes.
func (w *Wallet) SignIn(ctx context.Context, input *siws.SignInInput) (*SignInOutput, error) {
	if w.features.signIn == nil {
		return nil, ErrMissingSignInFunction
	}
	response, err := w.features.signIn.call(ctx, input.Payload())
	if err != nil {
		return nil, hostErr(err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: signIn response", ErrValueNotFound)
	}

	accountValue, ok := response.Get("account")
	if !ok {
		return nil, fmt.Errorf("%w: account", ErrExpectedValueNotFound)
	}
	account, err := parseWalletAccount(accountValue)
	if err != nil {
		return nil, err
	}

	signedMessage, err := responseBytes(response, "signedMessage")
	if err != nil {
		return nil, err
	}
	if err := input.CheckEqText(string(signedMessage)); err != nil {
		return nil, err
	}
	message, err := siws.Parse(string(signedMessage))
	if err != nil {
		return nil, err
	}

	signature, err := responseSignature(response)
	if err != nil {
		return nil, err
	}

	return &SignInOutput{
		Account:       account,
		Message:       message,
		SignedMessage: signedMessage,
		Signature:     signature,
		PublicKey:     account.PublicKey,
	}, nil
}

// SignMessage asks the wallet to sign an arbitrary byte string on behalf
// of the account. The response is rejected when the wallet signed anything
// other than the exact message sent.
func (w *Wallet) SignMessage(ctx context.Context, account WalletAccount, message []byte) (*SignedMessageOutput, error) {
	if w.features.signMessage.call == nil {
		return nil, ErrMissingSignMessageFunction
	}
	arg := map[string]any{
		"account": account.raw,
		"message": message,
	}
	response, err := w.features.signMessage.call(ctx, arg)
	if err != nil {
		return nil, hostErr(err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: signMessage response", ErrValueNotFound)
	}

	signedMessage, err := responseBytes(response, "signedMessage")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(signedMessage, message) {
		return nil, ErrSignedMessageMismatch
	}

	signature, err := responseSignature(response)
	if err != nil {
		return nil, err
	}

	return &SignedMessageOutput{SignedMessage: signedMessage, Signature: signature}, nil
}

// SignTransaction asks the wallet to sign one serialized transaction and
// returns the signed serialization. A nil cluster lets the wallet pick its
// current chain.
func (w *Wallet) SignTransaction(ctx context.Context, account WalletAccount, tx []byte, cluster *Cluster) ([]byte, error) {
	if w.features.signTx.call == nil {
		return nil, ErrMissingSignTransactionFunction
	}
	arg := map[string]any{
		"account":     account.raw,
		"transaction": tx,
	}
	if cluster != nil {
		arg["chain"] = cluster.Chain()
	}
	response, err := w.features.signTx.call(ctx, arg)
	if err != nil {
		return nil, hostErr(err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: signTransaction response", ErrValueNotFound)
	}

	signed, err := responseBytes(response, "signedTransaction")
	if err != nil {
		return nil, err
	}
	if len(signed) == 0 {
		return nil, ErrEmptySignedTransactions
	}
	return signed, nil
}

// SignAllTransactions asks the wallet to sign a batch of serialized
// transactions in one approval.
func (w *Wallet) SignAllTransactions(ctx context.Context, account WalletAccount, txs [][]byte, cluster *Cluster) ([][]byte, error) {
	if w.features.signAllTx == nil {
		return nil, ErrMissingSignAllTransactionsFunction
	}
	transactions := make([]any, len(txs))
	for i, tx := range txs {
		transactions[i] = tx
	}
	arg := map[string]any{
		"account":      account.raw,
		"transactions": transactions,
	}
	if cluster != nil {
		arg["chain"] = cluster.Chain()
	}
	response, err := w.features.signAllTx.call(ctx, arg)
	if err != nil {
		return nil, hostErr(err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: signAllTransactions response", ErrValueNotFound)
	}

	signedValue, ok := response.Get("signedTransactions")
	if !ok {
		return nil, fmt.Errorf("%w: signedTransactions", ErrExpectedValueNotFound)
	}
	values, ok := signedValue.AsArray()
	if !ok {
		return nil, fmt.Errorf("%w: signedTransactions", ErrExpectedValueNotFound)
	}
	if len(values) == 0 {
		return nil, ErrEmptySignedTransactions
	}

	signed := make([][]byte, 0, len(values))
	for _, value := range values {
		tx, ok := value.AsBytes()
		if !ok || len(tx) == 0 {
			return nil, ErrEmptySignedTransactions
		}
		signed = append(signed, tx)
	}
	return signed, nil
}

// SignAndSendTransaction asks the wallet to sign a serialized transaction
// and submit it to the cluster, returning the transaction signature.
func (w *Wallet) SignAndSendTransaction(ctx context.Context, account WalletAccount, tx []byte, cluster *Cluster, opts *SendOptions) (solana.Signature, error) {
	if w.features.signAndSendTx.call == nil {
		return solana.Signature{}, ErrMissingSignAndSendTransactionFunction
	}
	arg := map[string]any{
		"account":     account.raw,
		"transaction": tx,
	}
	if cluster != nil {
		arg["chain"] = cluster.Chain()
	}
	if opts != nil {
		arg["options"] = opts.payload()
	}
	response, err := w.features.signAndSendTx.call(ctx, arg)
	if err != nil {
		return solana.Signature{}, hostErr(err)
	}
	if response == nil {
		return solana.Signature{}, fmt.Errorf("%w: signAndSendTransaction response", ErrValueNotFound)
	}

	signatureValue, ok := response.Get("signature")
	if !ok {
		return solana.Signature{}, ErrEmptySignature
	}
	raw, ok := signatureValue.AsBytes()
	if !ok {
		// Some wallets answer with the base58 transaction id instead of
		// the raw signature bytes.
		text, isText := signatureValue.AsString()
		if !isText {
			return solana.Signature{}, ErrEmptySignature
		}
		raw, err = base58.Decode(text)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("%w: %v", ErrEmptySignature, err)
		}
	}
	if len(raw) != 64 {
		return solana.Signature{}, fmt.Errorf("%w: signature has %d bytes", ErrExpected64ByteLength, len(raw))
	}
	return solana.SignatureFromBytes(raw), nil
}

// responseBytes reads a required byte field off a host response.
func responseBytes(response host.Value, key string) ([]byte, error) {
	value, ok := response.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExpectedValueNotFound, key)
	}
	raw, ok := value.AsBytes()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExpectedValueNotFound, key)
	}
	return raw, nil
}

// responseSignature reads and validates the 64 byte signature field of a
// signing response.
func responseSignature(response host.Value) (solana.Signature, error) {
	raw, err := responseBytes(response, "signature")
	if err != nil {
		return solana.Signature{}, err
	}
	if len(raw) != 64 {
		return solana.Signature{}, fmt.Errorf("%w: signature has %d bytes", ErrExpected64ByteLength, len(raw))
	}
	return solana.SignatureFromBytes(raw), nil
}
