package walletadapter

import (
	"errors"
	"fmt"
)

// Standard wallet adapter error definitions

var (
	// ErrWalletNotFound indicates a wallet that is not registered or connected.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrAccountNotFound indicates that no account is connected.
	ErrAccountNotFound = errors.New("account not found")

	// ErrConnectHasNoAccounts indicates a connect response without any account.
	ErrConnectHasNoAccounts = errors.New("connect returned no accounts")

	// ErrValueNotFound indicates a missing or null host value.
	ErrValueNotFound = errors.New("value not found")

	// ErrExpectedValueNotFound indicates a named field that was expected on a
	// host value but does not exist.
	ErrExpectedValueNotFound = errors.New("expected value not found")

	// ErrVersionNotFound indicates a capability without a version tag.
	ErrVersionNotFound = errors.New("version not found")

	// ErrInvalidWalletVersion indicates a version string that is not semver.
	ErrInvalidWalletVersion = errors.New("invalid wallet version")

	// ErrInvalidSemverNumber indicates a semver component that does not fit a uint8.
	ErrInvalidSemverNumber = errors.New("invalid semver number")

	// ErrUnsupportedFeature indicates a namespaced capability outside the
	// wallet standard vocabulary.
	ErrUnsupportedFeature = errors.New("unsupported wallet feature")

	// ErrUnsupportedChain indicates a chain identifier outside the Solana clusters.
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrUnsupportedTransactionVersion indicates a transaction version token
	// other than "legacy" or 0.
	ErrUnsupportedTransactionVersion = errors.New("unsupported transaction version")

	// ErrLegacyTransactionSupportRequired indicates a signing capability that
	// does not declare legacy transaction support, which is mandatory.
	ErrLegacyTransactionSupportRequired = errors.New("legacy transaction support is required")

	// ErrMissingConnectFunction indicates a standard:connect capability without
	// its connect callback.
	ErrMissingConnectFunction = errors.New("missing standard:connect function")

	// ErrMissingDisconnectFunction indicates a standard:disconnect capability
	// without its disconnect callback.
	ErrMissingDisconnectFunction = errors.New("missing standard:disconnect function")

	// ErrMissingEventsFunction indicates a standard:events capability without
	// its on callback.
	ErrMissingEventsFunction = errors.New("missing standard:events function")

	// ErrMissingSignInFunction indicates a wallet without the solana:signIn callback.
	ErrMissingSignInFunction = errors.New("missing solana:signIn function")

	// ErrMissingSignMessageFunction indicates a wallet without the
	// solana:signMessage callback.
	ErrMissingSignMessageFunction = errors.New("missing solana:signMessage function")

	// ErrMissingSignTransactionFunction indicates a wallet without the
	// solana:signTransaction callback.
	ErrMissingSignTransactionFunction = errors.New("missing solana:signTransaction function")

	// ErrMissingSignAllTransactionsFunction indicates a wallet without the
	// solana:signAllTransactions callback.
	ErrMissingSignAllTransactionsFunction = errors.New("missing solana:signAllTransactions function")

	// ErrMissingSignAndSendTransactionFunction indicates a wallet without the
	// solana:signAndSendTransaction callback.
	ErrMissingSignAndSendTransactionFunction = errors.New("missing solana:signAndSendTransaction function")

	// ErrExpected32ByteLength indicates a public key buffer that is not 32 bytes.
	ErrExpected32ByteLength = errors.New("expected a 32 byte length")

	// ErrExpected64ByteLength indicates a signature buffer that is not 64 bytes.
	ErrExpected64ByteLength = errors.New("expected a 64 byte length")

	// ErrSignedMessageMismatch indicates that the message a wallet signed is
	// not the message that was sent for signing.
	ErrSignedMessageMismatch = errors.New("signed message does not match the sent message")

	// ErrEmptySignedTransactions indicates a signing response without any
	// signed transaction.
	ErrEmptySignedTransactions = errors.New("wallet returned no signed transactions")

	// ErrEmptySignature indicates a signAndSendTransaction response without a signature.
	ErrEmptySignature = errors.New("wallet returned no signature")

	// ErrAddressTooShort indicates an address too short to shorten for display.
	ErrAddressTooShort = errors.New("address is too short")
)

// HostError wraps an error thrown by the host runtime during a capability
// call, carrying the name/message/stack triple reflected out of it.
type HostError struct {
	// Name is the host-side error type.
	Name string

	// Message is the host-side error message.
	Message string

	// Stack is the host-side call trace, when available.
	Stack string
}

// Error implements the error interface.
func (e *HostError) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// OpError tags a caller supplied external failure, such as a downstream
// address parse or serialization error, so it is distinguishable from the
// adapter's own errors.
type OpError struct {
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("external operation failed: %v", e.Err)
}

// Unwrap returns the wrapped external error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// WrapOp wraps an external error in an OpError. A nil error stays nil.
func WrapOp(err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Err: err}
}

// hostErr normalizes an error returned by a host callback. Errors already
// typed by the adapter pass through; anything else is treated as thrown by
// the host.
func hostErr(err error) error {
	if err == nil {
		return nil
	}
	var hostError *HostError
	if errors.As(err, &hostError) {
		return err
	}
	var opError *OpError
	if errors.As(err, &opError) {
		return err
	}
	return &HostError{Message: err.Error()}
}
