package siws

import "errors"

// Sign In With Solana error definitions.

var (
	// ErrInvalidBase58Address indicates an address that does not decode as Base58.
	ErrInvalidBase58Address = errors.New("invalid base58 address")

	// ErrInvalidPublicKeyLength indicates an address that decodes to a byte
	// length other than the 32 bytes of an Ed25519 public key.
	ErrInvalidPublicKeyLength = errors.New("address must decode to exactly 32 bytes")

	// ErrNonceTooShort indicates a nonce shorter than the 8 character minimum.
	ErrNonceTooShort = errors.New("nonce must be at least 8 characters")

	// ErrInvalidTimestamp indicates a timestamp that is not valid RFC 3339.
	ErrInvalidTimestamp = errors.New("invalid ISO 8601 timestamp")

	// ErrExpiryBeforeIssued indicates an expiration time earlier than the issued-at time.
	ErrExpiryBeforeIssued = errors.New("expiration time is earlier than the issued-at time")

	// ErrExpiryInPast indicates an expiration time that has already passed.
	ErrExpiryInPast = errors.New("expiration time is in the past")

	// ErrNotBeforeBeforeIssued indicates a not-before time earlier than the issued-at time.
	ErrNotBeforeBeforeIssued = errors.New("not-before time is earlier than the issued-at time")

	// ErrNotBeforeInPast indicates a not-before time that has already passed.
	ErrNotBeforeInPast = errors.New("not-before time is in the past")

	// ErrNotBeforeAfterExpiry indicates a not-before time later than the expiration time.
	ErrNotBeforeAfterExpiry = errors.New("not-before time is later than the expiration time")

	// ErrMessageMismatch indicates that the message a wallet claims to have
	// signed differs from the message that was sent for signing.
	ErrMessageMismatch = errors.New("signed message does not match the sign-in request")
)
