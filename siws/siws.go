// Package siws builds, renders and parses Sign In With Solana (SIWS)
// messages, the EIP-4361 style challenge text a dapp asks a wallet-held
// key to sign instead of a transaction.
//
// A SignInInput is assembled field by field. Each setter validates its own
// field at call time: the time setters cross-check against whatever
// issued-at, expiration and not-before values are already present, so the
// order in which an application calls them decides which violation
// surfaces first. Setting the expiration before the issued-at time skips
// the cross-check until a later setter observes both. Callers that need a
// deterministic error surface should set issued-at first.
//
// The current time is always an explicit argument; the package never reads
// a wall clock.
package siws

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"
)

// timeLayout renders RFC 3339 with millisecond precision, the wire format
// shared with other SIWS implementations.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// minNonceLen is the minimum nonce length accepted by SetCustomNonce.
const minNonceLen = 8

// Chain identifies the network a sign-in request is scoped to, e.g.
// "solana:devnet". The adapter's Cluster type satisfies it.
type Chain interface {
	Chain() string
}

// SignInInput carries the fields of a sign-in request. The zero value is
// an empty request; unset fields are omitted from the rendered message.
type SignInInput struct {
	domain         string
	address        string
	statement      string
	uri            string
	version        string
	chainID        string
	nonce          string
	issuedAt       string
	expirationTime string
	notBefore      string
	requestID      string
	resources      []string
}

// NewSignInInput returns an empty sign-in request.
func NewSignInInput() *SignInInput {
	return &SignInInput{}
}

// SetDomain sets the domain requesting the sign-in. If not provided, the
// wallet determines the domain to include in the message.
func (s *SignInInput) SetDomain(domain string) *SignInInput {
	s.domain = domain
	return s
}

// SetAddress sets the Base58 address performing the sign-in. The address
// must decode to exactly 32 bytes. Some wallets require this field and
// answer with a message that fails CheckEq when it is absent.
func (s *SignInInput) SetAddress(address string) error {
	decoded, err := base58.Decode(address)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidBase58Address, address)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("%w: got %d", ErrInvalidPublicKeyLength, len(decoded))
	}
	s.address = address
	return nil
}

// SetStatement sets the human readable statement shown to the user. It
// must not contain newline characters.
func (s *SignInInput) SetStatement(statement string) *SignInInput {
	s.statement = statement
	return s
}

// SetURI sets the URL that is requesting the sign-in.
func (s *SignInInput) SetURI(uri string) *SignInInput {
	s.uri = uri
	return s
}

// SetVersion sets the message version.
func (s *SignInInput) SetVersion(version string) *SignInInput {
	s.version = version
	return s
}

// SetChainID scopes the request to a network, rendered in its namespaced
// form such as "solana:mainnet".
func (s *SignInInput) SetChainID(cluster Chain) *SignInInput {
	s.chainID = cluster.Chain()
	return s
}

// SetNonce generates a nonce from 32 bytes of CSPRNG output hashed with
// SHA3-256 and hex encoded. The nonce is never the raw entropy, always its
// digest, so it is a fixed 64 character alphanumeric token.
func (s *SignInInput) SetNonce() *SignInInput {
	var entropy [32]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		// crypto/rand is documented to never fail on supported platforms.
		panic(err)
	}
	digest := sha3.Sum256(entropy[:])
	s.nonce = hex.EncodeToString(digest[:])
	return s
}

// SetCustomNonce sets a caller supplied nonce of at least 8 characters.
func (s *SignInInput) SetCustomNonce(nonce string) error {
	if len(nonce) < minNonceLen {
		return fmt.Errorf("%w: got %d", ErrNonceTooShort, len(nonce))
	}
	s.nonce = nonce
	return nil
}

// SetIssuedAt records the time the sign-in request was issued to the
// wallet. Wallets commonly enforce a freshness window of a few minutes
// around verification time.
func (s *SignInInput) SetIssuedAt(t time.Time) *SignInInput {
	s.issuedAt = formatTime(t)
	return s
}

// SetExpirationTime sets the time at which the request expires. The expiry
// must not precede an already-set issued-at time and must not be in the
// past relative to now.
func (s *SignInInput) SetExpirationTime(now, expiry time.Time) error {
	if s.issuedAt != "" {
		issued, err := parseTime(s.issuedAt)
		if err != nil {
			return err
		}
		if issued.After(expiry) {
			return fmt.Errorf("%w: issued %s, expiry %s", ErrExpiryBeforeIssued, s.issuedAt, formatTime(expiry))
		}
	}
	if now.After(expiry) {
		return fmt.Errorf("%w: now %s, expiry %s", ErrExpiryInPast, formatTime(now), formatTime(expiry))
	}
	s.expirationTime = formatTime(expiry)
	return nil
}

// SetExpirationTimeIn sets the expiration a duration after the issued-at
// time, or after now when no issued-at time is set.
func (s *SignInInput) SetExpirationTimeIn(now time.Time, d time.Duration) error {
	anchor := now
	if s.issuedAt != "" {
		issued, err := parseTime(s.issuedAt)
		if err != nil {
			return err
		}
		anchor = issued
	}
	return s.SetExpirationTime(now, anchor.Add(d))
}

// SetNotBefore sets the time at which the request becomes valid. It must
// not precede an already-set issued-at time, must not be in the past
// relative to now, and must not exceed an already-set expiration time.
func (s *SignInInput) SetNotBefore(now, notBefore time.Time) error {
	if s.issuedAt != "" {
		issued, err := parseTime(s.issuedAt)
		if err != nil {
			return err
		}
		if issued.After(notBefore) {
			return fmt.Errorf("%w: issued %s, not-before %s", ErrNotBeforeBeforeIssued, s.issuedAt, formatTime(notBefore))
		}
	}
	if now.After(notBefore) {
		return fmt.Errorf("%w: now %s, not-before %s", ErrNotBeforeInPast, formatTime(now), formatTime(notBefore))
	}
	if s.expirationTime != "" {
		expiry, err := parseTime(s.expirationTime)
		if err != nil {
			return err
		}
		if notBefore.After(expiry) {
			return fmt.Errorf("%w: not-before %s, expiry %s", ErrNotBeforeAfterExpiry, formatTime(notBefore), s.expirationTime)
		}
	}
	s.notBefore = formatTime(notBefore)
	return nil
}

// SetNotBeforeIn sets the not-before time a duration after the issued-at
// time, or after now when no issued-at time is set.
func (s *SignInInput) SetNotBeforeIn(now time.Time, d time.Duration) error {
	anchor := now
	if s.issuedAt != "" {
		issued, err := parseTime(s.issuedAt)
		if err != nil {
			return err
		}
		anchor = issued
	}
	return s.SetNotBefore(now, anchor.Add(d))
}

// SetRequestID sets an application chosen request identifier, an
// additional replay protection layer on top of the nonce.
func (s *SignInInput) SetRequestID(id string) *SignInInput {
	s.requestID = id
	return s
}

// AddResource appends a resource URI the wallet should present to the user.
func (s *SignInInput) AddResource(resource string) *SignInInput {
	s.resources = append(s.resources, resource)
	return s
}

// AddResources appends multiple resource URIs.
func (s *SignInInput) AddResources(resources ...string) *SignInInput {
	s.resources = append(s.resources, resources...)
	return s
}

// Domain returns the domain field.
func (s *SignInInput) Domain() string { return s.domain }

// Address returns the address field.
func (s *SignInInput) Address() string { return s.address }

// Statement returns the statement field.
func (s *SignInInput) Statement() string { return s.statement }

// URI returns the uri field.
func (s *SignInInput) URI() string { return s.uri }

// Version returns the version field.
func (s *SignInInput) Version() string { return s.version }

// ChainID returns the chain id field.
func (s *SignInInput) ChainID() string { return s.chainID }

// Nonce returns the nonce field.
func (s *SignInInput) Nonce() string { return s.nonce }

// IssuedAt returns the issued-at field in its rendered form.
func (s *SignInInput) IssuedAt() string { return s.issuedAt }

// ExpirationTime returns the expiration field in its rendered form.
func (s *SignInInput) ExpirationTime() string { return s.expirationTime }

// NotBefore returns the not-before field in its rendered form.
func (s *SignInInput) NotBefore() string { return s.notBefore }

// RequestID returns the request id field.
func (s *SignInInput) RequestID() string { return s.requestID }

// Resources returns the resource list.
func (s *SignInInput) Resources() []string { return s.resources }

// IssuedAtTime returns the issued-at field as a time.Time.
func (s *SignInInput) IssuedAtTime() (time.Time, bool) {
	return fieldTime(s.issuedAt)
}

// ExpirationTimeTime returns the expiration field as a time.Time.
func (s *SignInInput) ExpirationTimeTime() (time.Time, bool) {
	return fieldTime(s.expirationTime)
}

// NotBeforeTime returns the not-before field as a time.Time.
func (s *SignInInput) NotBeforeTime() (time.Time, bool) {
	return fieldTime(s.notBefore)
}

// String renders the canonical message text handed to the wallet for
// signing. Optional fields are omitted; the four line header (domain line,
// address, blank, statement) is always present.
func (s *SignInInput) String() string {
	var b strings.Builder
	b.WriteString(s.domain)
	b.WriteString(" wants you to sign in with your Solana account:\n")
	b.WriteString(s.address)
	b.WriteString("\n\n")
	b.WriteString(s.statement)
	b.WriteString("\n")

	writeField := func(label, value string) {
		if value != "" {
			b.WriteString("\n")
			b.WriteString(label)
			b.WriteString(": ")
			b.WriteString(value)
		}
	}
	writeField("URI", s.uri)
	writeField("Version", s.version)
	writeField("Chain ID", s.chainID)
	writeField("Nonce", s.nonce)
	writeField("Issued At", s.issuedAt)
	writeField("Expiration Time", s.expirationTime)
	writeField("Not Before", s.notBefore)
	writeField("Request ID", s.requestID)

	if len(s.resources) != 0 {
		b.WriteString("\nResources:")
		for _, resource := range s.resources {
			b.WriteString("\n- ")
			b.WriteString(resource)
		}
	}
	return b.String()
}

// Parse reads a rendered sign-in message back into a structured value.
//
// Parsing is positional for the header: the token before the first space
// is the domain, line 1 is the address and line 3 the statement. Labeled
// lines are recognized by substring containment and split on the first
// colon, which keeps namespaced values like "solana:devnet" intact. Lines
// beginning with "-" extend the resource list. Timestamp fields must be
// valid RFC 3339; a malformed timestamp fails immediately with the raw
// value preserved.
func Parse(input string) (*SignInInput, error) {
	parsed := &SignInInput{}

	if head, _, found := strings.Cut(input, " "); found {
		parsed.domain = strings.TrimSpace(head)
	}

	for i, line := range strings.Split(input, "\n") {
		if i == 1 {
			parsed.address = strings.TrimSpace(line)
		}
		if i == 3 {
			parsed.statement = strings.TrimSpace(line)
		}

		switch {
		case strings.Contains(line, "URI"):
			parsed.uri = afterColon(line)
		case strings.Contains(line, "Version"):
			parsed.version = afterColon(line)
		case strings.Contains(line, "Chain ID"):
			parsed.chainID = afterColon(line)
		case strings.Contains(line, "Nonce"):
			parsed.nonce = afterColon(line)
		case strings.Contains(line, "Issued At"):
			value, err := timeAfterColon(line)
			if err != nil {
				return nil, err
			}
			parsed.issuedAt = value
		case strings.Contains(line, "Expiration"):
			value, err := timeAfterColon(line)
			if err != nil {
				return nil, err
			}
			parsed.expirationTime = value
		case strings.Contains(line, "Not Before"):
			value, err := timeAfterColon(line)
			if err != nil {
				return nil, err
			}
			parsed.notBefore = value
		case strings.Contains(line, "Request ID"):
			parsed.requestID = afterColon(line)
		case strings.HasPrefix(line, "-"):
			if parts := strings.Split(line, "-"); len(parts) > 1 {
				parsed.resources = append(parsed.resources, strings.TrimSpace(parts[1]))
			}
		}
	}

	return parsed, nil
}

// Equal reports full structural equality of two sign-in requests.
func (s *SignInInput) Equal(other *SignInInput) bool {
	if s.domain != other.domain ||
		s.address != other.address ||
		s.statement != other.statement ||
		s.uri != other.uri ||
		s.version != other.version ||
		s.chainID != other.chainID ||
		s.nonce != other.nonce ||
		s.issuedAt != other.issuedAt ||
		s.expirationTime != other.expirationTime ||
		s.notBefore != other.notBefore ||
		s.requestID != other.requestID ||
		len(s.resources) != len(other.resources) {
		return false
	}
	for i, resource := range s.resources {
		if resource != other.resources[i] {
			return false
		}
	}
	return true
}

// CheckEq verifies that another request, typically re-parsed from the
// text a wallet claims to have signed, is structurally identical to this
// one. A difference in any field is treated as tampering.
func (s *SignInInput) CheckEq(other *SignInInput) error {
	if !s.Equal(other) {
		return ErrMessageMismatch
	}
	return nil
}

// CheckEqText re-parses a rendered message and verifies it against this
// request.
func (s *SignInInput) CheckEqText(text string) error {
	parsed, err := Parse(text)
	if err != nil {
		return err
	}
	return s.CheckEq(parsed)
}

// Payload converts the set fields into the structured argument handed to
// a wallet's signIn callback.
func (s *SignInInput) Payload() map[string]any {
	payload := make(map[string]any)
	put := func(key, value string) {
		if value != "" {
			payload[key] = value
		}
	}
	put("domain", s.domain)
	put("address", s.address)
	put("statement", s.statement)
	put("uri", s.uri)
	put("version", s.version)
	put("chainId", s.chainID)
	put("nonce", s.nonce)
	put("issuedAt", s.issuedAt)
	put("expirationTime", s.expirationTime)
	put("notBefore", s.notBefore)
	put("requestId", s.requestID)
	if len(s.resources) != 0 {
		resources := make([]any, len(s.resources))
		for i, resource := range s.resources {
			resources[i] = resource
		}
		payload["resources"] = resources
	}
	return payload
}

func afterColon(line string) string {
	if _, value, found := strings.Cut(line, ":"); found {
		return strings.TrimSpace(value)
	}
	return ""
}

func timeAfterColon(line string) (string, error) {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return "", nil
	}
	value = strings.TrimSpace(value)
	if _, err := parseTime(value); err != nil {
		return "", err
	}
	return value, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	return t, nil
}

func fieldTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := parseTime(value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
