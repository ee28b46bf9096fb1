// Package walletadapter connects an application to browser extension
// wallets that implement the Wallet Standard, the convention under which
// wallets register themselves on a shared global object and expose
// namespaced capability callbacks (connect, disconnect, events, message
// and transaction signing, Sign In With Solana).
//
// The package owns the client side only: it parses the untyped capability
// map a wallet advertises into a typed Wallet, tracks the connection state
// machine across connect/disconnect/account-change notifications, and
// dispatches signing requests with strict validation of the responses.
// Everything that touches the actual host runtime sits behind the host
// package; a non-browser embedding can drive the adapter with its own
// host.Value implementation.
package walletadapter

import (
	"fmt"
	"strconv"
	"strings"
)

// Cluster identifies a Solana network environment. The zero value is
// DevNet, matching the defaults used throughout the wallet standard.
type Cluster uint8

const (
	// ClusterDevNet is the Solana devnet cluster.
	ClusterDevNet Cluster = iota
	// ClusterMainNet is the Solana mainnet cluster.
	ClusterMainNet
	// ClusterTestNet is the Solana testnet cluster.
	ClusterTestNet
	// ClusterLocalNet is a local validator, conventionally on port 8899.
	ClusterLocalNet
)

// NetworkNamespace is the namespace prefix shared by all Solana chains.
const NetworkNamespace = "solana"

// Clusters lists every supported cluster.
func Clusters() []Cluster {
	return []Cluster{ClusterMainNet, ClusterTestNet, ClusterDevNet, ClusterLocalNet}
}

// Identifier returns the short cluster name, e.g. "devnet".
func (c Cluster) Identifier() string {
	switch c {
	case ClusterMainNet:
		return "mainnet"
	case ClusterTestNet:
		return "testnet"
	case ClusterLocalNet:
		return "localnet"
	default:
		return "devnet"
	}
}

// Chain returns the namespaced chain identifier, e.g. "solana:devnet".
func (c Cluster) Chain() string {
	return NetworkNamespace + ":" + c.Identifier()
}

// Endpoint returns the public RPC endpoint of the cluster.
func (c Cluster) Endpoint() string {
	switch c {
	case ClusterMainNet:
		return "https://api.mainnet-beta.solana.com"
	case ClusterTestNet:
		return "https://api.testnet.solana.com"
	case ClusterLocalNet:
		return "http://localhost:8899"
	default:
		return "https://api.devnet.solana.com"
	}
}

// String implements fmt.Stringer.
func (c Cluster) String() string {
	return c.Identifier()
}

// ClusterFromString resolves a cluster from its identifier, its namespaced
// chain form or its RPC endpoint. Any unrecognized input resolves to
// DevNet; callers that need strict parsing must compare the input against
// the returned cluster's encodings themselves.
func ClusterFromString(value string) Cluster {
	for _, cluster := range Clusters() {
		if value == cluster.Identifier() || value == cluster.Chain() || value == cluster.Endpoint() {
			return cluster
		}
	}
	return ClusterDevNet
}

// Commitment is the finality level requested for a submitted transaction.
// The zero value is Finalized.
type Commitment uint8

const (
	// CommitmentFinalized waits for the cluster to finalize the transaction.
	CommitmentFinalized Commitment = iota
	// CommitmentProcessed waits for the cluster to process the transaction.
	CommitmentProcessed
	// CommitmentConfirmed waits for the cluster to confirm the transaction.
	CommitmentConfirmed
)

// String implements fmt.Stringer.
func (c Commitment) String() string {
	switch c {
	case CommitmentProcessed:
		return "processed"
	case CommitmentConfirmed:
		return "confirmed"
	default:
		return "finalized"
	}
}

// CommitmentFromString resolves a commitment from its string form. Any
// unrecognized input resolves to Finalized.
func CommitmentFromString(value string) Commitment {
	switch value {
	case CommitmentProcessed.String():
		return CommitmentProcessed
	case CommitmentConfirmed.String():
		return CommitmentConfirmed
	default:
		return CommitmentFinalized
	}
}

// clusterFromChain maps a namespaced chain identifier onto a cluster,
// rejecting anything outside the Solana namespace instead of falling back.
func clusterFromChain(chain string) (Cluster, error) {
	for _, cluster := range Clusters() {
		if chain == cluster.Chain() {
			return cluster, nil
		}
	}
	return ClusterDevNet, fmt.Errorf("%w: %q", ErrUnsupportedChain, chain)
}

// WalletStandardVersion is the version of the Wallet Standard this adapter
// implements. Apps may use it for compatibility checks.
const WalletStandardVersion = "1.0.0"

// SemverVersion is the semantic version tag carried by wallets and their
// capabilities.
type SemverVersion struct {
	Major uint8
	Minor uint8
	Patch uint8
}

// DefaultSemverVersion is the version assumed when a wallet follows the
// current wallet standard.
func DefaultSemverVersion() SemverVersion {
	return SemverVersion{Major: 1}
}

// ParseSemverVersion parses a "major.minor.patch" string where each
// component fits in a uint8.
func ParseSemverVersion(value string) (SemverVersion, error) {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return SemverVersion{}, fmt.Errorf("%w: %q", ErrInvalidWalletVersion, value)
	}
	numbers := make([]uint8, 3)
	for i, part := range parts {
		number, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return SemverVersion{}, fmt.Errorf("%w: %q", ErrInvalidSemverNumber, part)
		}
		numbers[i] = uint8(number)
	}
	return SemverVersion{Major: numbers[0], Minor: numbers[1], Patch: numbers[2]}, nil
}

// String implements fmt.Stringer.
func (v SemverVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
