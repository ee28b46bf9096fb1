package walletadapter

import (
	"errors"
	"testing"
)

func TestClusterEncodings(t *testing.T) {
	tests := []struct {
		cluster    Cluster
		identifier string
		chain      string
		endpoint   string
	}{
		{ClusterMainNet, "mainnet", "solana:mainnet", "https://api.mainnet-beta.solana.com"},
		{ClusterTestNet, "testnet", "solana:testnet", "https://api.testnet.solana.com"},
		{ClusterDevNet, "devnet", "solana:devnet", "https://api.devnet.solana.com"},
		{ClusterLocalNet, "localnet", "solana:localnet", "http://localhost:8899"},
	}
	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			if got := tt.cluster.Identifier(); got != tt.identifier {
				t.Errorf("Identifier() = %q, want %q", got, tt.identifier)
			}
			if got := tt.cluster.Chain(); got != tt.chain {
				t.Errorf("Chain() = %q, want %q", got, tt.chain)
			}
			if got := tt.cluster.Endpoint(); got != tt.endpoint {
				t.Errorf("Endpoint() = %q, want %q", got, tt.endpoint)
			}
		})
	}
}

func TestClusterFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Cluster
	}{
		{"identifier", "mainnet", ClusterMainNet},
		{"chain form", "solana:testnet", ClusterTestNet},
		{"endpoint", "http://localhost:8899", ClusterLocalNet},
		{"devnet", "devnet", ClusterDevNet},
		// Unrecognized input silently resolves to DevNet. Changing this
		// fallback breaks callers that rely on it; do not make it strict
		// without an API change.
		{"unrecognized falls back to devnet", "mainnet-beta", ClusterDevNet},
		{"empty falls back to devnet", "", ClusterDevNet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClusterFromString(tt.input); got != tt.want {
				t.Errorf("ClusterFromString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClusterFromChainStrict(t *testing.T) {
	cluster, err := clusterFromChain("solana:mainnet")
	if err != nil {
		t.Fatalf("clusterFromChain() error = %v", err)
	}
	if cluster != ClusterMainNet {
		t.Errorf("clusterFromChain() = %v, want %v", cluster, ClusterMainNet)
	}

	if _, err := clusterFromChain("eip155:1"); !errors.Is(err, ErrUnsupportedChain) {
		t.Errorf("clusterFromChain() error = %v, want ErrUnsupportedChain", err)
	}
}

func TestCommitment(t *testing.T) {
	var zero Commitment
	if zero != CommitmentFinalized {
		t.Errorf("zero value = %v, want finalized", zero)
	}

	tests := []struct {
		input string
		want  Commitment
	}{
		{"processed", CommitmentProcessed},
		{"confirmed", CommitmentConfirmed},
		{"finalized", CommitmentFinalized},
		{"bogus", CommitmentFinalized},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CommitmentFromString(tt.input); got != tt.want {
				t.Errorf("CommitmentFromString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSemverVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SemverVersion
		wantErr error
	}{
		{"standard", "1.0.0", SemverVersion{Major: 1}, nil},
		{"all components", "2.14.3", SemverVersion{Major: 2, Minor: 14, Patch: 3}, nil},
		{"too few parts", "1.0", SemverVersion{}, ErrInvalidWalletVersion},
		{"too many parts", "1.0.0.0", SemverVersion{}, ErrInvalidWalletVersion},
		{"not a number", "1.x.0", SemverVersion{}, ErrInvalidSemverNumber},
		{"overflows uint8", "1.0.300", SemverVersion{}, ErrInvalidSemverNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSemverVersion(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseSemverVersion(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSemverVersion(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSemverVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSemverVersionString(t *testing.T) {
	v := SemverVersion{Major: 1, Minor: 2, Patch: 3}
	if got := v.String(); got != "1.2.3" {
		t.Errorf("String() = %q, want %q", got, "1.2.3")
	}
	if got := DefaultSemverVersion().String(); got != "1.0.0" {
		t.Errorf("DefaultSemverVersion().String() = %q, want %q", got, "1.0.0")
	}
}
