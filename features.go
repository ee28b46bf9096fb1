package walletadapter

import (
	"fmt"
	"strings"

	"github.com/solstandard/wallet-adapter-go/host"
)

// Capability identifiers defined by the wallet standard.
const (
	// StandardConnect is the identifier for `standard:connect`.
	StandardConnect = "standard:connect"
	// StandardDisconnect is the identifier for `standard:disconnect`.
	StandardDisconnect = "standard:disconnect"
	// StandardEvents is the identifier for `standard:events`.
	StandardEvents = "standard:events"
	// SolanaSignIn is the identifier for `solana:signIn`.
	SolanaSignIn = "solana:signIn"
	// SolanaSignMessage is the identifier for `solana:signMessage`.
	SolanaSignMessage = "solana:signMessage"
	// SolanaSignTransaction is the identifier for `solana:signTransaction`.
	SolanaSignTransaction = "solana:signTransaction"
	// SolanaSignAndSendTransaction is the identifier for `solana:signAndSendTransaction`.
	SolanaSignAndSendTransaction = "solana:signAndSendTransaction"
	// SolanaSignAllTransactions is the identifier for `solana:signAllTransactions`.
	SolanaSignAllTransactions = "solana:signAllTransactions"
)

// Window event identifiers used by host glue during wallet registration.
const (
	// WindowAppReadyEvent announces that the app is listening for wallets.
	WindowAppReadyEvent = "wallet-standard:app-ready"
	// WindowRegisterWalletEvent announces a wallet registering itself.
	WindowRegisterWalletEvent = "wallet-standard:register-wallet"
)

// FeatureSupport records which wallet standard capabilities a wallet or
// account advertises, one flag per capability.
type FeatureSupport struct {
	Connect                bool
	Disconnect             bool
	Events                 bool
	SignIn                 bool
	SignMessage            bool
	SignTransaction        bool
	SignAndSendTransaction bool
	SignAllTransactions    bool
}

// ChainSupport records which Solana clusters a wallet or account supports.
type ChainSupport struct {
	MainNet  bool
	TestNet  bool
	DevNet   bool
	LocalNet bool
}

// mark flags the cluster in the support record.
func (c *ChainSupport) mark(cluster Cluster) {
	switch cluster {
	case ClusterMainNet:
		c.MainNet = true
	case ClusterTestNet:
		c.TestNet = true
	case ClusterDevNet:
		c.DevNet = true
	case ClusterLocalNet:
		c.LocalNet = true
	}
}

// connectFeature is the parsed `standard:connect` capability.
type connectFeature struct {
	version SemverVersion
	call    host.Func
}

// disconnectFeature is the parsed `standard:disconnect` capability.
type disconnectFeature struct {
	version SemverVersion
	call    host.Func
}

// eventsFeature is the parsed `standard:events` capability.
type eventsFeature struct {
	version SemverVersion
	call    host.Func
}

// signInFeature is the parsed `solana:signIn` capability.
type signInFeature struct {
	version SemverVersion
	call    host.Func
}

// signMessageFeature is the parsed `solana:signMessage` capability.
type signMessageFeature struct {
	version SemverVersion
	call    host.Func
}

// signTransactionFeature is the parsed capability behind
// `solana:signTransaction`, `solana:signAllTransactions` and
// `solana:signAndSendTransaction`, which share their callback shape and
// the supportedTransactionVersions declaration.
type signTransactionFeature struct {
	version     SemverVersion
	legacy      bool
	versionZero bool
	call        host.Func
}

// Features binds the capability callbacks a wallet advertises. Optional
// capabilities that the wallet did not advertise keep nil callbacks;
// non-namespaced capabilities are kept as opaque extension keys.
type Features struct {
	connect       connectFeature
	disconnect    disconnectFeature
	events        eventsFeature
	signIn        *signInFeature
	signMessage   signMessageFeature
	signTx        signTransactionFeature
	signAllTx     *signTransactionFeature
	signAndSendTx signTransactionFeature
	extensions    []string
}

// Extensions returns the non-standard capability keys the wallet exposes.
func (f *Features) Extensions() []string {
	return f.extensions
}

// parseFeatures consumes the capability keyed mapping of a wallet object
// and produces the typed feature set plus its support summary. Parsing is
// all or nothing: one malformed or unknown `standard:`/`solana:`
// capability rejects the wallet.
func parseFeatures(wallet host.Value) (Features, FeatureSupport, error) {
	featuresValue, ok := wallet.Get("features")
	if !ok {
		return Features{}, FeatureSupport{}, fmt.Errorf("%w: features", ErrExpectedValueNotFound)
	}

	var features Features
	var support FeatureSupport

	for _, key := range featuresValue.Keys() {
		capability, ok := featuresValue.Get(key)
		if !ok {
			return Features{}, FeatureSupport{}, fmt.Errorf("%w: %s", ErrExpectedValueNotFound, key)
		}

		if !strings.HasPrefix(key, "standard:") && !strings.HasPrefix(key, "solana:") {
			features.extensions = append(features.extensions, key)
			continue
		}

		version, err := capabilityVersion(capability)
		if err != nil {
			return Features{}, FeatureSupport{}, err
		}

		switch key {
		case StandardConnect:
			call, err := capabilityFunc(capability, "connect", ErrMissingConnectFunction)
			if err != nil {
				return Features{}, FeatureSupport{}, err
			}
			features.connect = connectFeature{version: version, call: call}
			support.Connect = true
		case StandardDisconnect:
			call, err := capabilityFunc(capability, "disconnect", ErrMissingDisconnectFunction)
			if err != nil {
				return Features{}, FeatureSupport{}, err
			}
			features.disconnect = disconnectFeature{version: version, call: call}
			support.Disconnect = true
		case StandardEvents:
			call, err := capabilityFunc(capability, "on", ErrMissingEventsFunction)
			if err != nil {
				return Features{}, FeatureSupport{}, err
			}
			features.events = eventsFeature{version: version, call: call}
			support.Events = true
		case SolanaSignIn:
			call, err := capabilityFunc(capability, "signIn", ErrMissingSignInFunction)
			if err != nil {
				return Features{}, FeatureSupport{}, err
			}
			features.signIn = &signInFeature{version: version, call: call}
			support.SignIn = true
		case SolanaSignMessage:
			call, err := capabilityFunc(capability, "signMessage", ErrMissingSignMessageFunction)
			if err != nil {
				return Features{}, FeatureSupport{}, err
			}
			features.signMessage = signMessageFeature{version: version, call: call}
			support.SignMessage = true
		case SolanaSignTransaction:
			feature, err := parseSignTransaction(capability, version, "signTransaction", ErrMissingSignTransactionFunction)
			if err != nil {
				return Features{}, FeatureSupport{}, err
			}
			features.signTx = feature
			support.SignTransaction = true
		case SolanaSignAllTransactions:
			feature, err := parseSignTransaction(capability, version, "signAllTransactions", ErrMissingSignAllTransactionsFunction)
			if err != nil {
				return Features{}, FeatureSupport{}, err
			}
			features.signAllTx = &feature
			support.SignAllTransactions = true
		case SolanaSignAndSendTransaction:
			feature, err := parseSignTransaction(capability, version, "signAndSendTransaction", ErrMissingSignAndSendTransactionFunction)
			if err != nil {
				return Features{}, FeatureSupport{}, err
			}
			features.signAndSendTx = feature
			support.SignAndSendTransaction = true
		default:
			return Features{}, FeatureSupport{}, fmt.Errorf("%w: %s", ErrUnsupportedFeature, key)
		}
	}

	return features, support, nil
}

// capabilityVersion reads the semver tag off a capability object.
func capabilityVersion(capability host.Value) (SemverVersion, error) {
	value, ok := capability.Get("version")
	if !ok {
		return SemverVersion{}, ErrVersionNotFound
	}
	versionStr, ok := value.AsString()
	if !ok {
		return SemverVersion{}, ErrVersionNotFound
	}
	return ParseSemverVersion(versionStr)
}

// capabilityFunc reads the named callback off a capability object, failing
// with the capability specific sentinel when absent or not invocable.
func capabilityFunc(capability host.Value, name string, missing error) (host.Func, error) {
	value, ok := capability.Get(name)
	if !ok {
		return nil, missing
	}
	fn, ok := value.AsFunc()
	if !ok {
		return nil, missing
	}
	return fn, nil
}

// parseSignTransaction parses a transaction-signing capability including
// its supportedTransactionVersions array. Legacy support is mandatory; the
// numeric token 0 marks version-zero transaction support.
func parseSignTransaction(capability host.Value, version SemverVersion, name string, missing error) (signTransactionFeature, error) {
	call, err := capabilityFunc(capability, name, missing)
	if err != nil {
		return signTransactionFeature{}, err
	}

	versionsValue, ok := capability.Get("supportedTransactionVersions")
	if !ok {
		return signTransactionFeature{}, fmt.Errorf("%w: supportedTransactionVersions", ErrExpectedValueNotFound)
	}
	tokens, ok := versionsValue.AsArray()
	if !ok {
		return signTransactionFeature{}, fmt.Errorf("%w: supportedTransactionVersions", ErrExpectedValueNotFound)
	}

	feature := signTransactionFeature{version: version, call: call}
	for _, token := range tokens {
		if text, ok := token.AsString(); ok && text == "legacy" {
			feature.legacy = true
			continue
		}
		if number, ok := token.AsUint(); ok && number == 0 {
			feature.versionZero = true
			continue
		}
		return signTransactionFeature{}, ErrUnsupportedTransactionVersion
	}
	if !feature.legacy {
		return signTransactionFeature{}, ErrLegacyTransactionSupportRequired
	}
	return feature, nil
}
