package config

import (
	"fmt"
	"os"
	"time"
)

// ClientConfig is the configuration of the command-line client, assembled
// from the same sources as [StructuredConfig].
type ClientConfig struct {
	// HTTPAddress is the API base address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// TokenFile is where the bearer token is persisted between runs.
	TokenFile string
	// Args holds the positional arguments left after flag parsing
	// (the subcommand and its operands).
	Args []string
}

// GetClientConfig builds and validates the client configuration.
//
// Flags are parsed from os.Args; everything after the last flag is returned
// in [ClientConfig.Args].
func GetClientConfig() (*ClientConfig, error) {
	cfg, args, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		HTTPAddress:    cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
		TokenFile:      cfg.Client.TokenFile,
		Args:           args,
	}

	return clientCfg, clientCfg.validate()
}
