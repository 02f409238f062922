package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOptions drive caarlos0/env. Unset variables leave fields zero so that
// mergo keeps the values of earlier sources.
var envOptions = env.Options{
	RequiredIfNoDef: false,
}

// parseEnv fills cfg from the process environment following the env and
// envPrefix tags of [StructuredConfig], e.g. APP_TOKEN_SIGN_KEY or
// SERVER_REQUEST_TIMEOUT.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, envOptions); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
