package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/openPMD/openpmd-go/xerrors"
)

var validate = validator.New()

func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return xerrors.NewBackendConfigSchema("$", "validation failed: %v", err)
	}
	return nil
}
