package rules

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads a rule file (YAML, JSON or TOML, chosen by extension) and compiles
// it. Sections missing from the file keep their defaults, so a file may tune a
// single table. An empty path returns the compiled defaults.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Compile(Default())
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRulesFile, err)
	}

	var set Set
	if err := v.Unmarshal(&set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	if err := validator.New().Struct(set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	return Compile(set)
}
