package models

import (
	"fmt"
)

var (
	ErrMissingSetting = fmt.Errorf("missing setting")
)

// Settings is the key/value mapping handed to album hooks.
type Settings map[string]string

func (s Settings) Require(key string) (string, error) {
	value, ok := s[key]

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingSetting, key)
	}

	return value, nil
}
