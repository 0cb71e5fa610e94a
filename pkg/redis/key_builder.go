package redis

import "fmt"

// Setup storage keys. Each holds one JSON blob, written and read whole.
const (
	KeySetupTimerConfig = "setup:timer-config"
	KeySetupRoster      = "setup:roster"
	KeySetupLayout      = "setup:layout"
)

// KeyBuilder prefixes keys with the deployment environment so staging and
// production can share a Redis instance.
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a key builder with an environment-based prefix.
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	switch environment {
	case "development", "staging", "test":
		prefix = environment
	}
	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a prefixed key.
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix.
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

func (kb *KeyBuilder) KeySetupTimerConfig() string {
	return kb.BuildKey(KeySetupTimerConfig)
}

func (kb *KeyBuilder) KeySetupRoster() string {
	return kb.BuildKey(KeySetupRoster)
}

func (kb *KeyBuilder) KeySetupLayout() string {
	return kb.BuildKey(KeySetupLayout)
}
