package redis

import (
	"testing"
)

func TestKeyBuilder_Environment_Prefixes(t *testing.T) {
	tests := []struct {
		name           string
		environment    string
		expectedPrefix string
	}{
		{
			name:           "Production environment should use prod prefix",
			environment:    "production",
			expectedPrefix: "prod",
		},
		{
			name:           "Development environment should use development prefix",
			environment:    "development",
			expectedPrefix: "development",
		},
		{
			name:           "Staging environment should use staging prefix",
			environment:    "staging",
			expectedPrefix: "staging",
		},
		{
			name:           "Test environment should use test prefix",
			environment:    "test",
			expectedPrefix: "test",
		},
		{
			name:           "Unknown environment should default to prod prefix",
			environment:    "unknown",
			expectedPrefix: "prod",
		},
		{
			name:           "Empty environment should default to prod prefix",
			environment:    "",
			expectedPrefix: "prod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			if kb.GetPrefix() != tt.expectedPrefix {
				t.Errorf("NewKeyBuilder(%s).GetPrefix() = %s, want %s",
					tt.environment, kb.GetPrefix(), tt.expectedPrefix)
			}
		})
	}
}

func TestKeyBuilder_KeyGeneration(t *testing.T) {
	kb := NewKeyBuilder("production")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "Timer config key",
			got:      kb.KeySetupTimerConfig(),
			expected: "prod:setup:timer-config",
		},
		{
			name:     "Roster key",
			got:      kb.KeySetupRoster(),
			expected: "prod:setup:roster",
		},
		{
			name:     "Layout key",
			got:      kb.KeySetupLayout(),
			expected: "prod:setup:layout",
		},
		{
			name:     "Arbitrary key",
			got:      kb.BuildKey("custom"),
			expected: "prod:custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %s, want %s", tt.got, tt.expected)
			}
		})
	}
}

func TestKeyBuilder_EnvironmentIsolation(t *testing.T) {
	prod := NewKeyBuilder("production")
	test := NewKeyBuilder("test")

	if prod.KeySetupRoster() == test.KeySetupRoster() {
		t.Errorf("environments must not share keys: %s", prod.KeySetupRoster())
	}
}
