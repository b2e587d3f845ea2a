package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ucs/cmd"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "dev", version)
}

func TestSetVersion(t *testing.T) {
	tests := []struct {
		name     string
		setValue string
	}{
		{name: "default version", setValue: "dev"},
		{name: "custom version", setValue: "v1.0.0"},
		{name: "semantic version", setValue: "2.3.4-beta.1"},
	}

	original := cmd.GetVersion()
	defer cmd.SetVersion(original)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd.SetVersion(tt.setValue)
			assert.Equal(t, tt.setValue, cmd.GetVersion())
		})
	}
}
