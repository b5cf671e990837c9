package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfigFromString(t *testing.T) {
	{
		config, err := NewConfigFromString("memory://")
		require.NoError(t, err)
		require.Equal(t, "memory", config.Scheme)
	}

	{
		config, err := NewConfigFromString("file:///tmp/congress/db")
		require.NoError(t, err)
		require.Equal(t, "file", config.Scheme)
		require.Equal(t, "/tmp/congress/db", config.Path)
	}

	{
		_, err := NewConfigFromString("redis://localhost")
		require.Error(t, err)
	}
}
