package common

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/congress/lib/errors"
)

func TestInStringArray(t *testing.T) {
	a := []string{"showme", "findme", "killme"}

	{
		index, found := InStringArray(a, "findme")
		require.True(t, found)
		require.Equal(t, 1, index)
	}

	{
		index, found := InStringArray(a, "catchme")
		require.False(t, found)
		require.Equal(t, -1, index)
	}
}

func TestParseBoolQueryString(t *testing.T) {
	{
		yesno, err := ParseBoolQueryString("")
		require.NoError(t, err)
		require.False(t, yesno)
	}

	{
		yesno, err := ParseBoolQueryString("true")
		require.NoError(t, err)
		require.True(t, yesno)
	}

	{
		yesno, err := ParseBoolQueryString("false")
		require.NoError(t, err)
		require.False(t, yesno)
	}

	{
		_, err := ParseBoolQueryString("yes")
		require.Equal(t, errors.InvalidQueryString, err)
	}
}

func TestJSONMarshalWithoutEscapeHTML(t *testing.T) {
	o := map[string]string{"next": "/voters?cursor=cv-created-1&reverse=false"}

	b, err := JSONMarshalWithoutEscapeHTML(o)
	require.NoError(t, err)
	require.Contains(t, string(b), "cursor=cv-created-1&reverse=false")

	escaped, err := EncodeJSONValue(o)
	require.NoError(t, err)
	require.NotEqual(t, string(escaped), string(b))
}
