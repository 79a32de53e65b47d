package utils

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperationNames(t *testing.T) {
	names := OperationNames()
	require.Len(t, names, len(TokenOperations))
	for i, name := range names {
		require.NotEmpty(t, OperationDescription(name), name)
		if i > 0 {
			require.True(t, names[i-1] < name)
		}
	}
}

func TestParseSecureID(t *testing.T) {
	a, err := ParseSecureID("")
	require.NoError(t, err)
	b, err := ParseSecureID("")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	s := strings.Repeat("ab", 32)
	id, err := ParseSecureID(s)
	require.NoError(t, err)
	require.Equal(t, s, hex.EncodeToString(id[:]))

	_, err = ParseSecureID("abcd")
	require.Error(t, err)
	_, err = ParseSecureID("zz")
	require.Error(t, err)
}
