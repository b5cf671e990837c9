package campaign

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTally(t *testing.T) {
	cases := []struct {
		name     string
		votes    []uint64
		elected  bool
		winner   uint64
		maxVotes uint64
		leaders  uint64
	}{
		{"empty", []uint64{}, false, 0, 0, 0},
		{"no votes", []uint64{0, 0, 0}, false, 2, 0, 3},
		{"single winner", []uint64{5, 2, 2}, true, 0, 5, 1},
		{"late winner", []uint64{2, 3}, true, 1, 3, 1},
		{"tie", []uint64{3, 3, 1}, false, 1, 3, 2},
		{"all tied", []uint64{2, 2, 2}, false, 2, 2, 3},
		{"single proposal", []uint64{1}, true, 0, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result := Tally(c.votes)
			require.Equal(t, c.elected, result.Elected)
			require.Equal(t, c.maxVotes, result.MaxVotes)
			require.Equal(t, c.leaders, result.Leaders)
			if c.elected {
				require.Equal(t, c.winner, result.Winner)
			}
		})
	}
}

func TestTallyKeepsLastTiedIndex(t *testing.T) {
	// the stale index left by a tie is never handed out, but the scan
	// itself is deterministic
	result := Tally([]uint64{4, 1, 4})
	require.False(t, result.Elected)
	require.Equal(t, uint64(2), result.Winner)
}
