package campaign

// TallyResult is the outcome of one counting run.
type TallyResult struct {
	MaxVotes uint64 `json:"max-votes"`
	Winner   uint64 `json:"winner"`
	Elected  bool   `json:"elected"`
	Leaders  uint64 `json:"leaders"` // proposals holding MaxVotes
}

// Tally scans the vote counts in index order with a single max-tracking
// pass. A winner is elected only when exactly one index holds the
// positive maximum; on a tie Winner ends up at the last tied index and
// must be ignored unless Elected is set.
func Tally(votes []uint64) TallyResult {
	var result TallyResult
	for index, count := range votes {
		if count > result.MaxVotes {
			result.MaxVotes = count
			result.Winner = uint64(index)
			result.Leaders = 1
		} else if count == result.MaxVotes {
			result.Leaders++
			result.Winner = uint64(index)
		}
	}
	result.Elected = result.MaxVotes > 0 && result.Leaders == 1

	return result
}
