package campaign

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/congress/lib/common/keypair"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/storage"
)

func TestProposalSaveAndGet(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	proposer := keypair.Random().Address()
	p := NewProposal(0, "extend the session", proposer)
	require.NoError(t, p.Save(st))

	fetched, err := GetProposal(st, 0)
	require.NoError(t, err)
	require.Equal(t, *p, *fetched)

	exists, err := ExistsProposalDescription(st, "extend the session")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = ExistsProposalDescription(st, "Extend the session")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = GetProposal(st, 99)
	require.Equal(t, errors.ProposalDoesNotExist, err)
}

func TestProposalIndexOrder(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	proposer := keypair.Random().Address()

	// two digit indexes must not sort before one digit ones
	for i := uint64(0); i < 12; i++ {
		p := NewProposal(i, fmt.Sprintf("proposal %d", i), proposer)
		require.NoError(t, p.Save(st))
	}

	var indexes []uint64
	iterFunc, closeFunc := GetProposalsByIndex(st, storage.NewDefaultListOptions(false, nil, 0))
	for {
		p, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}
		indexes = append(indexes, p.Index)
	}
	closeFunc()

	require.Equal(t, 12, len(indexes))
	for i, index := range indexes {
		require.Equal(t, uint64(i), index)
	}
}

func TestProposalRemove(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p := NewProposal(0, "shorten the recess", keypair.Random().Address())
	require.NoError(t, p.Save(st))
	require.NoError(t, p.Remove(st))

	exists, err := ExistsProposal(st, 0)
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = ExistsProposalDescription(st, "shorten the recess")
	require.NoError(t, err)
	require.False(t, exists)

	// the description is free again
	fresh := NewProposal(0, "shorten the recess", keypair.Random().Address())
	require.NoError(t, fresh.Save(st))
}
