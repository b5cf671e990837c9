package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"

	"boscoin.io/congress/lib/errors"
)

type Snapshot struct {
	*leveldb.Snapshot
}

// NewSnapshot makes a read-only, point-in-time view of the storage; use
// it as the `Core` of a LevelDBBackend for consistent multi-key reads.
func NewSnapshot(st *LevelDBBackend) (*Snapshot, error) {
	snapshot, err := st.DB.GetSnapshot()
	if err != nil {
		return nil, err
	}

	return &Snapshot{Snapshot: snapshot}, nil
}

func NewSnapshotBackend(st *LevelDBBackend) (*LevelDBBackend, error) {
	snapshot, err := NewSnapshot(st)
	if err != nil {
		return nil, err
	}

	return &LevelDBBackend{DB: st.DB, Core: snapshot}, nil
}

func (s *Snapshot) Put([]byte, []byte, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

func (s *Snapshot) Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

func (s *Snapshot) Delete([]byte, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}
