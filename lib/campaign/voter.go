package campaign

import (
	"encoding/json"
	"fmt"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/storage"
)

// Voter is the per-identity eligibility record. the storage should
// support,
//  * find by `Address`:
// 	- key: 'cv-address-<Voter.Address>': `Voter`
//  * get list by created order:
// 	- key: 'cv-created-<sequential uuid1>': `Voter.Address`
//
// The created order survives a reset. A reset only clears the
// eligibility flags, so an identity keeps its position across
// generations and is never appended twice.

const VoterPrefixAddress string = "cv-address-"
const VoterPrefixCreated string = "cv-created-"

type Voter struct {
	Address    string `json:"address"`
	Registered bool   `json:"registered"`
	Voted      bool   `json:"voted"`
	Choice     uint64 `json:"choice"`
	Created    string `json:"created"`
}

func NewVoter(address string) *Voter {
	return &Voter{
		Address:    address,
		Registered: true,
		Created:    common.NowISO8601(),
	}
}

func (v Voter) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(v)
	return
}

func (v Voter) String() string {
	encoded, _ := json.MarshalIndent(v, "", "  ")
	return string(encoded)
}

func GetVoterKey(address string) string {
	return fmt.Sprintf("%s%s", VoterPrefixAddress, address)
}

func GetVoterCreatedKey(created string) string {
	return fmt.Sprintf("%s%s", VoterPrefixCreated, created)
}

func ExistsVoter(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetVoterKey(address))
}

func GetVoter(st *storage.LevelDBBackend, address string) (v *Voter, err error) {
	if err = st.Get(GetVoterKey(address), &v); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.VoterDoesNotExist
		}
		return
	}

	return
}

func (v *Voter) Save(st *storage.LevelDBBackend) (err error) {
	key := GetVoterKey(v.Address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, v)
	} else {
		if err = st.New(key, v); err != nil {
			return
		}
		err = st.New(GetVoterCreatedKey(common.GetUniqueIDFromUUID()), v.Address)
	}

	return
}

func LoadVotersInsideIterator(
	st *storage.LevelDBBackend,
	iterFunc func() (storage.IterItem, bool),
	closeFunc func(),
) (
	func() (Voter, bool, []byte),
	func(),
) {

	return (func() (Voter, bool, []byte) {
			item, hasNext := iterFunc()
			if !hasNext {
				return Voter{}, false, item.Key
			}

			var address string
			json.Unmarshal(item.Value, &address)

			v, err := GetVoter(st, address)
			if err != nil {
				return Voter{}, false, item.Key
			}

			return *v, hasNext, item.Key
		}), (func() {
			closeFunc()
		})
}

func GetVotersByCreated(st *storage.LevelDBBackend, options storage.ListOptions) (
	func() (Voter, bool, []byte),
	func(),
) {
	iterFunc, closeFunc := st.GetIterator(VoterPrefixCreated, options)

	return LoadVotersInsideIterator(st, iterFunc, closeFunc)
}

func WalkVoterAddressesByCreated(st *storage.LevelDBBackend, option *storage.WalkOption, walkFunc func(address string, key []byte) (bool, error)) error {
	return st.Walk(VoterPrefixCreated, option, func(key, value []byte) (bool, error) {
		var address string
		if err := json.Unmarshal(value, &address); err != nil {
			return false, err
		}

		return walkFunc(address, key)
	})
}
