package campaign

import (
	"encoding/json"

	"boscoin.io/congress/lib/common"
	"boscoin.io/congress/lib/errors"
	"boscoin.io/congress/lib/storage"
)

// Campaign is the singleton record owning the workflow status and the
// registry counters of the current generation. the storage should
// support,
//  * find the only one:
// 	- key: 'cc-campaign': `Campaign`

const CampaignKey string = "cc-campaign"

type Campaign struct {
	Admin         string `json:"admin"`
	Phase         Phase  `json:"phase"`
	PreviousPhase Phase  `json:"previous-phase"`
	Generation    uint64 `json:"generation"`

	TotalVoters    uint64 `json:"total-voters"`
	TotalProposals uint64 `json:"total-proposals"`
	TotalVotes     uint64 `json:"total-votes"`

	WinnerElected     bool   `json:"winner-elected"`
	WinningProposalId uint64 `json:"winning-proposal-id"`
	MaxVotes          uint64 `json:"max-votes"`

	Created   string `json:"created"`
	Confirmed string `json:"confirmed"`
}

func NewCampaign(admin string) *Campaign {
	created := common.NowISO8601()
	return &Campaign{
		Admin:      admin,
		Phase:      PhaseRegisteringVoters,
		Generation: 1,
		Created:    created,
		Confirmed:  created,
	}
}

func (c Campaign) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(c)
	return
}

func (c Campaign) String() string {
	encoded, _ := json.MarshalIndent(c, "", "  ")
	return string(encoded)
}

// MoveTo advances the campaign along a valid edge and keeps the
// `(previous, new)` pair observable.
func (c *Campaign) MoveTo(next Phase) error {
	if !c.Phase.CanTransitTo(next) {
		return errors.InvalidTransition.Clone().
			SetData("phase", c.Phase.String()).
			SetData("target", next.String())
	}

	c.PreviousPhase = c.Phase
	c.Phase = next
	c.Confirmed = common.NowISO8601()

	return nil
}

func (c *Campaign) Save(st *storage.LevelDBBackend) (err error) {
	var exists bool
	if exists, err = st.Has(CampaignKey); err != nil {
		return
	}

	if exists {
		err = st.Set(CampaignKey, c)
	} else {
		err = st.New(CampaignKey, c)
	}

	return
}

func ExistsCampaign(st *storage.LevelDBBackend) (bool, error) {
	return st.Has(CampaignKey)
}

func GetCampaign(st *storage.LevelDBBackend) (c *Campaign, err error) {
	if err = st.Get(CampaignKey, &c); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.CampaignDoesNotExist
		}
		return
	}

	return
}

// MakeGenesisCampaign opens the very first generation with the given
// administrator. It fails if the storage already holds a campaign.
func MakeGenesisCampaign(st *storage.LevelDBBackend, admin string) (*Campaign, error) {
	if exists, err := ExistsCampaign(st); err != nil {
		return nil, err
	} else if exists {
		return nil, errors.CampaignAlreadyExists
	}

	c := NewCampaign(admin)
	if err := c.Save(st); err != nil {
		return nil, err
	}
	log.Info("genesis campaign created", "admin", admin)

	return c, nil
}
