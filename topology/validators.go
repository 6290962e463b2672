package topology

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/Fantom-foundation/lachesis-base/inter/pos"
)

// PrimaryID is the validator id the primary takes in the committee set.
const PrimaryID idx.ValidatorID = 0

// Validators returns the committee as an equal-weight validator set: the
// primary under PrimaryID and every peer under its own id.
func (t *Topology) Validators() *pos.Validators {
	ids := make([]idx.ValidatorID, 0, len(t.Peers)+1)
	ids = append(ids, PrimaryID)
	for _, p := range t.SortedPeers() {
		ids = append(ids, idx.ValidatorID(p.ID))
	}
	return pos.EqualWeightValidators(ids, 1)
}

// FaultTolerance is the number of byzantine members a committee of this
// degree tolerates.
func (t *Topology) FaultTolerance() int {
	return t.Degree
}

// Quorum is the number of members whose agreement the committee needs.
func (t *Topology) Quorum() int {
	return int(t.Validators().Quorum())
}
