// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package funding

import (
	"bytes"
	"sort"

	"github.com/adysingh5711/VeriFund/vf"
)

// Assigner draws a review panel out of the eligible candidates.
type Assigner interface {
	// Assign returns at most size distinct candidates. The result must be
	// deterministic for the same seed and candidates.
	Assign(seed vf.Bytes32, candidates []vf.Address, size int) []vf.Address
}

// HashAssigner ranks candidates by blake2b(seed, candidate) and takes the lowest.
type HashAssigner struct{}

func (HashAssigner) Assign(seed vf.Bytes32, candidates []vf.Address, size int) []vf.Address {
	type ranked struct {
		addr vf.Address
		rank vf.Bytes32
	}
	list := make([]ranked, 0, len(candidates))
	seen := make(map[vf.Address]bool, len(candidates))
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		list = append(list, ranked{c, vf.Blake2b(seed[:], c.Bytes())})
	}
	sort.Slice(list, func(i, j int) bool {
		return bytes.Compare(list[i].rank[:], list[j].rank[:]) < 0
	})
	size = max(min(size, len(list)), 0)
	panel := make([]vf.Address, 0, size)
	for _, r := range list[:size] {
		panel = append(panel, r.addr)
	}
	return panel
}

// sanitizePanel keeps the first size distinct members of panel that are candidates.
func sanitizePanel(panel, candidates []vf.Address, size int) []vf.Address {
	allowed := make(map[vf.Address]bool, len(candidates))
	for _, c := range candidates {
		allowed[c] = true
	}
	out := make([]vf.Address, 0, min(len(panel), size))
	for _, addr := range panel {
		if len(out) == size {
			break
		}
		if allowed[addr] {
			out = append(out, addr)
			delete(allowed, addr)
		}
	}
	return out
}

func panelSeed(projectID, index, submissionTime uint64) vf.Bytes32 {
	p := vf.Uint64ToBytes32(projectID)
	i := vf.Uint64ToBytes32(index)
	s := vf.Uint64ToBytes32(submissionTime)
	return vf.Blake2b(p[:], i[:], s[:])
}
