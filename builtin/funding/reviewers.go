// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package funding

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/builtin/access"
	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/vf"
)

// GetStake returns the stake record of reviewer.
func (f *Funding) GetStake(reviewer vf.Address) (*ReviewerStake, error) {
	s, err := f.stakes.Get(reviewer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake")
	}
	if s.StakedAmount == nil {
		s.StakedAmount = new(big.Int)
	}
	return s, nil
}

func (f *Funding) setStake(reviewer vf.Address, s *ReviewerStake) error {
	if err := f.stakes.Set(reviewer, s); err != nil {
		return errors.Wrap(err, "failed to set stake")
	}
	return nil
}

// Reviewers returns every address that ever staked, in staking order.
func (f *Funding) Reviewers() ([]vf.Address, error) {
	n, err := f.reviewerCount.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reviewer count")
	}
	list := make([]vf.Address, 0, n)
	for i := range n {
		addr, err := f.reviewerList.Get(vf.Uint64ToBytes32(i))
		if err != nil {
			return nil, errors.Wrap(err, "failed to get reviewer")
		}
		list = append(list, addr)
	}
	return list, nil
}

// eligibleReviewers lists active stakers still holding the reviewer capability, except exclude.
func (f *Funding) eligibleReviewers(exclude vf.Address) ([]vf.Address, error) {
	all, err := f.Reviewers()
	if err != nil {
		return nil, err
	}
	eligible := make([]vf.Address, 0, len(all))
	for _, addr := range all {
		if addr == exclude {
			continue
		}
		stake, err := f.GetStake(addr)
		if err != nil {
			return nil, err
		}
		if !stake.Active {
			continue
		}
		ok, err := f.access.HasCapability(addr, access.Reviewer)
		if err != nil {
			return nil, err
		}
		if ok {
			eligible = append(eligible, addr)
		}
	}
	return eligible, nil
}

// StakeAsReviewer locks amount of the stake token in the stake pool and grants
// the reviewer capability. Stakes are permanent.
func (f *Funding) StakeAsReviewer(sender vf.Address, now uint64, amount *big.Int) error {
	release, err := f.enter()
	if err != nil {
		return err
	}
	defer release()

	if amount == nil || amount.Sign() < 0 {
		return reverts.New(reverts.InvalidArgument, "invalid amount")
	}
	required := new(big.Int).SetUint64(ReviewerStakeRequired.Get(f.ctx))
	if amount.Cmp(required) < 0 {
		return reverts.New(reverts.InsufficientStake, "%v < %v", amount, required)
	}
	stake, err := f.GetStake(sender)
	if err != nil {
		return err
	}
	if stake.Active {
		return reverts.New(reverts.AlreadyStaked, "%v", sender)
	}

	token, err := f.StakeToken()
	if err != nil {
		return err
	}
	if err := f.vault.Transfer(token, sender, f.stakePool, amount); err != nil {
		return err
	}

	stake.StakedAmount = new(big.Int).Set(amount)
	stake.Active = true
	stake.StakedAt = now
	if err := f.setStake(sender, stake); err != nil {
		return err
	}
	n, err := f.reviewerCount.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get reviewer count")
	}
	if err := f.reviewerList.Set(vf.Uint64ToBytes32(n), sender); err != nil {
		return errors.Wrap(err, "failed to set reviewer")
	}
	f.reviewerCount.Set(n + 1)

	if _, err := f.access.Grant(sender, access.Reviewer); err != nil {
		return err
	}

	logger.Info("reviewer staked", "reviewer", sender, "amount", amount)
	return f.ctx.Emit("ReviewerStaked", &reviewerStakedEvent{
		Reviewer: sender,
		Amount:   amount.String(),
		Token:    token,
	}, vf.BytesToBytes32(sender.Bytes()))
}
