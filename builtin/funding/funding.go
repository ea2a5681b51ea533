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
	"github.com/adysingh5711/VeriFund/builtin/solidity"
	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

var logger = log.WithContext("pkg", "funding")

// Tunables, overridable from storage by genesis.
var (
	PlatformFeeRate       = solidity.NewConfigVariable("platform-fee-rate", vf.DefaultPlatformFeeRate)
	ReviewerStakeRequired = solidity.NewConfigVariable("reviewer-stake-required", 1e18)
	PanelSize             = solidity.NewConfigVariable("panel-size", vf.DefaultPanelSize)
)

var (
	slotProjectCount  = nameToSlot("project-count")
	slotProjects      = nameToSlot("projects")
	slotMilestones    = nameToSlot("milestones")
	slotReviews       = nameToSlot("reviews")
	slotStakes        = nameToSlot("stakes")
	slotReviewerCount = nameToSlot("reviewer-count")
	slotReviewerList  = nameToSlot("reviewer-list")
	slotTreasury      = nameToSlot("treasury")
	slotStakeToken    = nameToSlot("stake-token")
	slotLock          = nameToSlot("lock")
)

// Vault moves the funds held in custody. The ledger implements it.
type Vault interface {
	Transfer(token, from, to vf.Address, amount *big.Int) error
}

// Funding is the milestone escrow together with the reviewer stake pool.
// Escrowed project funds are held by the funding address, stakes by the stake pool address.
type Funding struct {
	ctx           *solidity.Context
	access        *access.Access
	vault         Vault
	assigner      Assigner
	stakePool     vf.Address
	projectCount  *solidity.Uint64
	projects      *solidity.Mapping[vf.Bytes32, *Project]
	milestones    *solidity.Mapping[vf.Bytes32, *Milestone]
	reviews       *solidity.Mapping[vf.Bytes32, *Review]
	stakes        *solidity.Mapping[vf.Address, *ReviewerStake]
	reviewerCount *solidity.Uint64
	reviewerList  *solidity.Mapping[vf.Bytes32, vf.Address]
	treasury      *solidity.Address
	stakeToken    *solidity.Address
	guard         *solidity.ReentrancyGuard
}

// New create a new instance.
func New(addr, stakePool vf.Address, state *state.State, acc *access.Access, vault Vault, sink solidity.EventSink) *Funding {
	ctx := solidity.NewContext(addr, state, sink)
	return &Funding{
		ctx:           ctx,
		access:        acc,
		vault:         vault,
		assigner:      HashAssigner{},
		stakePool:     stakePool,
		projectCount:  solidity.NewUint64(ctx, slotProjectCount),
		projects:      solidity.NewMapping[vf.Bytes32, *Project](ctx, slotProjects),
		milestones:    solidity.NewMapping[vf.Bytes32, *Milestone](ctx, slotMilestones),
		reviews:       solidity.NewMapping[vf.Bytes32, *Review](ctx, slotReviews),
		stakes:        solidity.NewMapping[vf.Address, *ReviewerStake](ctx, slotStakes),
		reviewerCount: solidity.NewUint64(ctx, slotReviewerCount),
		reviewerList:  solidity.NewMapping[vf.Bytes32, vf.Address](ctx, slotReviewerList),
		treasury:      solidity.NewAddress(ctx, slotTreasury),
		stakeToken:    solidity.NewAddress(ctx, slotStakeToken),
		guard:         solidity.NewReentrancyGuard(ctx, slotLock),
	}
}

// WithAssigner replaces the panel assignment strategy.
func (f *Funding) WithAssigner(a Assigner) *Funding {
	f.assigner = a
	return f
}

// Context returns the storage context, used by genesis to override tunables.
func (f *Funding) Context() *solidity.Context {
	return f.ctx
}

// Address returns the escrow address.
func (f *Funding) Address() vf.Address {
	return f.ctx.Address()
}

func (f *Funding) enter() (func(), error) {
	if err := f.access.RequireNotPaused(); err != nil {
		return nil, err
	}
	release, ok, err := f.guard.Enter()
	if err != nil {
		return nil, errors.Wrap(err, "failed to enter")
	}
	if !ok {
		return nil, reverts.New(reverts.Reentrant, "funding")
	}
	return release, nil
}

func milestoneKey(projectID, index uint64) vf.Bytes32 {
	p := vf.Uint64ToBytes32(projectID)
	i := vf.Uint64ToBytes32(index)
	return vf.Blake2b(p[:], i[:])
}

func reviewKey(projectID, index, submission uint64, reviewer vf.Address) vf.Bytes32 {
	m := milestoneKey(projectID, index)
	s := vf.Uint64ToBytes32(submission)
	return vf.Blake2b(m[:], s[:], reviewer.Bytes())
}

// Treasury returns the platform fee receiver.
func (f *Funding) Treasury() (vf.Address, error) {
	addr, err := f.treasury.Get()
	if err != nil {
		return vf.Address{}, errors.Wrap(err, "failed to get treasury")
	}
	return addr, nil
}

// SetTreasury sets the platform fee receiver. Genesis only.
func (f *Funding) SetTreasury(addr vf.Address) {
	f.treasury.Set(addr)
}

// StakeToken returns the token reviewers stake in.
func (f *Funding) StakeToken() (vf.Address, error) {
	addr, err := f.stakeToken.Get()
	if err != nil {
		return vf.Address{}, errors.Wrap(err, "failed to get stake token")
	}
	return addr, nil
}

// SetStakeToken sets the token reviewers stake in. Genesis only.
func (f *Funding) SetStakeToken(token vf.Address) {
	f.stakeToken.Set(token)
}

// ProjectCount returns the number of created projects.
func (f *Funding) ProjectCount() (uint64, error) {
	n, err := f.projectCount.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get project count")
	}
	return n, nil
}

// GetProject returns the project. A project with zero ID does not exist.
func (f *Funding) GetProject(id uint64) (*Project, error) {
	p, err := f.projects.Get(vf.Uint64ToBytes32(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get project")
	}
	if p.TotalFunding == nil {
		p.TotalFunding = new(big.Int)
	}
	if p.ReleasedFunding == nil {
		p.ReleasedFunding = new(big.Int)
	}
	return p, nil
}

func (f *Funding) setProject(p *Project) error {
	if err := f.projects.Set(vf.Uint64ToBytes32(p.ID), p); err != nil {
		return errors.Wrap(err, "failed to set project")
	}
	return nil
}

// GetMilestone returns milestone index of project id.
func (f *Funding) GetMilestone(id, index uint64) (*Milestone, error) {
	m, err := f.milestones.Get(milestoneKey(id, index))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get milestone")
	}
	if m.FundingAmount == nil {
		m.FundingAmount = new(big.Int)
	}
	return m, nil
}

func (f *Funding) setMilestone(id, index uint64, m *Milestone) error {
	if err := f.milestones.Set(milestoneKey(id, index), m); err != nil {
		return errors.Wrap(err, "failed to set milestone")
	}
	return nil
}

// GetReview returns the review of reviewer on the current submission of a milestone.
func (f *Funding) GetReview(id, index uint64, reviewer vf.Address) (*Review, error) {
	m, err := f.GetMilestone(id, index)
	if err != nil {
		return nil, err
	}
	return f.getReview(id, index, m.Submissions, reviewer)
}

func (f *Funding) getReview(id, index, submission uint64, reviewer vf.Address) (*Review, error) {
	r, err := f.reviews.Get(reviewKey(id, index, submission, reviewer))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get review")
	}
	return r, nil
}

// loadMilestone loads an existing project and one of its milestones.
func (f *Funding) loadMilestone(id, index uint64) (*Project, *Milestone, error) {
	p, err := f.GetProject(id)
	if err != nil {
		return nil, nil, err
	}
	if !p.Exists() {
		return nil, nil, reverts.New(reverts.InvalidProject, "project %d not found", id)
	}
	if index >= p.MilestoneCount {
		return nil, nil, reverts.New(reverts.InvalidMilestone, "project %d has %d milestones", id, p.MilestoneCount)
	}
	m, err := f.GetMilestone(id, index)
	if err != nil {
		return nil, nil, err
	}
	return p, m, nil
}

// CreateProject registers a project with ordered milestones.
func (f *Funding) CreateProject(
	sender vf.Address,
	now uint64,
	metadataHash vf.Bytes32,
	fundingToken vf.Address,
	descriptions []string,
	percentages []uint64,
	deadlines []uint64,
) (uint64, error) {
	release, err := f.enter()
	if err != nil {
		return 0, err
	}
	defer release()

	n := len(descriptions)
	if n < vf.MinMilestones || n > vf.MaxMilestones {
		return 0, reverts.New(reverts.InvalidArgument, "milestone count %d out of [%d, %d]", n, vf.MinMilestones, vf.MaxMilestones)
	}
	if len(percentages) != n || len(deadlines) != n {
		return 0, reverts.New(reverts.InvalidArgument, "milestone arrays differ in length")
	}
	var sum uint64
	for i := range n {
		if percentages[i] == 0 || percentages[i] > vf.TotalPercentage {
			return 0, reverts.New(reverts.InvalidArgument, "milestone %d percentage %d", i, percentages[i])
		}
		sum += percentages[i]
		if deadlines[i] <= now {
			return 0, reverts.New(reverts.InvalidArgument, "milestone %d deadline is not in the future", i)
		}
		if i > 0 && deadlines[i] <= deadlines[i-1] {
			return 0, reverts.New(reverts.InvalidArgument, "milestone deadlines must be strictly increasing")
		}
		if deadlines[i]+vf.AutoReleaseDelay < deadlines[i] {
			return 0, reverts.New(reverts.InvalidArgument, "milestone %d deadline overflows", i)
		}
	}
	if sum != vf.TotalPercentage {
		return 0, reverts.New(reverts.InvalidArgument, "percentages sum to %d", sum)
	}

	id, err := f.projectCount.Increment()
	if err != nil {
		return 0, errors.Wrap(err, "failed to increment project count")
	}
	p := &Project{
		ID:              id,
		Creator:         sender,
		MetadataHash:    metadataHash,
		FundingToken:    fundingToken,
		TotalFunding:    new(big.Int),
		ReleasedFunding: new(big.Int),
		MilestoneCount:  uint64(n),
		Active:          true,
		CreatedAt:       now,
	}
	if err := f.setProject(p); err != nil {
		return 0, err
	}
	for i := range n {
		m := &Milestone{
			Description:       descriptions[i],
			FundingPercentage: percentages[i],
			FundingAmount:     new(big.Int),
			Deadline:          deadlines[i],
			Status:            Pending,
			AutoReleaseTime:   deadlines[i] + vf.AutoReleaseDelay,
		}
		if err := f.setMilestone(id, uint64(i), m); err != nil {
			return 0, err
		}
	}

	logger.Info("project created", "project", id, "creator", sender, "milestones", n)
	return id, f.ctx.Emit("ProjectCreated", &projectCreatedEvent{
		ProjectID:    id,
		Creator:      sender,
		MetadataHash: metadataHash,
		FundingToken: fundingToken,
		Milestones:   uint64(n),
	}, vf.Uint64ToBytes32(id), vf.BytesToBytes32(sender.Bytes()))
}

// FundProject moves amount of the project's token from sender into escrow
// and recomputes the milestone amounts.
func (f *Funding) FundProject(sender vf.Address, now, id uint64, amount *big.Int) error {
	release, err := f.enter()
	if err != nil {
		return err
	}
	defer release()

	if amount == nil || amount.Sign() <= 0 {
		return reverts.New(reverts.InvalidArgument, "amount must be positive")
	}
	p, err := f.GetProject(id)
	if err != nil {
		return err
	}
	if !p.Exists() || !p.Active {
		return reverts.New(reverts.InvalidProject, "project %d is not active", id)
	}

	ms := make([]*Milestone, p.MilestoneCount)
	for i := range ms {
		if ms[i], err = f.GetMilestone(id, uint64(i)); err != nil {
			return err
		}
		if ms[i].Status != Pending {
			return reverts.New(reverts.FundingLocked, "milestone %d is %v", i, ms[i].Status)
		}
	}

	if err := f.vault.Transfer(p.FundingToken, sender, f.Address(), amount); err != nil {
		return err
	}
	p.TotalFunding = new(big.Int).Add(p.TotalFunding, amount)

	// the rounding remainder goes to the last milestone
	remaining := new(big.Int).Set(p.TotalFunding)
	for i, m := range ms {
		if i == len(ms)-1 {
			m.FundingAmount = remaining
		} else {
			m.FundingAmount = new(big.Int).Mul(p.TotalFunding, new(big.Int).SetUint64(m.FundingPercentage))
			m.FundingAmount.Div(m.FundingAmount, big.NewInt(vf.TotalPercentage))
			remaining.Sub(remaining, m.FundingAmount)
		}
		if err := f.setMilestone(id, uint64(i), m); err != nil {
			return err
		}
	}
	if err := f.setProject(p); err != nil {
		return err
	}

	return f.ctx.Emit("ProjectFunded", &projectFundedEvent{
		ProjectID:    id,
		Funder:       sender,
		Amount:       amount.String(),
		TotalFunding: p.TotalFunding.String(),
	}, vf.Uint64ToBytes32(id), vf.BytesToBytes32(sender.Bytes()))
}

// SubmitMilestone puts a milestone under review and draws its panel. Creator only.
// A rejected milestone may be submitted again with a fresh panel.
func (f *Funding) SubmitMilestone(sender vf.Address, now, id, index uint64, deliverableHash vf.Bytes32) error {
	release, err := f.enter()
	if err != nil {
		return err
	}
	defer release()

	p, m, err := f.loadMilestone(id, index)
	if err != nil {
		return err
	}
	if sender != p.Creator {
		return reverts.New(reverts.Unauthorized, "only the creator submits milestones")
	}
	if !p.Active {
		return reverts.New(reverts.InvalidProject, "project %d is not active", id)
	}
	if m.Status != Pending && m.Status != Rejected {
		return reverts.New(reverts.InvalidMilestoneStatus, "milestone is %v", m.Status)
	}
	if deliverableHash.IsZero() {
		return reverts.New(reverts.InvalidArgument, "empty deliverable hash")
	}

	candidates, err := f.eligibleReviewers(p.Creator)
	if err != nil {
		return err
	}
	size := min(max(PanelSize.Get(f.ctx), vf.MinReviewers), vf.MaxPanelSize)
	panel := sanitizePanel(f.assigner.Assign(panelSeed(id, index, now), candidates, int(size)), candidates, int(size))
	if len(panel) < vf.MinReviewers {
		return reverts.New(reverts.InsufficientReviewers, "%d eligible reviewers", len(panel))
	}

	m.DeliverableHash = deliverableHash
	m.Status = InReview
	m.SubmissionTime = now
	m.AssignedReviewers = panel
	m.ApprovalCount = 0
	m.RejectionCount = 0
	m.Submissions++
	if err := f.setMilestone(id, index, m); err != nil {
		return err
	}

	logger.Debug("milestone submitted", "project", id, "index", index, "panel", len(panel))
	return f.ctx.Emit("MilestoneSubmitted", &milestoneSubmittedEvent{
		ProjectID:       id,
		Index:           index,
		DeliverableHash: deliverableHash,
		Reviewers:       panel,
	}, vf.Uint64ToBytes32(id), vf.Uint64ToBytes32(index))
}

// ReviewMilestone records the verdict of a panel member.
// The milestone is approved once the approvals reach the quorum.
func (f *Funding) ReviewMilestone(sender vf.Address, now, id, index uint64, approved bool, comments string) error {
	release, err := f.enter()
	if err != nil {
		return err
	}
	defer release()

	_, m, err := f.loadMilestone(id, index)
	if err != nil {
		return err
	}
	isReviewer, err := f.access.HasCapability(sender, access.Reviewer)
	if err != nil {
		return err
	}
	if !isReviewer || !m.HasReviewer(sender) {
		return reverts.New(reverts.UnauthorizedReviewer, "%v is not on the panel", sender)
	}
	if m.Status != InReview {
		return reverts.New(reverts.InvalidMilestoneStatus, "milestone is %v", m.Status)
	}
	review, err := f.getReview(id, index, m.Submissions, sender)
	if err != nil {
		return err
	}
	if review.Reviewed {
		return reverts.New(reverts.AlreadyReviewed, "%v", sender)
	}

	review.Reviewed = true
	review.Approved = approved
	review.Comments = comments
	review.Time = now
	if err := f.reviews.Set(reviewKey(id, index, m.Submissions, sender), review); err != nil {
		return errors.Wrap(err, "failed to set review")
	}

	if approved {
		m.ApprovalCount++
	} else {
		m.RejectionCount++
	}
	stake, err := f.GetStake(sender)
	if err != nil {
		return err
	}
	stake.TotalReviews++
	if err := f.setStake(sender, stake); err != nil {
		return err
	}

	if err := f.ctx.Emit("MilestoneReviewed", &milestoneReviewedEvent{
		ProjectID: id,
		Index:     index,
		Reviewer:  sender,
		Approved:  approved,
		Comments:  comments,
	}, vf.Uint64ToBytes32(id), vf.BytesToBytes32(sender.Bytes())); err != nil {
		return err
	}

	if m.ApprovalCount >= m.RequiredApprovals() {
		m.Status = Approved
		if err := f.ctx.Emit("MilestoneApproved", &milestoneStatusEvent{id, index, Approved}, vf.Uint64ToBytes32(id)); err != nil {
			return err
		}
	}
	return f.setMilestone(id, index, m)
}

// RejectMilestone marks an InReview milestone Rejected once the whole panel voted
// without reaching the quorum. Admin only.
func (f *Funding) RejectMilestone(sender vf.Address, now, id, index uint64) error {
	release, err := f.enter()
	if err != nil {
		return err
	}
	defer release()

	if err := f.access.Require(sender, access.Admin); err != nil {
		return err
	}
	_, m, err := f.loadMilestone(id, index)
	if err != nil {
		return err
	}
	if m.Status != InReview {
		return reverts.New(reverts.InvalidMilestoneStatus, "milestone is %v", m.Status)
	}
	if m.ApprovalCount+m.RejectionCount < uint64(len(m.AssignedReviewers)) {
		return reverts.New(reverts.InvalidMilestoneStatus, "review is still in progress")
	}

	m.Status = Rejected
	if err := f.setMilestone(id, index, m); err != nil {
		return err
	}
	if err := f.rewardPanel(id, index, m, false); err != nil {
		return err
	}
	return f.ctx.Emit("MilestoneRejected", &milestoneStatusEvent{id, index, Rejected}, vf.Uint64ToBytes32(id))
}

// ReleaseMilestoneFunds pays an approved milestone out of escrow, or an InReview one
// whose auto-release time has passed. Anyone may call it.
func (f *Funding) ReleaseMilestoneFunds(sender vf.Address, now, id, index uint64) error {
	release, err := f.enter()
	if err != nil {
		return err
	}
	defer release()

	p, m, err := f.loadMilestone(id, index)
	if err != nil {
		return err
	}

	auto := false
	switch m.Status {
	case Released:
		return reverts.New(reverts.AlreadyReleased, "milestone %d of project %d", index, id)
	case Approved:
	case InReview:
		if now <= m.AutoReleaseTime {
			return reverts.New(reverts.InvalidMilestoneStatus, "milestone is in review until %d", m.AutoReleaseTime)
		}
		auto = true
		m.Status = Approved
		if err := f.ctx.Emit("MilestoneApproved", &milestoneStatusEvent{id, index, Approved}, vf.Uint64ToBytes32(id)); err != nil {
			return err
		}
	default:
		return reverts.New(reverts.InvalidMilestoneStatus, "milestone is %v", m.Status)
	}

	amount := m.FundingAmount
	fee := new(big.Int)
	treasury, err := f.Treasury()
	if err != nil {
		return err
	}
	if !treasury.IsZero() {
		rate := PlatformFeeRate.Get(f.ctx)
		if rate > vf.FeeDenominator {
			rate = vf.FeeDenominator
		}
		fee.Mul(amount, new(big.Int).SetUint64(rate))
		fee.Div(fee, new(big.Int).SetUint64(vf.FeeDenominator))
	}
	payout := new(big.Int).Sub(amount, fee)

	m.Status = Released
	if err := f.setMilestone(id, index, m); err != nil {
		return err
	}
	p.ReleasedFunding = new(big.Int).Add(p.ReleasedFunding, amount)
	if p.ReleasedFunding.Cmp(p.TotalFunding) > 0 {
		return errors.New("released funding exceeds total funding")
	}
	if done, err := f.allReleased(p); err != nil {
		return err
	} else if done {
		p.Active = false
	}
	if err := f.setProject(p); err != nil {
		return err
	}

	if err := f.vault.Transfer(p.FundingToken, f.Address(), p.Creator, payout); err != nil {
		return err
	}
	if err := f.vault.Transfer(p.FundingToken, f.Address(), treasury, fee); err != nil {
		return err
	}
	if err := f.rewardPanel(id, index, m, true); err != nil {
		return err
	}

	logger.Info("milestone released", "project", id, "index", index, "amount", amount, "fee", fee, "auto", auto)
	return f.ctx.Emit("MilestoneReleased", &milestoneReleasedEvent{
		ProjectID:   id,
		Index:       index,
		Creator:     p.Creator,
		Amount:      payout.String(),
		PlatformFee: fee.String(),
		AutoRelease: auto,
	}, vf.Uint64ToBytes32(id), vf.Uint64ToBytes32(index))
}

func (f *Funding) allReleased(p *Project) (bool, error) {
	for i := range p.MilestoneCount {
		m, err := f.GetMilestone(p.ID, i)
		if err != nil {
			return false, err
		}
		if m.Status != Released {
			return false, nil
		}
	}
	return true, nil
}

// rewardPanel credits the panel members whose verdict matched the outcome.
func (f *Funding) rewardPanel(id, index uint64, m *Milestone, approved bool) error {
	for _, reviewer := range m.AssignedReviewers {
		review, err := f.getReview(id, index, m.Submissions, reviewer)
		if err != nil {
			return err
		}
		if !review.Reviewed || review.Approved != approved {
			continue
		}
		stake, err := f.GetStake(reviewer)
		if err != nil {
			return err
		}
		stake.SuccessfulReviews++
		if err := f.setStake(reviewer, stake); err != nil {
			return err
		}
	}
	return nil
}

func nameToSlot(name string) vf.Bytes32 {
	return vf.BytesToBytes32([]byte(name))
}
