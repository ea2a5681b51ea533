// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vf

// Constants of quadratic voting.
const (
	CreditsPerRound     uint64 = 100  // credit budget of one voter in one round.
	MaxVotesPerProposal uint64 = 10   // upper bound of a revealed vote count.
	ScoreScale          uint64 = 1e18 // fixed-point scale applied before the integer square root.
)

// Constants of milestone funding.
const (
	MinMilestones     = 2
	MaxMilestones     = 8
	MinReviewers      = 2
	MaxPanelSize      = 32
	ApprovalThreshold = 66 // percent of the panel.
	TotalPercentage   = 100

	AutoReleaseDelay uint64 = 7 * 24 * 60 * 60 // (unit: second)
	FeeDenominator   uint64 = 10000            // fee rates are expressed in basis points.

	DefaultPanelSize       uint64 = 3
	DefaultPlatformFeeRate uint64 = 250 // 2.5%
)
