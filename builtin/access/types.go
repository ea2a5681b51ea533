// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package access

import (
	"github.com/adysingh5711/VeriFund/builtin/reverts"
)

// Capability is a role held by an address.
type Capability string

const (
	Admin    Capability = "admin"
	Reviewer Capability = "reviewer"
)

// ParseCapability parses a capability name.
func ParseCapability(s string) (Capability, error) {
	switch c := Capability(s); c {
	case Admin, Reviewer:
		return c, nil
	default:
		return "", reverts.New(reverts.InvalidArgument, "unknown capability %q", s)
	}
}

type capabilityEvent struct {
	Account    string `json:"account"`
	Capability string `json:"capability"`
	Sender     string `json:"sender"`
}

type pauseEvent struct {
	Sender string `json:"sender"`
}
