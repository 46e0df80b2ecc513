// Package adminset is the bounded list of principals allowed to administer
// the protocol. The deployer always occupies the first slot.
package adminset

import (
	cons "github.com/ftchann/stableswap-simulator/lib/constants"
	"github.com/ftchann/stableswap-simulator/lib/types"
)

type Set struct {
	members [cons.MaxAdmins]types.Principal
	n       int
}

func New(deployer types.Principal) *Set {
	s := &Set{n: 1}
	s.members[0] = deployer
	return s
}

func (s *Set) Deployer() types.Principal {
	return s.members[0]
}

func (s *Set) Len() int {
	return s.n
}

func (s *Set) IsAdmin(p types.Principal) bool {
	return s.index(p) >= 0
}

func (s *Set) index(p types.Principal) int {
	for i := 0; i < s.n; i++ {
		if s.members[i] == p {
			return i
		}
	}
	return -1
}

// Members returns the admins in insertion order.
func (s *Set) Members() []types.Principal {
	out := make([]types.Principal, s.n)
	copy(out, s.members[:s.n])
	return out
}

func (s *Set) Add(p types.Principal) error {
	if s.IsAdmin(p) {
		return types.ErrDuplicateAdmin.Wrapf("%q", p)
	}
	if s.n == len(s.members) {
		return types.ErrAdminLimitReached.Wrapf("%d admins", s.n)
	}
	s.members[s.n] = p
	s.n++
	return nil
}

// Remove keeps the remaining admins in order.
func (s *Set) Remove(p types.Principal) error {
	i := s.index(p)
	switch {
	case i == 0:
		return types.ErrCannotRemoveDeployer.Wrapf("%q", p)
	case i < 0:
		return types.ErrNotAnAdmin.Wrapf("%q", p)
	}
	copy(s.members[i:s.n], s.members[i+1:s.n])
	s.n--
	s.members[s.n] = ""
	return nil
}
