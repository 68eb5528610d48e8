package route

import (
	"sort"

	"github.com/Alia5/routegen/internal/codegen/common"
)

// GroupSet keeps one path-ordered route list per group.
type GroupSet struct {
	groups map[string][]*Meta
}

func NewGroupSet() *GroupSet {
	return &GroupSet{groups: make(map[string][]*Meta)}
}

// Add inserts a verified route. Routes with equal paths are kept in
// insertion order after each other.
func (s *GroupSet) Add(m *Meta) {
	list := s.groups[m.Group]
	i := sort.Search(len(list), func(i int) bool { return list[i].Path > m.Path })
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = m
	s.groups[m.Group] = list
}

// Groups returns the non-empty group names in ascending order.
func (s *GroupSet) Groups() []string {
	return common.SortedKeys(s.groups)
}

// Routes returns the routes of group ordered by path.
func (s *GroupSet) Routes(group string) []*Meta {
	return s.groups[group]
}

// Len returns the total number of routes.
func (s *GroupSet) Len() int {
	n := 0
	for _, l := range s.groups {
		n += len(l)
	}
	return n
}
