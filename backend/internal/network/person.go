package network

import (
	"sort"
	"time"
)

// person is the graph's private record. It never leaves the package; readers get a PersonView.
type person struct {
	id         string
	name       string
	attributes Attributes
	friends    map[string]struct{}
	createdAt  time.Time
	updatedAt  time.Time
}

// PersonView is a detached copy of a person at the moment it was read
type PersonView struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Attributes Attributes `json:"attributes"`
	Friends    []string   `json:"friends"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Friendship is one undirected edge, stored with A < B
type Friendship struct {
	A string `json:"a"`
	B string `json:"b"`
}

// Snapshot is a consistent copy of the whole graph
type Snapshot struct {
	People      []PersonView `json:"people"`
	Friendships []Friendship `json:"friendships"`
	TakenAt     time.Time    `json:"taken_at"`
}

func (p *person) view() PersonView {
	return PersonView{
		ID:         p.id,
		Name:       p.name,
		Attributes: p.attributes.Clone(),
		Friends:    p.friendNames(),
		CreatedAt:  p.createdAt,
		UpdatedAt:  p.updatedAt,
	}
}

func (p *person) friendNames() []string {
	names := make([]string, 0, len(p.friends))
	for name := range p.friends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasFriend reports whether name is in the view's friend list
func (v PersonView) HasFriend(name string) bool {
	i := sort.SearchStrings(v.Friends, name)
	return i < len(v.Friends) && v.Friends[i] == name
}
