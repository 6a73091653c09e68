package network

import (
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// Roster is the avatar-id table used to route inbound messages to
// entities. It is owned by the arena scene; keeping it explicit (rather
// than a package-level registry) keeps entity lifetime and access in
// one place.
type Roster struct {
	entities map[esync.NetworkId]donburi.Entity
}

func NewRoster() *Roster {
	return &Roster{
		entities: make(map[esync.NetworkId]donburi.Entity),
	}
}

func (r *Roster) Add(id esync.NetworkId, e donburi.Entity) {
	r.entities[id] = e
}

func (r *Roster) Lookup(id esync.NetworkId) (donburi.Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

func (r *Roster) Remove(id esync.NetworkId) {
	delete(r.entities, id)
}

// Each calls fn for every registered avatar.
func (r *Roster) Each(fn func(id esync.NetworkId, e donburi.Entity)) {
	for id, e := range r.entities {
		fn(id, e)
	}
}

func (r *Roster) Len() int {
	return len(r.entities)
}
