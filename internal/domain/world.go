package domain

import "sort"

// World is the entity-component store plus the shared event queue. It is
// not safe for concurrent use; the turn pipeline is strictly
// single-threaded (see the engine package).
type World struct {
	nextID EntityID
	alive  map[EntityID]struct{}
	stores [componentKindCount]map[EntityID]any
	queue  []Event
}

func NewWorld() *World {
	w := &World{
		nextID: 1,
		alive:  make(map[EntityID]struct{}),
	}
	for k := range w.stores {
		w.stores[k] = make(map[EntityID]any)
	}
	return w
}

// CreateEntity allocates a fresh id. Ids are monotonic and never reused.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = struct{}{}
	return id
}

// DestroyEntity removes the id from the live set and from every component
// store atomically. Lookups on a destroyed id report absent.
func (w *World) DestroyEntity(id EntityID) {
	if _, ok := w.alive[id]; !ok {
		return
	}
	delete(w.alive, id)
	for k := range w.stores {
		delete(w.stores[k], id)
	}
}

// Alive reports whether the id is in the live-entity set.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.alive[id]
	return ok
}

// Add inserts or overwrites the component of c's type for id.
func (w *World) Add(id EntityID, c any) {
	w.stores[KindOf(c)][id] = c
}

// Remove deletes the component of the given kind for id, if present.
func (w *World) Remove(id EntityID, kind ComponentKind) {
	delete(w.stores[kind], id)
}

// Get returns the component of the given kind, or (nil, false) when the
// entity is unknown or lacks it. It never panics on missing data.
func (w *World) Get(id EntityID, kind ComponentKind) (any, bool) {
	c, ok := w.stores[kind][id]
	return c, ok
}

// Has reports whether id holds ALL the listed component kinds.
func (w *World) Has(id EntityID, kinds ...ComponentKind) bool {
	for _, k := range kinds {
		if _, ok := w.stores[k][id]; !ok {
			return false
		}
	}
	return true
}

// Query returns the ids holding all listed kinds, intersected with the
// live-entity set so stale store entries can never leak out. Results are
// sorted by id: map iteration order would otherwise vary run to run and
// break seed-reproducible turns.
func (w *World) Query(kinds ...ComponentKind) []EntityID {
	var out []EntityID
	if len(kinds) == 0 {
		for id := range w.alive {
			out = append(out, id)
		}
	} else {
		// Walk the smallest store and probe the rest.
		smallest := kinds[0]
		for _, k := range kinds[1:] {
			if len(w.stores[k]) < len(w.stores[smallest]) {
				smallest = k
			}
		}
	scan:
		for id := range w.stores[smallest] {
			if _, ok := w.alive[id]; !ok {
				continue
			}
			for _, k := range kinds {
				if k == smallest {
					continue
				}
				if _, ok := w.stores[k][id]; !ok {
					continue scan
				}
			}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EntitiesAt returns the live entities positioned at (x, y) that also hold
// all the extra kinds, sorted by id.
func (w *World) EntitiesAt(x, y int, kinds ...ComponentKind) []EntityID {
	var out []EntityID
	for id, c := range w.stores[KindPosition] {
		pos := c.(*Position)
		if pos.X != x || pos.Y != y {
			continue
		}
		if _, ok := w.alive[id]; !ok {
			continue
		}
		if !w.Has(id, kinds...) {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Post appends an event to the queue.
func (w *World) Post(ev Event) {
	w.queue = append(w.queue, ev)
}

// DrainEvents returns the queued events and clears the queue. Events posted
// while a drained batch is being processed land in the next batch, never
// the current one.
func (w *World) DrainEvents() []Event {
	events := w.queue
	w.queue = nil
	return events
}

// PendingEvents reports how many events are queued (test helper).
func (w *World) PendingEvents() int {
	return len(w.queue)
}
