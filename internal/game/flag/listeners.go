package flag

import (
	"slices"

	"github.com/udisondev/frontline/internal/model"
)

// ListenerID identifies a subscription for RemoveListener.
type ListenerID uint64

type (
	OwnerChangedFunc  func(f *Flag, oldOwner, newOwner model.Team)
	PointsChangedFunc func(f *Flag, oldPoints, newPoints float64)
	DiscoveredFunc    func(f *Flag, team model.Team)
	PlayerFunc        func(f *Flag, p model.Player)
)

type entry[T any] struct {
	id ListenerID
	fn T
}

type listeners struct {
	nextID     ListenerID
	owner      []entry[OwnerChangedFunc]
	points     []entry[PointsChangedFunc]
	discovered []entry[DiscoveredFunc]
	entered    []entry[PlayerFunc]
	left       []entry[PlayerFunc]
}

func (l *listeners) id() ListenerID {
	l.nextID++
	return l.nextID
}

func (l *listeners) clear() {
	*l = listeners{nextID: l.nextID}
}

// OnOwnerChanged subscribes fn to ownership changes.
func (f *Flag) OnOwnerChanged(fn OwnerChangedFunc) ListenerID {
	id := f.listeners.id()
	f.listeners.owner = append(f.listeners.owner, entry[OwnerChangedFunc]{id, fn})
	return id
}

// OnPointsChanged subscribes fn to score changes.
func (f *Flag) OnPointsChanged(fn PointsChangedFunc) ListenerID {
	id := f.listeners.id()
	f.listeners.points = append(f.listeners.points, entry[PointsChangedFunc]{id, fn})
	return id
}

// OnDiscovered subscribes fn to per-team discovery.
func (f *Flag) OnDiscovered(fn DiscoveredFunc) ListenerID {
	id := f.listeners.id()
	f.listeners.discovered = append(f.listeners.discovered, entry[DiscoveredFunc]{id, fn})
	return id
}

// OnPlayerEntered subscribes fn to players entering the flag.
func (f *Flag) OnPlayerEntered(fn PlayerFunc) ListenerID {
	id := f.listeners.id()
	f.listeners.entered = append(f.listeners.entered, entry[PlayerFunc]{id, fn})
	return id
}

// OnPlayerLeft subscribes fn to players leaving the flag.
func (f *Flag) OnPlayerLeft(fn PlayerFunc) ListenerID {
	id := f.listeners.id()
	f.listeners.left = append(f.listeners.left, entry[PlayerFunc]{id, fn})
	return id
}

// RemoveListener cancels a subscription. Returns false if id is unknown.
func (f *Flag) RemoveListener(id ListenerID) bool {
	l := &f.listeners
	return remove(&l.owner, id) || remove(&l.points, id) || remove(&l.discovered, id) ||
		remove(&l.entered, id) || remove(&l.left, id)
}

// ListenerCount returns the number of active subscriptions.
func (f *Flag) ListenerCount() int {
	l := &f.listeners
	return len(l.owner) + len(l.points) + len(l.discovered) + len(l.entered) + len(l.left)
}

func remove[T any](list *[]entry[T], id ListenerID) bool {
	i := slices.IndexFunc(*list, func(e entry[T]) bool { return e.id == id })
	if i < 0 {
		return false
	}
	// New slice: an emit in progress keeps iterating its own copy.
	*list = slices.Delete(slices.Clone(*list), i, i+1)
	return true
}

// Emitters iterate the slice header taken at call time, so listeners may
// subscribe or unsubscribe from inside a callback.

func (l *listeners) emitOwner(f *Flag, old, next model.Team) {
	for _, e := range l.owner {
		e.fn(f, old, next)
	}
}

func (l *listeners) emitPoints(f *Flag, old, next float64) {
	for _, e := range l.points {
		e.fn(f, old, next)
	}
}

func (l *listeners) emitDiscovered(f *Flag, t model.Team) {
	for _, e := range l.discovered {
		e.fn(f, t)
	}
}

func (l *listeners) emitPlayers(f *Flag, list []entry[PlayerFunc], players []model.Player) {
	for _, p := range players {
		for _, e := range list {
			e.fn(f, p)
		}
	}
}
