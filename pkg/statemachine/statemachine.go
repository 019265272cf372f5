package statemachine

import (
	"context"
	"sync"
)

// StateFn represents a state function following Rob Pike's pattern: it does
// the work of one state and returns the next, or nil when the machine is
// finished.
type StateFn[T any] func(*T) StateFn[T]

// StateMachine drives an entity through its state functions. Observers may
// poll Done and Steps from other goroutines while Run is in progress.
type StateMachine[T any] struct {
	entity  *T
	stateFn StateFn[T]
	steps   int
	mutex   sync.RWMutex
}

// NewStateMachine creates a new state machine for the given entity
func NewStateMachine[T any](entity *T, initialStateFn StateFn[T]) *StateMachine[T] {
	return &StateMachine[T]{
		entity:  entity,
		stateFn: initialStateFn,
	}
}

// Step runs the current state function once and moves to the state it
// returns. It reports false if the machine had already finished.
func (sm *StateMachine[T]) Step() bool {
	sm.mutex.RLock()
	current := sm.stateFn
	sm.mutex.RUnlock()

	if current == nil {
		return false
	}

	next := current(sm.entity)

	sm.mutex.Lock()
	sm.stateFn = next
	sm.steps++
	sm.mutex.Unlock()
	return true
}

// Run steps the machine until a state returns nil or ctx is done. A state
// that is already running is allowed to finish before Run returns.
func (sm *StateMachine[T]) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !sm.Step() {
			return nil
		}
	}
}

// Done reports whether the machine has reached its terminal state.
func (sm *StateMachine[T]) Done() bool {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.stateFn == nil
}

// Steps returns how many state functions have run.
func (sm *StateMachine[T]) Steps() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.steps
}
