// Package history keeps the in-session undo stack for task operations.
//
// A Stack only buffers snapshots; it never touches storage. The owner pops
// an Action with Undo and applies the reversal itself. Entries are consumed
// when popped and there is no redo.
package history

import (
	"time"

	"github.com/manav03panchal/smarttask/internal/model"
)

// DefaultMaxDepth is the history length used when none is configured.
const DefaultMaxDepth = 50

// Stack is a LIFO of undoable actions. It is not safe for concurrent use;
// a single controller owns it.
type Stack struct {
	actions  []Action
	maxDepth int
	now      func() time.Time

	// evicted is the entry the latest push dropped. Discard of that push
	// puts it back at the bottom.
	evicted Action
}

// New creates a stack holding at most maxDepth actions. When full, pushing
// evicts the oldest action. maxDepth <= 0 means unbounded.
func New(maxDepth int) *Stack {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Stack{
		maxDepth: maxDepth,
		now:      time.Now,
	}
}

// RecordDelete pushes a DELETE action holding a copy of task. Call it before
// the deletion is committed so the snapshot reflects the stored row.
func (s *Stack) RecordDelete(task model.Task) Action {
	a := &DeleteAction{Task: task.Clone(), at: s.now()}
	s.push(a)
	return a
}

// RecordComplete pushes a COMPLETE action. previous is the status the task
// had before it was marked completed.
func (s *Stack) RecordComplete(task model.Task, previous model.Status) Action {
	a := &CompleteAction{Task: task.Clone(), PreviousStatus: previous, at: s.now()}
	s.push(a)
	return a
}

func (s *Stack) push(a Action) {
	s.evicted = nil
	if s.maxDepth > 0 && len(s.actions) >= s.maxDepth {
		// Drop the oldest entry; clear the slot so the snapshot can be collected.
		s.evicted = s.actions[0]
		s.actions[0] = nil
		s.actions = s.actions[1:]
	}
	s.actions = append(s.actions, a)
}

// Undo pops the most recent action. It returns (nil, false) when there is
// nothing to undo.
func (s *Stack) Undo() (Action, bool) {
	n := len(s.actions)
	if n == 0 {
		return nil, false
	}
	a := s.actions[n-1]
	s.actions[n-1] = nil
	s.actions = s.actions[:n-1]
	s.evicted = nil
	return a, true
}

// Peek returns the action Undo would pop, without consuming it.
func (s *Stack) Peek() (Action, bool) {
	if len(s.actions) == 0 {
		return nil, false
	}
	return s.actions[len(s.actions)-1], true
}

// Discard removes the top action only if it is a. The controller uses it
// when the store operation following a Record call fails. An entry evicted
// by that Record call is restored.
func (s *Stack) Discard(a Action) bool {
	top, ok := s.Peek()
	if !ok || top != a {
		return false
	}
	evicted := s.evicted
	s.Undo()
	if evicted != nil {
		s.actions = append([]Action{evicted}, s.actions...)
	}
	return true
}

// Len returns the number of pending actions.
func (s *Stack) Len() int {
	return len(s.actions)
}

// Cap returns the configured maximum depth, 0 when unbounded.
func (s *Stack) Cap() int {
	return s.maxDepth
}

// Clear empties the stack.
func (s *Stack) Clear() {
	clear(s.actions)
	s.actions = s.actions[:0]
	s.evicted = nil
}
