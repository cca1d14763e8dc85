package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agent-rules/rules/internal/platform"
)

// State classifies one mirrored path at inspection time.
type State string

const (
	StateLinked   State = "linked"   // symlink resolves to the source file
	StateMissing  State = "missing"  // no entry at the destination
	StateConflict State = "conflict" // entry exists but is not our link
	StateBroken   State = "broken"   // symlink whose target no longer exists
)

// TaskStatus is the inspection result for one task.
type TaskStatus struct {
	Task
	State State
}

// Summary counts tasks per state.
type Summary struct {
	Linked   int
	Missing  int
	Conflict int
	Broken   int
}

// Status classifies every task against the target tree. It mutates nothing;
// the expected link set is always recomputed from the source tree, never
// recorded anywhere.
func Status(tasks []Task) ([]TaskStatus, Summary, error) {
	statuses := make([]TaskStatus, 0, len(tasks))
	var sum Summary

	for _, t := range tasks {
		state, err := classify(t)
		if err != nil {
			return statuses, sum, err
		}

		switch state {
		case StateLinked:
			sum.Linked++
		case StateMissing:
			sum.Missing++
		case StateConflict:
			sum.Conflict++
		case StateBroken:
			sum.Broken++
		}
		statuses = append(statuses, TaskStatus{Task: t, State: state})
	}

	return statuses, sum, nil
}

// classify inspects a single destination entry.
func classify(t Task) (State, error) {
	info, err := os.Lstat(t.Dest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StateMissing, nil
		}
		return "", fmt.Errorf("inspecting %s: %w", t.Dest, err)
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return StateConflict, nil
	}

	target, err := platform.ReadSymlinkTarget(t.Dest)
	if err != nil {
		return StateConflict, nil
	}
	if target == t.Source {
		return StateLinked, nil
	}

	// Points elsewhere: a dangling target is broken, a live one conflicts.
	resolved := target
	if !filepath.IsAbs(target) {
		resolved = filepath.Join(filepath.Dir(t.Dest), target)
	}
	if _, err := os.Stat(resolved); err != nil {
		return StateBroken, nil
	}
	return StateConflict, nil
}
