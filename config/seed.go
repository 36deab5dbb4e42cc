package config

import (
	"errors"
	"fmt"

	"taskgrapher/task"
)

// ErrSeedCapacity is returned when a seed tree has more children under one
// task than the graph's fan-out cap allows.
var ErrSeedCapacity = errors.New("seed exceeds child cap")

// Build creates the seed tree in g and returns its root. On error g keeps
// the tasks created so far.
func (s SeedTask) Build(g *task.Graph) (*task.Node, error) {
	var opts []task.NodeOption
	if s.DueDate != "" {
		d, err := task.ParseDate(s.DueDate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, task.WithDueDate(d))
	}
	if s.DueTime != "" {
		tod, err := task.ParseTimeOfDay(s.DueTime)
		if err != nil {
			return nil, err
		}
		opts = append(opts, task.WithDueTime(tod))
	}

	n, err := g.New(s.Label, opts...)
	if err != nil {
		return nil, fmt.Errorf("seed %q: %w", s.Label, err)
	}
	for _, cs := range s.Children {
		child, err := cs.Build(g)
		if err != nil {
			return nil, err
		}
		if !g.Attach(n, child) {
			return nil, fmt.Errorf("%w: %q under %q", ErrSeedCapacity, cs.Label, s.Label)
		}
	}
	return n, nil
}
