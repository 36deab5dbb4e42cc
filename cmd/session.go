package cmd

import (
	"fmt"
	"log/slog"

	"taskgrapher/canvas"
	"taskgrapher/config"
	"taskgrapher/editor"
	"taskgrapher/geometry"
	"taskgrapher/layout"
	"taskgrapher/task"
)

// session is one seeded, drawn task graph.
type session struct {
	graph  *task.Graph
	root   *task.Node
	placer layout.Placer
	scene  *canvas.Scene
	editor *editor.Editor
	ctrl   *editor.Controller
}

func newPlacer(cfg *config.Config) layout.Placer {
	if cfg.Layout.Kind == "vertical" {
		v := layout.NewVertical(cfg.View.Width, cfg.View.Height)
		v.SiblingSpacing = cfg.Layout.SiblingSpacing
		v.LevelSpacing = cfg.Layout.LevelSpacing
		return v
	}
	p := layout.NewPolar(cfg.View.Width, cfg.View.Height)
	p.BaseDistance = cfg.Layout.BaseDistance
	p.LevelFactor = cfg.Layout.LevelFactor
	p.AngleIncrement = geometry.Radians(cfg.Layout.AngleIncrementDeg)
	p.SpiralStep = geometry.Radians(cfg.Layout.SpiralStepDeg)
	return p
}

func newSession(cfg *config.Config, logger *slog.Logger) (*session, error) {
	g := task.NewGraph(task.WithLimits(cfg.Graph.MaxChildren, cfg.Graph.MaxParents))
	root, err := cfg.Seed.Build(g)
	if err != nil {
		return nil, fmt.Errorf("building seed tree: %w", err)
	}
	policy, err := editor.ParseDeletePolicy(cfg.View.DeletePolicy)
	if err != nil {
		return nil, err
	}

	placer := newPlacer(cfg)
	scene := canvas.NewScene()
	ed := editor.New(g, scene,
		editor.WithLogger(logger),
		editor.WithNodeRadius(cfg.View.NodeRadius),
		editor.WithNearest(cfg.View.Nearest),
		editor.WithDeletePolicy(policy),
		editor.WithPlacer(placer),
	)
	ed.DrawTree(root)
	if err := ed.Check(); err != nil {
		return nil, err
	}
	logger.Info("session ready", "tasks", g.Len(), "root", root.Value(), "policy", policy.String())

	return &session{
		graph:  g,
		root:   root,
		placer: placer,
		scene:  scene,
		editor: ed,
		ctrl:   editor.NewController(ed, cfg.View.ZoomStep),
	}, nil
}
