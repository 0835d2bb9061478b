package ports

import "context"

// HealthChecker is one dependency reported by GET /health.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}

// Probe adapts a ping function to HealthChecker.
type Probe struct {
	Dependency string
	Check      func(ctx context.Context) error
}

func (p Probe) Ping(ctx context.Context) error { return p.Check(ctx) }

func (p Probe) Name() string { return p.Dependency }
