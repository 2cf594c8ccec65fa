package registry

import (
	"context"
	"fmt"

	"github.com/samcharles93/kernreg/internal/logger"
)

// Unit is an independent piece of registration, typically one operator
// family. Units must not depend on the order they run in.
type Unit interface {
	Name() string
	Register(r *Registry) error
}

// UnitFunc adapts a function to Unit.
type UnitFunc struct {
	UnitName string
	Fn       func(r *Registry) error
}

func (u UnitFunc) Name() string               { return u.UnitName }
func (u UnitFunc) Register(r *Registry) error { return u.Fn(r) }

// Load runs every unit against r and stops at the first failure.
func (r *Registry) Load(ctx context.Context, units ...Unit) error {
	log := logger.FromContext(ctx).With("component", "registry")
	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return err
		}
		before := r.Len()
		if err := u.Register(r); err != nil {
			return fmt.Errorf("registration unit %s: %w", u.Name(), err)
		}
		log.Debug("registration unit loaded", "unit", u.Name(), "operators", r.Len()-before)
	}
	return nil
}

// Build creates a registry from units and freezes it.
func Build(ctx context.Context, units ...Unit) (*Registry, error) {
	r := New()
	if err := r.Load(ctx, units...); err != nil {
		return nil, err
	}
	r.Freeze()
	logger.FromContext(ctx).Info("operator registry ready", "operators", r.Len(), "units", len(units))
	return r, nil
}
