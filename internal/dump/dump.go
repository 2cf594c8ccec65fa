// Package dump controls which operators the runtime dumps. SetDump marks
// primitives with the "dump" attribute; the dump writer, which runs after
// graph compilation, emits tensors only for primitives marked "true".
package dump

import (
	"context"
	"errors"
	"fmt"

	"github.com/samcharles93/kernreg/internal/graph"
	"github.com/samcharles93/kernreg/internal/logger"
)

// Attr is the primitive attribute consumed by the dump writer.
const Attr = "dump"

const (
	DeviceAscend = "Ascend"
	GraphMode    = "GRAPH_MODE"
	PyNativeMode = "PYNATIVE_MODE"
)

var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidArgument      = errors.New("invalid argument")
)

// Environment is the execution context SetDump checks against.
type Environment struct {
	DeviceTarget string
	Mode         string
	// Security is set in restricted builds, where dump is disabled.
	Security bool
}

// SetDump sets the dump flag of target and, when target is a cell, of
// every primitive member of it and its descendant cells. Unset primitive
// members are skipped.
//
// A device target other than Ascend or a mode other than GRAPH_MODE only
// logs a warning: the flag is read when a graph is compiled, and the
// environment may still change before that happens.
func SetDump(ctx context.Context, env Environment, target graph.Node, enabled bool) error {
	if err := check(env, target); err != nil {
		return err
	}
	warnEnvironment(logger.FromContext(ctx), env)
	n := apply(target, enabled)
	logger.FromContext(ctx).Debug("dump flag set", "target", target.Name(), "enabled", enabled, "primitives", n)
	return nil
}

// SetDumpValue is SetDump for an untyped enabled value, as decoded from a
// request body. Anything but a bool fails with ErrInvalidArgument before any
// primitive is touched.
func SetDumpValue(ctx context.Context, env Environment, target graph.Node, enabled any) error {
	if err := check(env, target); err != nil {
		return err
	}
	on, err := ParseEnabled(enabled)
	if err != nil {
		return err
	}
	return SetDump(ctx, env, target, on)
}

// ParseEnabled accepts a bool or a non-nil *bool. Strings such as "true"
// are not booleans and are rejected.
func ParseEnabled(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case *bool:
		if x != nil {
			return *x, nil
		}
	}
	return false, fmt.Errorf("%w: the \"enabled\" parameter must be bool, got %T", ErrInvalidArgument, v)
}

// CheckSecurity fails with ErrUnsupportedOperation in a security-restricted
// build. Callers that resolve a target first run it before resolving.
func CheckSecurity(env Environment) error {
	if env.Security {
		return fmt.Errorf("%w: dump is not available in a security-restricted build", ErrUnsupportedOperation)
	}
	return nil
}

func check(env Environment, target graph.Node) error {
	if err := CheckSecurity(env); err != nil {
		return err
	}
	switch t := target.(type) {
	case *graph.Cell:
		if t != nil {
			return nil
		}
	case *graph.Primitive:
		if t != nil {
			return nil
		}
	}
	return fmt.Errorf("%w: the \"target\" parameter must be a cell or primitive, got %T", ErrInvalidArgument, target)
}

func warnEnvironment(log logger.Logger, env Environment) {
	if env.DeviceTarget != DeviceAscend {
		log.Warn("dump only takes effect on the Ascend device target; set it before graph compilation",
			"device_target", env.DeviceTarget)
	}
	if env.Mode != GraphMode {
		log.Warn("dump only takes effect in GRAPH_MODE; set it before graph compilation",
			"mode", env.Mode)
	}
}

func apply(target graph.Node, enabled bool) int {
	value := FlagValue(enabled)
	n := 0
	_ = graph.Walk(target, func(_ string, node graph.Node) error {
		if p, ok := node.(*graph.Primitive); ok {
			p.AddAttr(Attr, value)
			n++
		}
		return nil
	})
	return n
}

// FlagValue is the attribute value written for enabled.
func FlagValue(enabled bool) string {
	if enabled {
		return "true"
	}
	return "false"
}
