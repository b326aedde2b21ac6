package main

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below match their sentinel with errors.Is.
var (
	ErrUnreachable    = errors.New("no route between waypoints")
	ErrMissingEdge    = errors.New("baseline references a missing edge")
	ErrConfig         = errors.New("invalid configuration")
	ErrUnknownNode    = errors.New("unknown waypoint")
	ErrUnweighted     = errors.New("graph has not been weighted yet")
	ErrNegativeWeight = errors.New("negative edge weight")
)

// UnreachableError reports that no path exists from From to To under the
// current edge set. It is recoverable: the tick is skipped.
type UnreachableError struct {
	From string
	To   string
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("no route from %q to %q", e.From, e.To)
}

func (e *UnreachableError) Is(target error) bool { return target == ErrUnreachable }

// MissingEdgeError reports a consecutive pair in the baseline sequence that
// has no edge in the graph.
type MissingEdgeError struct {
	From string
	To   string
}

func (e *MissingEdgeError) Error() string {
	return fmt.Sprintf("baseline path needs edge %q -> %q which does not exist", e.From, e.To)
}

func (e *MissingEdgeError) Is(target error) bool { return target == ErrMissingEdge }

// ConfigError identifies the offending entry of a malformed configuration.
type ConfigError struct {
	Entry  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Entry == "" {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config: %s: %s", e.Entry, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErrorf(entry, format string, args ...any) *ConfigError {
	return &ConfigError{Entry: entry, Reason: fmt.Sprintf(format, args...)}
}

// failureReason maps a per-tick error to a short metric label
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrUnreachable):
		return "unreachable"
	case errors.Is(err, ErrNegativeWeight):
		return "negative_weight"
	case errors.Is(err, ErrUnknownNode):
		return "unknown_node"
	case errors.Is(err, ErrUnweighted):
		return "unweighted"
	default:
		return "other"
	}
}
