// Package collide implements the collision core: an arena of bodies addressed
// by handles, a broad-phase spatial grid, a per-pass pair registry, a
// separating-axis narrow phase, impulse resolution and a speculative contact
// pass that rechecks resolved bodies one step ahead.
//
// Everything here runs on one goroutine. World and Context are not safe for
// concurrent use.
package collide

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is returned when a handle refers to a removed body.
	ErrStaleHandle = errors.New("stale handle")

	// ErrInvalidMass is returned for zero, negative or non-finite mass or inertia.
	ErrInvalidMass = errors.New("invalid mass")

	// ErrImmovablePair is returned when both participants of a contact are
	// immovable, so there is no way to distribute a correction.
	ErrImmovablePair = errors.New("both bodies are immovable")

	// ErrNonFinite is returned when resolution would produce NaN or Inf.
	ErrNonFinite = errors.New("non-finite result")
)

// Handle is a stable reference to a body in a World. The zero Handle never
// refers to a live body.
type Handle struct {
	Index   uint32
	Version uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.Version == 0
}

// String returns "index:version".
func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.Index, h.Version)
}

// Response selects how a body reacts to contacts.
type Response uint8

const (
	// Kinematic bodies get position correction but no impulse.
	Kinematic Response = iota
	// Rigid bodies get position correction plus linear and angular impulse.
	Rigid
	// Sensor bodies are only notified and never physically resolved.
	Sensor
)

// String returns the name used in scene files.
func (r Response) String() string {
	switch r {
	case Kinematic:
		return "kinematic"
	case Rigid:
		return "rigid"
	case Sensor:
		return "sensor"
	default:
		return "unknown"
	}
}

// ParseResponse converts a scene file name into a Response.
func ParseResponse(s string) (Response, bool) {
	switch s {
	case "kinematic", "":
		return Kinematic, true
	case "rigid":
		return Rigid, true
	case "sensor":
		return Sensor, true
	default:
		return Kinematic, false
	}
}

func (r Response) notifyOnly() bool {
	switch r {
	case Sensor:
		return true
	case Kinematic, Rigid:
		return false
	default:
		return false
	}
}

func (r Response) impulse() bool {
	switch r {
	case Rigid:
		return true
	case Kinematic, Sensor:
		return false
	default:
		return false
	}
}
