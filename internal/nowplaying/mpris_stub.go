//go:build !linux

package nowplaying

import (
	"context"
	"errors"
)

var errMPRISUnsupported = errors.New("mpris is only available on linux")

// MPRIS is unavailable on non-Linux platforms.
type MPRIS struct{}

// NewMPRIS always fails on non-Linux platforms.
func NewMPRIS(_ string) (*MPRIS, error) {
	return nil, errMPRISUnsupported
}

func (m *MPRIS) Name() string { return "mpris" }

func (m *MPRIS) Close() error { return nil }

func (m *MPRIS) Sample(context.Context) (*Sample, error) { return nil, errMPRISUnsupported }

func (m *MPRIS) Pause(context.Context) error { return errMPRISUnsupported }

func (m *MPRIS) Resume(context.Context) error { return errMPRISUnsupported }

func (m *MPRIS) Skip(context.Context, Direction) error { return errMPRISUnsupported }
