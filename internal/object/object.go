// Package object holds the render objects animated by a scene: a common
// three-operation contract and the flat, orbit and globe motion models.
package object

import (
	"errors"
	"fmt"
	"strings"

	"go-canvimation/internal/canvas"
	"go-canvimation/internal/utils"
)

// RenderObject is one independently animated entity.
type RenderObject interface {
	// Update advances the motion state by one tick.
	Update()
	// Draw paints the current state. ctx is borrowed for the call only.
	Draw(ctx canvas.Context)
	// ResizeUpdate renormalizes the state to new surface bounds.
	// Note the order: height first.
	ResizeUpdate(height, width float64)
}

// Factory builds a render object for a surface of the given logical size.
type Factory func(width, height float64) RenderObject

// Kind selects a render object variant.
type Kind string

const (
	KindFlat  Kind = "flat"
	KindOrbit Kind = "orbit"
	KindGlobe Kind = "globe"
)

// ErrUnknownKind is returned for unrecognized variant names.
var ErrUnknownKind = errors.New("unknown render object class")

var kindAliases = map[string]Kind{
	"flat":     KindFlat,
	"flatdot":  KindFlat,
	"dot":      KindFlat,
	"orbit":    KindOrbit,
	"orbitdot": KindOrbit,
	"circle":   KindOrbit,
	"globe":    KindGlobe,
	"globedot": KindGlobe,
	"sphere":   KindGlobe,
}

// Kinds lists the supported variants.
func Kinds() []Kind {
	return []Kind{KindFlat, KindOrbit, KindGlobe}
}

// ParseKind resolves a variant name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// NewFactory returns the constructor for kind. All objects built by it draw
// their random state from rng.
func NewFactory(kind Kind, rng *utils.PRNGService) (Factory, error) {
	switch kind {
	case KindFlat:
		return func(w, h float64) RenderObject { return NewFlatDot(w, h, rng) }, nil
	case KindOrbit:
		return func(w, h float64) RenderObject { return NewOrbitDot(w, h, rng) }, nil
	case KindGlobe:
		return func(w, h float64) RenderObject { return NewGlobeDot(w, h, rng) }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}

// bounds is the surface size snapshot every variant keeps.
type bounds struct {
	width, height float64
}

// Bounds returns the surface size the object last saw.
func (b *bounds) Bounds() (width, height float64) {
	return b.width, b.height
}
