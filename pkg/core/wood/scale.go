package wood

import (
	"math"

	"github.com/matzehuels/godswood/pkg/errors"
)

// RawScale returns the radius factor, in units of child spacing, that keeps
// fanout points on a circle at least one unit apart. Fan-outs of zero or one
// need no expansion.
func RawScale(fanout int) float64 {
	if fanout <= 1 {
		return 1.0
	}
	return 1/math.Sin(math.Pi/float64(fanout)) + 1
}

// MaxFanOut returns the largest child count among the nodes at depth d.
// Nodes that no longer resolve are ignored.
func (w *Wood) MaxFanOut(d int) int {
	widest := 0
	for _, id := range w.ByDepth[d] {
		n, ok := w.store.Resolve(id)
		if !ok {
			w.logger.Warn("unresolved node while measuring fan-out", "depth", d, "id", id)
			continue
		}
		widest = max(widest, n.FanOut())
	}
	return widest
}

// ComputeScales fills Scales for every depth from 1 to MaxDepth.
//
// Each depth above the deepest gets RawScale of its widest fan-out; the
// deepest depth gets 1. Scales then compound from the bottom up: every depth
// holds the product of its own raw scale and all deeper ones.
func (w *Wood) ComputeScales() error {
	if w.MaxDepth < 1 {
		return errors.New(errors.ErrCodeStructural, "wood has no assigned depths")
	}

	scales := make(map[int]float64, w.MaxDepth)
	for d := 1; d < w.MaxDepth; d++ {
		scales[d] = RawScale(w.MaxFanOut(d))
		w.logger.Debug("raw scale", "depth", d, "scale", scales[d])
	}
	scales[w.MaxDepth] = 1.0

	acc := 1.0
	for d := w.MaxDepth - 1; d >= 1; d-- {
		scales[d] *= acc
		acc = scales[d]
	}

	w.Scales = scales
	return nil
}

// Radius returns the ring radius used for the children of a node at depth d.
func (w *Wood) Radius(d int) float64 {
	s, ok := w.Scales[d]
	if !ok {
		s = 1.0
	}
	return s * w.BaseScale
}
