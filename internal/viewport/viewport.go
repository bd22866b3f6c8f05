// Package viewport maps image crop/zoom parameters to a presentation
// descriptor. The admin preview and the shopper-facing product grid
// both call Compute so that what an editor previews is exactly what a
// shopper sees.
package viewport

import (
	"fmt"
	"math"
)

const (
	FitContain = "contain"
	FitCover   = "cover"
)

const (
	DefaultPos  = 50.0
	DefaultZoom = 100.0

	MinZoom = 50.0
	MaxZoom = 200.0
)

// View describes how an image should be presented.
type View struct {
	FitMode              string  `json:"fit_mode"`
	ObjectPosition       string  `json:"object_position"`
	Scale                float64 `json:"scale"`
	UseCheckerBackground bool    `json:"use_checker_background"`
}

// Compute derives the presentation descriptor for the given crop
// position (percent) and zoom. The rule is threshold-based: below 100%
// zoom the image is contained and letterboxed areas get a checker
// background so they read as "not part of the image"; at 100% and above
// the image covers the frame.
//
// Inputs are clamped defensively: x and y to [0,100] (NaN falls back to
// 50), zoom to [50,200] (NaN falls back to 100).
func Compute(x, y, zoom float64) View {
	if math.IsNaN(x) {
		x = DefaultPos
	}
	if math.IsNaN(y) {
		y = DefaultPos
	}
	if math.IsNaN(zoom) {
		zoom = DefaultZoom
	}

	x = clamp(x, 0, 100)
	y = clamp(y, 0, 100)
	zoom = clamp(zoom, MinZoom, MaxZoom)

	v := View{
		ObjectPosition: fmt.Sprintf("%g%% %g%%", x, y),
		Scale:          zoom / 100,
	}

	if zoom < DefaultZoom {
		v.FitMode = FitContain
		v.UseCheckerBackground = true
	} else {
		v.FitMode = FitCover
	}

	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
