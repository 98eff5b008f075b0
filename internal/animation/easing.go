// Package animation moves windows smoothly to their target frames.
package animation

import (
	"math"

	"github.com/1broseidon/tilewm/internal/config"
)

// bakedPoints is the number of pre-baked curve samples.
const bakedPoints = 255

// BezierCurve is a cubic bezier easing curve with pre-baked samples
// for fast lookup. Start (0,0) and end (1,1) are implicit.
type BezierCurve struct {
	points [4][2]float64
	baked  [bakedPoints][2]float64
}

// NewBezierCurve builds a curve from the two inner control points.
func NewBezierCurve(p1x, p1y, p2x, p2y float64) *BezierCurve {
	c := &BezierCurve{
		points: [4][2]float64{{0, 0}, {p1x, p1y}, {p2x, p2y}, {1, 1}},
	}
	c.bake()
	return c
}

// springCurve has a slight overshoot then settles.
var springCurve = NewBezierCurve(0.0, 0.75, 0.15, 1.0)

func (c *BezierCurve) bake() {
	for i := 0; i < bakedPoints; i++ {
		t := (float64(i) + 1) / bakedPoints
		c.baked[i] = [2]float64{c.coordForT(t, 0), c.coordForT(t, 1)}
	}
}

func (c *BezierCurve) coordForT(t float64, axis int) float64 {
	t2 := t * t
	t3 := t2 * t
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt

	return mt3*c.points[0][axis] +
		3*t*mt2*c.points[1][axis] +
		3*t2*mt*c.points[2][axis] +
		t3*c.points[3][axis]
}

// YForPoint returns the eased value for a progress x in [0, 1] using a
// binary search over the baked samples.
func (c *BezierCurve) YForPoint(x float64) float64 {
	if x >= 1 {
		return 1
	}
	if x <= 0 {
		return 0
	}

	index := 0
	below := true
	for step := (bakedPoints + 1) / 2; step > 0; step /= 2 {
		if below {
			index += step
		} else {
			index -= step
		}
		if index < 0 {
			index = 0
		} else if index > bakedPoints-1 {
			index = bakedPoints - 1
		}
		below = c.baked[index][0] < x
	}

	lower := index
	if !below || index == bakedPoints-1 {
		lower--
	}
	if lower < 0 {
		lower = 0
	} else if lower > bakedPoints-2 {
		lower = bakedPoints - 2
	}

	lo, hi := c.baked[lower], c.baked[lower+1]
	dx := hi[0] - lo[0]
	if dx <= 1e-6 {
		return lo[1]
	}
	perc := (x - lo[0]) / dx
	if math.IsNaN(perc) || math.IsInf(perc, 0) {
		return lo[1]
	}
	return lo[1] + (hi[1]-lo[1])*perc
}

// Ease applies the configured easing function to a progress value.
func Ease(fn config.EasingFunction, progress float64) float64 {
	t := progress
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	switch fn {
	case config.EaseIn:
		return t * t * t
	case config.EaseOut:
		m := t - 1
		return m*m*m + 1
	case config.EaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		m := 2*t - 2
		return m*m*m/2 + 1
	case config.EaseSpring:
		return springCurve.YForPoint(t)
	default:
		return t
	}
}

// Lerp interpolates between two pixel values, rounding to nearest.
func Lerp(start, end int, t float64) int {
	return int(math.Round(float64(start) + (float64(end)-float64(start))*t))
}
