package effects

import (
	"fmt"

	"github.com/ivlev/svgmotion/internal/analyzer"
	"github.com/ivlev/svgmotion/internal/config"
)

// Keyframe is a single timed value on an animated property. Frame is
// in output frame units, not seconds.
type Keyframe struct {
	Frame float64
	Value float64
	Eased bool // easing applies on the segment leaving this keyframe
}

// Track animates one property of one element over the timeline.
// Property names follow the SVG attribute vocabulary ("opacity",
// "scale"); exporters map them to their own schema.
type Track struct {
	Property  string
	Keyframes []Keyframe
}

// Element is a fully scheduled animation unit: the structural unit it
// came from plus the tracks that drive it.
type Element struct {
	Unit   analyzer.Unit
	Start  float64 // frame at which the element begins animating
	Tracks []Track
}

// Effect generates the tracks for one unit given its stagger offset
// and the global timeline length.
type Effect interface {
	Name() string
	Tracks(start, lastFrame float64, eased bool) []Track
}

// NewEffect creates an effect by variant name.
func NewEffect(variant string) (Effect, error) {
	switch variant {
	case "fade", "":
		return &FadeEffect{}, nil
	case "scale":
		return &ScaleEffect{}, nil
	case "draw":
		return nil, fmt.Errorf("draw effect not yet implemented")
	default:
		return nil, fmt.Errorf("unknown effect variant: %s", variant)
	}
}

// FadeEffect fades each element in from fully transparent.
type FadeEffect struct{}

func (e *FadeEffect) Name() string { return "fade" }

func (e *FadeEffect) Tracks(start, lastFrame float64, eased bool) []Track {
	return []Track{ramp("opacity", start, lastFrame, eased)}
}

// ScaleEffect grows each element from nothing to full size around its
// own center, fading in alongside so the first frames are not a
// distracting dot.
type ScaleEffect struct{}

func (e *ScaleEffect) Name() string { return "scale" }

func (e *ScaleEffect) Tracks(start, lastFrame float64, eased bool) []Track {
	return []Track{
		ramp("scale", start, lastFrame, eased),
		ramp("opacity", start, lastFrame, eased),
	}
}

// ramp builds a 0-to-1 track starting at frame start and completing at
// lastFrame. When the timeline is too short to animate the track
// degenerates to a single full-value keyframe.
func ramp(property string, start, lastFrame float64, eased bool) Track {
	if lastFrame <= start {
		return Track{Property: property, Keyframes: []Keyframe{{Frame: 0, Value: 1}}}
	}
	return Track{Property: property, Keyframes: []Keyframe{
		{Frame: start, Value: 0, Eased: eased},
		{Frame: lastFrame, Value: 1},
	}}
}

// Synthesize schedules all units on the shared timeline. Element i
// starts at frame i*F/(n+1), so starts are strictly increasing and the
// last element still gets a meaningful portion of the timeline. With a
// single frame the output is static: every track holds its final
// value.
func Synthesize(units []analyzer.Unit, cfg config.Animation, effect Effect) []Element {
	n := len(units)
	elements := make([]Element, 0, n)
	if n == 0 {
		return elements
	}
	lastFrame := float64(cfg.NFrames - 1)
	eased := cfg.Easing == "ease-in-out"
	for i, unit := range units {
		start := float64(i) * float64(cfg.NFrames) / float64(n+1)
		if cfg.NFrames < 2 {
			start = 0
		}
		elements = append(elements, Element{
			Unit:   unit,
			Start:  start,
			Tracks: effect.Tracks(start, lastFrame, eased),
		})
	}
	return elements
}

// ValueAt evaluates a track at the given frame by interpolating
// between the surrounding keyframes. Before the first keyframe the
// first value holds, after the last the last value holds.
func (tr Track) ValueAt(frame float64) float64 {
	kfs := tr.Keyframes
	if len(kfs) == 0 {
		return 0
	}
	if frame <= kfs[0].Frame {
		return kfs[0].Value
	}
	if frame >= kfs[len(kfs)-1].Frame {
		return kfs[len(kfs)-1].Value
	}
	for i := 0; i < len(kfs)-1; i++ {
		if frame >= kfs[i].Frame && frame < kfs[i+1].Frame {
			span := kfs[i+1].Frame - kfs[i].Frame
			t := (frame - kfs[i].Frame) / span
			if kfs[i].Eased {
				t = easeInOut(t)
			}
			return lerp(kfs[i].Value, kfs[i+1].Value, t)
		}
	}
	return kfs[len(kfs)-1].Value
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeInOut is the cubic-bezier(0.42, 0, 0.58, 1) approximation: slow
// start, slow finish.
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}
