package storyboard

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/svgmotion/internal/config"
	"github.com/ivlev/svgmotion/internal/effects"
)

// Storyboard is the human-readable schedule of one conversion: which
// element animates what, and when. It round-trips through YAML so a
// schedule can be inspected or diffed between runs.
type Storyboard struct {
	Version   string    `yaml:"version"`
	Input     string    `yaml:"input"`
	NFrames   int       `yaml:"n_frames"`
	Framerate float64   `yaml:"framerate"`
	Effect    string    `yaml:"effect"`
	Elements  []Element `yaml:"elements"`
}

// Element is one scheduled animation unit.
type Element struct {
	Name   string  `yaml:"name"`
	Start  float64 `yaml:"start"` // frame offset
	Tracks []Track `yaml:"tracks"`
}

// Track is one animated property of an element.
type Track struct {
	Property  string     `yaml:"property"`
	Keyframes []Keyframe `yaml:"keyframes"`
}

// Keyframe is a timed value in frame units.
type Keyframe struct {
	Frame float64 `yaml:"frame"`
	Value float64 `yaml:"value"`
	Eased bool    `yaml:"eased,omitempty"`
}

// FromElements captures a synthesized schedule.
func FromElements(input string, cfg config.Animation, effectName string, elements []effects.Element) *Storyboard {
	sb := &Storyboard{
		Version:   "1",
		Input:     input,
		NFrames:   cfg.NFrames,
		Framerate: cfg.Framerate,
		Effect:    effectName,
	}
	for _, el := range elements {
		e := Element{Name: el.Unit.Name, Start: el.Start}
		for _, tr := range el.Tracks {
			t := Track{Property: tr.Property}
			for _, kf := range tr.Keyframes {
				t.Keyframes = append(t.Keyframes, Keyframe{Frame: kf.Frame, Value: kf.Value, Eased: kf.Eased})
			}
			e.Tracks = append(e.Tracks, t)
		}
		sb.Elements = append(sb.Elements, e)
	}
	return sb
}

// Write saves a storyboard to a YAML file.
func Write(sb *Storyboard, path string) error {
	data, err := yaml.Marshal(sb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a storyboard from a YAML file.
func Read(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sb Storyboard
	if err := yaml.Unmarshal(data, &sb); err != nil {
		return nil, err
	}
	return &sb, nil
}
