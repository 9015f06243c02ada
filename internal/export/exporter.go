package export

import (
	"fmt"

	"github.com/ivlev/svgmotion/internal/config"
	"github.com/ivlev/svgmotion/internal/effects"
	"github.com/ivlev/svgmotion/internal/svg"
)

// Artifact is the rendered output of an export plus what was left out
// of it.
type Artifact struct {
	Data []byte
	Ext  string // output extension including the dot
	// Skipped counts source features the format could not express and
	// that were dropped from the output.
	Skipped int
}

// Exporter renders scheduled animation elements into one output format.
type Exporter interface {
	Name() string
	Ext() string
	Export(doc *svg.Document, elements []effects.Element, cfg config.Animation, name string) (*Artifact, error)
}

// UnsupportedFeatureError reports a source feature the target format
// cannot express. It aborts the export only in strict mode; otherwise
// the feature is skipped and counted on the artifact.
type UnsupportedFeatureError struct {
	Feature string
	Node    string
}

func (e *UnsupportedFeatureError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("unsupported feature %s on %s", e.Feature, e.Node)
	}
	return fmt.Sprintf("unsupported feature %s", e.Feature)
}

// NewExporter creates an exporter for the named output format.
func NewExporter(format string, strict bool) (Exporter, error) {
	switch format {
	case "lottie", "json", "":
		return &LottieExporter{Strict: strict}, nil
	case "svg", "smil":
		return &SMILExporter{Strict: strict}, nil
	case "gif":
		return nil, fmt.Errorf("gif exporter not yet implemented")
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
