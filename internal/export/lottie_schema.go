package export

// Lottie JSON schema, reduced to the subset this exporter emits:
// shape layers holding groups of primitive shapes and fills, with
// keyframed layer transforms. Field names follow the bodymovin wire
// format, hence the terse JSON tags.

const lottieVersion = "5.7.1"

const shapeLayerType = 4

type lottieAnimation struct {
	Version   string         `json:"v"`
	Framerate float64        `json:"fr"`
	InPoint   float64        `json:"ip"`
	OutPoint  float64        `json:"op"`
	Width     int            `json:"w"`
	Height    int            `json:"h"`
	Name      string         `json:"nm"`
	DDD       int            `json:"ddd"`
	Assets    []struct{}     `json:"assets"`
	Layers    []*lottieLayer `json:"layers"`
}

type lottieLayer struct {
	Type      int             `json:"ty"`
	Index     int             `json:"ind"`
	Name      string          `json:"nm"`
	InPoint   float64         `json:"ip"`
	OutPoint  float64         `json:"op"`
	StartTime float64         `json:"st"`
	Transform lottieTransform `json:"ks"`
	Shapes    []*lottieShape  `json:"shapes"`
}

type lottieTransform struct {
	Opacity  *lottieProperty `json:"o,omitempty"`
	Rotation *lottieProperty `json:"r,omitempty"`
	Position *lottieProperty `json:"p,omitempty"`
	Anchor   *lottieProperty `json:"a,omitempty"`
	Scale    *lottieProperty `json:"s,omitempty"`
}

// lottieProperty is either a static value (Animated 0, Value holds the
// raw value) or a keyframed one (Animated 1, Value holds the keyframe
// list).
type lottieProperty struct {
	Animated int `json:"a"`
	Value    any `json:"k"`
}

func staticProp(v any) *lottieProperty {
	return &lottieProperty{Animated: 0, Value: v}
}

func keyframedProp(kfs []lottieKeyframe) *lottieProperty {
	return &lottieProperty{Animated: 1, Value: kfs}
}

type lottieKeyframe struct {
	Frame float64       `json:"t"`
	Start []float64     `json:"s"`
	In    *lottieHandle `json:"i,omitempty"`
	Out   *lottieHandle `json:"o,omitempty"`
}

type lottieHandle struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// lottieShape covers every "ty" this exporter uses: gr groups, rc
// rects, el ellipses, sh free paths, fl fills and tr group transforms.
// Unused fields stay nil and vanish from the JSON.
type lottieShape struct {
	Type      string          `json:"ty"`
	Name      string          `json:"nm,omitempty"`
	Items     []*lottieShape  `json:"it,omitempty"`
	Position  *lottieProperty `json:"p,omitempty"`
	Size      *lottieProperty `json:"s,omitempty"`
	Roundness *lottieProperty `json:"r,omitempty"`
	Anchor    *lottieProperty `json:"a,omitempty"`
	Vertices  *lottieProperty `json:"ks,omitempty"`
	Color     *lottieProperty `json:"c,omitempty"`
	Opacity   *lottieProperty `json:"o,omitempty"`
	Width     *lottieProperty `json:"w,omitempty"`
}

// lottieBezier is the "sh" vertex payload: one contour with cubic
// tangents relative to each vertex.
type lottieBezier struct {
	Closed      bool        `json:"c"`
	InTangents  [][]float64 `json:"i"`
	OutTangents [][]float64 `json:"o"`
	Vertices    [][]float64 `json:"v"`
}
