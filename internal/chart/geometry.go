package chart

// Tier distinguishes primary from secondary gridlines
type Tier string

const (
	TierMajor Tier = "major"
	TierMinor Tier = "minor"
)

// Anchor says which side of a label sits on its gridline position
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Gridline is one axis mark. Vertical gridlines are positioned in pixel
// columns, horizontal ones in pixel rows. A gridline that is not Ruled only
// carries its label.
type Gridline struct {
	Position float64 `json:"position" doc:"Pixel coordinate along the axis"`
	Value    float64 `json:"value" doc:"Axis value (Hz or dB)"`
	Label    string  `json:"label,omitempty" doc:"Label text, empty when labels are off"`
	Tier     Tier    `json:"tier" enum:"major,minor" doc:"Gridline tier"`
	Ruled    bool    `json:"ruled" doc:"Whether a line is drawn across the opposite axis"`
	Anchor   Anchor  `json:"anchor" enum:"start,middle,end" doc:"Label anchor relative to the position"`
}

// Vertex is a plot point in pixel coordinates, y growing downward
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a straight piece of the plot polyline
type Segment struct {
	From Vertex `json:"from"`
	To   Vertex `json:"to"`
}

// Geometry is the complete output of a layout pass
type Geometry struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Vertical   []Gridline `json:"vertical_gridlines"`
	Horizontal []Gridline `json:"horizontal_gridlines"`
	Vertices   []Vertex   `json:"plot_vertices"`
	Segments   []Segment  `json:"plot_segments"`
	// Animate is passed through for the drawing side; layout ignores it.
	Animate bool `json:"animate"`
}

// Options tune a layout pass
type Options struct {
	ShowLabels       bool
	AnimationEnabled bool
}
