package domain

// Range is a closed display interval on one axis
type Range struct {
	Min float64
	Max float64
}

// Annotation marks a point on a trace with a text label and an arrow
type Annotation struct {
	X    float64
	Y    float64
	Text string
}

// Trace is one reflectance curve on the chart
type Trace struct {
	Name           string
	X              []float64
	Y              []float64
	VisibleAverage float64
	Annotation     Annotation
}

// Chart is the renderer-independent description of a spectral plot
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	XRange Range
	YRange Range
	Traces []Trace
}
