package text

// Metrics holds font metrics at a specific size, in pixels.
type Metrics struct {
	// Ascent is the distance from the top of the line to the baseline.
	Ascent int

	// Descent is the distance from the baseline to the bottom of the line
	// (positive).
	Descent int

	// Height is the recommended distance between baselines.
	Height int
}
