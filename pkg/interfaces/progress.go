package interfaces

// ProgressReporter receives fractional progress after every processed item
// during a bulk run.
type ProgressReporter interface {
	Progress(processed, total int, percent float64)
}

// ProgressFunc adapts a plain function to the ProgressReporter contract.
type ProgressFunc func(processed, total int, percent float64)

// Progress implements ProgressReporter.
func (f ProgressFunc) Progress(processed, total int, percent float64) {
	if f != nil {
		f(processed, total, percent)
	}
}
