package ioinput

import (
	"github.com/cheggaaa/pb/v3"
)

// progressBar is the small slice of pb's API used here; it allows
// tests to run without a terminal.
type progressBar interface {
	Increment() *pb.ProgressBar
	Finish() *pb.ProgressBar
}

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(total int, prefix string) progressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
