package runner

import (
	"fmt"
	"time"
)

// Mode of an epoch
type Mode int

// Modes
const (
	Train Mode = iota
	Eval
)

func (m Mode) String() string {
	switch m {
	case Train:
		return "Training"
	case Eval:
		return "Validation"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Stats accumulates over the batches of one epoch
type Stats struct {
	TotalLoss float64 `json:"total_loss"`
	Correct   int     `json:"correct"`
	Steps     int     `json:"steps"`
	Examples  int     `json:"examples"`
}

// Loss per step so far, 0 before the first step
func (s Stats) Loss() float64 {
	if s.Steps == 0 {
		return 0
	}
	return s.TotalLoss / float64(s.Steps)
}

// Accuracy in percent of the examples seen so far, 0 before the first example
func (s Stats) Accuracy() float64 {
	if s.Examples == 0 {
		return 0
	}
	return 100 * float64(s.Correct) / float64(s.Examples)
}

// Summary is the final state of an epoch
type Summary struct {
	Mode     Mode          `json:"-"`
	Stats    Stats         `json:"stats"`
	Loss     float64       `json:"loss"`
	Accuracy float64       `json:"accuracy"`
	Duration time.Duration `json:"duration"`
}

func summarize(mode Mode, s Stats, d time.Duration) Summary {
	return Summary{
		Mode:     mode,
		Stats:    s,
		Loss:     s.Loss(),
		Accuracy: s.Accuracy(),
		Duration: d,
	}
}
