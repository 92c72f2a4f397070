// Package tensorflow runs frozen or trainable TensorFlow graphs.
// The implementation links against libtensorflow and is only built with the "tensorflow" build tag.
package tensorflow

import (
	"github.com/kiteco/deepset/kite-golib/errors"
)

// ErrUnavailable is returned when the binary was built without libtensorflow
var ErrUnavailable = errors.New("tensorflow: built without tensorflow support, rebuild with -tags tensorflow")

// Options for loading a graph
type Options struct {
	// Device every op of the graph is placed on, e.g. "/device:GPU:0". Empty keeps the graph's placement.
	Device string
	// Prefix added to the op names on import
	Prefix string
}

// RunCallback is a function that can be called whenever Run is called, with the inputs and results of the model
type RunCallback func(feeds map[string]interface{}, fetches, targets []string, result map[string]interface{}, err error)

// Runner is what callers need from a Model, tests substitute fakes for it
type Runner interface {
	// Run feeds values into named ops, runs the targets and returns the values of the fetches keyed by op name.
	Run(feeds map[string]interface{}, fetches, targets []string) (map[string]interface{}, error)
	OpExists(name string) bool
	Close() error
}
