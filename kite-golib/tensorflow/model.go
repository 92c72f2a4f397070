//go:build tensorflow

package tensorflow

import (
	"os"

	"github.com/kiteco/deepset/kite-golib/errors"
	tf "github.com/kiteco/tensorflow/tensorflow/go"
)

// Model wraps a Tensorflow graph and its session
type Model struct {
	opts    Options
	session *tf.Session
	graph   *tf.Graph

	// RunCallback, if set, is called whenever Run is called
	RunCallback RunCallback
}

var _ Runner = (*Model)(nil)

// NewModel loads a serialized GraphDef from the given path. Graphs exported with their
// variables and train op can be trained, frozen graphs only evaluated.
func NewModel(path string, opts Options) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading graph definition")
	}

	graph := tf.NewGraph()
	if err := graph.ImportWithOptions(data, tf.GraphImportOptions{Prefix: opts.Prefix, Device: opts.Device}); err != nil {
		return nil, errors.Wrapf(err, "error importing graph")
	}

	sess, err := tf.NewSession(graph, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating session")
	}
	return &Model{
		opts:    opts,
		session: sess,
		graph:   graph,
	}, nil
}

// Close the session
func (m *Model) Close() error {
	if m.session == nil {
		return nil
	}
	err := m.session.Close()
	m.session, m.graph = nil, nil
	return err
}

// OpExists ...
func (m *Model) OpExists(name string) bool {
	return m.graph.Operation(m.opts.Prefix+name) != nil
}

// Run takes in a map of feed tensors, keyed by the operation names, as well as the operations to fetch
// and to run.
// As output, it returns a map of output operation names to the resulting output tensors.
func (m *Model) Run(feeds map[string]interface{}, fetches, targets []string) (map[string]interface{}, error) {
	res, err := m.run(feeds, fetches, targets)
	if m.RunCallback != nil {
		m.RunCallback(feeds, fetches, targets, res, err)
	}
	return res, err
}

func (m *Model) run(feeds map[string]interface{}, fetches, targets []string) (map[string]interface{}, error) {
	if m.session == nil {
		return nil, errors.Errorf("model is closed")
	}
	tfFeeds := make(map[tf.Output]*tf.Tensor)

	for op, val := range feeds {
		out, err := m.tfOut(op)
		if err != nil {
			return nil, err
		}
		tensor, err := tf.NewTensor(val)
		if err != nil {
			return nil, errors.Wrapf(err, "error creating tensor for value of '%s'", op)
		}
		tfFeeds[out] = tensor
	}

	var tfFetches []tf.Output
	for _, op := range fetches {
		out, err := m.tfOut(op)
		if err != nil {
			return nil, err
		}
		tfFetches = append(tfFetches, out)
	}

	var tfTargets []*tf.Operation
	for _, name := range targets {
		op := m.graph.Operation(m.opts.Prefix + name)
		if op == nil {
			return nil, errors.Errorf("unable to find target op '%s'", name)
		}
		tfTargets = append(tfTargets, op)
	}

	res, err := m.session.Run(tfFeeds, tfFetches, tfTargets)
	if err != nil {
		return nil, errors.Wrapf(err, "error running model")
	}

	out := make(map[string]interface{})
	for i, op := range fetches {
		out[op] = res[i].Value()
	}
	return out, nil
}

func (m *Model) tfOut(opName string) (tf.Output, error) {
	op := m.graph.Operation(m.opts.Prefix + opName)
	if op == nil {
		return tf.Output{}, errors.Errorf("could not find op with name: %s", opName)
	}

	return tf.Output{
		Op:    op,
		Index: 0,
	}, nil
}
