//go:build !tensorflow

package tensorflow

// Model is unavailable without the "tensorflow" build tag
type Model struct {
	// RunCallback is never called
	RunCallback RunCallback
}

var _ Runner = (*Model)(nil)

// NewModel always fails with ErrUnavailable
func NewModel(path string, opts Options) (*Model, error) {
	return nil, ErrUnavailable
}

// Close ...
func (m *Model) Close() error {
	return nil
}

// OpExists ...
func (m *Model) OpExists(name string) bool {
	return false
}

// Run always fails with ErrUnavailable
func (m *Model) Run(feeds map[string]interface{}, fetches, targets []string) (map[string]interface{}, error) {
	return nil, ErrUnavailable
}
