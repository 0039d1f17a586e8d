package repository

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithInitialCapacity presizes the id index for an expected number of
// arrangements.
func WithInitialCapacity(n int) Option {
	return func(s *TreapStore) {
		if n > 0 {
			s.byID = make(map[string]record, n)
		}
	}
}
