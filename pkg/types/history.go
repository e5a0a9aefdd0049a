package types

// HistoryFilter narrows a HistoryLog.List query. Zero values mean no filter.
type HistoryFilter struct {
	Category string
	Limit    int
}

// HistoryLog records successful conversions. Callers attach to a backend,
// record and list conversions, and detach when done.
type HistoryLog interface {
	// Attach opens the backend described by config. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Record stores c and returns its ID. A new UUID v7 is generated when
	// c.ConversionID is empty.
	Record(c Conversion) (string, error)

	// List returns recorded conversions, newest first.
	List(filter HistoryFilter) ([]Conversion, error)

	// Clear removes every recorded conversion.
	Clear() error
}
