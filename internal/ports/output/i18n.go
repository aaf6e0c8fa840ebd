package output

// T renders user-facing messages. Notifiers and the CLI depend on it, never
// on a concrete bundle.
type T interface {
	// T returns the message for key in locale, filling placeholders from
	// data. data may be nil.
	T(locale, key string, data map[string]any) string
}
