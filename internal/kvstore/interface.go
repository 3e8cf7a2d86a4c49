package kvstore

// KV is the persistent string-valued key-value store that backs the
// tournament data and UI preferences.
type KV interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}
