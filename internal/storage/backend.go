// Package storage persists best scores for interactive programs.
package storage

// Backend defines the contract for all score persistence mechanisms.
// Higher values are better.
type Backend interface {
	// Best returns the stored value for key, with ok false when there is none.
	Best(key string) (value int, ok bool, err error)

	// Submit records value for key if it beats the stored best, returning
	// the best after the update and whether value replaced it.
	Submit(key string, value int) (best int, improved bool, err error)

	// All returns every stored record.
	All() (map[string]Record, error)

	// Close releases backend resources.
	Close() error
}
