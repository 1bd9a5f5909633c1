package contracts

// Store is the client-side key-value storage the registration flow
// persists the session payload into.
type Store interface {
	Set(key string, value []byte) error
	// Get returns ok=false without an error when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	Delete(key string) error
}
