package kvstore

// Storage is a string key-value store for client preferences and history.
// Put must be durable before it returns.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Delete(key string) error
	Close() error
}

// Keys persisted by the client.
const (
	KeyTheme        = "theme"
	KeyQueryHistory = "queryHistory"
)
