package contracts

import "context"

// SessionStore holds serialized session state such as the production
// state blob. Values are read and written wholesale.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
