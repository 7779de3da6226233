// Package query implements the remote-data cache: keyed, deduplicated,
// stale-while-revalidate reads over the backend, and the three-phase
// optimistic mutation contract.
package query

import (
	"encoding/base64"

	"github.com/Mutombe/propdesk/internal/port/backend"
)

// Key identifies one cached query result: a resource name plus the canonical
// encoding of the active filter/pagination parameters.
type Key struct {
	Resource string
	Params   string
}

// ListKey builds the cache key for a filtered list read.
func ListKey(resource string, p backend.ListParams) Key {
	return Key{Resource: resource, Params: p.Encode()}
}

// DetailKey builds the cache key for a single-entity read.
func DetailKey(resource, id string) Key {
	return Key{Resource: resource, Params: "id=" + id}
}

// String returns the store form of the key. Params are base64url-encoded so
// the key stays within the charset shared caches (NATS KV) accept.
func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + "." + base64.RawURLEncoding.EncodeToString([]byte(k.Params))
}
