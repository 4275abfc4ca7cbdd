// Package port holds the interfaces the services depend on. Adapters implement them.
package port

import "errors"

// ErrNotFound is wrapped by adapters when a lookup or targeted write matches no row.
var ErrNotFound = errors.New("not found")
