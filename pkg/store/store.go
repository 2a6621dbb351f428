package store

import (
	"context"

	"github.com/goliatone/go-urlpicker/pkg/picker"
)

// Lister is a field store that can enumerate the fields holding a value.
// Memory and redisstore.Store satisfy it.
type Lister interface {
	picker.Store
	Fields(ctx context.Context) ([]string, error)
}

var _ Lister = (*Memory)(nil)
