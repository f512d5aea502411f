package vocabsource

import (
	"context"

	"github.com/junyi/vocabflash/internal/vocab"
)

// ClientInterface defines the interface for remote vocabulary source
// operations. This interface enables testability by allowing mock
// implementations.
type ClientInterface interface {
	ListSets(ctx context.Context) ([]SetInfo, error)
	FetchSet(ctx context.Context, setID string) (*vocab.Set, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
