package inventory

import "context"

// ReplayCache is an advisory cache of completed mutation responses keyed by
// idempotency key. It is populated only after a successful commit and is
// never the authority: a miss falls through to the movement table, and the
// unique key on stock_movements remains the arbiter for concurrent writers.
type ReplayCache interface {
	Get(ctx context.Context, key string) (*MovementResponse, bool)
	Set(ctx context.Context, key string, resp *MovementResponse)
}

// NopReplayCache satisfies ReplayCache without caching anything
type NopReplayCache struct{}

func (NopReplayCache) Get(context.Context, string) (*MovementResponse, bool) { return nil, false }

func (NopReplayCache) Set(context.Context, string, *MovementResponse) {}

var _ ReplayCache = NopReplayCache{}
