package core

import "context"

// Handler processes one matched command. params holds the
// whitespace-split tokens following the trigger, possibly empty.
type Handler func(ctx context.Context, env Envelope, params []string) error
