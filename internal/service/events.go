package service

import (
	"context"
	"log"

	"github.com/iliyamo/booth-market/internal/queue"
)

// publish hands an event to p.  The request that produced the event has
// already committed, so failures are only logged.  Wrap p in
// queue.Background to keep the broker off the request path.
func publish(ctx context.Context, p queue.Publisher, key string, event any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, key, event); err != nil {
		log.Printf("events: %s not published: %v", key, err)
	}
}
