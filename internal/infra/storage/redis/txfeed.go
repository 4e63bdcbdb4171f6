package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gabapcia/silkroad/internal/txfeed"
	"github.com/gabapcia/silkroad/internal/txtracker"
)

// txfeedKeyPrefix is the namespace prefix for all keys related to the transaction feed.
const txfeedKeyPrefix = "txfeed"

// txfeedEventsChannel is the pub/sub channel events of a session are published on:
//
//	"txfeed:events:<session>"
func txfeedEventsChannel(session string) string {
	return fmt.Sprintf("%s:events:%s", txfeedKeyPrefix, session)
}

// txfeedStateKey holds the latest tracker state of a session:
//
//	"txfeed:state:<session>"
func txfeedStateKey(session string) string {
	return fmt.Sprintf("%s:state:%s", txfeedKeyPrefix, session)
}

// txfeedPublisher publishes the tracker events of one session.
type txfeedPublisher struct {
	*client

	session  string
	stateTTL time.Duration
}

// Compile-time assertion to ensure txfeedPublisher implements the Publisher interface.
var _ txfeed.Publisher = (*txfeedPublisher)(nil)

// TxFeedPublisher returns a publisher for session. The latest state
// snapshot expires after stateTTL; zero keeps it forever.
func (c *client) TxFeedPublisher(session string, stateTTL time.Duration) *txfeedPublisher {
	return &txfeedPublisher{
		client:   c,
		session:  session,
		stateTTL: stateTTL,
	}
}

// Publish sends the JSON event on the session channel and stores its state
// snapshot, atomically in a MULTI/EXEC block.
//
// Late subscribers read the state key to catch up, then follow the channel.
func (p *txfeedPublisher) Publish(ctx context.Context, ev txtracker.Event) error {
	event, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	state, err := json.Marshal(ev.State)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	pipe := p.conn.TxPipeline()
	pipe.Publish(ctx, txfeedEventsChannel(p.session), event)
	pipe.Set(ctx, txfeedStateKey(p.session), state, p.stateTTL)

	_, err = pipe.Exec(ctx)
	return err
}
