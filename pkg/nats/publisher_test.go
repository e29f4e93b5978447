package nats

import (
	"context"
	"os"
	"testing"
	"time"

	"notefiber-editor/internal/pkg/logger"
	"notefiber-editor/pkg/events"

	"github.com/stretchr/testify/require"
)

func TestPublisherRoundTrip(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("Skipping integration test: NATS_URL not set")
	}

	p, err := NewPublisher(url, logger.NewNopLogger())
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.Publish(ctx, events.BaseEvent{
		Type:       "NOTE_CREATED",
		Data:       map[string]interface{}{"note_id": "2"},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
}
