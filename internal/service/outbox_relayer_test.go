package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Content_Service/internal/model"
	"Content_Service/internal/repository/database"
)

func TestOutboxRelayerDelivers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Gophers")
	p := f.post(t, c.ID, "announce")

	var got []model.ContentOutbox
	relayer := NewOutboxRelayer(f.repos.Outbox, func(_ context.Context, ob *model.ContentOutbox) error {
		got = append(got, *ob)
		return nil
	}, nil)

	assert.Equal(t, 1, relayer.DrainOnce(ctx))
	require.Len(t, got, 1)
	assert.Equal(t, database.EventPostCreated, got[0].EventType)
	assert.Equal(t, p.ID, got[0].SubjectID)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(got[0].Payload), &payload))
	assert.Equal(t, p.ID, payload["subject_id"])

	assert.Zero(t, relayer.DrainOnce(ctx))
}

func TestOutboxRelayerRetriesFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Gophers")
	f.post(t, c.ID, "flaky")

	fail := true
	calls := 0
	relayer := NewOutboxRelayer(f.repos.Outbox, func(context.Context, *model.ContentOutbox) error {
		calls++
		if fail {
			return errors.New("broker down")
		}
		return nil
	}, nil)

	assert.Zero(t, relayer.DrainOnce(ctx))
	fail = false
	assert.Equal(t, 1, relayer.DrainOnce(ctx))
	assert.Equal(t, 2, calls)
}

func TestOutboxRelayerGivesUpAfterMaxRetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.community(t, "Gophers")
	f.post(t, c.ID, "doomed")

	calls := 0
	relayer := NewOutboxRelayer(f.repos.Outbox, func(context.Context, *model.ContentOutbox) error {
		calls++
		return errors.New("broker down")
	}, nil)
	relayer.maxRetry = 2

	for i := 0; i < 5; i++ {
		relayer.DrainOnce(ctx)
	}
	assert.Equal(t, 2, calls)
}
