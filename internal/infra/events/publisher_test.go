package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type fakeRedis struct {
	channel string
	message interface{}
	err     error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message = message
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func TestPublisher_Send(t *testing.T) {
	client := &fakeRedis{}
	p := NewPublisher(client, "room_booking")

	event := domain.Event{
		Type:       domain.EventRoomAssigned,
		BookingID:  12,
		Reference:  "BK-250601-ABCDEF",
		Attributes: map[string]string{"roomNumber": "101"},
		OccurredAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Send(context.Background(), event))

	assert.Equal(t, "room_booking.room.assigned", client.channel)

	payload, ok := client.message.([]byte)
	require.True(t, ok)
	var decoded domain.Event
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublisher_SendError(t *testing.T) {
	client := &fakeRedis{err: errors.New("connection refused")}
	p := NewPublisher(client, "hotel")

	err := p.Send(context.Background(), domain.Event{Type: domain.EventBookingCreated})
	assert.ErrorIs(t, err, ErrPublish)
	assert.Contains(t, err.Error(), "hotel.booking.created")
	assert.Equal(t, "redis", p.Name())
}
