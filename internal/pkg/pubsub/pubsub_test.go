package pubsub

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationMessage_JSON(t *testing.T) {
	msg := &NotificationMessage{
		Type:           EventNotification,
		UserID:         1,
		NotificationID: 2,
		SubscriptionID: 3,
		Kind:           "upcoming",
		Title:          "付款提醒",
		Priority:       "high",
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	// Verify snake_case keys
	var raw map[string]interface{}
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err)

	assert.Contains(t, raw, "user_id")
	assert.Contains(t, raw, "notification_id")
	assert.Contains(t, raw, "subscription_id")

	var decoded NotificationMessage
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, msg.UserID, decoded.UserID)
	assert.Equal(t, msg.Kind, decoded.Kind)
}

func TestNotificationMessage_OmitEmpty(t *testing.T) {
	msg := &NotificationMessage{
		Type:   EventBudgetAlert,
		UserID: 1,
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var raw map[string]interface{}
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err)

	_, hasKind := raw["kind"]
	_, hasThreshold := raw["threshold"]
	assert.False(t, hasKind, "empty kind should be omitted")
	assert.False(t, hasThreshold, "zero threshold should be omitted")
}

func TestPublisherSubscriber(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var mu sync.Mutex
	var received []*NotificationMessage

	go func() {
		_ = subscriber.Subscribe(ctx, func(msg *NotificationMessage) {
			mu.Lock()
			received = append(received, msg)
			mu.Unlock()
		})
	}()

	// 等待订阅建立
	time.Sleep(100 * time.Millisecond)

	err = publisher.Publish(ctx, &NotificationMessage{
		Type:   EventNotification,
		UserID: 42,
		Kind:   "upcoming",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1 && received[0].UserID == 42
	}, 2*time.Second, 50*time.Millisecond)
}
