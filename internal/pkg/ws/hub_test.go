package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	c1 := &Client{UserID: 1}
	c2 := &Client{UserID: 1}
	c3 := &Client{UserID: 2}

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)

	assert.Equal(t, 3, hub.ConnectionCount())
	assert.True(t, hub.IsOnline(1))
	assert.True(t, hub.IsOnline(2))

	hub.Unregister(c1)
	assert.Equal(t, 2, hub.ConnectionCount())
	assert.True(t, hub.IsOnline(1), "user 1 still has another connection")

	hub.Unregister(c2)
	assert.False(t, hub.IsOnline(1))
	assert.True(t, hub.IsOnline(2))
}

func TestHub_SendToOfflineUser(t *testing.T) {
	hub := NewHub()

	// 用户不在线时发送不报错，静默丢弃
	err := hub.SendToUser(99, &Message{Type: "notification", Data: "hello"})
	assert.NoError(t, err)
}

func TestHub_UnregisterUnknownClient(t *testing.T) {
	hub := NewHub()

	// 未注册的客户端注销不应 panic
	hub.Unregister(&Client{UserID: 5})
	assert.Zero(t, hub.ConnectionCount())
}
