package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hubClient(hub *Hub, eventID string, memberID uint, buffer int) *Client {
	return &Client{
		hub:      hub,
		send:     make(chan []byte, buffer),
		eventID:  eventID,
		memberID: memberID,
	}
}

func TestBroadcastEvictsSlowClientWithoutPanic(t *testing.T) {
	hub := NewHub()
	slow := hubClient(hub, "7", 1, 1)
	fast := hubClient(hub, "7", 2, 64)
	hub.clients[slow] = true
	hub.clients[fast] = true
	slow.send <- []byte("backlog") // buffer full: the next send falls to eviction

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.BroadcastToEvent("7", "score_update", nil)
		}()
	}
	wg.Wait()

	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	assert.NotContains(t, hub.clients, slow, "the slow client is evicted exactly once")
	assert.Contains(t, hub.clients, fast)
}

func TestBroadcastOnlyReachesItsEvent(t *testing.T) {
	hub := NewHub()
	watcher := hubClient(hub, "1", 5, 4)
	other := hubClient(hub, "2", 9, 4)
	hub.clients[watcher] = true
	hub.clients[other] = true

	hub.BroadcastToEvent("1", "score_update", nil)

	assert.Len(t, watcher.send, 1)
	assert.Empty(t, other.send)
}

func TestConnectedMembersListsOneEvent(t *testing.T) {
	hub := NewHub()
	hub.clients[hubClient(hub, "1", 5, 1)] = true
	hub.clients[hubClient(hub, "2", 9, 1)] = true

	assert.Equal(t, []uint{5}, hub.ConnectedMembers("1"))
	assert.Empty(t, hub.ConnectedMembers("3"))
}
