package actor

import (
	"sync"
	"sync/atomic"

	"github.com/edwingeng/deque"

	"github.com/lixenwraith/vi-compositor/message"
)

// lease tracks the storage slot shared by every copy of a message
type lease struct {
	weight message.Weight
	refs   atomic.Int32
}

// envelope is a mailbox entry
type envelope struct {
	msg   message.Message
	lease *lease
}

// Mailbox is a bounded FIFO owned by exactly one actor
// push is safe for concurrent producers; pop is called only by the run loop
type Mailbox struct {
	mu       sync.Mutex
	queue    deque.Deque
	capacity int
}

// NewMailbox creates an empty mailbox holding at most capacity messages
func NewMailbox(capacity int) *Mailbox {
	if capacity < 1 {
		capacity = 1
	}
	return &Mailbox{
		queue:    deque.NewDeque(),
		capacity: capacity,
	}
}

// push appends at the tail, returning false when full
func (m *Mailbox) push(e envelope) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queue.Len() >= m.capacity {
		return false
	}
	m.queue.PushBack(e)
	return true
}

// pop removes the head, returning false when empty
func (m *Mailbox) pop() (envelope, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queue.Len() == 0 {
		return envelope{}, false
	}
	return m.queue.PopFront().(envelope), true
}

// Len returns the number of pending messages
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}

// Cap returns the mailbox capacity
func (m *Mailbox) Cap() int {
	return m.capacity
}
