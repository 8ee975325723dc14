package realtime

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSocket records data frames and can be told to fail writes.
type fakeSocket struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
	fail   bool
}

func (f *fakeSocket) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeSocket) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("write failed")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	f.frames = append(f.frames, buf)
	return nil
}

func (f *fakeSocket) WriteControl(int, []byte, time.Time) error { return nil }

func (f *fakeSocket) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSocket) recorded() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.frames))
	copy(out, f.frames)
	return out
}

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func TestBroadcastReachesEveryConnectionIncludingSender(t *testing.T) {
	hub := newTestHub()

	sockets := make([]*fakeSocket, 3)
	for i := range sockets {
		sockets[i] = &fakeSocket{}
		hub.Register(NewConnection(fmt.Sprintf("u%d", i), sockets[i]))
	}

	delivered := hub.Broadcast([]byte(`{"type":"newMessage"}`))
	require.Equal(t, 3, delivered)

	for i, s := range sockets {
		sock := s
		require.Eventually(t, func() bool {
			return len(sock.recorded()) == 1
		}, time.Second, 5*time.Millisecond, "socket %d never received the frame", i)
	}
}

func TestBroadcastRemovesClosedConnections(t *testing.T) {
	hub := newTestHub()

	alive := &fakeSocket{}
	dead := &fakeSocket{}
	aliveConn := NewConnection("u1", alive)
	deadConn := NewConnection("u2", dead)
	hub.Register(aliveConn)
	hub.Register(deadConn)

	deadConn.Close(1000, "gone")

	delivered := hub.Broadcast([]byte("payload"))
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, hub.Len(), "dead connection should be unregistered as a broadcast side effect")

	require.Eventually(t, func() bool {
		return len(alive.recorded()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, dead.recorded())
}

func TestBroadcastNeverRetainsPreClosedConnection(t *testing.T) {
	// Run the scenario repeatedly: retention of a closed connection was
	// only intermittent when its send raced the free buffer slot.
	for i := 0; i < 50; i++ {
		hub := newTestHub()
		conn := NewConnection("u1", &fakeSocket{})
		hub.Register(conn)
		conn.Close(1000, "gone")

		delivered := hub.Broadcast([]byte("payload"))
		require.Equal(t, 0, delivered, "run %d delivered to a closed connection", i)
		require.Equal(t, 0, hub.Len(), "run %d left a closed connection registered", i)
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := newTestHub()

	conn := NewConnection("u1", &fakeSocket{})
	hub.Register(conn)
	require.Equal(t, 1, hub.Len())

	hub.Unregister(conn)
	hub.Unregister(conn)
	assert.Equal(t, 0, hub.Len())

	// Unregistering something never registered is also a no-op.
	hub.Unregister(NewConnection("u2", &fakeSocket{}))
	assert.Equal(t, 0, hub.Len())
}

func TestSequentialBroadcastsArriveInOrder(t *testing.T) {
	hub := newTestHub()

	sock := &fakeSocket{}
	hub.Register(NewConnection("u1", sock))

	hub.Broadcast([]byte("first"))
	hub.Broadcast([]byte("second"))
	hub.Broadcast([]byte("third"))

	require.Eventually(t, func() bool {
		return len(sock.recorded()) == 3
	}, time.Second, 5*time.Millisecond)

	frames := sock.recorded()
	assert.Equal(t, "first", string(frames[0]))
	assert.Equal(t, "second", string(frames[1]))
	assert.Equal(t, "third", string(frames[2]))
}

func TestBroadcastIsolatesPerConnectionFailure(t *testing.T) {
	hub := newTestHub()

	failing := &fakeSocket{fail: true}
	healthy := &fakeSocket{}
	failingConn := NewConnection("u1", failing)
	hub.Register(failingConn)
	hub.Register(NewConnection("u2", healthy))

	hub.Broadcast([]byte("one"))

	// The failing connection's write loop closes it; subsequent broadcasts
	// must drop it from the registry and still reach the healthy peer.
	require.Eventually(t, func() bool {
		return !failingConn.Open()
	}, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte("two"))
	assert.Equal(t, 1, hub.Len())

	require.Eventually(t, func() bool {
		return len(healthy.recorded()) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestCloseTerminatesAllConnections(t *testing.T) {
	hub := newTestHub()

	conns := make([]*Connection, 3)
	for i := range conns {
		conns[i] = NewConnection(fmt.Sprintf("u%d", i), &fakeSocket{})
		hub.Register(conns[i])
	}

	hub.Close()
	assert.Equal(t, 0, hub.Len())
	for _, conn := range conns {
		assert.False(t, conn.Open())
	}
}
