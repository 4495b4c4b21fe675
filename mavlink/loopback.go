// Package mavlink provides concrete Sender/Receiver transports for
// ftp.Client: an in-process Loopback for tests, and a
// minimal MAVLink v2 FILE_TRANSFER_PROTOCOL framing over UDP for real
// links. Packing/addressing is intentionally outside ftp's own scope
// (it treats the transport as an external collaborator) — this package
// is that collaborator's reference implementation.
package mavlink

import (
	"sync"

	"github.com/aurelia-robotics/mavftp/ftp"
)

// Loopback connects a Client directly to an in-process peer function,
// useful for tests that don't need a real link. Deliver hands a frame
// back to whichever handler was registered via SetHandler,
// synchronously, matching a zero-latency link.
type Loopback struct {
	mu      sync.Mutex
	handler func(ftp.Frame)
	peer    func(ftp.Frame)

	sendLog []ftp.Frame
}

// NewLoopback creates a Loopback whose Send calls are handed to peer.
// peer is typically a fake server's request handler that computes a
// reply and calls back into Deliver.
func NewLoopback(peer func(ftp.Frame)) *Loopback {
	return &Loopback{peer: peer}
}

// Send hands f to the peer function on a new goroutine. The engine
// calls Send while holding its own queue mutex (spec.md §5); a peer
// that replies synchronously would otherwise deadlock calling back into
// the same Client through Deliver/HandleFrame.
func (l *Loopback) Send(f ftp.Frame) error {
	l.mu.Lock()
	l.sendLog = append(l.sendLog, f)
	peer := l.peer
	l.mu.Unlock()
	if peer != nil {
		go peer(f)
	}
	return nil
}

func (l *Loopback) SetHandler(fn func(ftp.Frame)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = fn
}

// Deliver hands an inbound frame to the registered handler, as if it
// had arrived over the wire. Peers call this to reply.
func (l *Loopback) Deliver(f ftp.Frame) {
	l.mu.Lock()
	handler := l.handler
	l.mu.Unlock()
	if handler != nil {
		handler(f)
	}
}

// Sent returns a copy of every frame sent so far, for test assertions.
func (l *Loopback) Sent() []ftp.Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ftp.Frame, len(l.sendLog))
	copy(out, l.sendLog)
	return out
}
