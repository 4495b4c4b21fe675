package ftp

import (
	"sync"
	"time"
)

// fakeSender records every frame Client sends, for test assertions and
// for manually crafting replies. It never replies on its own — tests
// drive replies explicitly via Client.HandleFrame, the same way a real
// transport's read loop would, to avoid re-entering Client's mutex from
// inside Send.
type fakeSender struct {
	mu   sync.Mutex
	sent []Frame
}

func (f *fakeSender) Send(frame Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, frame)
	return nil
}

func (f *fakeSender) last() Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	frame := f.sent[len(f.sent)-1]
	return DecodePayload(frame.Payload)
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeReceiver lets a test obtain Client's installed handler so it can
// call it directly instead of going through a real transport.
type fakeReceiver struct {
	handler func(Frame)
}

func (r *fakeReceiver) SetHandler(fn func(Frame)) {
	r.handler = fn
}

// fakeTimer is a manually-fired TimerService: Register/Unregister just
// track bookkeeping, and tests call fire() to simulate a timeout
// without waiting on a real clock.
type fakeTimer struct {
	mu     sync.Mutex
	next   TimerCookie
	fns    map[TimerCookie]func()
	active TimerCookie
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{fns: make(map[TimerCookie]func())}
}

func (t *fakeTimer) Register(fn func(), _ time.Duration) TimerCookie {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	cookie := t.next
	t.fns[cookie] = fn
	t.active = cookie
	return cookie
}

func (t *fakeTimer) Refresh(cookie TimerCookie) {}

func (t *fakeTimer) Unregister(cookie TimerCookie) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.fns, cookie)
}

// fire invokes the most recently registered still-active timer's
// callback, simulating a real timeout firing.
func (t *fakeTimer) fire() {
	t.mu.Lock()
	fn, ok := t.fns[t.active]
	t.mu.Unlock()
	if ok {
		fn()
	}
}

func newTestClient(sender *fakeSender, recv *fakeReceiver, timer TimerService, fs Filesystem) *Client {
	return NewClient(sender, recv, timer, fs,
		WithOwnIDs(255, 190),
		WithTargetSystem(1),
		WithTargetComponent(1),
		WithRetries(2),
	)
}

func ackFrame(p Payload) Frame {
	var f Frame
	f.Payload = p.Encode()
	return f
}
