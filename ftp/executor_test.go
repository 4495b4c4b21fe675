package ftp

import (
	"sync"
	"testing"
	"time"
)

func TestSerialExecutorRunsInSubmissionOrder(t *testing.T) {
	exec := newSerialExecutor()

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})

	for i := 0; i < 20; i++ {
		i := i
		exec(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if i == 19 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for submitted funcs to run")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 20 {
		t.Fatalf("ran %d funcs, want 20", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order[%d] = %d, want %d (funcs ran out of submission order)", i, v, i)
		}
	}
}

func TestSerialExecutorNeverRunsConcurrently(t *testing.T) {
	exec := newSerialExecutor()

	var mu sync.Mutex
	running := false
	overlapped := false
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		exec(func() {
			defer wg.Done()
			mu.Lock()
			if running {
				overlapped = true
			}
			running = true
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			running = false
			mu.Unlock()
		})
	}

	wg.Wait()
	if overlapped {
		t.Fatal("serialExecutor ran two submitted funcs concurrently")
	}
}

// TestDownloadDeliversProgressBeforeTerminalCallback is a regression
// test for the default executor ordering guarantee: a transfer with
// multiple chunks must invoke every Next progress callback before the
// terminal result, even though each is dispatched off the lock.
func TestDownloadDeliversProgressBeforeTerminalCallback(t *testing.T) {
	size := 3 * MaxDataLength
	content := make([]byte, size)

	fs := NewMemFilesystem()
	sender := &fakeSender{}
	recv := &fakeReceiver{}
	client := newTestClient(sender, recv, newFakeTimer(), fs)

	var mu sync.Mutex
	var events []string
	done := make(chan struct{})

	client.DownloadAsync("/a/big.bin", "/local", func(result Result, _ ProgressData) {
		mu.Lock()
		if result == ResultNext {
			events = append(events, "next")
		} else {
			events = append(events, "terminal")
			close(done)
		}
		mu.Unlock()
	})

	openAck := replyTo(sender, OpRspAck, 1, nil)
	writeU32 := func(p *Payload, v uint32) {
		p.Data[0] = byte(v)
		p.Data[1] = byte(v >> 8)
		p.Data[2] = byte(v >> 16)
		p.Data[3] = byte(v >> 24)
		p.Size = 4
	}
	writeU32(&openAck, uint32(size))
	recv.handler(ackFrame(openAck))

	for sender.last().Opcode == OpReadFile {
		offset := int(sender.last().Offset)
		n := int(sender.last().Size)
		recv.handler(ackFrame(replyTo(sender, OpRspAck, 1, content[offset:offset+n])))
	}
	recv.handler(ackFrame(replyTo(sender, OpRspAck, 1, nil))) // TERMINATE_SESSION ack

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the terminal callback")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) < 2 {
		t.Fatalf("events = %v, want at least one Next before the terminal callback", events)
	}
	if events[len(events)-1] != "terminal" {
		t.Fatalf("events = %v, last event must be terminal", events)
	}
	for _, e := range events[:len(events)-1] {
		if e != "next" {
			t.Fatalf("events = %v, every event before the last must be Next", events)
		}
	}
}
