package ftp

import "testing"

func TestAreFilesIdenticalMatch(t *testing.T) {
	fs := NewMemFilesystem()
	fs.PutFile("/local/a.bin", []byte("same content"))
	sender := &fakeSender{}
	recv := &fakeReceiver{}
	timer := newFakeTimer()
	c := newTestClient(sender, recv, timer, fs)

	want, _ := localCRC32(fs, "/local/a.bin")

	type outcome struct {
		result    Result
		identical bool
	}
	resultCh := make(chan outcome, 1)
	c.AreFilesIdenticalAsync("/local/a.bin", "/remote/a.bin", func(result Result, identical bool) {
		resultCh <- outcome{result, identical}
	})

	if sender.count() != 1 || sender.last().Opcode != OpCalcFileCRC32 {
		t.Fatalf("expected a single CALC_FILE_CRC32 request, got %d frames", sender.count())
	}

	reply := replyTo(sender, OpRspAck, 0, crc32Bytes(want))
	recv.handler(ackFrame(reply))

	got := <-resultCh
	if got.result != ResultSuccess {
		t.Fatalf("result = %v, want Success", got.result)
	}
	if !got.identical {
		t.Fatalf("identical = false, want true")
	}
}

func TestAreFilesIdenticalMismatch(t *testing.T) {
	fs := NewMemFilesystem()
	fs.PutFile("/local/a.bin", []byte("local content"))
	sender := &fakeSender{}
	recv := &fakeReceiver{}
	timer := newFakeTimer()
	c := newTestClient(sender, recv, timer, fs)

	resultCh := make(chan bool, 1)
	c.AreFilesIdenticalAsync("/local/a.bin", "/remote/a.bin", func(result Result, identical bool) {
		resultCh <- identical
	})

	reply := replyTo(sender, OpRspAck, 0, crc32Bytes(0xDEADBEEF))
	recv.handler(ackFrame(reply))

	if identical := <-resultCh; identical {
		t.Fatalf("identical = true, want false")
	}
}

func TestAreFilesIdenticalLocalMissing(t *testing.T) {
	fs := NewMemFilesystem()
	sender := &fakeSender{}
	recv := &fakeReceiver{}
	timer := newFakeTimer()
	c := newTestClient(sender, recv, timer, fs)

	resultCh := make(chan Result, 1)
	c.AreFilesIdenticalAsync("/local/missing.bin", "/remote/a.bin", func(result Result, _ bool) {
		resultCh <- result
	})

	if got := <-resultCh; got != ResultFileDoesNotExist {
		t.Fatalf("result = %v, want FileDoesNotExist", got)
	}
	if sender.count() != 0 {
		t.Fatalf("expected no wire traffic for a missing local file, got %d frames", sender.count())
	}
}

func crc32Bytes(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
