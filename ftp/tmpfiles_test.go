package ftp

import "testing"

func TestWriteTmpFileRoundTrip(t *testing.T) {
	fs := NewMemFilesystem()
	sender := &fakeSender{}
	recv := &fakeReceiver{}
	timer := newFakeTimer()
	c := newTestClient(sender, recv, timer, fs)

	path, err := c.WriteTmpFile("payload.bin", []byte("hello"))
	if err != nil {
		t.Fatalf("WriteTmpFile: %v", err)
	}

	got, ok := fs.ReadFile(path)
	if !ok {
		t.Fatalf("ReadFile(%s): not found", path)
	}
	if string(got) != "hello" {
		t.Fatalf("content = %q, want %q", got, "hello")
	}

	resolved, ok := c.tmpStore.resolve("payload.bin")
	if !ok || resolved != path {
		t.Fatalf("resolve(payload.bin) = (%q, %v), want (%q, true)", resolved, ok, path)
	}
}

func TestWriteTmpFileRejectsTraversal(t *testing.T) {
	fs := NewMemFilesystem()
	sender := &fakeSender{}
	recv := &fakeReceiver{}
	timer := newFakeTimer()
	c := newTestClient(sender, recv, timer, fs)

	tests := []string{"../escape", "a/b", "a\\b"}
	for _, name := range tests {
		if _, err := c.WriteTmpFile(name, []byte("x")); err == nil {
			t.Errorf("WriteTmpFile(%q) succeeded, want error", name)
		}
	}
}

func TestResolveRemotePathUsesTmpStore(t *testing.T) {
	fs := NewMemFilesystem()
	sender := &fakeSender{}
	recv := &fakeReceiver{}
	timer := newFakeTimer()
	c := newTestClient(sender, recv, timer, fs)

	if got := c.resolveRemotePath("/remote/untouched.bin"); got != "/remote/untouched.bin" {
		t.Fatalf("resolveRemotePath passthrough = %q", got)
	}

	path, err := c.WriteTmpFile("staged.bin", []byte("data"))
	if err != nil {
		t.Fatalf("WriteTmpFile: %v", err)
	}
	if got := c.resolveRemotePath("staged.bin"); got != path {
		t.Fatalf("resolveRemotePath(staged.bin) = %q, want %q", got, path)
	}
}
