package ftp

// CreateDirectoryAsync issues CREATE_DIRECTORY for path (spec.md §4.3.4).
func (c *Client) CreateDirectoryAsync(path string, cb ResultCallback) {
	c.singleShotAsync(opMkdir, path, "", cb)
}

// RemoveDirectoryAsync issues REMOVE_DIRECTORY for path.
func (c *Client) RemoveDirectoryAsync(path string, cb ResultCallback) {
	c.singleShotAsync(opRmdir, path, "", cb)
}

// RemoveFileAsync issues REMOVE_FILE for path.
func (c *Client) RemoveFileAsync(path string, cb ResultCallback) {
	c.singleShotAsync(opRm, path, "", cb)
}

// RenameAsync issues RENAME(from, to).
func (c *Client) RenameAsync(from, to string, cb ResultCallback) {
	c.singleShotAsync(opRename, from, to, cb)
}

// ResetAsync issues RESET_SESSIONS, clearing server-side session state.
func (c *Client) ResetAsync(cb ResultCallback) {
	c.singleShotAsync(opReset, "", "", cb)
}

func (c *Client) singleShotAsync(kind opKind, a, b string, cb ResultCallback) {
	if kind == opRename {
		if len(a)+1+len(b)+1 > MaxDataLength {
			c.rejectSync(func() { cb(ResultInvalidParameter) })
			return
		}
	} else if a != "" {
		if len(a)+1 > MaxDataLength {
			c.rejectSync(func() { cb(ResultInvalidParameter) })
			return
		}
	}

	w := &workItem{kind: kind, resultCB: cb}
	switch kind {
	case opRename:
		w.fromPath = c.resolveRemotePath(a)
		w.toPath = b
	case opReset:
		// no path fields
	default:
		w.remotePath = c.resolveRemotePath(a)
	}
	c.enqueueOrReject(w)
}

func (c *Client) singleShotStart(w *workItem) *Payload {
	switch w.kind {
	case opMkdir:
		p := &Payload{Opcode: OpCreateDirectory}
		p.SetDataString(w.remotePath)
		return p
	case opRmdir:
		p := &Payload{Opcode: OpRemoveDirectory}
		p.SetDataString(w.remotePath)
		return p
	case opRm:
		p := &Payload{Opcode: OpRemoveFile}
		p.SetDataString(w.remotePath)
		return p
	case opRename:
		p := &Payload{Opcode: OpRename}
		n := copy(p.Data[:], w.fromPath)
		p.Data[n] = 0
		n++
		n += copy(p.Data[n:], w.toPath)
		p.Data[n] = 0
		n++
		p.Size = uint8(n)
		return p
	case opReset:
		return &Payload{Opcode: OpResetSessions}
	default:
		panic("ftp: not a single-shot kind")
	}
}

func (c *Client) singleShotOnAck(w *workItem, _ *Payload) {
	c.completeLocked(w, ResultSuccess, nil)
}

func (c *Client) singleShotOnNak(w *workItem, p *Payload) {
	c.completeLocked(w, resultFromNak(p), nil)
}
