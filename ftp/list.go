package ftp

// ListDirectoryAsync lists path, accumulating batches until the server
// signals completion, then invokes cb once with the full entry list
// (spec.md §4.3.3).
func (c *Client) ListDirectoryAsync(path string, cb ListDirectoryCallback) {
	if len(path)+1 > MaxDataLength {
		c.rejectSync(func() { cb(ResultInvalidParameter, nil) })
		return
	}
	w := &workItem{
		kind:       opList,
		remotePath: c.resolveRemotePath(path),
		listCB:     cb,
	}
	c.enqueueOrReject(w)
}

func (c *Client) listStart(w *workItem) *Payload {
	w.listOffset = 0
	w.listEntries = nil
	return c.nextListRequest(w)
}

func (c *Client) nextListRequest(w *workItem) *Payload {
	p := &Payload{Opcode: OpListDirectory, Offset: w.listOffset}
	p.SetDataString(w.remotePath)
	return p
}

func (c *Client) listOnAck(w *workItem, p *Payload) {
	entries, accepted := parseListEntries(p.DataBytes())
	if accepted == 0 {
		c.completeList(w, ResultSuccess)
		return
	}
	w.listEntries = append(w.listEntries, entries...)
	w.listOffset += uint32(accepted)
	c.sendLocked(w, c.nextListRequest(w))
}

func (c *Client) listOnNak(w *workItem, p *Payload) {
	if ServerResult(firstByte(p)) == ServerErrEOF {
		c.completeList(w, ResultSuccess)
		return
	}
	if len(w.listEntries) > 0 {
		c.completeList(w, ResultSuccess)
		return
	}
	c.completeList(w, resultFromNak(p))
}

func (c *Client) completeList(w *workItem, result Result) {
	entries := w.listEntries
	c.completeLocked(w, result, func() {
		if w.listCB != nil {
			w.listCB(result, entries)
		}
	})
}

// parseListEntries splits a LIST_DIRECTORY data region into
// null-terminated entries. "S" (skipped) entries count toward nothing:
// they are dropped from the returned list and don't advance the
// accumulation offset, matching what the server itself considers
// "entries returned" for the next request's offset.
func parseListEntries(data []byte) (entries []string, accepted int) {
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] != 0 {
			continue
		}
		chunk := string(data[start:i])
		start = i + 1
		if chunk == "" {
			continue
		}
		if chunk[0] == 'S' {
			continue
		}
		entries = append(entries, chunk)
		accepted++
	}
	return entries, accepted
}
