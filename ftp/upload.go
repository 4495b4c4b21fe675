package ftp

// UploadAsync pushes localFile into remoteFolder, invoking cb zero or
// more times with ResultNext and progress, then exactly once with a
// terminal result (spec.md §4.3.2, §6.4).
func (c *Client) UploadAsync(localFile, remoteFolder string, cb TransferCallback) {
	basename := remoteBasename(filepathToSlash(localFile))
	remotePath := remotePathJoin(remoteFolder, basename)
	if len(remotePath)+1 > MaxDataLength {
		c.rejectSync(func() { cb(ResultInvalidParameter, ProgressData{}) })
		return
	}
	if !c.fs.Exists(localFile) {
		c.rejectSync(func() { cb(ResultFileDoesNotExist, ProgressData{}) })
		return
	}
	size, err := c.fs.FileSize(localFile)
	if err != nil {
		c.rejectSync(func() { cb(ResultFileIoError, ProgressData{}) })
		return
	}

	w := &workItem{
		kind:         opUpload,
		localPath:    localFile,
		remoteFolder: remoteFolder,
		remotePath:   remotePath,
		fileSize:     uint32(size),
		transferCB:   cb,
	}
	c.enqueueOrReject(w)
}

func (c *Client) uploadStart(w *workItem) *Payload {
	src, err := c.fs.OpenRead(w.localPath)
	if err != nil {
		c.failUploadOpenError(w)
		return nil
	}
	w.source = src
	w.uploadState = uploadOpening
	w.lastProgressPct = -1
	p := &Payload{Opcode: OpOpenFileWO}
	p.SetDataString(w.remotePath)
	return p
}

// failUploadOpenError handles the rare race where the local file
// existed at enqueue time but failed to open at start time. It mimics
// completeLocked without a queued send having happened yet.
func (c *Client) failUploadOpenError(w *workItem) {
	c.stopTimerLocked()
	c.queue.popFront()
	cb := w.transferCB
	c.executor(func() {
		if cb != nil {
			cb(ResultFileIoError, ProgressData{})
		}
	})
	c.driveLocked()
}

func (c *Client) uploadOnAck(w *workItem, p *Payload) {
	switch w.uploadState {
	case uploadOpening:
		w.session = p.Session
		w.bytesTransferred = 0
		w.uploadState = uploadWriting
		c.sendNextWrite(w)

	case uploadWriting:
		c.emitUploadProgress(w)
		if w.bytesTransferred >= w.fileSize {
			w.uploadState = uploadTerminating
			c.sendLocked(w, &Payload{Opcode: OpTerminateSession, Session: w.session})
			return
		}
		c.sendNextWrite(w)

	case uploadTerminating:
		c.completeUpload(w, ResultSuccess)
	}
}

// sendNextWrite reads up to MaxDataLength bytes from the local source
// and sends them as a WRITE_FILE request at the current offset.
func (c *Client) sendNextWrite(w *workItem) {
	var buf [MaxDataLength]byte
	n, err := readFull(w.source, buf[:minU32(uint32(MaxDataLength), w.fileSize-w.bytesTransferred)])
	if err != nil {
		c.failUpload(w, ResultFileIoError)
		return
	}
	p := &Payload{
		Opcode:  OpWriteFile,
		Session: w.session,
		Offset:  w.bytesTransferred,
		Size:    uint8(n),
	}
	copy(p.Data[:], buf[:n])
	w.bytesTransferred += uint32(n)
	c.sendLocked(w, p)
}

func (c *Client) uploadOnNak(w *workItem, p *Payload) {
	if w.uploadState == uploadTerminating {
		// spec.md §9: a NAK of the closing TERMINATE_SESSION after an
		// otherwise successful write loop surfaces as a protocol
		// error, not the translated server code.
		c.failUpload(w, ResultProtocolError)
		return
	}
	c.failUpload(w, resultFromNak(p))
}

func (c *Client) completeUpload(w *workItem, result Result) {
	c.completeLocked(w, result, func() {
		if w.transferCB != nil {
			w.transferCB(result, ProgressData{BytesTransferred: w.bytesTransferred, TotalBytes: w.fileSize})
		}
	})
}

func (c *Client) failUpload(w *workItem, result Result) {
	c.completeUpload(w, result)
}

func (c *Client) emitUploadProgress(w *workItem) {
	if w.fileSize == 0 {
		return
	}
	pct := int(uint64(w.bytesTransferred) * 100 / uint64(w.fileSize))
	if pct <= w.lastProgressPct {
		return
	}
	w.lastProgressPct = pct
	cb := w.transferCB
	progress := ProgressData{BytesTransferred: w.bytesTransferred, TotalBytes: w.fileSize}
	if cb != nil {
		c.executor(func() { cb(ResultNext, progress) })
	}
}

// readFull reads up to len(buf) bytes, returning fewer only at EOF.
func readFull(r interface{ Read([]byte) (int, error) }, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// filepathToSlash normalizes a local path to posix separators so
// remoteBasename can find the final component regardless of host OS.
func filepathToSlash(p string) string {
	out := make([]byte, len(p))
	for i := 0; i < len(p); i++ {
		if p[i] == '\\' {
			out[i] = '/'
		} else {
			out[i] = p[i]
		}
	}
	return string(out)
}
