package ftp

import "encoding/binary"

// DownloadAsync fetches remotePath into localFolder, invoking cb zero or
// more times with ResultNext and progress, then exactly once with a
// terminal result (spec.md §4.3.1, §6.4).
func (c *Client) DownloadAsync(remotePath, localFolder string, cb TransferCallback) {
	if len(remotePath)+1 > MaxDataLength {
		c.rejectSync(func() { cb(ResultInvalidParameter, ProgressData{}) })
		return
	}
	w := &workItem{
		kind:        opDownload,
		remotePath:  c.resolveRemotePath(remotePath),
		localFolder: localFolder,
		transferCB:  cb,
	}
	c.enqueueOrReject(w)
}

func (c *Client) downloadStart(w *workItem) *Payload {
	w.downloadState = downloadOpening
	p := &Payload{Opcode: OpOpenFileRO}
	p.SetDataString(w.remotePath)
	return p
}

func (c *Client) downloadOnAck(w *workItem, p *Payload) {
	switch w.downloadState {
	case downloadOpening:
		data := p.DataBytes()
		if len(data) < 4 {
			c.failDownload(w, ResultProtocolError)
			return
		}
		w.fileSize = binary.LittleEndian.Uint32(data[0:4])
		w.session = p.Session
		w.bytesTransferred = 0
		w.lastProgressPct = -1

		localPath := remotePathJoin(w.localFolder, remoteBasename(w.remotePath))
		sink, err := c.fs.Create(localPath)
		if err != nil {
			c.failDownload(w, ResultFileIoError)
			return
		}
		w.sink = sink

		if w.fileSize == 0 {
			w.downloadState = downloadTerminating
			c.sendLocked(w, &Payload{Opcode: OpTerminateSession, Session: w.session})
			return
		}
		w.downloadState = downloadReading
		c.sendLocked(w, c.nextReadRequest(w))

	case downloadReading:
		data := p.DataBytes()
		if _, err := w.sink.Write(data); err != nil {
			c.failDownload(w, ResultFileIoError)
			return
		}
		w.bytesTransferred += uint32(len(data))
		c.emitDownloadProgress(w)

		if w.bytesTransferred >= w.fileSize {
			w.downloadState = downloadTerminating
			c.sendLocked(w, &Payload{Opcode: OpTerminateSession, Session: w.session})
			return
		}
		c.sendLocked(w, c.nextReadRequest(w))

	case downloadTerminating:
		c.completeDownload(w, ResultSuccess)
	}
}

func (c *Client) nextReadRequest(w *workItem) *Payload {
	remaining := w.fileSize - w.bytesTransferred
	size := minU32(uint32(MaxDataLength), remaining)
	return &Payload{
		Opcode:  OpReadFile,
		Session: w.session,
		Offset:  w.bytesTransferred,
		Size:    uint8(size),
	}
}

func (c *Client) downloadOnNak(w *workItem, p *Payload) {
	if w.downloadState == downloadReading && ServerResult(firstByte(p)) == ServerErrEOF {
		c.completeDownload(w, ResultSuccess)
		return
	}
	c.failDownload(w, resultFromNak(p))
}

func (c *Client) completeDownload(w *workItem, result Result) {
	c.completeLocked(w, result, func() {
		if w.transferCB != nil {
			w.transferCB(result, ProgressData{BytesTransferred: w.bytesTransferred, TotalBytes: w.fileSize})
		}
	})
}

func (c *Client) failDownload(w *workItem, result Result) {
	c.completeDownload(w, result)
}

// emitDownloadProgress fires Next only on whole-percent changes, per
// spec.md §9's progress-throttling note.
func (c *Client) emitDownloadProgress(w *workItem) {
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

func firstByte(p *Payload) byte {
	data := p.DataBytes()
	if len(data) == 0 {
		return 0
	}
	return data[0]
}
