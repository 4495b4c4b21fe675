package ftp

import (
	"sync"
	"time"
)

// DefaultRetries is the retry budget from spec.md §4.5: 4 retries, 5
// attempts total, before an operation completes with Timeout.
const DefaultRetries = 4

// DefaultTimeout is the peer timeout armed on every send.
const DefaultTimeout = 2 * time.Second

// Option configures a Client at construction, the same functional-option
// shape the teacher's zmodem.Session uses.
type Option func(*Client)

// WithTargetSystem sets the autopilot's system id.
func WithTargetSystem(id uint8) Option {
	return func(c *Client) { c.targetSystemID = id }
}

// WithTargetComponent sets the autopilot's component id (spec.md §6.4
// set_target_component_id).
func WithTargetComponent(id uint8) Option {
	return func(c *Client) { c.targetComponentID = id }
}

// WithNetworkID sets the MAVLink network id stamped on outgoing frames.
// The default, 0, matches spec.md §6.1.
func WithNetworkID(id uint8) Option {
	return func(c *Client) { c.networkID = id }
}

// WithOwnIDs sets the engine's own system/component id, used to filter
// inbound frames per spec.md §6.1.
func WithOwnIDs(systemID, componentID uint8) Option {
	return func(c *Client) {
		c.ownSystemID = systemID
		c.ownComponentID = componentID
	}
}

// WithLogger overrides the default NoopLogger.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetries overrides DefaultRetries.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithExecutor overrides how terminal/progress callbacks are dispatched.
// The default runs them off the lock on a serial dispatcher
// (serialExecutor), which satisfies both spec.md §5's "never invoked
// under the mutex" requirement and spec.md §7's ordering guarantee
// (every Next before the terminal callback that follows it) without
// requiring the caller to run an event loop.
func WithExecutor(executor func(func())) Option {
	return func(c *Client) { c.executor = executor }
}

// WithRootDirectory sets the initial root directory (spec.md §6.4
// set_root_directory); remote paths passed to the public API are
// resolved relative to it.
func WithRootDirectory(path string) Option {
	return func(c *Client) { c.rootDirectory = path }
}

// Client is the MAVLink FTP engine: the work queue, timeout/retry
// driver, and per-opcode state machines described in spec.md §2-§5,
// wired to a transport, timer service, and local filesystem supplied by
// the caller.
type Client struct {
	mu sync.Mutex

	queue workQueue
	seq   sequencer

	sender Sender
	timer  TimerService
	fs     Filesystem
	logger Logger

	targetSystemID    uint8
	targetComponentID uint8
	networkID         uint8
	ownSystemID       uint8
	ownComponentID    uint8

	retries int
	timeout time.Duration

	timerCookie   TimerCookie
	timerArmed    bool
	rootDirectory string
	tmpStore      *TmpFileStore
	executor      func(func())
}

// NewClient builds a Client. sender and timer are required; receiver's
// SetHandler is wired to Client.HandleFrame.
func NewClient(sender Sender, receiver Receiver, timer TimerService, fs Filesystem, opts ...Option) *Client {
	c := &Client{
		sender:            sender,
		timer:             timer,
		fs:                fs,
		logger:            NoopLogger{},
		targetComponentID: 1,
		retries:           DefaultRetries,
		timeout:           DefaultTimeout,
		tmpStore:          newTmpFileStore(),
		executor:          newSerialExecutor(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if receiver != nil {
		receiver.SetHandler(c.HandleFrame)
	}
	return c
}

// SetTargetComponentID overrides the autopilot component id after
// construction (spec.md §6.4).
func (c *Client) SetTargetComponentID(id uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targetComponentID = id
}

// SetRootDirectory overrides the root directory after construction.
func (c *Client) SetRootDirectory(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rootDirectory = path
}

// DoWork is the explicit driver tick from spec.md §2: callers that don't
// have an event loop of their own can call this periodically to make
// progress. It is a no-op when the head item is already started or the
// queue is empty.
func (c *Client) DoWork() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.driveLocked()
}

// driveLocked starts the head item if the queue is non-empty and the
// head hasn't been started yet. Caller must hold c.mu.
func (c *Client) driveLocked() {
	w := c.queue.front()
	if w == nil || w.started {
		return
	}
	w.started = true
	w.retries = c.retries
	p := c.buildStart(w)
	if p == nil {
		// The start builder already completed (and popped) the item
		// synchronously — e.g. the local file vanished between
		// enqueue and start. Nothing to send.
		return
	}
	c.sendLocked(w, p)
}

// buildStart dispatches to the per-kind start builder.
func (c *Client) buildStart(w *workItem) *Payload {
	switch w.kind {
	case opDownload:
		return c.downloadStart(w)
	case opUpload:
		return c.uploadStart(w)
	case opList:
		return c.listStart(w)
	case opMkdir, opRmdir, opRm, opRename, opReset:
		return c.singleShotStart(w)
	case opCRC32:
		return c.crc32Start(w)
	default:
		panic("ftp: unknown work item kind")
	}
}

// resolveRemotePath substitutes a staged temp-file path for a logical
// name previously registered via WriteTmpFile (spec.md §4.6).
func (c *Client) resolveRemotePath(path string) string {
	if resolved, ok := c.tmpStore.resolve(path); ok {
		return resolved
	}
	return path
}

// sendLocked stamps a fresh sequence number, records p as the item's
// last-sent payload, sends it, and (re)arms the single retry timer. The
// timer is always unregistered and re-registered, never merely
// refreshed, matching spec.md §4.5 exactly.
func (c *Client) sendLocked(w *workItem, p *Payload) {
	p.SeqNumber = c.seq.take()
	w.payload = p
	w.lastOpcode = p.Opcode

	frame := Frame{
		TargetSystem:    c.targetSystemID,
		TargetComponent: c.targetComponentID,
		NetworkID:       c.networkID,
	}
	frame.Payload = p.Encode()

	if err := c.sender.Send(frame); err != nil {
		c.logger.Error("send failed: %v", err)
	} else {
		c.logger.Debug("sent %s seq=%d", p.Opcode, p.SeqNumber)
	}

	if c.timerArmed {
		c.timer.Unregister(c.timerCookie)
	}
	c.timerCookie = c.timer.Register(c.onTimerFire, c.timeout)
	c.timerArmed = true
}

// resendLocked retransmits the head item's last-sent payload verbatim,
// keeping its original seq_number, per spec.md §9 "Retries store the
// last-sent payload, not the next one."
func (c *Client) resendLocked(w *workItem) {
	frame := Frame{
		TargetSystem:    c.targetSystemID,
		TargetComponent: c.targetComponentID,
		NetworkID:       c.networkID,
	}
	frame.Payload = w.payload.Encode()
	if err := c.sender.Send(frame); err != nil {
		c.logger.Error("resend failed: %v", err)
	}
	if c.timerArmed {
		c.timer.Unregister(c.timerCookie)
	}
	c.timerCookie = c.timer.Register(c.onTimerFire, c.timeout)
	c.timerArmed = true
}

// onTimerFire implements spec.md §4.5: on fire, decrement the head
// item's retries; once that takes it below zero (the retry budget is
// spent), fail with Timeout; otherwise resend.
func (c *Client) onTimerFire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timerArmed = false
	w := c.queue.front()
	if w == nil || !w.started {
		return
	}
	w.retries--
	if w.retries < 0 {
		c.logger.Info("%s timed out after retries", w.lastOpcode)
		c.completeLocked(w, ResultTimeout, nil)
		return
	}
	c.logger.Debug("retrying %s seq=%d (%d left)", w.lastOpcode, w.payload.SeqNumber, w.retries)
	c.resendLocked(w)
}

// stopTimerLocked cancels the single owned timer, if armed.
func (c *Client) stopTimerLocked() {
	if c.timerArmed {
		c.timer.Unregister(c.timerCookie)
		c.timerArmed = false
	}
}

// completeLocked pops the head item, stops the timer, closes any local
// file handle the item owns, and schedules its terminal callback off
// the lock via the executor. finish is a thunk that invokes the
// item-specific callback shape; a nil finish falls back to
// dispatchResultCallback.
func (c *Client) completeLocked(w *workItem, result Result, finish func()) {
	c.stopTimerLocked()
	w.closeLocal()
	c.queue.popFront()

	if finish == nil {
		finish = func() { c.dispatchResultCallback(w, result) }
	}
	c.executor(finish)
	c.driveLocked()
}

// dispatchResultCallback is the default terminal-callback dispatch: it
// invokes whichever callback shape the item carries. Completions that
// don't build their own finish thunk (single-shot ops, and a Timeout of
// any kind) go through here.
func (c *Client) dispatchResultCallback(w *workItem, result Result) {
	switch {
	case w.resultCB != nil:
		w.resultCB(result)
	case w.transferCB != nil:
		w.transferCB(result, ProgressData{BytesTransferred: w.bytesTransferred, TotalBytes: w.fileSize})
	case w.listCB != nil:
		w.listCB(result, w.listEntries)
	case w.crc32CB != nil:
		w.crc32CB(result, 0)
	}
}

// HandleFrame routes one inbound FILE_TRANSFER_PROTOCOL frame to the
// head work item, per spec.md §6.1 and §4.4. Frames addressed to a
// different system/component are dropped; duplicate or stale responses
// are dropped without mutating any state.
func (c *Client) HandleFrame(f Frame) {
	if f.TargetSystem != 0 && f.TargetSystem != c.ownSystemID {
		return
	}
	if f.TargetComponent != 0 && f.TargetComponent != c.ownComponentID {
		return
	}
	p := DecodePayload(f.Payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	w := c.queue.front()
	if w == nil || !w.started {
		return
	}
	if p.ReqOpcode != w.lastOpcode {
		c.logger.Debug("dropping reply with req_opcode=%s, expected %s", p.ReqOpcode, w.lastOpcode)
		return
	}
	if w.haveLastSeq && !seqLess(w.lastSeqNumber, p.SeqNumber) {
		c.logger.Debug("dropping stale/duplicate seq=%d (last accepted %d)", p.SeqNumber, w.lastSeqNumber)
		return
	}
	w.lastSeqNumber = p.SeqNumber
	w.haveLastSeq = true

	switch p.Opcode {
	case OpRspAck:
		// An advancing ACK restores the full retry budget — the
		// original source resets work->retries on every ACK that
		// moves an operation forward, not just on enqueue.
		w.retries = c.retries
		c.dispatchAck(w, &p)
	case OpRspNak:
		c.dispatchNak(w, &p)
	default:
		c.logger.Debug("dropping frame with unexpected opcode %s", p.Opcode)
	}
}

func (c *Client) dispatchAck(w *workItem, p *Payload) {
	switch w.kind {
	case opDownload:
		c.downloadOnAck(w, p)
	case opUpload:
		c.uploadOnAck(w, p)
	case opList:
		c.listOnAck(w, p)
	case opMkdir, opRmdir, opRm, opRename, opReset:
		c.singleShotOnAck(w, p)
	case opCRC32:
		c.crc32OnAck(w, p)
	}
}

func (c *Client) dispatchNak(w *workItem, p *Payload) {
	switch w.kind {
	case opDownload:
		c.downloadOnNak(w, p)
	case opUpload:
		c.uploadOnNak(w, p)
	case opList:
		c.listOnNak(w, p)
	case opMkdir, opRmdir, opRm, opRename, opReset:
		c.singleShotOnNak(w, p)
	case opCRC32:
		c.crc32OnNak(w, p)
	}
}

// enqueueOrReject pushes w onto the queue and kicks the driver, unless
// precondition already produced a synchronous failure (in which case
// the caller has already scheduled the callback and must not enqueue).
func (c *Client) enqueueOrReject(w *workItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue.pushBack(w)
	c.driveLocked()
}

// rejectSync schedules a terminal callback without ever enqueuing the
// item, for the synchronous precondition failures in spec.md §4.3.
func (c *Client) rejectSync(finish func()) {
	c.executor(finish)
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
