package ftp

// Frame is one MAVLink FILE_TRANSFER_PROTOCOL message: the addressing
// the engine must stamp on every send, plus the encoded payload body.
// Packing/unpacking this into an actual MAVLink v2 byte stream, and
// getting it on and off the wire, is outside the core's scope (spec.md
// §1) — see the sibling mavlink package for concrete transports.
type Frame struct {
	TargetSystem    uint8
	TargetComponent uint8
	NetworkID       uint8
	Payload         [PayloadSize]byte
}

// Sender is the send-side transport contract from spec.md §6.1.
type Sender interface {
	Send(Frame) error
}

// Receiver is the receive-side transport contract from spec.md §6.1.
// The engine calls SetHandler once, at construction, with a function
// that decodes and routes inbound FILE_TRANSFER_PROTOCOL frames. The
// transport is responsible for invoking it for every frame it receives,
// including ones addressed to a different system/component — the engine
// itself drops those (see Client.HandleFrame).
type Receiver interface {
	SetHandler(func(Frame))
}
