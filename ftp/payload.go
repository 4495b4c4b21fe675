package ftp

import "encoding/binary"

// MaxDataLength is the largest number of data bytes one payload can carry.
// This matches PX4/MAVSDK's max_data_length and leaves room for the
// 12-byte header inside the 251-byte FILE_TRANSFER_PROTOCOL payload field.
const MaxDataLength = 239

// PayloadSize is the full wire size of one FTP payload: a 12-byte header
// plus the 239-byte data region, regardless of how many data bytes are
// actually valid (see Payload.Size).
const PayloadSize = 12 + MaxDataLength

// Payload is one FTP message body, carried inside a MAVLink
// FILE_TRANSFER_PROTOCOL frame. Field order and widths match the wire
// layout exactly; Data is always MaxDataLength bytes long, with only
// Data[:Size] holding meaningful bytes.
type Payload struct {
	SeqNumber      uint16
	Session        uint8
	Opcode         Opcode
	Size           uint8
	ReqOpcode      Opcode
	BurstComplete  uint8
	Padding        uint8
	Offset         uint32
	Data           [MaxDataLength]byte
}

// Encode packs p into the 251-byte wire representation, little-endian.
func (p *Payload) Encode() [PayloadSize]byte {
	var buf [PayloadSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], p.SeqNumber)
	buf[2] = p.Session
	buf[3] = byte(p.Opcode)
	buf[4] = p.Size
	buf[5] = byte(p.ReqOpcode)
	buf[6] = p.BurstComplete
	buf[7] = p.Padding
	binary.LittleEndian.PutUint32(buf[8:12], p.Offset)
	copy(buf[12:], p.Data[:])
	return buf
}

// DecodePayload parses the 251-byte wire representation of one FTP
// payload. It performs no semantic validation beyond field extraction;
// callers must check Size themselves.
func DecodePayload(buf [PayloadSize]byte) Payload {
	var p Payload
	p.SeqNumber = binary.LittleEndian.Uint16(buf[0:2])
	p.Session = buf[2]
	p.Opcode = Opcode(buf[3])
	p.Size = buf[4]
	p.ReqOpcode = Opcode(buf[5])
	p.BurstComplete = buf[6]
	p.Padding = buf[7]
	p.Offset = binary.LittleEndian.Uint32(buf[8:12])
	copy(p.Data[:], buf[12:])
	return p
}

// DataBytes returns the valid portion of the data region, i.e. Data[:Size].
// It clamps Size to MaxDataLength to guard against malformed wire input.
func (p *Payload) DataBytes() []byte {
	size := int(p.Size)
	if size > MaxDataLength {
		size = MaxDataLength
	}
	return p.Data[:size]
}

// SetDataString writes s, including a trailing NUL, into Data and sets
// Size accordingly. The caller must have already checked that
// len(s)+1 <= MaxDataLength.
func (p *Payload) SetDataString(s string) {
	n := copy(p.Data[:], s)
	p.Data[n] = 0
	p.Size = uint8(n + 1)
}
