package mavlink

import (
	"encoding/binary"
	"net"
	"sync"

	"github.com/pkg/errors"

	"github.com/aurelia-robotics/mavftp/ftp"
)

const (
	magicV2              = 0xFD
	msgIDFileTransfer    = 110
	ftpMsgPayloadLen     = 3 + ftp.PayloadSize // target_network, target_system, target_component, payload
	crcExtraFileTransfer = 84                  // common.xml crc_extra for FILE_TRANSFER_PROTOCOL (110)
)

// UDPTransport implements ftp.Sender and ftp.Receiver over a MAVLink v2
// UDP link, carrying a FILE_TRANSFER_PROTOCOL message per datagram. It
// is a minimal, single-message-type framer: no signing, no other
// MAVLink message types, no fragmentation — exactly the "external
// collaborator" contract ftp.Client needs and nothing more.
type UDPTransport struct {
	conn     *net.UDPConn
	remote   *net.UDPAddr
	systemID uint8
	compID   uint8

	mu      sync.Mutex
	seq     uint8
	handler func(ftp.Frame)
}

// DialUDP opens a UDP socket to remote and returns a transport that
// stamps outgoing MAVLink headers with the given local system/component
// id. Call Listen in a goroutine to start delivering inbound frames.
func DialUDP(localAddr, remoteAddr string, systemID, compID uint8) (*UDPTransport, error) {
	laddr, err := net.ResolveUDPAddr("udp", localAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve local addr %s", localAddr)
	}
	raddr, err := net.ResolveUDPAddr("udp", remoteAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve remote addr %s", remoteAddr)
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s", localAddr)
	}
	return &UDPTransport{conn: conn, remote: raddr, systemID: systemID, compID: compID}, nil
}

func (t *UDPTransport) SetHandler(fn func(ftp.Frame)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = fn
}

// Send encodes f as a MAVLink v2 FILE_TRANSFER_PROTOCOL message and
// writes it as one UDP datagram.
func (t *UDPTransport) Send(f ftp.Frame) error {
	t.mu.Lock()
	seq := t.seq
	t.seq++
	t.mu.Unlock()

	payload := make([]byte, ftpMsgPayloadLen)
	payload[0] = f.NetworkID
	payload[1] = f.TargetSystem
	payload[2] = f.TargetComponent
	copy(payload[3:], f.Payload[:])

	pkt := encodeV2(seq, t.systemID, t.compID, msgIDFileTransfer, payload, crcExtraFileTransfer)
	_, err := t.conn.WriteToUDP(pkt, t.remote)
	return errors.Wrap(err, "udp send")
}

// Listen reads datagrams until the connection is closed, decoding
// FILE_TRANSFER_PROTOCOL messages and handing them to the registered
// handler. Other message ids are silently ignored.
func (t *UDPTransport) Listen() error {
	buf := make([]byte, 2048)
	for {
		n, _, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			return errors.Wrap(err, "udp read")
		}
		msgID, payload, ok := decodeV2(buf[:n])
		if !ok || msgID != msgIDFileTransfer || len(payload) < ftpMsgPayloadLen {
			continue
		}
		var f ftp.Frame
		f.NetworkID = payload[0]
		f.TargetSystem = payload[1]
		f.TargetComponent = payload[2]
		copy(f.Payload[:], payload[3:3+ftp.PayloadSize])

		t.mu.Lock()
		handler := t.handler
		t.mu.Unlock()
		if handler != nil {
			handler(f)
		}
	}
}

func (t *UDPTransport) Close() error {
	return t.conn.Close()
}

// encodeV2 builds a MAVLink v2 frame: the 10-byte header, the payload,
// and a 2-byte X.25 checksum seeded with crcExtra.
func encodeV2(seq, systemID, compID uint8, msgID uint32, payload []byte, crcExtra uint8) []byte {
	header := make([]byte, 10)
	header[0] = magicV2
	header[1] = uint8(len(payload))
	header[2] = 0 // incompat_flags
	header[3] = 0 // compat_flags
	header[4] = seq
	header[5] = systemID
	header[6] = compID
	header[7] = byte(msgID)
	header[8] = byte(msgID >> 8)
	header[9] = byte(msgID >> 16)

	crcBody := append(append([]byte{}, header[1:]...), payload...)
	crc := x25CRC(crcBody, crcExtra)

	out := make([]byte, 0, 1+len(header)+len(payload)+2)
	out = append(out, header...)
	out = append(out, payload...)
	crcBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(crcBytes, crc)
	out = append(out, crcBytes...)
	return out
}

// decodeV2 parses one MAVLink v2 frame, returning its message id and
// payload. It does not verify the checksum — crc_extra values for
// messages other than FILE_TRANSFER_PROTOCOL aren't known to this
// package, and the engine re-validates frame contents at the FTP layer
// regardless (seq_number, req_opcode).
func decodeV2(buf []byte) (msgID uint32, payload []byte, ok bool) {
	if len(buf) < 12 || buf[0] != magicV2 {
		return 0, nil, false
	}
	payloadLen := int(buf[1])
	if len(buf) < 10+payloadLen+2 {
		return 0, nil, false
	}
	msgID = uint32(buf[7]) | uint32(buf[8])<<8 | uint32(buf[9])<<16
	payload = buf[10 : 10+payloadLen]
	return msgID, payload, true
}

// x25CRC computes the MAVLink X.25 CRC-16 over data, finished by mixing
// in the message's crc_extra byte.
func x25CRC(data []byte, crcExtra uint8) uint16 {
	crc := uint16(0xFFFF)
	accumulate := func(b byte) {
		tmp := b ^ byte(crc&0xFF)
		tmp ^= tmp << 4
		crc = (crc >> 8) ^ uint16(tmp)<<8 ^ uint16(tmp)<<3 ^ uint16(tmp)>>4
	}
	for _, b := range data {
		accumulate(b)
	}
	accumulate(crcExtra)
	return crc
}
