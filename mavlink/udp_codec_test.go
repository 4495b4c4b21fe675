package mavlink

import "testing"

func TestEncodeDecodeV2RoundTrip(t *testing.T) {
	payload := make([]byte, ftpMsgPayloadLen)
	for i := range payload {
		payload[i] = byte(i)
	}

	pkt := encodeV2(3, 255, 190, msgIDFileTransfer, payload, crcExtraFileTransfer)

	msgID, got, ok := decodeV2(pkt)
	if !ok {
		t.Fatal("decodeV2 rejected a packet encodeV2 produced")
	}
	if msgID != msgIDFileTransfer {
		t.Fatalf("msgID = %d, want %d", msgID, msgIDFileTransfer)
	}
	if len(got) != len(payload) {
		t.Fatalf("payload length = %d, want %d", len(got), len(payload))
	}
	for i := range payload {
		if got[i] != payload[i] {
			t.Fatalf("payload[%d] = %d, want %d", i, got[i], payload[i])
		}
	}
}

func TestDecodeV2RejectsBadMagic(t *testing.T) {
	buf := make([]byte, 20)
	buf[0] = 0x00
	if _, _, ok := decodeV2(buf); ok {
		t.Fatal("decodeV2 accepted a packet with the wrong magic byte")
	}
}

func TestDecodeV2RejectsTruncatedPacket(t *testing.T) {
	pkt := encodeV2(0, 1, 1, msgIDFileTransfer, make([]byte, ftpMsgPayloadLen), crcExtraFileTransfer)
	if _, _, ok := decodeV2(pkt[:len(pkt)-5]); ok {
		t.Fatal("decodeV2 accepted a truncated packet")
	}
}

func TestX25CRCDeterministic(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	a := x25CRC(data, 84)
	b := x25CRC(data, 84)
	if a != b {
		t.Fatalf("x25CRC not deterministic: %d != %d", a, b)
	}
	if c := x25CRC(data, 85); c == a {
		t.Fatal("x25CRC did not change with a different crc_extra")
	}
}
