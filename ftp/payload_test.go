package ftp

import "testing"

func TestPayloadEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		p    Payload
	}{
		{
			name: "open file request",
			p: Payload{
				SeqNumber: 1,
				Opcode:    OpOpenFileRO,
			},
		},
		{
			name: "ack with session and data",
			p: Payload{
				SeqNumber:     2,
				Session:       7,
				Opcode:        OpRspAck,
				Size:          4,
				ReqOpcode:     OpOpenFileRO,
				BurstComplete: 0,
				Offset:        0,
			},
		},
		{
			name: "nak with server error",
			p: Payload{
				SeqNumber: 65535,
				Opcode:    OpRspNak,
				Size:      2,
				ReqOpcode: OpReadFile,
				Offset:    1 << 20,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.p.Data[0] = 0xAB
			wire := tt.p.Encode()
			got := DecodePayload(wire)

			if got.SeqNumber != tt.p.SeqNumber {
				t.Errorf("SeqNumber = %d, want %d", got.SeqNumber, tt.p.SeqNumber)
			}
			if got.Session != tt.p.Session {
				t.Errorf("Session = %d, want %d", got.Session, tt.p.Session)
			}
			if got.Opcode != tt.p.Opcode {
				t.Errorf("Opcode = %v, want %v", got.Opcode, tt.p.Opcode)
			}
			if got.Size != tt.p.Size {
				t.Errorf("Size = %d, want %d", got.Size, tt.p.Size)
			}
			if got.ReqOpcode != tt.p.ReqOpcode {
				t.Errorf("ReqOpcode = %v, want %v", got.ReqOpcode, tt.p.ReqOpcode)
			}
			if got.Offset != tt.p.Offset {
				t.Errorf("Offset = %d, want %d", got.Offset, tt.p.Offset)
			}
			if got.Data[0] != 0xAB {
				t.Errorf("Data[0] = %#x, want 0xab", got.Data[0])
			}
		})
	}
}

func TestSetDataStringAndDataBytes(t *testing.T) {
	var p Payload
	p.SetDataString("/a/data.bin")

	want := "/a/data.bin\x00"
	if p.Size != uint8(len(want)) {
		t.Fatalf("Size = %d, want %d", p.Size, len(want))
	}
	got := string(p.DataBytes())
	if got != want {
		t.Fatalf("DataBytes = %q, want %q", got, want)
	}
}

func TestDataBytesClampsOversizedSize(t *testing.T) {
	p := Payload{Size: 255}
	if len(p.DataBytes()) != MaxDataLength {
		t.Fatalf("DataBytes length = %d, want %d", len(p.DataBytes()), MaxDataLength)
	}
}
