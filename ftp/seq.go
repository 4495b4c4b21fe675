package ftp

// seqLess implements modulo-2^16 serial-number comparison, per
// https://en.wikipedia.org/wiki/Serial_number_arithmetic and spec.md
// §4.4: a < b iff (a<b && b-a<2^15) || (a>b && a-b>2^15).
func seqLess(a, b uint16) bool {
	const half = 1 << 15
	if a < b {
		return b-a < half
	}
	if a > b {
		return a-b > half
	}
	return false
}

// sequencer hands out strictly-increasing (modulo 2^16) seq numbers for
// outgoing requests.
type sequencer struct {
	next uint16
}

func (s *sequencer) take() uint16 {
	n := s.next
	s.next++
	return n
}
