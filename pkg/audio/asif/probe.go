// ABOUTME: ASIF format recognition
// ABOUTME: All-or-nothing probe on the 4-byte magic
package asif

import "bytes"

// ProbeScoreMax is the score reported for a recognised stream
const ProbeScoreMax = 100

// Probe scores buf as an ASIF stream: ProbeScoreMax when it starts with the
// magic, zero otherwise.
func Probe(buf []byte) int {
	if len(buf) >= len(Magic) && bytes.Equal(buf[:len(Magic)], []byte(Magic)) {
		return ProbeScoreMax
	}
	return 0
}
