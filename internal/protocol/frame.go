// internal/protocol/frame.go
package protocol

import "strings"

// Terminator ends every frame in both directions.
const Terminator byte = '\r'

// trailerLen is checksum + terminator at the end of a response.
const trailerLen = ChecksumLen + 1

// Frame builds the on-wire bytes for a command:
//
//	<mnemonic><CRC16 as 4 hex digits><CR>
//
// The checksum covers the ASCII mnemonic only.
func Frame(mnemonic string) []byte {
	out := make([]byte, 0, len(mnemonic)+trailerLen)
	out = append(out, mnemonic...)
	out = append(out, Checksum([]byte(mnemonic))...)
	out = append(out, Terminator)
	return out
}

// Complete reports whether an accumulated response has been terminated.
func Complete(raw string) bool {
	return len(raw) > 0 && raw[len(raw)-1] == Terminator
}

// Payload strips the trailing checksum and terminator from a raw response
// and trims surrounding whitespace. The response checksum is not verified.
func Payload(raw string) (string, error) {
	if !Complete(raw) {
		return "", &MalformedResponseError{Payload: raw, Reason: "missing terminator"}
	}
	if len(raw) < trailerLen {
		return "", &MalformedResponseError{Payload: raw, Reason: "shorter than checksum trailer"}
	}
	return strings.TrimSpace(raw[:len(raw)-trailerLen]), nil
}
