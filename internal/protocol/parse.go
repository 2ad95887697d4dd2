// internal/protocol/parse.go
package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Identification is the $ID1 answer.
type Identification struct {
	Version        string  `json:"version"`
	OperatingHours float64 `json:"operating_hours"`
}

// Fields splits a payload on commas and drops field 0 (the echoed mnemonic).
// It fails unless field 0 echoes mnemonic and at least want data fields
// are present.
func Fields(mnemonic, payload string, want int) ([]string, error) {
	parts := strings.Split(payload, ",")
	if echo := strings.TrimSpace(parts[0]); echo != mnemonic {
		return nil, &MalformedResponseError{
			Mnemonic: mnemonic,
			Payload:  payload,
			Reason:   fmt.Sprintf("response echoes %q", echo),
		}
	}
	if len(parts)-1 < want {
		return nil, &MalformedResponseError{
			Mnemonic: mnemonic,
			Payload:  payload,
			Reason:   fmt.Sprintf("expected %d fields, got %d", want, len(parts)-1),
		}
	}
	out := parts[1 : want+1]
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out, nil
}

// ParseAllTemperatures decodes a $TEA payload into T1..T4.
func ParseAllTemperatures(payload string) ([TemperatureChannels]int, error) {
	var out [TemperatureChannels]int
	fields, err := Fields(CmdReadAllTemperatures, payload, TemperatureChannels)
	if err != nil {
		return out, err
	}
	for i, f := range fields {
		if out[i], err = parseInt(CmdReadAllTemperatures, payload, f); err != nil {
			return [TemperatureChannels]int{}, err
		}
	}
	return out, nil
}

// ParseTemperature decodes a $TE<n> payload.
func ParseTemperature(mnemonic, payload string) (float64, error) {
	fields, err := Fields(mnemonic, payload, 1)
	if err != nil {
		return 0, err
	}
	return parseFloat(mnemonic, payload, fields[0])
}

// ParseAllPressures decodes a $PRA payload into P1..P2.
func ParseAllPressures(payload string) ([PressureChannels]int, error) {
	var out [PressureChannels]int
	fields, err := Fields(CmdReadAllPressures, payload, PressureChannels)
	if err != nil {
		return out, err
	}
	for i, f := range fields {
		if out[i], err = parseInt(CmdReadAllPressures, payload, f); err != nil {
			return [PressureChannels]int{}, err
		}
	}
	return out, nil
}

// ParsePressure decodes a $PR<n> payload.
func ParsePressure(mnemonic, payload string) (int, error) {
	fields, err := Fields(mnemonic, payload, 1)
	if err != nil {
		return 0, err
	}
	return parseInt(mnemonic, payload, fields[0])
}

// ParseStatus decodes a $STA payload; field 1 is a 16-bit hex word.
func ParseStatus(payload string) (StatusBits, error) {
	fields, err := Fields(CmdReadStatus, payload, 1)
	if err != nil {
		return StatusBits{}, err
	}
	v, err := strconv.ParseUint(fields[0], 16, 16)
	if err != nil {
		return StatusBits{}, &MalformedResponseError{
			Mnemonic: CmdReadStatus,
			Payload:  payload,
			Reason:   fmt.Sprintf("status field %q is not a 16-bit hex word", fields[0]),
			Err:      err,
		}
	}
	return DecodeStatus(uint16(v)), nil
}

// ParseID decodes a $ID1 payload.
func ParseID(payload string) (Identification, error) {
	fields, err := Fields(CmdReadID, payload, 2)
	if err != nil {
		return Identification{}, err
	}
	hours, err := parseFloat(CmdReadID, payload, fields[1])
	if err != nil {
		return Identification{}, err
	}
	return Identification{Version: fields[0], OperatingHours: hours}, nil
}

func parseInt(mnemonic, payload, field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, &MalformedResponseError{
			Mnemonic: mnemonic,
			Payload:  payload,
			Reason:   fmt.Sprintf("field %q is not an integer", field),
			Err:      err,
		}
	}
	return v, nil
}

// parseFloat accepts plain decimal notation only. Hex floats, Inf and NaN
// are rejected.
func parseFloat(mnemonic, payload, field string) (float64, error) {
	if !decimal(field) {
		return 0, &MalformedResponseError{
			Mnemonic: mnemonic,
			Payload:  payload,
			Reason:   fmt.Sprintf("field %q is not a decimal number", field),
		}
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &MalformedResponseError{
			Mnemonic: mnemonic,
			Payload:  payload,
			Reason:   fmt.Sprintf("field %q is not a number", field),
			Err:      err,
		}
	}
	return v, nil
}

// decimal reports whether s is [sign] digits [. digits] with at least one digit.
func decimal(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
