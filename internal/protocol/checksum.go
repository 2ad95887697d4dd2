// internal/protocol/checksum.go
package protocol

import "fmt"

// CRC-16/MODBUS parameters used by the F70 serial protocol.
const (
	CRCPolynomial uint16 = 0xA001
	CRCInitial    uint16 = 0xFFFF

	// ChecksumLen is the number of hex characters a rendered checksum occupies.
	ChecksumLen = 4
)

// CRC16 computes the CRC-16/MODBUS value of data (reflected, table-free).
// All arithmetic stays in uint16 so shifts and XORs wrap at 16 bits.
func CRC16(data []byte) uint16 {
	crc := CRCInitial
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ CRCPolynomial
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// Checksum renders CRC16(data) as exactly four uppercase hex digits.
func Checksum(data []byte) string {
	return fmt.Sprintf("%04X", CRC16(data))
}
