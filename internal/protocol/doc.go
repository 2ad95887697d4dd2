// Package protocol implements the F70 compressor serial protocol: the
// CRC-16/MODBUS checksum, command frames, and decoding of the comma-delimited
// ASCII responses.
//
// Outgoing frame:
//
//	<mnemonic><CRC16 4 hex digits><CR>        $TEAA4B9\r
//
// Incoming frame:
//
//	<echo>,<field1>,...,<CRC16><CR>           $TEA,086,040,031,000,3798\r
//
// Nothing in this package performs I/O.
package protocol
