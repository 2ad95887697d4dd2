// internal/protocol/checksum_test.go
package protocol

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/sigurn/crc16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum_KnownVectors(t *testing.T) {
	tests := []struct {
		mnemonic string
		want     string
	}{
		{"$TEA", "A4B9"},
		{"$TE1", "40B8"},
		{"$PRA", "95F7"},
		{"$PR1", "71F6"},
		{"$STA", "3504"},
		{"$ID1", "D629"},
		{"$ON1", "77CF"},
		{"$OFF", "9188"},
		{"$RS1", "2156"},
		{"$CHR", "FD4C"},
		{"$CHP", "3CCD"},
		{"$POF", "07BF"},
	}

	for _, tt := range tests {
		t.Run(tt.mnemonic, func(t *testing.T) {
			assert.Equal(t, tt.want, Checksum([]byte(tt.mnemonic)))
		})
	}
}

func TestChecksum_EmptyInputIsInitialValue(t *testing.T) {
	assert.Equal(t, CRCInitial, CRC16(nil))
	assert.Equal(t, "FFFF", Checksum(nil))
}

func TestChecksum_ZeroPadded(t *testing.T) {
	// "$POF" renders with a leading zero.
	got := Checksum([]byte(CmdColdHeadUnpause))
	require.Len(t, got, ChecksumLen)
	assert.Equal(t, byte('0'), got[0])
}

func TestChecksum_MatchesReferenceCRC16Modbus(t *testing.T) {
	table := crc16.MakeTable(crc16.CRC16_MODBUS)
	hex4 := regexp.MustCompile(`^[0-9A-F]{4}$`)
	rng := rand.New(rand.NewSource(70))

	for i := 0; i < 500; i++ {
		buf := make([]byte, 1+rng.Intn(64))
		rng.Read(buf)

		want := crc16.Checksum(buf, table)
		require.Equal(t, want, CRC16(buf), "input %x", buf)

		s := Checksum(buf)
		require.Regexp(t, hex4, s)
		require.Equal(t, s, Checksum(buf), "checksum must be deterministic")
	}
}

func BenchmarkCRC16(b *testing.B) {
	data := []byte("$TEA,086,040,031,000,")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CRC16(data)
	}
}
