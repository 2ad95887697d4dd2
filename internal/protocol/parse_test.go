// internal/protocol/parse_test.go
package protocol

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadOf(t *testing.T, raw string) string {
	t.Helper()
	p, err := Payload(raw)
	require.NoError(t, err)
	return p
}

func TestParseAllTemperatures(t *testing.T) {
	got, err := ParseAllTemperatures(payloadOf(t, "$TEA,086,040,031,000,3798\r"))
	require.NoError(t, err)
	assert.Equal(t, [4]int{86, 40, 31, 0}, got)
}

func TestParseAllTemperatures_Negative(t *testing.T) {
	got, err := ParseAllTemperatures("$TEA,-12,040,031,000,")
	require.NoError(t, err)
	assert.Equal(t, -12, got[0])
}

func TestParseTemperature(t *testing.T) {
	got, err := ParseTemperature("$TE1", payloadOf(t, "$TE1,086,ADBC\r"))
	require.NoError(t, err)
	assert.Equal(t, 86.0, got)
}

func TestParseAllPressures(t *testing.T) {
	got, err := ParseAllPressures(payloadOf(t, "$PRA,079,000,0CEC\r"))
	require.NoError(t, err)
	assert.Equal(t, [2]int{79, 0}, got)
}

func TestParsePressure(t *testing.T) {
	got, err := ParsePressure("$PR1", payloadOf(t, "$PR1,079,2EBD\r"))
	require.NoError(t, err)
	assert.Equal(t, 79, got)
}

func TestParseID(t *testing.T) {
	got, err := ParseID(payloadOf(t, "$ID1,1.6,005842.1,1E26\r"))
	require.NoError(t, err)
	assert.Equal(t, Identification{Version: "1.6", OperatingHours: 5842.1}, got)
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus(payloadOf(t, "$STA,0301,2ED1\r"))
	require.NoError(t, err)

	assert.Equal(t, uint16(0x0301), got.Raw)
	assert.True(t, got.Solenoid)
	assert.True(t, got.System)
	assert.False(t, got.PressureAlarm)
	assert.False(t, got.OilLevelAlarm)
	assert.False(t, got.WaterFlowAlarm)
	assert.False(t, got.WaterTemperatureAlarm)
	assert.False(t, got.HeliumTemperatureAlarm)
	assert.False(t, got.PhaseSequenceAlarm)
	assert.False(t, got.MotorTemperatureAlarm)
	assert.Equal(t, 1, got.Configuration)
	assert.Equal(t, uint8(1), got.StateNumber)
	assert.Equal(t, "local on", got.State.String())
	assert.False(t, got.HasAlarm())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		parse func() error
	}{
		{"too few temperatures", func() error { _, err := ParseAllTemperatures("$TEA,086,040,"); return err }},
		{"empty temperature field", func() error { _, err := ParseAllTemperatures("$TEA,086,040,031,"); return err }},
		{"non-numeric temperature", func() error { _, err := ParseAllTemperatures("$TEA,086,x,031,000,"); return err }},
		{"single temperature missing", func() error { _, err := ParseTemperature("$TE1", "$TE1"); return err }},
		{"single temperature not float", func() error { _, err := ParseTemperature("$TE1", "$TE1,hot,"); return err }},
		{"too few pressures", func() error { _, err := ParseAllPressures("$PRA,079"); return err }},
		{"pressure not int", func() error { _, err := ParsePressure("$PR1", "$PR1,7.9,"); return err }},
		{"status not hex", func() error { _, err := ParseStatus("$STA,ZZZZ,"); return err }},
		{"status wider than 16 bits", func() error { _, err := ParseStatus("$STA,10000,"); return err }},
		{"status missing", func() error { _, err := ParseStatus("$STA"); return err }},
		{"id missing hours", func() error { _, err := ParseID("$ID1,1.6"); return err }},
		{"id hours not float", func() error { _, err := ParseID("$ID1,1.6,abc,"); return err }},
		{"id hours NaN", func() error { _, err := ParseID("$ID1,1.6,NaN,"); return err }},
		{"temperature hex float", func() error { _, err := ParseTemperature("$TE1", "$TE1,0x1p4,"); return err }},
		{"temperature infinite", func() error { _, err := ParseTemperature("$TE1", "$TE1,Inf,"); return err }},
		{"temperature exponent", func() error { _, err := ParseTemperature("$TE1", "$TE1,1e3,"); return err }},
		{"temperature two dots", func() error { _, err := ParseTemperature("$TE1", "$TE1,1.2.3,"); return err }},
		{"echo from another query", func() error { _, err := ParseAllPressures("$TEA,086,040,031,000,"); return err }},
		{"single echo mismatch", func() error { _, err := ParsePressure("$PR2", "$PR1,079,"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)

			var mre *MalformedResponseError
			require.True(t, errors.As(err, &mre))
			assert.NotEmpty(t, mre.Reason)
		})
	}
}

func TestParse_MalformedKeepsParseCause(t *testing.T) {
	_, err := ParsePressure("$PR1", "$PR1,abc,")
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestParseFloat_Decimal(t *testing.T) {
	for in, want := range map[string]float64{
		"086":      86,
		"-12.5":    -12.5,
		"+3":       3,
		"005842.1": 5842.1,
		".5":       0.5,
	} {
		got, err := ParseTemperature("$TE1", "$TE1,"+in+",")
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
