// internal/protocol/mnemonics.go
package protocol

import "strconv"

// Queries (the device answers with a comma-delimited payload).
const (
	CmdReadAllTemperatures = "$TEA"
	CmdReadAllPressures    = "$PRA"
	CmdReadStatus          = "$STA"
	CmdReadID              = "$ID1"

	cmdReadTemperaturePrefix = "$TE"
	cmdReadPressurePrefix    = "$PR"
)

// Actions (write-only, the device sends nothing back).
const (
	CmdOn    = "$ON1"
	CmdOff   = "$OFF"
	CmdReset = "$RS1"

	// Cold head run is honoured only while the compressor is off; the
	// device stops the cold head after 30 minutes without another command.
	CmdColdHeadRun     = "$CHR"
	CmdColdHeadPause   = "$CHP"
	CmdColdHeadUnpause = "$POF"
)

// Channel counts exposed by $TEA and $PRA.
const (
	TemperatureChannels = 4
	PressureChannels    = 2
)

// CmdReadTemperature returns the single-channel temperature query $TE<n>.
func CmdReadTemperature(n int) string {
	return cmdReadTemperaturePrefix + strconv.Itoa(n)
}

// CmdReadPressure returns the single-channel pressure query $PR<n>.
func CmdReadPressure(n int) string {
	return cmdReadPressurePrefix + strconv.Itoa(n)
}
