package decoder

import (
	"encoding/binary"

	"firestige.xyz/strix/internal/core"
)

const (
	icmpHeaderLen = 8 // type(1) code(1) checksum(2) id(2) seq(2)

	icmpTypeEchoReply   = 0
	icmpTypeEchoRequest = 8
)

// decodeIcmpEcho decodes an ICMPv4 echo request or reply.
// Non-echo ICMP messages return ok=false with a nil error.
func decodeIcmpEcho(data []byte) (core.IcmpEcho, bool, error) {
	if len(data) < icmpHeaderLen {
		return core.IcmpEcho{}, false, core.ErrPacketTooShort
	}

	echo := core.IcmpEcho{}
	switch data[0] {
	case icmpTypeEchoRequest:
		echo.Type = core.EchoRequest
	case icmpTypeEchoReply:
		echo.Type = core.EchoReply
	default:
		return core.IcmpEcho{}, false, nil
	}

	echo.ID = binary.BigEndian.Uint16(data[4:6])
	echo.Seq = binary.BigEndian.Uint16(data[6:8])

	return echo, true, nil
}
