package decoder

import (
	"encoding/binary"
	"net/netip"

	"firestige.xyz/strix/internal/core"
)

const (
	ipv4HeaderMinLen = 20
	ipProtoICMP      = 1
)

// ipv4Header is the subset of the IPv4 header the pipeline needs.
type ipv4Header struct {
	TTL      uint8
	Protocol uint8
	TotalLen uint16
	SrcIP    netip.Addr
	DstIP    netip.Addr
}

// decodeIPv4 decodes an IPv4 header. Returns the header and the payload.
func decodeIPv4(data []byte) (ipv4Header, []byte, error) {
	if len(data) < ipv4HeaderMinLen {
		return ipv4Header{}, nil, core.ErrPacketTooShort
	}

	if version := data[0] >> 4; version != 4 {
		return ipv4Header{}, nil, core.ErrUnsupportedProto
	}

	// IHL is in 32-bit words, lower 4 bits of the first byte.
	headerLen := int(data[0]&0x0F) * 4
	if headerLen < ipv4HeaderMinLen || len(data) < headerLen {
		return ipv4Header{}, nil, core.ErrPacketTooShort
	}

	ip := ipv4Header{
		TotalLen: binary.BigEndian.Uint16(data[2:4]),
		TTL:      data[8],
		Protocol: data[9],
	}

	srcIP, ok := netip.AddrFromSlice(data[12:16])
	if !ok {
		return ip, nil, core.ErrPacketTooShort
	}
	ip.SrcIP = srcIP

	dstIP, ok := netip.AddrFromSlice(data[16:20])
	if !ok {
		return ip, nil, core.ErrPacketTooShort
	}
	ip.DstIP = dstIP

	return ip, data[headerLen:], nil
}
