package decoder

import (
	"encoding/binary"
	"net/netip"

	"firestige.xyz/strix/internal/core"
)

const (
	arpPacketLen = 28 // IPv4-over-Ethernet ARP

	arpHTypeEthernet = 1
	arpHLenEthernet  = 6
	arpPLenIPv4      = 4
)

// decodeArp decodes an IPv4-over-Ethernet ARP packet.
//
// Layout: htype(2) ptype(2) hlen(1) plen(1) op(2)
//         sha(6) spa(4) tha(6) tpa(4)
func decodeArp(data []byte) (core.ArpPacket, error) {
	if len(data) < arpPacketLen {
		return core.ArpPacket{}, core.ErrPacketTooShort
	}

	htype := binary.BigEndian.Uint16(data[0:2])
	ptype := binary.BigEndian.Uint16(data[2:4])
	hlen := data[4]
	plen := data[5]
	if htype != arpHTypeEthernet || ptype != etherTypeIPv4 ||
		hlen != arpHLenEthernet || plen != arpPLenIPv4 {
		return core.ArpPacket{}, core.ErrUnsupportedProto
	}

	arp := core.ArpPacket{}

	op := binary.BigEndian.Uint16(data[6:8])
	switch core.ArpOp(op) {
	case core.ArpOpRequest, core.ArpOpReply:
		arp.Op = core.ArpOp(op)
	default:
		return core.ArpPacket{}, core.ErrUnsupportedProto
	}

	copy(arp.SenderMAC[:], data[8:14])
	senderIP, ok := netip.AddrFromSlice(data[14:18])
	if !ok {
		return core.ArpPacket{}, core.ErrPacketTooShort
	}
	arp.SenderIP = senderIP

	copy(arp.TargetMAC[:], data[18:24])
	targetIP, ok := netip.AddrFromSlice(data[24:28])
	if !ok {
		return core.ArpPacket{}, core.ErrPacketTooShort
	}
	arp.TargetIP = targetIP

	return arp, nil
}
