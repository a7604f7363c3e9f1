package decoder

import (
	"encoding/binary"

	"firestige.xyz/strix/internal/core"
)

const (
	ethernetHeaderLen = 14
	vlanHeaderLen     = 4

	etherTypeIPv4 = 0x0800
	etherTypeARP  = 0x0806
	etherTypeVLAN = 0x8100
	etherTypeQinQ = 0x88A8
)

// decodeEthernet parses the frame header and returns it together with the
// payload following the last VLAN tag, if any.
func decodeEthernet(data []byte) (core.EthernetHeader, []byte, error) {
	if len(data) < ethernetHeaderLen {
		return core.EthernetHeader{}, nil, core.ErrPacketTooShort
	}

	var eth core.EthernetHeader
	copy(eth.DstMAC[:], data[:6])
	copy(eth.SrcMAC[:], data[6:12])
	eth.EtherType = binary.BigEndian.Uint16(data[12:14])

	rest := data[ethernetHeaderLen:]

	// 802.1Q and 802.1ad tags stack in front of the real EtherType; each
	// carries the VLAN ID in the low 12 bits of its TCI.
	for eth.EtherType == etherTypeVLAN || eth.EtherType == etherTypeQinQ {
		if len(rest) < vlanHeaderLen {
			return eth, nil, core.ErrPacketTooShort
		}
		eth.VLANs = append(eth.VLANs, binary.BigEndian.Uint16(rest[:2])&0x0FFF)
		eth.EtherType = binary.BigEndian.Uint16(rest[2:4])
		rest = rest[vlanHeaderLen:]
	}

	return eth, rest, nil
}
