// Package decoder implements Ethernet/ARP/IPv4/ICMP header decoding.
package decoder

import "firestige.xyz/strix/internal/core"

// Decoder decodes raw frames into structured packets.
//
// Decode returns a *core.DecodeError for truncated or malformed frames;
// the caller skips such frames. Frames that parse but carry neither ARP
// nor ICMP echo come back as core.KindOther with a nil error.
type Decoder interface {
	Decode(frame core.Frame) (core.DecodedPacket, error)
}

// New returns a Decoder for Ethernet link-layer frames.
func New() Decoder {
	return &ethernetDecoder{}
}

type ethernetDecoder struct{}

func (d *ethernetDecoder) Decode(frame core.Frame) (core.DecodedPacket, error) {
	pkt := core.DecodedPacket{
		Timestamp:  frame.Timestamp,
		CaptureLen: frame.CaptureLen,
		OrigLen:    frame.OrigLen,
	}

	eth, payload, err := decodeEthernet(frame.Data)
	if err != nil {
		return pkt, core.NewDecodeError("ethernet", err)
	}
	pkt.Ethernet = eth

	switch eth.EtherType {
	case etherTypeARP:
		arp, err := decodeArp(payload)
		if err != nil {
			return pkt, core.NewDecodeError("arp", err)
		}
		pkt.Kind = core.KindArp
		pkt.Arp = arp

	case etherTypeIPv4:
		ip, ipPayload, err := decodeIPv4(payload)
		if err != nil {
			return pkt, core.NewDecodeError("ipv4", err)
		}
		if ip.Protocol != ipProtoICMP {
			pkt.Kind = core.KindOther
			return pkt, nil
		}
		echo, ok, err := decodeIcmpEcho(ipPayload)
		if err != nil {
			return pkt, core.NewDecodeError("icmp", err)
		}
		if !ok {
			// ICMP but not an echo message (e.g. destination unreachable).
			pkt.Kind = core.KindOther
			return pkt, nil
		}
		echo.TTL = ip.TTL
		echo.SrcIP = ip.SrcIP
		echo.DstIP = ip.DstIP
		pkt.Kind = core.KindIcmpEcho
		pkt.Icmp = echo

	default:
		// IPv6, LLDP etc. Observed but not reported.
		pkt.Kind = core.KindOther
	}

	return pkt, nil
}
