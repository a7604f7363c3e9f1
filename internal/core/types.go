// Package core defines core types with zero external dependencies.
package core

import (
	"fmt"
	"net/netip"
	"time"
)

// Frame is a raw link-layer frame captured from a source.
// Immutable once captured.
type Frame struct {
	Data       []byte    // Raw frame bytes
	Timestamp  time.Time // Capture timestamp (kernel timestamp preferred)
	CaptureLen uint32    // Actual captured length
	OrigLen    uint32    // Original frame length on the wire
}

// EthernetHeader represents the L2 Ethernet frame header.
type EthernetHeader struct {
	SrcMAC    [6]byte
	DstMAC    [6]byte
	EtherType uint16   // 0x0806=ARP, 0x0800=IPv4
	VLANs     []uint16 // 0~2 VLAN IDs (QinQ scenarios have 2)
}

// FormatMAC renders a MAC address as lowercase colon-separated hex.
func FormatMAC(mac [6]byte) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}

// PacketKind discriminates what the decoder recognized in a frame.
type PacketKind uint8

const (
	// KindOther is anything that is not ARP or ICMP echo. Counted, never reported.
	KindOther PacketKind = iota
	KindArp
	KindIcmpEcho
)

// ArpOp is the ARP operation code.
type ArpOp uint16

const (
	ArpOpRequest ArpOp = 1
	ArpOpReply   ArpOp = 2
)

// ArpPacket is a decoded IPv4-over-Ethernet ARP packet.
type ArpPacket struct {
	Op        ArpOp
	SenderMAC [6]byte
	SenderIP  netip.Addr
	TargetMAC [6]byte // Zero on requests
	TargetIP  netip.Addr
}

// EchoType is the ICMP echo message type.
type EchoType uint8

const (
	EchoRequest EchoType = iota
	EchoReply
)

// IcmpEcho is a decoded ICMPv4 echo request or reply.
type IcmpEcho struct {
	Type  EchoType
	ID    uint16
	Seq   uint16
	TTL   uint8 // From the enclosing IPv4 header
	SrcIP netip.Addr
	DstIP netip.Addr
}

// DecodedPacket is the result of L2-L3 decoding of one frame.
// Arp is valid only when Kind == KindArp, Icmp only when Kind == KindIcmpEcho.
type DecodedPacket struct {
	Timestamp  time.Time
	Ethernet   EthernetHeader
	Kind       PacketKind
	Arp        ArpPacket
	Icmp       IcmpEcho
	CaptureLen uint32
	OrigLen    uint32
}
