package decoder

import (
	"net/netip"
	"testing"

	"firestige.xyz/strix/internal/core"
)

// arpRequestPayload is a "who has 10.0.0.2? tell 10.0.0.1" request.
var arpRequestPayload = []byte{
	0x00, 0x01, // HType: Ethernet
	0x08, 0x00, // PType: IPv4
	0x06,       // HLen
	0x04,       // PLen
	0x00, 0x01, // Op: request
	0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0x01, // Sender MAC
	0x0A, 0x00, 0x00, 0x01, // Sender IP: 10.0.0.1
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // Target MAC (unknown)
	0x0A, 0x00, 0x00, 0x02, // Target IP: 10.0.0.2
}

func TestDecodeArpRequest(t *testing.T) {
	arp, err := decodeArp(arpRequestPayload)
	if err != nil {
		t.Fatalf("decodeArp failed: %v", err)
	}

	if arp.Op != core.ArpOpRequest {
		t.Errorf("Expected op request, got %d", arp.Op)
	}
	if arp.SenderIP != netip.MustParseAddr("10.0.0.1") {
		t.Errorf("Expected sender IP 10.0.0.1, got %s", arp.SenderIP)
	}
	if arp.TargetIP != netip.MustParseAddr("10.0.0.2") {
		t.Errorf("Expected target IP 10.0.0.2, got %s", arp.TargetIP)
	}
	expectedMAC := [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0x01}
	if arp.SenderMAC != expectedMAC {
		t.Errorf("Expected sender MAC %v, got %v", expectedMAC, arp.SenderMAC)
	}
}

func TestDecodeArpReply(t *testing.T) {
	reply := make([]byte, arpPacketLen)
	copy(reply, arpRequestPayload)
	reply[7] = 0x02 // Op: reply
	// Reply flows target -> requester
	copy(reply[8:14], []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0x02})
	copy(reply[14:18], []byte{0x0A, 0x00, 0x00, 0x02})
	copy(reply[18:24], []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0x01})
	copy(reply[24:28], []byte{0x0A, 0x00, 0x00, 0x01})

	arp, err := decodeArp(reply)
	if err != nil {
		t.Fatalf("decodeArp failed: %v", err)
	}

	if arp.Op != core.ArpOpReply {
		t.Errorf("Expected op reply, got %d", arp.Op)
	}
	if arp.SenderIP != netip.MustParseAddr("10.0.0.2") {
		t.Errorf("Expected sender IP 10.0.0.2, got %s", arp.SenderIP)
	}
}

func TestDecodeArpTruncated(t *testing.T) {
	for length := 0; length < arpPacketLen; length++ {
		_, err := decodeArp(arpRequestPayload[:length])
		if err == nil {
			t.Errorf("Expected error for truncated ARP of length %d", length)
		}
	}
}

func TestDecodeArpUnsupported(t *testing.T) {
	// Token Ring hardware type
	data := make([]byte, arpPacketLen)
	copy(data, arpRequestPayload)
	data[1] = 0x04

	if _, err := decodeArp(data); err != core.ErrUnsupportedProto {
		t.Errorf("Expected ErrUnsupportedProto, got %v", err)
	}

	// Unknown op code
	data = make([]byte, arpPacketLen)
	copy(data, arpRequestPayload)
	data[7] = 0x09

	if _, err := decodeArp(data); err != core.ErrUnsupportedProto {
		t.Errorf("Expected ErrUnsupportedProto for bad op, got %v", err)
	}
}
