// Package utils provides BPF filter helpers shared by the live sources.
package utils

import (
	"fmt"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"golang.org/x/net/bpf"
)

// DefaultFilter captures exactly the traffic the correlator understands.
const DefaultFilter = "arp or icmp"

// CompileBpf compiles a pcap filter expression into raw BPF instructions
// suitable for an AF_PACKET socket.
func CompileBpf(filter string, snapLen int) ([]bpf.RawInstruction, error) {
	pcapBpf, err := pcap.CompileBPFFilter(layers.LinkTypeEthernet, snapLen, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compile BPF filter: %w", err)
	}

	rawBpf := make([]bpf.RawInstruction, len(pcapBpf))
	for i, ins := range pcapBpf {
		rawBpf[i] = bpf.RawInstruction{Op: ins.Code, Jt: ins.Jt, Jf: ins.Jf, K: ins.K}
	}
	return rawBpf, nil
}

// ValidateFilter checks a filter expression without keeping the program.
func ValidateFilter(filter string, snapLen int) error {
	_, err := CompileBpf(filter, snapLen)
	return err
}
