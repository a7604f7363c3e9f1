package core

import (
	"net/netip"
	"time"
)

// EventType classifies the timeline events the correlator emits.
type EventType uint8

const (
	EventArpRequest EventType = iota
	EventArpReply
	EventArpExpired
	EventEchoRequest
	EventEchoReply
	EventEchoLost
	EventOrphanReply
)

// String returns the human-readable event name used in report titles.
func (t EventType) String() string {
	switch t {
	case EventArpRequest:
		return "ARP Request"
	case EventArpReply:
		return "ARP Reply"
	case EventArpExpired:
		return "ARP Request Expired"
	case EventEchoRequest:
		return "ICMP Echo Request"
	case EventEchoReply:
		return "ICMP Echo Reply"
	case EventEchoLost:
		return "ICMP Echo Lost"
	case EventOrphanReply:
		return "Unsolicited Reply"
	default:
		return "Unknown"
	}
}

// ArpExchange tracks one ARP resolution attempt.
// Lifecycle: Pending (request seen) -> Resolved (reply seen) or Expired.
type ArpExchange struct {
	RequesterMAC [6]byte
	RequesterIP  netip.Addr
	TargetIP     netip.Addr
	ResolvedMAC  [6]byte // Valid once resolved
	RequestTime  time.Time
	ReplyTime    time.Time // Zero until resolved
}

// Resolved reports whether a matching reply has been observed.
func (x *ArpExchange) Resolved() bool { return !x.ReplyTime.IsZero() }

// Latency is the resolution delay. Only meaningful once resolved.
func (x *ArpExchange) Latency() time.Duration {
	return x.ReplyTime.Sub(x.RequestTime)
}

// IcmpExchange tracks one ICMP echo request/reply pair, keyed by
// (id, seq, requester IP, target IP).
// Lifecycle: AwaitingReply (request seen) -> Completed (reply seen) or Lost.
type IcmpExchange struct {
	ID          uint16
	Seq         uint16
	RequesterIP netip.Addr
	TargetIP    netip.Addr
	RequestTTL  uint8
	ReplyTTL    uint8 // Valid once completed
	RequestTime time.Time
	ReplyTime   time.Time // Zero until completed
}

// Completed reports whether a matching reply has been observed.
func (x *IcmpExchange) Completed() bool { return !x.ReplyTime.IsZero() }

// RTT is the round-trip time. Only meaningful once completed.
// Invariant: ReplyTime >= RequestTime, so RTT is never negative.
func (x *IcmpExchange) RTT() time.Duration {
	return x.ReplyTime.Sub(x.RequestTime)
}

// Event is one entry of the capture timeline, emitted by the correlator
// in non-decreasing timestamp order.
type Event struct {
	Type      EventType
	Timestamp time.Time

	// Packet is the frame that triggered the event. Zero-valued for
	// EventArpExpired and EventEchoLost, which are produced by the
	// timeout sweep rather than an observed frame.
	Packet DecodedPacket

	// Exchange context. Arp is set for ARP events, Icmp for echo events.
	// Orphan replies carry neither.
	Arp  *ArpExchange
	Icmp *IcmpExchange
}
