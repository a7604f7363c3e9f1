package correlator

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/strix/internal/core"
)

var (
	hostA = netip.MustParseAddr("10.0.0.1")
	hostB = netip.MustParseAddr("10.0.0.2")

	macA = [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0x01}
	macB = [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0x02}

	t0 = time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
)

func echoRequestAt(ts time.Time, seq uint16) core.DecodedPacket {
	return core.DecodedPacket{
		Timestamp: ts,
		Ethernet:  core.EthernetHeader{SrcMAC: macA, DstMAC: macB, EtherType: 0x0800},
		Kind:      core.KindIcmpEcho,
		Icmp: core.IcmpEcho{
			Type: core.EchoRequest, ID: 1, Seq: seq, TTL: 64,
			SrcIP: hostA, DstIP: hostB,
		},
	}
}

func echoReplyAt(ts time.Time, seq uint16) core.DecodedPacket {
	return core.DecodedPacket{
		Timestamp: ts,
		Ethernet:  core.EthernetHeader{SrcMAC: macB, DstMAC: macA, EtherType: 0x0800},
		Kind:      core.KindIcmpEcho,
		Icmp: core.IcmpEcho{
			Type: core.EchoReply, ID: 1, Seq: seq, TTL: 64,
			SrcIP: hostB, DstIP: hostA,
		},
	}
}

func arpRequestAt(ts time.Time) core.DecodedPacket {
	return core.DecodedPacket{
		Timestamp: ts,
		Ethernet:  core.EthernetHeader{SrcMAC: macA, EtherType: 0x0806},
		Kind:      core.KindArp,
		Arp: core.ArpPacket{
			Op: core.ArpOpRequest, SenderMAC: macA,
			SenderIP: hostA, TargetIP: hostB,
		},
	}
}

func arpReplyAt(ts time.Time) core.DecodedPacket {
	return core.DecodedPacket{
		Timestamp: ts,
		Ethernet:  core.EthernetHeader{SrcMAC: macB, DstMAC: macA, EtherType: 0x0806},
		Kind:      core.KindArp,
		Arp: core.ArpPacket{
			Op: core.ArpOpReply, SenderMAC: macB, TargetMAC: macA,
			SenderIP: hostB, TargetIP: hostA,
		},
	}
}

func TestEchoExchangeCompleted(t *testing.T) {
	c := New(Config{})

	events := c.Observe(echoRequestAt(t0, 0))
	require.Len(t, events, 1)
	assert.Equal(t, core.EventEchoRequest, events[0].Type)

	events = c.Observe(echoReplyAt(t0.Add(980*time.Microsecond), 0))
	require.Len(t, events, 1)
	assert.Equal(t, core.EventEchoReply, events[0].Type)
	require.NotNil(t, events[0].Icmp)
	assert.Equal(t, 980*time.Microsecond, events[0].Icmp.RTT())
	assert.Equal(t, uint8(64), events[0].Icmp.ReplyTTL)
	assert.Zero(t, c.PendingCount())
}

func TestArpExchangeResolved(t *testing.T) {
	c := New(Config{})

	events := c.Observe(arpRequestAt(t0))
	require.Len(t, events, 1)
	assert.Equal(t, core.EventArpRequest, events[0].Type)

	events = c.Observe(arpReplyAt(t0.Add(450 * time.Microsecond)))
	require.Len(t, events, 1)
	assert.Equal(t, core.EventArpReply, events[0].Type)
	require.NotNil(t, events[0].Arp)
	assert.True(t, events[0].Arp.Resolved())
	assert.Equal(t, macB, events[0].Arp.ResolvedMAC)
	assert.Equal(t, 450*time.Microsecond, events[0].Arp.Latency())
}

// Two requests sharing a sequence number (wraparound) must be matched
// FIFO: each reply resolves the earliest still-pending request.
func TestSeqWraparoundFIFO(t *testing.T) {
	c := New(Config{})

	c.Observe(echoRequestAt(t0, 7))
	c.Observe(echoRequestAt(t0.Add(time.Second), 7))

	events := c.Observe(echoReplyAt(t0.Add(1100*time.Millisecond), 7))
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Icmp)
	assert.Equal(t, t0, events[0].Icmp.RequestTime,
		"reply must match the earliest pending request")

	events = c.Observe(echoReplyAt(t0.Add(1200*time.Millisecond), 7))
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Icmp)
	assert.Equal(t, t0.Add(time.Second), events[0].Icmp.RequestTime)
	assert.Zero(t, c.PendingCount())
}

func TestEchoTimeoutThenLateReplyIsOrphan(t *testing.T) {
	c := New(Config{IcmpTimeout: 2 * time.Second})

	c.Observe(echoRequestAt(t0, 3))

	// A later frame sweeps the pending request past its deadline.
	events := c.Observe(echoRequestAt(t0.Add(5*time.Second), 4))
	require.Len(t, events, 2)
	assert.Equal(t, core.EventEchoLost, events[0].Type)
	assert.Equal(t, t0.Add(2*time.Second), events[0].Timestamp,
		"expiry is stamped with the deadline, not the sweeping frame")
	assert.Equal(t, core.EventEchoRequest, events[1].Type)

	// The lost exchange must never be resolved afterwards.
	events = c.Observe(echoReplyAt(t0.Add(6*time.Second), 3))
	require.Len(t, events, 1)
	assert.Equal(t, core.EventOrphanReply, events[0].Type)
	assert.Nil(t, events[0].Icmp)
}

func TestArpExpiry(t *testing.T) {
	c := New(Config{ArpTimeout: time.Second})

	c.Observe(arpRequestAt(t0))

	events := c.Observe(echoRequestAt(t0.Add(3*time.Second), 0))
	require.Len(t, events, 2)
	assert.Equal(t, core.EventArpExpired, events[0].Type)
	require.NotNil(t, events[0].Arp)
	assert.False(t, events[0].Arp.Resolved())

	// Late ARP reply finds nothing pending.
	events = c.Observe(arpReplyAt(t0.Add(4 * time.Second)))
	require.Len(t, events, 1)
	assert.Equal(t, core.EventOrphanReply, events[0].Type)
}

func TestOrphanReplyExactlyOneEvent(t *testing.T) {
	c := New(Config{})

	events := c.Observe(echoReplyAt(t0, 9))
	require.Len(t, events, 1)
	assert.Equal(t, core.EventOrphanReply, events[0].Type)
	assert.Zero(t, c.PendingCount())
}

func TestFlushDrainsPending(t *testing.T) {
	c := New(Config{})

	c.Observe(arpRequestAt(t0))
	c.Observe(echoRequestAt(t0.Add(time.Second), 0))
	c.Observe(echoRequestAt(t0.Add(2*time.Second), 1))
	require.Equal(t, 3, c.PendingCount())

	events := c.Flush()
	require.Len(t, events, 3)
	assert.Equal(t, core.EventArpExpired, events[0].Type)
	assert.Equal(t, core.EventEchoLost, events[1].Type)
	assert.Equal(t, core.EventEchoLost, events[2].Type)
	for _, ev := range events {
		assert.Equal(t, t0.Add(2*time.Second), ev.Timestamp,
			"flush stamps events with the last observed timestamp")
	}
	assert.Zero(t, c.PendingCount())

	assert.Empty(t, c.Flush(), "second flush must be a no-op")
}
