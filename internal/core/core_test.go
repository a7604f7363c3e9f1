package core

import (
	"net/netip"
	"testing"
	"time"
)

func TestFormatMAC(t *testing.T) {
	mac := [6]byte{0xAA, 0xBB, 0x0C, 0x00, 0x4E, 0xFF}
	got := FormatMAC(mac)
	want := "aa:bb:0c:00:4e:ff"
	if got != want {
		t.Errorf("FormatMAC = %q, want %q", got, want)
	}
}

func TestIcmpExchangeRTT(t *testing.T) {
	base := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	x := IcmpExchange{
		Seq:         0,
		RequesterIP: netip.MustParseAddr("10.0.0.1"),
		TargetIP:    netip.MustParseAddr("10.0.0.2"),
		RequestTime: base,
	}
	if x.Completed() {
		t.Fatal("exchange should not be completed before reply")
	}
	x.ReplyTime = base.Add(980 * time.Microsecond)
	if !x.Completed() {
		t.Fatal("exchange should be completed after reply")
	}
	if got := x.RTT(); got != 980*time.Microsecond {
		t.Errorf("RTT = %v, want 980µs", got)
	}
}

func TestEventTypeString(t *testing.T) {
	cases := map[EventType]string{
		EventArpRequest:  "ARP Request",
		EventArpReply:    "ARP Reply",
		EventArpExpired:  "ARP Request Expired",
		EventEchoRequest: "ICMP Echo Request",
		EventEchoReply:   "ICMP Echo Reply",
		EventEchoLost:    "ICMP Echo Lost",
		EventOrphanReply: "Unsolicited Reply",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("EventType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
