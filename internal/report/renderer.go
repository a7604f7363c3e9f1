// Package report renders correlated capture events as a textual timeline.
package report

import (
	"fmt"
	"io"
	"net/netip"
	"time"

	"firestige.xyz/strix/internal/core"
)

// Config controls rendering.
type Config struct {
	// Iface names the capture interface for the session banner.
	Iface string

	// MonitorIP is the endpoint whose perspective decides the
	// Outgoing/Incoming direction words. When unset, the renderer locks
	// onto the first ARP or echo requester it sees.
	MonitorIP netip.Addr
}

// Renderer converts events into the line-oriented report format, one block
// per event. It is deterministic given its input sequence: the only state
// is the origin timestamp for relative offsets, the inferred monitored
// endpoint, and the running ping statistics.
type Renderer struct {
	w   io.Writer
	cfg Config

	origin    time.Time
	hasOrigin bool

	stats Stats
}

// New creates a Renderer writing to w.
func New(w io.Writer, cfg Config) *Renderer {
	return &Renderer{w: w, cfg: cfg}
}

// SetOrigin fixes the zero point for relative timestamps. The session calls
// this with the first captured frame's timestamp; without it the first
// rendered event becomes the origin.
func (r *Renderer) SetOrigin(t time.Time) {
	r.origin = t
	r.hasOrigin = true
}

// Banner writes the capture-session header.
func (r *Renderer) Banner() error {
	_, err := fmt.Fprintf(r.w, "=== Traffic captured on %s ===\n\n", r.cfg.Iface)
	return err
}

// Render writes one formatted block for ev.
func (r *Renderer) Render(ev core.Event) error {
	if !r.hasOrigin {
		r.SetOrigin(ev.Timestamp)
	}
	rel := ev.Timestamp.Sub(r.origin).Seconds()

	switch ev.Type {
	case core.EventEchoRequest:
		r.stats.Sent++
		return r.renderEcho(ev, rel)
	case core.EventEchoReply:
		r.stats.AddRTT(ev.Icmp.RTT())
		return r.renderEcho(ev, rel)
	case core.EventEchoLost:
		r.stats.Lost++
		return r.renderEchoLost(ev, rel)
	case core.EventArpRequest, core.EventArpReply:
		return r.renderArp(ev, rel)
	case core.EventArpExpired:
		return r.renderArpExpired(ev, rel)
	case core.EventOrphanReply:
		return r.renderOrphan(ev, rel)
	}
	return nil
}

// Summary writes the ping statistics block. Called once on session stop.
func (r *Renderer) Summary() error {
	_, err := fmt.Fprint(r.w, r.stats.String())
	return err
}

// renderEcho writes an echo request or reply block:
//
//	ICMP Echo Request (seq=0)
//	[1.551986s] Outgoing ICMP Echo Request
//	  Layer 2: aa:bb:cc:dd:ee:01 -> aa:bb:cc:dd:ee:02
//	  Layer 3: 10.0.0.1 -> 10.0.0.2
//	  TTL: 64
//	  Round Trip Time: 0.980ms      (replies only)
func (r *Renderer) renderEcho(ev core.Event, rel float64) error {
	pkt := ev.Packet
	r.inferMonitor(ev)

	_, err := fmt.Fprintf(r.w, "%s (seq=%d)\n[%.6fs] %s %s\n  Layer 2: %s -> %s\n  Layer 3: %s -> %s\n  TTL: %d\n",
		ev.Type, pkt.Icmp.Seq,
		rel, r.direction(pkt.Icmp.SrcIP, pkt.Icmp.DstIP), ev.Type,
		core.FormatMAC(pkt.Ethernet.SrcMAC), core.FormatMAC(pkt.Ethernet.DstMAC),
		pkt.Icmp.SrcIP, pkt.Icmp.DstIP,
		pkt.Icmp.TTL)
	if err != nil {
		return err
	}

	if ev.Type == core.EventEchoReply {
		rtt := float64(ev.Icmp.RTT().Nanoseconds()) / 1e6
		if _, err := fmt.Fprintf(r.w, "  Round Trip Time: %.3fms\n", rtt); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(r.w)
	return err
}

// renderEchoLost reports an echo request whose reply never arrived. The
// sweep produced it, so there is no triggering frame and no L2 addresses.
func (r *Renderer) renderEchoLost(ev core.Event, rel float64) error {
	x := ev.Icmp
	_, err := fmt.Fprintf(r.w, "%s (seq=%d)\n[%.6fs] No reply for ICMP Echo Request\n  Layer 3: %s -> %s\n\n",
		ev.Type, x.Seq,
		rel,
		x.RequesterIP, x.TargetIP)
	return err
}

// renderArp writes an ARP block. ARP carries no TTL; the protocol detail
// line takes the place of the L3 pair:
//
//	ARP Request
//	[0.001234s] Outgoing ARP Request
//	  Layer 2: aa:bb:cc:dd:ee:01 -> ff:ff:ff:ff:ff:ff
//	  Who has 10.0.0.2? Tell 10.0.0.1
func (r *Renderer) renderArp(ev core.Event, rel float64) error {
	pkt := ev.Packet
	r.inferMonitor(ev)

	detail := fmt.Sprintf("Who has %s? Tell %s", pkt.Arp.TargetIP, pkt.Arp.SenderIP)
	if ev.Type == core.EventArpReply {
		detail = fmt.Sprintf("%s is at %s", pkt.Arp.SenderIP, core.FormatMAC(pkt.Arp.SenderMAC))
	}

	_, err := fmt.Fprintf(r.w, "%s\n[%.6fs] %s %s\n  Layer 2: %s -> %s\n  %s\n\n",
		ev.Type,
		rel, r.direction(pkt.Arp.SenderIP, pkt.Arp.TargetIP), ev.Type,
		core.FormatMAC(pkt.Ethernet.SrcMAC), core.FormatMAC(pkt.Ethernet.DstMAC),
		detail)
	return err
}

func (r *Renderer) renderArpExpired(ev core.Event, rel float64) error {
	x := ev.Arp
	_, err := fmt.Fprintf(r.w, "%s\n[%.6fs] No reply from %s\n  Who has %s? Tell %s\n\n",
		ev.Type,
		rel, x.TargetIP,
		x.TargetIP, x.RequesterIP)
	return err
}

// renderOrphan reports a reply with no matching pending request.
func (r *Renderer) renderOrphan(ev core.Event, rel float64) error {
	pkt := ev.Packet

	if pkt.Kind == core.KindArp {
		_, err := fmt.Fprintf(r.w, "Unsolicited ARP Reply\n[%.6fs] %s ARP Reply\n  Layer 2: %s -> %s\n  %s is at %s\n\n",
			rel, r.direction(pkt.Arp.SenderIP, pkt.Arp.TargetIP),
			core.FormatMAC(pkt.Ethernet.SrcMAC), core.FormatMAC(pkt.Ethernet.DstMAC),
			pkt.Arp.SenderIP, core.FormatMAC(pkt.Arp.SenderMAC))
		return err
	}

	_, err := fmt.Fprintf(r.w, "Unsolicited ICMP Echo Reply (seq=%d)\n[%.6fs] %s ICMP Echo Reply\n  Layer 2: %s -> %s\n  Layer 3: %s -> %s\n  TTL: %d\n\n",
		pkt.Icmp.Seq,
		rel, r.direction(pkt.Icmp.SrcIP, pkt.Icmp.DstIP),
		core.FormatMAC(pkt.Ethernet.SrcMAC), core.FormatMAC(pkt.Ethernet.DstMAC),
		pkt.Icmp.SrcIP, pkt.Icmp.DstIP,
		pkt.Icmp.TTL)
	return err
}

// inferMonitor locks the monitored endpoint onto the first requester seen
// when no monitor IP was configured.
func (r *Renderer) inferMonitor(ev core.Event) {
	if r.cfg.MonitorIP.IsValid() {
		return
	}
	switch ev.Type {
	case core.EventArpRequest:
		r.cfg.MonitorIP = ev.Packet.Arp.SenderIP
	case core.EventEchoRequest:
		r.cfg.MonitorIP = ev.Packet.Icmp.SrcIP
	}
}

// direction renders the frame direction from the monitored endpoint's
// perspective.
func (r *Renderer) direction(src, dst netip.Addr) string {
	switch r.cfg.MonitorIP {
	case src:
		return "Outgoing"
	case dst:
		return "Incoming"
	default:
		return "Observed"
	}
}
