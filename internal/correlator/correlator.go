// Package correlator matches ARP and ICMP echo request/reply pairs into
// logical exchanges and emits timeline events.
//
// The correlator is event-time driven: timeouts are swept against each new
// frame's capture timestamp, never the wall clock, so replaying a fixed
// capture always produces the same timeline. All state is touched by a
// single consumer goroutine; no locking.
package correlator

import (
	"sort"
	"time"

	"firestige.xyz/strix/internal/core"
)

const (
	// DefaultArpTimeout is how long an ARP request stays pending before
	// it expires. Mirrors the common kernel retry window.
	DefaultArpTimeout = 3 * time.Second

	// DefaultIcmpTimeout is how long an echo request waits for its reply
	// before the exchange is declared lost.
	DefaultIcmpTimeout = 5 * time.Second
)

// Config carries the correlation timeout bounds.
type Config struct {
	ArpTimeout  time.Duration
	IcmpTimeout time.Duration
}

type arpKey struct {
	Requester, Target [16]byte // netip.Addr.As16, comparable
}

type icmpKey struct {
	Requester, Target [16]byte
	ID, Seq           uint16
}

// Correlator owns the pending-exchange tables.
//
// Pending exchanges per key form a FIFO list: when sequence numbers wrap
// and several requests share a key, a reply always matches the earliest
// still-pending request.
type Correlator struct {
	cfg Config

	arpPending  map[arpKey][]*core.ArpExchange
	icmpPending map[icmpKey][]*core.IcmpExchange

	lastSeen time.Time
}

// New creates a Correlator. Non-positive timeouts fall back to defaults.
func New(cfg Config) *Correlator {
	if cfg.ArpTimeout <= 0 {
		cfg.ArpTimeout = DefaultArpTimeout
	}
	if cfg.IcmpTimeout <= 0 {
		cfg.IcmpTimeout = DefaultIcmpTimeout
	}
	return &Correlator{
		cfg:         cfg,
		arpPending:  make(map[arpKey][]*core.ArpExchange),
		icmpPending: make(map[icmpKey][]*core.IcmpExchange),
	}
}

// Observe feeds one decoded packet into the correlator and returns the
// resulting timeline events in emission order. Expiry events produced by
// the timeout sweep come first, then the event for this packet, if any.
func (c *Correlator) Observe(pkt core.DecodedPacket) []core.Event {
	events := c.sweep(pkt.Timestamp)
	c.lastSeen = pkt.Timestamp

	switch pkt.Kind {
	case core.KindArp:
		events = append(events, c.observeArp(pkt)...)
	case core.KindIcmpEcho:
		events = append(events, c.observeIcmp(pkt)...)
	}
	return events
}

// Flush drains all still-pending exchanges as Expired/Lost, stamped with
// the last observed frame timestamp. Called once when the session stops,
// so that unresolved exchanges are reported rather than silently dropped.
func (c *Correlator) Flush() []core.Event {
	var events []core.Event

	for key, list := range c.arpPending {
		for _, x := range list {
			events = append(events, core.Event{
				Type:      core.EventArpExpired,
				Timestamp: c.lastSeen,
				Arp:       x,
			})
		}
		delete(c.arpPending, key)
	}
	for key, list := range c.icmpPending {
		for _, x := range list {
			events = append(events, core.Event{
				Type:      core.EventEchoLost,
				Timestamp: c.lastSeen,
				Icmp:      x,
			})
		}
		delete(c.icmpPending, key)
	}

	sortEvents(events)
	return events
}

// PendingCount reports how many exchanges are still awaiting a reply.
func (c *Correlator) PendingCount() int {
	n := 0
	for _, list := range c.arpPending {
		n += len(list)
	}
	for _, list := range c.icmpPending {
		n += len(list)
	}
	return n
}

// sweep expires pending exchanges whose deadline is at or before now.
// Expiry events are stamped with the deadline itself, keeping replayed
// timelines deterministic.
func (c *Correlator) sweep(now time.Time) []core.Event {
	var events []core.Event

	for key, list := range c.arpPending {
		kept := list[:0]
		for _, x := range list {
			deadline := x.RequestTime.Add(c.cfg.ArpTimeout)
			if !deadline.After(now) {
				events = append(events, core.Event{
					Type:      core.EventArpExpired,
					Timestamp: deadline,
					Arp:       x,
				})
			} else {
				kept = append(kept, x)
			}
		}
		if len(kept) == 0 {
			delete(c.arpPending, key)
		} else {
			c.arpPending[key] = kept
		}
	}

	for key, list := range c.icmpPending {
		kept := list[:0]
		for _, x := range list {
			deadline := x.RequestTime.Add(c.cfg.IcmpTimeout)
			if !deadline.After(now) {
				events = append(events, core.Event{
					Type:      core.EventEchoLost,
					Timestamp: deadline,
					Icmp:      x,
				})
			} else {
				kept = append(kept, x)
			}
		}
		if len(kept) == 0 {
			delete(c.icmpPending, key)
		} else {
			c.icmpPending[key] = kept
		}
	}

	sortEvents(events)
	return events
}

// sortEvents orders a batch by timestamp, then request time for stability.
// Map iteration order is random; a sweep may expire several exchanges at once.
func sortEvents(events []core.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return requestTime(events[i]).Before(requestTime(events[j]))
	})
}

func requestTime(ev core.Event) time.Time {
	switch {
	case ev.Arp != nil:
		return ev.Arp.RequestTime
	case ev.Icmp != nil:
		return ev.Icmp.RequestTime
	default:
		return ev.Timestamp
	}
}
