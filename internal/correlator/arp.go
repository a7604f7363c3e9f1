package correlator

import "firestige.xyz/strix/internal/core"

// observeArp handles one decoded ARP packet.
//
// A request opens a pending exchange keyed by (requester IP, target IP).
// A reply resolves the earliest pending request of its key; a reply with
// no pending request is reported as an unsolicited orphan, never fatal.
func (c *Correlator) observeArp(pkt core.DecodedPacket) []core.Event {
	switch pkt.Arp.Op {
	case core.ArpOpRequest:
		x := &core.ArpExchange{
			RequesterMAC: pkt.Arp.SenderMAC,
			RequesterIP:  pkt.Arp.SenderIP,
			TargetIP:     pkt.Arp.TargetIP,
			RequestTime:  pkt.Timestamp,
		}
		key := arpKey{
			Requester: pkt.Arp.SenderIP.As16(),
			Target:    pkt.Arp.TargetIP.As16(),
		}
		c.arpPending[key] = append(c.arpPending[key], x)

		return []core.Event{{
			Type:      core.EventArpRequest,
			Timestamp: pkt.Timestamp,
			Packet:    pkt,
			Arp:       x,
		}}

	case core.ArpOpReply:
		// The reply's sender is the target of the original request.
		key := arpKey{
			Requester: pkt.Arp.TargetIP.As16(),
			Target:    pkt.Arp.SenderIP.As16(),
		}
		list := c.arpPending[key]
		if len(list) == 0 {
			return []core.Event{{
				Type:      core.EventOrphanReply,
				Timestamp: pkt.Timestamp,
				Packet:    pkt,
			}}
		}

		x := list[0]
		if len(list) == 1 {
			delete(c.arpPending, key)
		} else {
			c.arpPending[key] = list[1:]
		}

		x.ReplyTime = pkt.Timestamp
		x.ResolvedMAC = pkt.Arp.SenderMAC

		return []core.Event{{
			Type:      core.EventArpReply,
			Timestamp: pkt.Timestamp,
			Packet:    pkt,
			Arp:       x,
		}}
	}

	return nil
}
