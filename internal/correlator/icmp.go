package correlator

import "firestige.xyz/strix/internal/core"

// observeIcmp handles one decoded ICMP echo packet.
//
// Requests open pending exchanges keyed by (requester IP, target IP, id,
// seq). When sequence numbers wrap, several requests can share a key; the
// FIFO list guarantees a reply matches the earliest still-pending request.
func (c *Correlator) observeIcmp(pkt core.DecodedPacket) []core.Event {
	switch pkt.Icmp.Type {
	case core.EchoRequest:
		x := &core.IcmpExchange{
			ID:          pkt.Icmp.ID,
			Seq:         pkt.Icmp.Seq,
			RequesterIP: pkt.Icmp.SrcIP,
			TargetIP:    pkt.Icmp.DstIP,
			RequestTTL:  pkt.Icmp.TTL,
			RequestTime: pkt.Timestamp,
		}
		key := icmpKey{
			Requester: pkt.Icmp.SrcIP.As16(),
			Target:    pkt.Icmp.DstIP.As16(),
			ID:        pkt.Icmp.ID,
			Seq:       pkt.Icmp.Seq,
		}
		c.icmpPending[key] = append(c.icmpPending[key], x)

		return []core.Event{{
			Type:      core.EventEchoRequest,
			Timestamp: pkt.Timestamp,
			Packet:    pkt,
			Icmp:      x,
		}}

	case core.EchoReply:
		// Replies flow target -> requester: swap src/dst for the key.
		key := icmpKey{
			Requester: pkt.Icmp.DstIP.As16(),
			Target:    pkt.Icmp.SrcIP.As16(),
			ID:        pkt.Icmp.ID,
			Seq:       pkt.Icmp.Seq,
		}
		list := c.icmpPending[key]
		if len(list) == 0 {
			// No pending request: late reply after expiry, or a reply
			// whose request was never captured.
			return []core.Event{{
				Type:      core.EventOrphanReply,
				Timestamp: pkt.Timestamp,
				Packet:    pkt,
			}}
		}

		x := list[0]
		if len(list) == 1 {
			delete(c.icmpPending, key)
		} else {
			c.icmpPending[key] = list[1:]
		}

		x.ReplyTime = pkt.Timestamp
		x.ReplyTTL = pkt.Icmp.TTL

		return []core.Event{{
			Type:      core.EventEchoReply,
			Timestamp: pkt.Timestamp,
			Packet:    pkt,
			Icmp:      x,
		}}
	}

	return nil
}
