package report

import (
	"fmt"
	"strings"
	"time"
)

// Stats accumulates ping statistics over one capture session.
type Stats struct {
	Sent     int
	Received int
	Lost     int

	rttMin time.Duration
	rttMax time.Duration
	rttSum time.Duration
}

// AddRTT records one completed echo exchange.
func (s *Stats) AddRTT(rtt time.Duration) {
	if s.Received == 0 || rtt < s.rttMin {
		s.rttMin = rtt
	}
	if rtt > s.rttMax {
		s.rttMax = rtt
	}
	s.rttSum += rtt
	s.Received++
}

// String renders the summary block printed when the session stops:
//
//	--- Ping statistics ---
//	4 packets transmitted, 4 received, 0 lost (0.0% loss)
//	rtt min/avg/max = 0.487/0.756/0.980 ms
func (s *Stats) String() string {
	var b strings.Builder
	b.WriteString("--- Ping statistics ---\n")

	loss := 0.0
	if s.Sent > 0 {
		loss = float64(s.Lost) / float64(s.Sent) * 100
	}
	fmt.Fprintf(&b, "%d packets transmitted, %d received, %d lost (%.1f%% loss)\n",
		s.Sent, s.Received, s.Lost, loss)

	if s.Received > 0 {
		avg := s.rttSum / time.Duration(s.Received)
		fmt.Fprintf(&b, "rtt min/avg/max = %.3f/%.3f/%.3f ms\n",
			ms(s.rttMin), ms(avg), ms(s.rttMax))
	}
	return b.String()
}

func ms(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
