package game

// RadioEvent is one queued or delivered transmission.
type RadioEvent struct {
	EmitTick int
	Channel  string
	Message  string
}

type recentSend struct {
	tick    int
	channel string
	message string
}

// RadioBus delivers messages with a fixed tick latency and suppresses
// identical repeats inside a sliding window. Delivered events are retained
// only in an append-only log.
type RadioBus struct {
	latencyTicks        int
	suppressWindowTicks int

	queue     []RadioEvent
	recent    []recentSend
	delivered []RadioEvent
}

// NewRadioBus creates a bus with the given delivery latency and spam
// suppression window, both in ticks.
func NewRadioBus(latencyTicks, suppressWindowTicks int) *RadioBus {
	return &RadioBus{
		latencyTicks:        latencyTicks,
		suppressWindowTicks: suppressWindowTicks,
	}
}

// Send queues a message for delivery latencyTicks from now. An identical
// (channel, message) pair sent within the suppression window is silently
// dropped.
func (rb *RadioBus) Send(clock *SimClock, channel, message string) {
	for _, r := range rb.recent {
		if r.channel == channel && r.message == message && clock.Tick-r.tick <= rb.suppressWindowTicks {
			return
		}
	}
	rb.recent = append(rb.recent, recentSend{tick: clock.Tick, channel: channel, message: message})
	rb.queue = append(rb.queue, RadioEvent{
		EmitTick: clock.Tick + rb.latencyTicks,
		Channel:  channel,
		Message:  message,
	})

	cutoff := clock.Tick - rb.suppressWindowTicks
	kept := rb.recent[:0]
	for _, r := range rb.recent {
		if r.tick >= cutoff {
			kept = append(kept, r)
		}
	}
	rb.recent = kept
}

// Deliver pops every due event in FIFO order, invokes the handler, and
// appends it to the delivered log. Latency is constant, so events sit in the
// queue in non-decreasing emit-tick order; a variable-latency bus would need
// a priority queue here instead.
func (rb *RadioBus) Deliver(clock *SimClock, handler func(RadioEvent)) {
	for len(rb.queue) > 0 && rb.queue[0].EmitTick <= clock.Tick {
		evt := rb.queue[0]
		rb.queue = rb.queue[1:]
		handler(evt)
		rb.delivered = append(rb.delivered, evt)
	}
}

// Delivered returns a copy of the append-only delivered log.
func (rb *RadioBus) Delivered() []RadioEvent {
	out := make([]RadioEvent, len(rb.delivered))
	copy(out, rb.delivered)
	return out
}

// QueueLen reports the number of events still awaiting delivery.
func (rb *RadioBus) QueueLen() int { return len(rb.queue) }
