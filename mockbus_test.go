package i2cmux

import "sync"

// busCall is one transaction as seen by the upstream bus.
type busCall struct {
	addr uint16
	w    []byte
	rlen int
}

// busRecorder is an in-memory upstream bus that captures the exact
// transaction trace and can serve canned replies or forced failures per
// device address.
type busRecorder struct {
	mu    sync.Mutex
	calls []busCall
	reply map[uint16][]byte
	errOn map[uint16]error
}

func newBusRecorder() *busRecorder {
	return &busRecorder{
		reply: make(map[uint16][]byte),
		errOn: make(map[uint16]error),
	}
}

func (b *busRecorder) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, busCall{
		addr: addr,
		w:    append([]byte(nil), w...),
		rlen: len(r),
	})
	if err := b.errOn[addr]; err != nil {
		return err
	}
	copy(r, b.reply[addr])
	return nil
}

// callsTo returns the subset of the trace addressed to addr.
func (b *busRecorder) callsTo(addr uint16) []busCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []busCall
	for _, c := range b.calls {
		if c.addr == addr {
			out = append(out, c)
		}
	}
	return out
}
