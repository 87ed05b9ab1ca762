package serialbridge

// Wire framing between host and bridge adapter. Every I2C transaction is
// one request frame down and one response frame back:
//
//	request:  SIG SIG addr wlen rlen w[wlen]
//	response: SIG SIG status r[rlen]
//
// A response with a non-OK status carries no payload.

const Signature byte = 0xA5

const headerLen = 5

// Response status codes.
const (
	StatusOK   byte = 0x00
	StatusNack byte = 0x01
)

// Request is one I2C transaction to run on the adapter's bus: write W to
// Addr, then read RLen bytes.
type Request struct {
	Addr uint16
	W    []byte
	RLen uint8
}

// Marshal encodes a request frame.
func Marshal(q Request) []byte {
	f := make([]byte, 0, headerLen+len(q.W))
	f = append(f, Signature, Signature, byte(q.Addr), byte(len(q.W)), q.RLen)
	f = append(f, q.W...)
	return f
}

// Unmarshal decodes a request frame, for the device side of the protocol.
func Unmarshal(data []byte) (Request, bool) {
	if len(data) < headerLen {
		return Request{}, false
	}
	if data[0] != Signature || data[1] != Signature {
		return Request{}, false
	}
	if len(data) != headerLen+int(data[3]) {
		return Request{}, false
	}
	return Request{
		Addr: uint16(data[2]),
		W:    append([]byte(nil), data[headerLen:]...),
		RLen: data[4],
	}, true
}
