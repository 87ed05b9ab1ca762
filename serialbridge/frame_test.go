package serialbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRequest(t *testing.T) {
	got := Marshal(Request{Addr: 0x50, W: []byte{0xAA, 0xBB}, RLen: 4})
	assert.Equal(t, []byte{0xA5, 0xA5, 0x50, 0x02, 0x04, 0xAA, 0xBB}, got)
}

func TestMarshalWriteOnlyRequest(t *testing.T) {
	got := Marshal(Request{Addr: 0x70, W: []byte{0x08}})
	assert.Equal(t, []byte{0xA5, 0xA5, 0x70, 0x01, 0x00, 0x08}, got)
}

func TestUnmarshalRequest(t *testing.T) {
	q, ok := Unmarshal([]byte{0xA5, 0xA5, 0x50, 0x02, 0x04, 0xAA, 0xBB})
	require.True(t, ok)
	assert.Equal(t, Request{Addr: 0x50, W: []byte{0xAA, 0xBB}, RLen: 4}, q)
}

func TestUnmarshalRejectsBadFrames(t *testing.T) {
	cases := map[string][]byte{
		"short":           {0xA5, 0xA5, 0x50},
		"bad signature":   {0xA5, 0x00, 0x50, 0x00, 0x00},
		"length mismatch": {0xA5, 0xA5, 0x50, 0x02, 0x00, 0xAA},
	}
	for name, data := range cases {
		_, ok := Unmarshal(data)
		assert.False(t, ok, name)
	}
}
