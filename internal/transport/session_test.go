package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sphereslither.io/internal/mathx"
	"sphereslither.io/internal/replication"
)

func TestLatestFrameReplacesPending(t *testing.T) {
	var f LatestFrame
	f.Store([]byte("a"))
	f.Store([]byte("b"))

	data, ok := f.Take()
	assert.True(t, ok)
	assert.Equal(t, "b", string(data))

	_, ok = f.Take()
	assert.False(t, ok)
}

func TestSessionEnqueueDropsOldestWhenLaneFull(t *testing.T) {
	s := NewSession("sess", nil)
	for i := 0; i < outboundLaneCap+5; i++ {
		s.SendLo([]byte{byte(i)})
	}
	assert.LessOrEqual(t, len(s.outboundLo), outboundLaneCap)
}

func TestInboundApplyMergesPartialUpdates(t *testing.T) {
	in := &Inbound{}
	axis := mathx.Point{X: 1}
	in.apply(replication.ClientMessage{Type: replication.TypeInput, Axis: &axis})
	assert.True(t, in.HasAxis)
	assert.InDelta(t, 1.0, in.Axis.X, 1e-9)
}
