package replication

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJoinWithNameAndID(t *testing.T) {
	id := uuid.New()
	enc := NewEncoder(64)
	enc.WriteHeader(TypeJoin, FlagJoinPlayerID|FlagJoinName)
	enc.WriteUUID(id)
	enc.WriteString("Player-7")

	msg, ok := DecodeClientMessage(enc.Bytes())
	require.True(t, ok)
	require.NotNil(t, msg.Name)
	assert.Equal(t, "Player-7", *msg.Name)
	require.NotNil(t, msg.PlayerID)
	assert.Equal(t, id, *msg.PlayerID)
}

func TestDecodeInputAxisAndBoost(t *testing.T) {
	enc := NewEncoder(32)
	enc.WriteHeader(TypeInput, FlagInputAxis|FlagInputBoost)
	enc.WriteF32(1.5)
	enc.WriteF32(-2.0)
	enc.WriteF32(0.25)

	msg, ok := DecodeClientMessage(enc.Bytes())
	require.True(t, ok)
	require.NotNil(t, msg.Axis)
	assert.True(t, msg.Boost)
	assert.InDelta(t, 1.5, msg.Axis.X, 1e-6)
	assert.InDelta(t, -2.0, msg.Axis.Y, 1e-6)
	assert.InDelta(t, 0.25, msg.Axis.Z, 1e-6)
	assert.Nil(t, msg.ViewCenter)
	assert.Nil(t, msg.ViewRadius)
	assert.Nil(t, msg.CameraDistance)
}

func TestDecodeInputWithViewFields(t *testing.T) {
	enc := NewEncoder(64)
	enc.WriteHeader(TypeInput, FlagInputAxis|FlagInputViewCenter|FlagInputViewRadius|FlagInputCameraDistance)
	enc.WriteF32(0.1)
	enc.WriteF32(0.2)
	enc.WriteF32(0.3)
	enc.WriteF32(0.4)
	enc.WriteF32(0.5)
	enc.WriteF32(0.6)
	enc.WriteF32(0.9)
	enc.WriteF32(5.7)

	msg, ok := DecodeClientMessage(enc.Bytes())
	require.True(t, ok)
	assert.False(t, msg.Boost)
	require.NotNil(t, msg.Axis)
	assert.InDelta(t, 0.1, msg.Axis.X, 1e-6)
	assert.InDelta(t, 0.2, msg.Axis.Y, 1e-6)
	assert.InDelta(t, 0.3, msg.Axis.Z, 1e-6)

	require.NotNil(t, msg.ViewCenter)
	assert.InDelta(t, 0.4, msg.ViewCenter.X, 1e-6)
	assert.InDelta(t, 0.5, msg.ViewCenter.Y, 1e-6)
	assert.InDelta(t, 0.6, msg.ViewCenter.Z, 1e-6)

	require.NotNil(t, msg.ViewRadius)
	assert.InDelta(t, 0.9, *msg.ViewRadius, 1e-6)
	require.NotNil(t, msg.CameraDistance)
	assert.InDelta(t, 5.7, *msg.CameraDistance, 1e-6)
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	enc := NewEncoder(8)
	enc.buf = append(enc.buf, 0xFF, TypeRespawn)
	enc.WriteU16(0)

	_, ok := DecodeClientMessage(enc.Bytes())
	assert.False(t, ok)
}
