package rpgerr_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttu/skirmish-sim/rpgerr"
)

func TestNewAndCode(t *testing.T) {
	err := rpgerr.NoOp("target already down")
	require.Equal(t, rpgerr.CodeNoOp, rpgerr.GetCode(err))
	assert.True(t, rpgerr.Is(err, rpgerr.CodeNoOp))
	assert.False(t, rpgerr.Is(err, rpgerr.CodeInvariant))
}

func TestWithMeta(t *testing.T) {
	err := rpgerr.InvalidCommand("insufficient AP", rpgerr.WithMeta("entity", "u1"))
	require.Equal(t, "u1", err.Meta["entity"])
}

func TestContextMetadataInheritance(t *testing.T) {
	ctx := rpgerr.WithMetadata(context.Background(), rpgerr.Meta("turn", 3))
	ctx = rpgerr.WithMetadata(ctx, rpgerr.Meta("entity", "u2"))

	err := rpgerr.NewCtx(ctx, rpgerr.CodeInvariant, "missing component")
	require.Equal(t, 3, err.Meta["turn"])
	require.Equal(t, "u2", err.Meta["entity"])
}

func TestErrorMessageWrapsCause(t *testing.T) {
	cause := rpgerr.Invariant("grid out of bounds")
	err := &rpgerr.Error{Code: rpgerr.CodeInvariant, Message: "step failed", Cause: cause}
	assert.Contains(t, err.Error(), "step failed")
	assert.Contains(t, err.Error(), "grid out of bounds")
}
