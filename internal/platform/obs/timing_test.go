package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTimeLogsRequestIDAndError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	ctx := WithRequestID(context.Background(), "abc-123")

	func() (err error) {
		defer Time(ctx, "googlemaps.Directions")(&err)
		return errors.New("boom")
	}()
	func() (err error) {
		defer Time(ctx, "googlemaps.Geocode")(&err)
		return nil
	}()

	entries := logs.All()
	require.Len(t, entries, 2)

	failed := entries[0].ContextMap()
	assert.Equal(t, "abc-123", failed["req_id"])
	assert.Equal(t, "googlemaps.Directions", failed["op"])
	assert.Equal(t, "boom", failed["error"])

	done := entries[1].ContextMap()
	assert.Equal(t, "googlemaps.Geocode", done["op"])
	assert.NotContains(t, done, "error")
}
