package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	loads   int
	layouts int
}

func (h *recordingPipelineHooks) OnLoadStart(ctx context.Context, path string) {
	h.loads++
}

func (h *recordingPipelineHooks) OnLayoutComplete(ctx context.Context, op string, d time.Duration, err error) {
	h.layouts++
}

func TestHookRegistry(t *testing.T) {
	defer Reset()

	// Defaults are no-ops and never nil.
	if Pipeline() == nil || Cache() == nil || Document() == nil {
		t.Fatal("default hooks should be non-nil no-ops")
	}

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)

	ctx := context.Background()
	Pipeline().OnLoadStart(ctx, "soc.json")
	Pipeline().OnLayoutComplete(ctx, "insert", time.Millisecond, nil)

	if rec.loads != 1 || rec.layouts != 1 {
		t.Errorf("hooks not invoked: loads=%d layouts=%d", rec.loads, rec.layouts)
	}
}

func TestSetNilKeepsExisting(t *testing.T) {
	defer Reset()

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	Pipeline().OnLoadStart(context.Background(), "soc.json")
	if rec.loads != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)
	Reset()

	Pipeline().OnLoadStart(context.Background(), "soc.json")
	if rec.loads != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
