package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, 3)
	p.OnBuildComplete(ctx, 3, time.Millisecond, nil)
	p.OnLayoutStart(ctx, 3)
	p.OnLayoutComplete(ctx, time.Millisecond)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Export hooks
	e := NoopExportHooks{}
	e.OnExport(ctx, "jpg", 1024, time.Second)
	e.OnExportSkipped(ctx, "pdf")

	// Text hooks
	x := NoopTextHooks{}
	x.OnRequest(ctx, "translate", "Hindi")
	x.OnResponse(ctx, "translate", "Hindi", time.Second, errors.New("unavailable"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}
	if _, ok := Text().(NoopTextHooks); !ok {
		t.Error("Text() should return NoopTextHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customExport := &testExportHooks{}
	SetExportHooks(customExport)
	if Export() != customExport {
		t.Error("SetExportHooks should set custom hooks")
	}

	customText := &testTextHooks{}
	SetTextHooks(customText)
	if Text() != customText {
		t.Error("SetTextHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Text().(NoopTextHooks); !ok {
		t.Error("Reset() should restore NoopTextHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testTextHooks{}
	SetTextHooks(custom)

	// Setting nil should be ignored
	SetTextHooks(nil)

	if Text() != custom {
		t.Error("SetTextHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testExportHooks struct{ NoopExportHooks }
type testTextHooks struct{ NoopTextHooks }
