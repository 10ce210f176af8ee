package adios2

import (
	"context"
	"testing"

	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/iotask"
)

func TestFlushWithNoPendingTasksSucceeds(t *testing.T) {
	h := New("ADIOS2")
	if err := h.Flush(context.Background(), iotask.UserFlush); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !h.LastFlushOK() {
		t.Error("LastFlushOK() = false after an empty flush")
	}
}

func TestFlushWithPendingTasksFails(t *testing.T) {
	h := New("ADIOS2")
	h.Enqueue(iotask.New(core.NewWritable(nil, ""), iotask.CreateFile, &iotask.Parameter{}))
	if err := h.Flush(context.Background(), iotask.UserFlush); err == nil {
		t.Fatal("expected an error flushing a backend with no real engine bindings")
	}
	if h.LastFlushOK() {
		t.Error("LastFlushOK() = true after a failed flush")
	}
}
