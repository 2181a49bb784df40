package services

import (
	"context"
	"testing"
	"time"
)

func TestTaskTypeExport_Constant(t *testing.T) {
	if TaskTypeExport != "report:export" {
		t.Errorf("TaskTypeExport = %q, expected %q", TaskTypeExport, "report:export")
	}
}

func TestExportTask_Structure(t *testing.T) {
	task := ExportTask{ExportID: 42}
	if task.ExportID != 42 {
		t.Errorf("ExportID = %d, expected 42", task.ExportID)
	}
}

func TestSyncQueue_New(t *testing.T) {
	queue := NewSyncQueue()
	if queue == nil {
		t.Fatal("NewSyncQueue should not return nil")
	}
	if queue.IsAsync() {
		t.Error("SyncQueue.IsAsync() should be false")
	}
}

func TestSyncQueue_EnqueueWithoutProcessor(t *testing.T) {
	queue := NewSyncQueue()

	// No processor set; the task is dropped but Enqueue must not fail
	if err := queue.Enqueue(&ExportTask{ExportID: 1}); err != nil {
		t.Errorf("Enqueue() error = %v", err)
	}
}

func TestSyncQueue_EnqueueCallsProcessor(t *testing.T) {
	queue := NewSyncQueue()

	done := make(chan uint, 1)
	queue.SetProcessor(func(ctx context.Context, task *ExportTask) error {
		done <- task.ExportID
		return nil
	})

	if err := queue.Enqueue(&ExportTask{ExportID: 7}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case id := <-done:
		if id != 7 {
			t.Errorf("processed ExportID = %d, expected 7", id)
		}
	case <-time.After(2 * time.Second):
		t.Error("processor was not called within 2s")
	}
}

func TestSyncQueue_Close(t *testing.T) {
	queue := NewSyncQueue()
	if err := queue.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
