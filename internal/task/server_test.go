package task

import "testing"

func TestServerConfigs(t *testing.T) {
	cfgs := ServerConfigs(2, 1, 2)
	if len(cfgs) != 3 {
		t.Fatalf("got %d configs; want one per queue", len(cfgs))
	}

	want := map[string]int{
		QueueImage:    2,
		QueueVideo:    1,
		QueueDocument: 2,
	}
	for _, qc := range cfgs {
		if qc.Config.Concurrency != want[qc.Queue] {
			t.Errorf("queue %q concurrency = %d; want %d", qc.Queue, qc.Config.Concurrency, want[qc.Queue])
		}
		// a server must consume exactly its own queue, otherwise the
		// concurrency value stops being a per-queue cap
		if len(qc.Config.Queues) != 1 || qc.Config.Queues[qc.Queue] == 0 {
			t.Errorf("queue %q server consumes %v; want only its own queue", qc.Queue, qc.Config.Queues)
		}
		if qc.Config.RetryDelayFunc == nil {
			t.Errorf("queue %q server is missing the backoff function", qc.Queue)
		}
	}
}

func TestServerConfigsClampConcurrency(t *testing.T) {
	for _, qc := range ServerConfigs(0, -1, 0) {
		if qc.Config.Concurrency != 1 {
			t.Errorf("queue %q concurrency = %d; want clamped to 1", qc.Queue, qc.Config.Concurrency)
		}
	}
}
