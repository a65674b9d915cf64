package progress

import (
	"sync"
	"sync/atomic"
	"testing"
)

type countingObserver struct {
	count atomic.Int64
}

func (o *countingObserver) Update(calcIndex int, value float64) {
	o.count.Add(1)
}

func TestFreezeSnapshotImmutability(t *testing.T) {
	subject := NewProgressSubject()
	obs1 := &countingObserver{}
	subject.Register(obs1)

	callback := subject.Freeze(0)

	obs2 := &countingObserver{}
	subject.Register(obs2)

	callback(0.5)

	if obs1.count.Load() != 1 {
		t.Errorf("obs1 should have count 1, got %d", obs1.count.Load())
	}
	if obs2.count.Load() != 0 {
		t.Errorf("obs2 should have count 0, got %d", obs2.count.Load())
	}
}

func TestFreezeConcurrentRegister(t *testing.T) {
	subject := NewProgressSubject()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject.Register(&countingObserver{})
		}()
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			cb := subject.Freeze(idx)
			cb(0.5)
		}(i)
	}
	wg.Wait()
}

func TestMultipleFrozenCallbacksConcurrent(t *testing.T) {
	subject := NewProgressSubject()
	obs := &countingObserver{}
	subject.Register(obs)

	callbacks := make([]ProgressCallback, 10)
	for i := range callbacks {
		callbacks[i] = subject.Freeze(i)
	}

	var wg sync.WaitGroup
	for _, cb := range callbacks {
		wg.Add(1)
		go func(fn ProgressCallback) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				fn(float64(j) / 1000.0)
			}
		}(cb)
	}
	wg.Wait()

	expected := int64(10 * 1000)
	if obs.count.Load() != expected {
		t.Errorf("expected %d updates, got %d", expected, obs.count.Load())
	}
}

func TestChannelObserverNonBlocking(t *testing.T) {
	ch := make(chan ProgressUpdate, 1)
	obs := NewChannelObserver(ch)

	obs.Update(0, 0.1)
	obs.Update(0, 0.2) // buffer full, must not block

	got := <-ch
	if got.CalculatorIndex != 0 || got.Value != 0.1 {
		t.Errorf("unexpected update: %+v", got)
	}
}

func TestNoOpObserverDoesNothing(t *testing.T) {
	var obs NoOpObserver
	obs.Update(0, 1.0) // must not panic
}

func TestCalcTotalWork(t *testing.T) {
	if got := CalcTotalWork(0); got != 1 {
		t.Errorf("CalcTotalWork(0) = %d, want 1", got)
	}
	if got := CalcTotalWork(10); got != 10 {
		t.Errorf("CalcTotalWork(10) = %d, want 10", got)
	}
}

func TestPrecomputePowers4(t *testing.T) {
	powers := PrecomputePowers4(4)
	want := []uint64{1, 4, 16, 64}
	for i, w := range want {
		if powers[i] != w {
			t.Errorf("powers[%d] = %d, want %d", i, powers[i], w)
		}
	}
}

func TestReportStepProgress(t *testing.T) {
	var last float64
	cb := func(v float64) { last = v }

	ReportStepProgress(cb, 0, 4)
	if last != 0.25 {
		t.Errorf("step 0/4 = %v, want 0.25", last)
	}
	ReportStepProgress(cb, 3, 4)
	if last != 1.0 {
		t.Errorf("step 3/4 = %v, want 1.0", last)
	}

	// Must not panic with nil callback or zero total.
	ReportStepProgress(nil, 0, 4)
	ReportStepProgress(cb, 0, 0)
}
