// sourcetable_test.go - SourceTable de-interleave and lifecycle tests

package dwm

import "testing"

func TestWriteSourceDeinterleavesFirstChannel(t *testing.T) {
	st := NewSourceTable()

	stereo := []float32{1, 100, 2, 100, 3, 100, 4, 100}
	st.WriteSource(0, 1, 2, 3, stereo, 2)

	rec := &st.records[0]
	if rec.PX != 1 || rec.PY != 2 || rec.PZ != 3 {
		t.Fatalf("position = (%v,%v,%v), want (1,2,3)", rec.PX, rec.PY, rec.PZ)
	}
	if !rec.Active {
		t.Fatal("record not marked active after WriteSource")
	}
	want := []float32{1, 2, 3, 4}
	for i, w := range want {
		if rec.buf[i] != w {
			t.Errorf("buf[%d] = %v, want %v", i, rec.buf[i], w)
		}
	}
}

func TestWriteSourceClampsIndex(t *testing.T) {
	st := NewSourceTable()
	st.WriteSource(-5, 1, 1, 1, []float32{9}, 1)
	if !st.records[0].Active {
		t.Fatal("negative index did not clamp to 0")
	}

	st2 := NewSourceTable()
	st2.WriteSource(MaxSources+10, 1, 1, 1, []float32{9}, 1)
	if !st2.records[MaxSources-1].Active {
		t.Fatal("oversized index did not clamp to MaxSources-1")
	}
}

func TestConsumeSampleClearsAfterRead(t *testing.T) {
	st := NewSourceTable()
	st.WriteSource(0, 0, 0, 0, []float32{1, 2, 3}, 1)

	var got []float32
	st.consumeSample(0, func(rec *SourceRecord, sample float32) {
		got = append(got, sample)
	})
	st.consumeSample(0, func(rec *SourceRecord, sample float32) {
		got = append(got, sample)
	})

	if len(got) != 2 || got[0] != 1 || got[1] != 0 {
		t.Fatalf("got %v, want [1 0] (sample consumed and cleared on first read)", got)
	}
}

func TestSnapshotReflectsWriteSource(t *testing.T) {
	st := NewSourceTable()
	st.WriteSource(2, 0.1, 0.2, 0.3, []float32{7, 8, 9}, 1)

	snap := st.Snapshot(2)
	if snap.PX != 0.1 || snap.PY != 0.2 || snap.PZ != 0.3 {
		t.Fatalf("position = (%v,%v,%v), want (0.1,0.2,0.3)", snap.PX, snap.PY, snap.PZ)
	}
	if !snap.Active || snap.Buf0 != 7 {
		t.Fatalf("snapshot = %+v, want Active=true Buf0=7", snap)
	}
}

func TestConsumeSampleSkipsInactiveRecords(t *testing.T) {
	st := NewSourceTable()
	st.WriteSource(0, 0, 0, 0, []float32{5}, 1)

	calls := 0
	st.consumeSample(0, func(rec *SourceRecord, sample float32) { calls++ })
	if calls != 1 {
		t.Fatalf("active record: consumeSample invoked callback %d times, want 1", calls)
	}

	st.clearActive()
	calls = 0
	st.consumeSample(0, func(rec *SourceRecord, sample float32) { calls++ })
	if calls != 0 {
		t.Fatalf("after clearActive: consumeSample invoked callback %d times, want 0", calls)
	}
}
