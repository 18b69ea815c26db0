// sourcetable.go - fixed-capacity shared source position/sample table

package dwm

import "sync"

// SourceRecord holds one audio source's world position and its per-block
// mono sample buffer, de-interleaved from the upstream injector's output.
type SourceRecord struct {
	PX, PY, PZ float32
	Active     bool
	buf        [BlockSize]float32
}

// SourceTable is a fixed-capacity, process-wide table of SourceRecords
// shared between an upstream injector (writing once per audio block) and
// RealtimeDriver (reading sample-by-sample within the same block). A single
// mutex guards the whole table, the same shape as a sound-chip engine's
// register-bank mutex: every critical section is bounded and never blocks
// (O(MaxSources) per consumed sample, O(BlockSize) for WriteSource's
// de-interleave loop), so holding it adds no unbounded wait for the
// realtime reader.
type SourceTable struct {
	mutex   sync.Mutex
	records [MaxSources]SourceRecord
}

// NewSourceTable returns an empty, zeroed source table.
func NewSourceTable() *SourceTable {
	return &SourceTable{}
}

// WriteSource stores a source's position and de-interleaves channel 0 of
// interleavedBuf (stride samples per frame) into the record's mono buffer,
// marking it active. index is clamped to [0, MaxSources-1].
func (t *SourceTable) WriteSource(index int, px, py, pz float32, interleavedBuf []float32, stride int) {
	index = clampInt(index, 0, MaxSources-1)
	if stride < 1 {
		stride = 1
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	rec := &t.records[index]
	rec.PX, rec.PY, rec.PZ = px, py, pz
	rec.Active = true

	n := len(interleavedBuf) / stride
	if n > BlockSize {
		n = BlockSize
	}
	for i := 0; i < n; i++ {
		rec.buf[i] = interleavedBuf[i*stride]
	}
}

// SourceSnapshot is a read-only copy of one SourceRecord's position,
// activity and first buffered sample, for diagnostics and tests that have
// no business reaching into SourceTable's internals.
type SourceSnapshot struct {
	PX, PY, PZ float32
	Active     bool
	Buf0       float32
}

// Snapshot returns a copy of record index's current state. index is
// clamped to [0, MaxSources-1], matching WriteSource's clamping.
func (t *SourceTable) Snapshot(index int) SourceSnapshot {
	index = clampInt(index, 0, MaxSources-1)

	t.mutex.Lock()
	defer t.mutex.Unlock()

	rec := &t.records[index]
	return SourceSnapshot{PX: rec.PX, PY: rec.PY, PZ: rec.PZ, Active: rec.Active, Buf0: rec.buf[0]}
}

// consumeSample returns the next unplayed sample for every active source
// and clears it, for use by RealtimeDriver's per-sample loop. It must not be
// called concurrently with itself.
func (t *SourceTable) consumeSample(n int, fn func(rec *SourceRecord, sample float32)) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for i := range t.records {
		rec := &t.records[i]
		if !rec.Active {
			continue
		}
		sample := rec.buf[n]
		rec.buf[n] = 0
		fn(rec, sample)
	}
}

// clearActive drops the active flag on every record. RealtimeDriver calls
// this after each block, requiring the upstream injector to refresh a
// source's position every block rather than leaving a stale position active
// forever.
func (t *SourceTable) clearActive() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	for i := range t.records {
		t.records[i].Active = false
	}
}
