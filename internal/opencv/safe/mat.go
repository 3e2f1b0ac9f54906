// Package safe wraps gocv.Mat so that native memory is released exactly once and never read
// after release.
package safe

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Mat owns a gocv.Mat. A finalizer releases the native memory if Close is never called.
type Mat struct {
	mu    sync.RWMutex
	mat   gocv.Mat
	valid atomic.Bool
	id    uint64
}

var lastID atomic.Uint64

func NewMat(rows, cols int, matType gocv.MatType) (*Mat, error) {
	if err := RequireDimensions(cols, rows, "new Mat"); err != nil {
		return nil, err
	}
	return Adopt(gocv.NewMatWithSize(rows, cols, matType))
}

// NewMatFromMat clones src; the caller keeps ownership of src.
func NewMatFromMat(src gocv.Mat) (*Mat, error) {
	if src.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}
	return Adopt(src.Clone())
}

// NewMatFromBytes copies interleaved 8-bit samples into a new Mat.
func NewMatFromBytes(rows, cols, channels int, data []byte) (*Mat, error) {
	matType, err := MatTypeForChannels(channels)
	if err != nil {
		return nil, err
	}
	if err := RequireDimensions(cols, rows, "Mat from bytes"); err != nil {
		return nil, err
	}
	if want := rows * cols * channels; len(data) != want {
		return nil, fmt.Errorf("buffer holds %d samples, %dx%dx%d needs %d", len(data), cols, rows, channels, want)
	}

	view, err := gocv.NewMatFromBytes(rows, cols, matType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create Mat from bytes: %w", err)
	}
	defer view.Close()

	// view aliases data until the clone completes
	mat, err := NewMatFromMat(view)
	runtime.KeepAlive(data)
	return mat, err
}

// Adopt takes ownership of mat without copying it.
func Adopt(mat gocv.Mat) (*Mat, error) {
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("cannot adopt empty Mat")
	}

	sm := &Mat{mat: mat, id: lastID.Add(1)}
	sm.valid.Store(true)
	runtime.SetFinalizer(sm, (*Mat).Close)
	return sm, nil
}

// read runs fn on the underlying Mat under the read lock. It reports false after Close.
func (sm *Mat) read(fn func(m gocv.Mat)) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.valid.Load() {
		return false
	}
	fn(sm.mat)
	return true
}

func (sm *Mat) IsValid() bool {
	return sm.valid.Load()
}

func (sm *Mat) Empty() bool {
	empty := true
	sm.read(func(m gocv.Mat) { empty = m.Empty() })
	return empty
}

func (sm *Mat) Rows() (rows int) {
	sm.read(func(m gocv.Mat) { rows = m.Rows() })
	return rows
}

func (sm *Mat) Cols() (cols int) {
	sm.read(func(m gocv.Mat) { cols = m.Cols() })
	return cols
}

func (sm *Mat) Channels() (channels int) {
	sm.read(func(m gocv.Mat) { channels = m.Channels() })
	return channels
}

func (sm *Mat) Type() gocv.MatType {
	matType := gocv.MatTypeCV8UC1
	sm.read(func(m gocv.Mat) { matType = m.Type() })
	return matType
}

func (sm *Mat) Clone() (*Mat, error) {
	var (
		clone *Mat
		err   error
	)
	if !sm.read(func(m gocv.Mat) { clone, err = NewMatFromMat(m) }) {
		return nil, ErrClosed
	}
	return clone, err
}

// Bytes returns a copy of the interleaved samples in row-major order.
func (sm *Mat) Bytes() ([]byte, error) {
	var data []byte
	if !sm.read(func(m gocv.Mat) { data = m.ToBytes() }) {
		return nil, ErrClosed
	}
	return data, nil
}

// GetUCharAt reads a single-channel sample.
func (sm *Mat) GetUCharAt(row, col int) (uint8, error) {
	return sm.Sample(row, col, 0)
}

// Sample reads one channel of an 8-bit pixel.
func (sm *Mat) Sample(row, col, channel int) (uint8, error) {
	var (
		v   uint8
		err error
	)
	ok := sm.read(func(m gocv.Mat) {
		channels := m.Channels()
		if err = inBounds(row, col, channel, m.Rows(), m.Cols(), channels); err == nil {
			v = m.GetUCharAt(row, col*channels+channel)
		}
	})
	if !ok {
		return 0, ErrClosed
	}
	return v, err
}

// View runs fn on the underlying Mat while holding the read lock, so a concurrent Close
// waits for fn to return. fn must not call methods of sm or retain m.
func (sm *Mat) View(fn func(m gocv.Mat)) error {
	if !sm.read(fn) {
		return ErrClosed
	}
	return nil
}

// Transform runs fn with src locked for reading and dst locked for writing. fn writes its
// output through the dst pointer.
func Transform(src, dst *Mat, fn func(src gocv.Mat, dst *gocv.Mat)) error {
	if src == dst {
		return fmt.Errorf("transform source and destination must differ")
	}

	dst.mu.Lock()
	defer dst.mu.Unlock()

	if !dst.valid.Load() {
		return ErrClosed
	}
	if !src.read(func(m gocv.Mat) { fn(m, &dst.mat) }) {
		return ErrClosed
	}
	return nil
}

func (sm *Mat) ID() uint64 {
	return sm.id
}

// Close releases the native memory. Later calls are no-ops.
func (sm *Mat) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.valid.CompareAndSwap(true, false) {
		sm.mat.Close()
		runtime.SetFinalizer(sm, nil)
	}
}

func MatTypeForChannels(channels int) (gocv.MatType, error) {
	switch channels {
	case 1:
		return gocv.MatTypeCV8UC1, nil
	case 3:
		return gocv.MatTypeCV8UC3, nil
	case 4:
		return gocv.MatTypeCV8UC4, nil
	}
	return gocv.MatTypeCV8UC1, fmt.Errorf("unsupported channel count: %d", channels)
}
