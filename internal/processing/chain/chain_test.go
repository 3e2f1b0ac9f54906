package chain

import (
	"context"
	"testing"
	"time"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

type fakeStep struct {
	name     string
	enabled  bool
	channels int
	calls    int
}

func (f *fakeStep) Name() string { return f.name }

func (f *fakeStep) ShouldExecute(models.Parameters) bool { return f.enabled }

func (f *fakeStep) Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	f.calls++
	if f.channels == 0 {
		return input.Clone()
	}
	matType, err := safe.MatTypeForChannels(f.channels)
	if err != nil {
		return nil, err
	}
	return safe.NewMat(input.Rows(), input.Cols(), matType)
}

func newInput(t *testing.T) *safe.Mat {
	t.Helper()
	mat, err := safe.NewMat(8, 8, gocv.MatTypeCV8UC3)
	require.NoError(t, err)
	t.Cleanup(mat.Close)
	return mat
}

func TestExecuteSkipsDisabledSteps(t *testing.T) {
	on := &fakeStep{name: "on", enabled: true}
	off := &fakeStep{name: "off"}
	pc := NewProcessingChain([]ProcessingStep{off, on})

	input := newInput(t)
	out, err := pc.Execute(context.Background(), input, models.DefaultParameters())
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 1, on.calls)
	assert.Equal(t, 0, off.calls)
	assert.Equal(t, []string{"on"}, pc.Executed(models.DefaultParameters()))
}

func TestExecuteReturnsCloneWhenNothingRuns(t *testing.T) {
	pc := NewProcessingChain([]ProcessingStep{&fakeStep{name: "off"}})

	input := newInput(t)
	out, err := pc.Execute(context.Background(), input, models.DefaultParameters())
	require.NoError(t, err)
	defer out.Close()

	assert.NotSame(t, input, out)
	assert.NotEqual(t, input.ID(), out.ID())
	assert.True(t, input.IsValid())
}

func TestExecuteRejectsChannelChange(t *testing.T) {
	pc := NewProcessingChain([]ProcessingStep{&fakeStep{name: "reducer", enabled: true, channels: 1}})

	input := newInput(t)
	_, err := pc.Execute(context.Background(), input, models.DefaultParameters())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produced 1 channels, expected 3")
	assert.True(t, input.IsValid())
}

func TestExecuteHonoursCancellation(t *testing.T) {
	step := &fakeStep{name: "on", enabled: true}
	pc := NewProcessingChain([]ProcessingStep{step})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pc.Execute(ctx, newInput(t), models.DefaultParameters())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, step.calls)
}

func TestObserverSeesExecutedSteps(t *testing.T) {
	pc := NewProcessingChain([]ProcessingStep{
		&fakeStep{name: "first", enabled: true},
		&fakeStep{name: "skipped"},
		&fakeStep{name: "second", enabled: true},
	})

	var seen []string
	pc.SetObserver(func(step string, elapsed time.Duration) {
		seen = append(seen, step)
		assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	})

	out, err := pc.Execute(context.Background(), newInput(t), models.DefaultParameters())
	require.NoError(t, err)
	out.Close()

	assert.Equal(t, []string{"first", "second"}, seen)
}
