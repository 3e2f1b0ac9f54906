package chain

import (
	"context"
	"fmt"
	"time"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"
)

// ProcessingStep is one stage of the pipeline. Apply must not modify input and must return a
// Mat with the same channel count as input.
type ProcessingStep interface {
	Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error)
	Name() string
	ShouldExecute(params models.Parameters) bool
}

// ProcessingChain runs its steps in a fixed order, skipping the ones that are no-ops for the
// given parameters.
type ProcessingChain struct {
	steps    []ProcessingStep
	observer StageObserver
}

// StageObserver is told how long each executed step took.
type StageObserver func(step string, elapsed time.Duration)

func NewProcessingChain(steps []ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

// SetObserver installs obs; call it before the chain is shared.
func (pc *ProcessingChain) SetObserver(obs StageObserver) {
	pc.observer = obs
}

// Execute returns a new Mat; input is never returned or closed.
func (pc *ProcessingChain) Execute(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	current := input
	channels := input.Channels()

	release := func() {
		if current != input {
			current.Close()
		}
	}

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		default:
		}

		if !step.ShouldExecute(params) {
			continue
		}

		start := time.Now()
		result, err := step.Apply(ctx, current, params)
		if pc.observer != nil {
			pc.observer(step.Name(), time.Since(start))
		}
		if err != nil {
			release()
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		if got := result.Channels(); got != channels {
			result.Close()
			release()
			return nil, fmt.Errorf("step %s produced %d channels, expected %d", step.Name(), got, channels)
		}

		release()
		current = result
	}

	if current == input {
		return input.Clone()
	}

	return current, nil
}

// Executed lists the steps that will run for params, in order.
func (pc *ProcessingChain) Executed(params models.Parameters) []string {
	names := make([]string, 0, len(pc.steps))
	for _, step := range pc.steps {
		if step.ShouldExecute(params) {
			names = append(names, step.Name())
		}
	}
	return names
}
