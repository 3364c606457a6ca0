package checkout

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Step is one stage of order submission. Required steps abort the run on
// failure; optional steps record a warning and let the run continue. A
// positive Timeout bounds the step's context.
type Step struct {
	Name     string
	Required bool
	Timeout  time.Duration
	Run      func(ctx context.Context, sub *Submission) error
}

// Warning captures an optional step that failed without stopping submission.
type Warning struct {
	Step string `json:"step"`
	Err  string `json:"error"`
}

// Pipeline executes submission steps in declaration order.
type Pipeline struct {
	steps []Step
}

// NewPipeline validates and fixes the step sequence.
func NewPipeline(steps ...Step) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("pipeline requires at least one step")
	}
	seen := map[string]bool{}
	for _, step := range steps {
		if step.Name == "" || step.Run == nil {
			return nil, fmt.Errorf("pipeline step missing name or run func")
		}
		if seen[step.Name] {
			return nil, fmt.Errorf("duplicate pipeline step %q", step.Name)
		}
		seen[step.Name] = true
	}
	return &Pipeline{steps: steps}, nil
}

// Execute runs every step against the submission. The returned error is the
// failing required step's error; optional failures land in sub.Warnings and
// in the second return for logging.
func (p *Pipeline) Execute(ctx context.Context, sub *Submission) (softErrs error, err error) {
	for _, step := range p.steps {
		stepErr := p.runStep(ctx, step, sub)
		if stepErr == nil {
			continue
		}
		if step.Required {
			return softErrs, fmt.Errorf("%s: %w", step.Name, stepErr)
		}
		sub.Warnings = append(sub.Warnings, Warning{Step: step.Name, Err: stepErr.Error()})
		softErrs = multierr.Append(softErrs, fmt.Errorf("%s: %w", step.Name, stepErr))
	}
	return softErrs, nil
}

func (p *Pipeline) runStep(ctx context.Context, step Step, sub *Submission) error {
	if step.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, step.Timeout)
		defer cancel()
	}
	return step.Run(ctx, sub)
}
