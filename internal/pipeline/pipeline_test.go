package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/acessolab/a11yscan/internal/model"
)

// fakeStep records whether it ran and optionally fails.
type fakeStep struct {
	name string
	err  error
	ran  bool
}

func (s *fakeStep) Name() string {
	return s.name
}

func (s *fakeStep) Do(_ context.Context, _ *model.Report) error {
	s.ran = true
	return s.err
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("steps run in order", func(t *testing.T) {
		t.Parallel()
		var order []string
		p := New()
		for _, name := range []string{"primeiro", "segundo", "terceiro"} {
			name := name
			p.AddStep(stepFunc(name, func() { order = append(order, name) }))
		}

		if err := p.Execute(context.Background(), model.NewReport("https://example.com")); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(order) != 3 || order[0] != "primeiro" || order[2] != "terceiro" {
			t.Errorf("order = %v", order)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()
		failing := &fakeStep{name: "falha", err: errors.New("boom")}
		after := &fakeStep{name: "depois"}
		p := New()
		p.AddSteps(failing, after)

		report := model.NewReport("https://example.com")
		err := p.Execute(context.Background(), report)
		if err == nil {
			t.Fatal("Execute() expected error")
		}
		if after.ran {
			t.Error("step after failure should not run")
		}
		if report.Error != "boom" {
			t.Errorf("report.Error = %q, want %q", report.Error, "boom")
		}
	})

	t.Run("continue on error runs remaining steps", func(t *testing.T) {
		t.Parallel()
		failing := &fakeStep{name: "falha", err: errors.New("boom")}
		after := &fakeStep{name: "depois"}
		p := New(WithContinueOnError(true))
		p.AddSteps(failing, after)

		if err := p.Execute(context.Background(), model.NewReport("https://example.com")); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !after.ran {
			t.Error("step after failure should run with continueOnError")
		}
	})

	t.Run("cancelled context stops execution", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &fakeStep{name: "nunca"}
		p := New()
		p.AddStep(step)

		report := model.NewReport("https://example.com")
		if err := p.Execute(ctx, report); !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, want context.Canceled", err)
		}
		if step.ran {
			t.Error("step should not run after cancellation")
		}
		if report.Error == "" {
			t.Error("cancellation should be recorded on the report")
		}
	})

	t.Run("step metadata", func(t *testing.T) {
		t.Parallel()
		p := New()
		p.AddSteps(&fakeStep{name: "um"}, &fakeStep{name: "dois"})

		if p.StepCount() != 2 {
			t.Errorf("StepCount() = %d, want 2", p.StepCount())
		}
		names := p.StepNames()
		if len(names) != 2 || names[0] != "um" || names[1] != "dois" {
			t.Errorf("StepNames() = %v", names)
		}
	})
}

// stepFunc adapts a closure into a Step for ordering tests.
func stepFunc(name string, fn func()) Step {
	return &closureStep{name: name, fn: fn}
}

type closureStep struct {
	name string
	fn   func()
}

func (s *closureStep) Name() string {
	return s.name
}

func (s *closureStep) Do(_ context.Context, _ *model.Report) error {
	s.fn()
	return nil
}
