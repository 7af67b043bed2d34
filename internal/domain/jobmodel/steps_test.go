package jobmodel

import (
	"testing"
	"time"
)

func TestNewStepList_Order(t *testing.T) {
	s := NewStepList()

	want := []StepID{StepOCR, StepLayout, StepExtraction, StepVector, StepValidation}
	if len(s.Steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(s.Steps))
	}
	for i, id := range want {
		if s.Steps[i].Id != id {
			t.Errorf("step %d: got %s, want %s", i, s.Steps[i].Id, id)
		}
		if s.Steps[i].Status != StepPending {
			t.Errorf("step %s: initial status %s, want pending", id, s.Steps[i].Status)
		}
	}
}

func TestAdvance_LegalPath(t *testing.T) {
	s := NewStepList()

	if err := s.Advance(StepOCR, StepProcessing, 0); err != nil {
		t.Fatalf("pending->processing failed: %v", err)
	}
	if err := s.Advance(StepOCR, StepCompleted, 120*time.Millisecond); err != nil {
		t.Fatalf("processing->completed failed: %v", err)
	}

	step, _ := s.Get(StepOCR)
	if step.Status != StepCompleted {
		t.Errorf("status got %s, want completed", step.Status)
	}
	if step.DurationMs != 120 {
		t.Errorf("duration got %d, want 120", step.DurationMs)
	}
}

func TestAdvance_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *StepList) error
	}{
		{"pending to completed", func(s *StepList) error {
			return s.Advance(StepLayout, StepCompleted, 0)
		}},
		{"pending to error", func(s *StepList) error {
			return s.Advance(StepLayout, StepError, 0)
		}},
		{"completed to processing", func(s *StepList) error {
			s.Advance(StepLayout, StepProcessing, 0)
			s.Advance(StepLayout, StepCompleted, 0)
			return s.Advance(StepLayout, StepProcessing, 0)
		}},
		{"error to completed", func(s *StepList) error {
			s.Advance(StepLayout, StepProcessing, 0)
			s.Advance(StepLayout, StepError, 0)
			return s.Advance(StepLayout, StepCompleted, 0)
		}},
		{"unknown step id", func(s *StepList) error {
			return s.Advance("resize", StepProcessing, 0)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStepList()
			if err := tt.run(&s); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestSetProgress_Monotonic(t *testing.T) {
	j := PipelineJob{}

	j.SetProgress(30)
	j.SetProgress(10)
	if j.Progress != 30 {
		t.Errorf("progress regressed: got %d, want 30", j.Progress)
	}

	j.SetProgress(250)
	if j.Progress != 100 {
		t.Errorf("progress not capped: got %d, want 100", j.Progress)
	}
}
