package jobmodel

import (
	"fmt"
	"time"
)

type StepStatus string
type StepID string

const (
	StepPending    StepStatus = "pending"
	StepProcessing StepStatus = "processing"
	StepCompleted  StepStatus = "completed"
	StepError      StepStatus = "error"

	StepOCR        StepID = "ocr"
	StepLayout     StepID = "layout"
	StepExtraction StepID = "extraction"
	StepVector     StepID = "vector"
	StepValidation StepID = "validation"
)

type ProcessingStep struct {
	Id          StepID     `json:"id"`
	Name        string     `json:"name"`
	Status      StepStatus `json:"status"`
	DurationMs  int64      `json:"duration_ms,omitempty"`
	Description string     `json:"description"`
}

// StepList is the fixed, ordered step sequence of one pipeline run. The
// orchestrator never skips a step and never reorders it; the only way to
// mutate a step is Advance, which rejects illegal transitions.
type StepList struct {
	Steps []ProcessingStep `json:"steps"`
}

func NewStepList() StepList {
	return StepList{Steps: []ProcessingStep{
		{Id: StepOCR, Name: "OCR", Status: StepPending, Description: "Text recognition with positional metadata"},
		{Id: StepLayout, Name: "Layout Parsing", Status: StepPending, Description: "Sections, tables and key-value pairs"},
		{Id: StepExtraction, Name: "AI Extraction", Status: StepPending, Description: "Structured field extraction via language model"},
		{Id: StepVector, Name: "Embedding & Storage", Status: StepPending, Description: "Chunk embedding and vector index upsert"},
		{Id: StepValidation, Name: "Field Validation", Status: StepPending, Description: "Required-field and format checks"},
	}}
}

var legalTransitions = map[StepStatus][]StepStatus{
	StepPending:    {StepProcessing},
	StepProcessing: {StepCompleted, StepError},
}

// Advance moves the identified step to next, recording the elapsed
// duration for terminal states. Only pending→processing and
// processing→{completed,error} are legal.
func (s *StepList) Advance(id StepID, next StepStatus, elapsed time.Duration) error {
	for i := range s.Steps {
		if s.Steps[i].Id != id {
			continue
		}
		if !transitionAllowed(s.Steps[i].Status, next) {
			return fmt.Errorf("step %s: illegal transition %s -> %s", id, s.Steps[i].Status, next)
		}
		s.Steps[i].Status = next
		if next == StepCompleted || next == StepError {
			s.Steps[i].DurationMs = elapsed.Milliseconds()
		}
		return nil
	}
	return fmt.Errorf("step %s: unknown step id", id)
}

func (s *StepList) Get(id StepID) (ProcessingStep, bool) {
	for _, step := range s.Steps {
		if step.Id == id {
			return step, true
		}
	}
	return ProcessingStep{}, false
}

func transitionAllowed(from, to StepStatus) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
