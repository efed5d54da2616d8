package pipeline

import (
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/analysis"
	"blightcli/internal/features"
)

// RunStatus represents the overall run status
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// State is the table and bookkeeping passed from step to step
type State struct {
	mu sync.RWMutex

	RunID     string
	Status    RunStatus
	StartTime time.Time
	EndTime   *time.Time
	Error     error

	Steps map[string]*StepState

	// Joined is the raw tickets table with addresses and coordinates.
	Joined dataframe.DataFrame
	// Train and Validation are the two sides of the issue date split.
	// Train is replaced by the selected and then the preprocessed table.
	Train      dataframe.DataFrame
	Validation dataframe.DataFrame

	Selection features.SelectResult
	Report    features.Report

	// Tables and Figures collect the exploratory analysis output.
	Tables  []analysis.Table
	Figures []string

	// Written maps output file paths to data rows written.
	Written map[string]int
}

// NewState creates a pending run state
func NewState(runID string) *State {
	return &State{
		RunID:     runID,
		Status:    RunStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
		Written:   make(map[string]int),
	}
}

// Start marks the run as running
func (s *State) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = RunStatusRunning
	s.StartTime = time.Now()
}

// Complete marks the run as completed
func (s *State) Complete() {
	s.finish(RunStatusCompleted, nil)
}

// Fail marks the run as failed
func (s *State) Fail(err error) {
	s.finish(RunStatusFailed, err)
}

// Cancel marks the run as cancelled
func (s *State) Cancel(err error) {
	s.finish(RunStatusCancelled, err)
}

func (s *State) finish(status RunStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = status
	s.Error = err
}

// GetStep returns the state of a specific Step
func (s *State) GetStep(id string) *StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Steps[id]
}

// SetStep updates the state of a specific Step
func (s *State) SetStep(id string, state *StepState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Steps[id] = state
}

// RecordWrite notes rows written to path
func (s *State) RecordWrite(path string, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Written[path] = rows
}

// AddTable appends an analysis table
func (s *State) AddTable(t analysis.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tables = append(s.Tables, t)
}

// AddFigure notes a saved chart
func (s *State) AddFigure(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Figures = append(s.Figures, path)
}
