// Package session keeps one user's form, output region and results, and
// allows a single pipeline run at a time.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"basejumper/pkg/form"
	"basejumper/pkg/pipeline"
	"basejumper/pkg/stats"
)

var (
	StartLabel   = "Start"
	BusyLabel    = "Processing..."
	StartMessage = "Starting process... Please wait."
	MissingFile  = "\nError: " + stats.FileName + " file not found."
)

// Runner executes one composed invocation and waits for it.
type Runner interface {
	Run(inv form.Invocation) (pipeline.Output, error)
}

// Completion is delivered once per accepted submission.
type Completion struct {
	RunID      string
	Invocation form.Invocation
	Err        error // invocation error, or the statistics load error
}

type Session struct {
	runner Runner

	mu      sync.Mutex
	state   form.State
	output  string
	busy    bool
	results stats.Container
}

func New(runner Runner, state form.State) *Session {
	return &Session{
		runner: runner,
		state:  state.Clone(),
	}
}

// View is a consistent copy of the session for display.
type View struct {
	Form   form.State
	Output string
	Busy   bool
	Button string
	Tables []stats.Table
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	var button = StartLabel
	if s.busy {
		button = BusyLabel
	}
	return View{
		Form:   s.state.Clone(),
		Output: s.output,
		Busy:   s.busy,
		Button: button,
		Tables: s.results.Tables(),
	}
}

// Set applies one field change.
func (s *Session) Set(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Set(field, value)
}

// Update applies several field changes in form order.
func (s *Session) Update(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, field := range form.FieldList {
		if value, ok := values[field]; ok {
			s.state.Set(field, value)
		}
	}
}

// Busy reports whether a run is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Submit starts a run with the current form. While a run is outstanding it
// does nothing and returns false.
func (s *Session) Submit() (<-chan Completion, bool) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		slog.Info("Submit ignored", "reason", "run in progress")
		return nil, false
	}
	s.busy = true
	s.output = StartMessage
	var inv = form.Compose(s.state)
	s.mu.Unlock()

	var (
		runID = uuid.NewString()
		done  = make(chan Completion, 1)
	)
	slog.Info("Command to be executed", "run", runID, "args", inv.String())
	go func() {
		done <- s.run(runID, inv)
		close(done)
	}()
	return done, true
}

func (s *Session) run(runID string, inv form.Invocation) Completion {
	var c = Completion{RunID: runID, Invocation: inv}

	out, err := s.runner.Run(inv)
	if err != nil {
		slog.Error("Execution error", "run", runID, "err", err)
		s.finish("Error: "+err.Error(), nil)
		c.Err = err
		return c
	}

	var (
		output = out.Stdout
		table  *stats.Table
	)
	records, err := stats.Load(inv.OutputDir)
	switch {
	case errors.Is(err, stats.ErrMissingOutputFile):
		slog.Error("Load statistics", "run", runID, "err", err)
		output += MissingFile
	case err != nil:
		slog.Error("Load statistics", "run", runID, "err", err)
	default:
		var t = stats.NewTable(runID, records)
		table = &t
	}
	s.finish(output, table)
	c.Err = err
	return c
}

// finish publishes the final output region and table of a run and
// re-enables submission in the same critical section.
func (s *Session) finish(output string, table *stats.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = output
	if table != nil {
		s.results.Append(*table)
	}
	s.busy = false
}

// Clear empties the results container.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results.Clear()
}

// LastTable returns the table of the most recent successful run.
func (s *Session) LastTable() (stats.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results.Last()
}
