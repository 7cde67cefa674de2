package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"basejumper/pkg/form"
	"basejumper/pkg/pipeline"
	"basejumper/pkg/stats"
)

// fakeRunner stands in for the pipeline script.
type fakeRunner struct {
	stdout string
	err    error
	stats  string // written to the output directory unless empty
	gate   chan struct{}
	calls  []form.Invocation
}

func (r *fakeRunner) Run(inv form.Invocation) (pipeline.Output, error) {
	r.calls = append(r.calls, inv)
	if r.gate != nil {
		<-r.gate
	}
	if r.err != nil {
		return pipeline.Output{}, r.err
	}
	if r.stats != "" {
		if err := os.WriteFile(stats.Path(inv.OutputDir), []byte(r.stats), 0644); err != nil {
			return pipeline.Output{}, err
		}
	}
	return pipeline.Output{Stdout: r.stdout}, nil
}

func newSession(t *testing.T, r Runner) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	state := form.FromValues(map[string]string{
		form.FieldBasecalling:      form.Generic,
		form.FieldGenericInputDir:  filepath.Join(dir, "fastq"),
		form.FieldGenericOutputDir: dir,
		form.FieldNumBarcodes:      "2",
	})
	return New(r, state), dir
}

func wait(t *testing.T, s *Session) Completion {
	t.Helper()
	done, ok := s.Submit()
	if !ok {
		t.Fatalf("submit refused")
	}
	return <-done
}

func TestSubmitSuccessAppendsTable(t *testing.T) {
	r := &fakeRunner{stdout: "assembly finished\n", stats: "header\nbarcode01 PASS 4641652 88.2\n"}
	s, dir := newSession(t, r)
	c := wait(t, s)
	if c.Err != nil {
		t.Fatalf("completion error: %v", c.Err)
	}
	if r.calls[0].OutputDir != dir || r.calls[0].KitName != form.NA {
		t.Fatalf("invocation: %+v", r.calls[0])
	}
	v := s.Snapshot()
	if v.Output != "assembly finished\n" || v.Busy || v.Button != StartLabel {
		t.Fatalf("view: %+v", v)
	}
	if len(v.Tables) != 1 || v.Tables[0].RunID != c.RunID {
		t.Fatalf("tables: %+v", v.Tables)
	}
	if !strings.Contains(v.Tables[0].HTML, "<td>barcode01</td>") {
		t.Fatalf("html: %s", v.Tables[0].HTML)
	}
}

func TestTwoRunsAccumulate(t *testing.T) {
	r := &fakeRunner{stdout: "ok", stats: "header\nA good 100 5.0\n"}
	s, _ := newSession(t, r)
	first := wait(t, s)
	second := wait(t, s)
	v := s.Snapshot()
	if len(v.Tables) != 2 {
		t.Fatalf("want 2 tables, got %d", len(v.Tables))
	}
	if first.RunID == second.RunID {
		t.Fatalf("run ids must differ")
	}
	s.Clear()
	if len(s.Snapshot().Tables) != 0 {
		t.Fatalf("clear did not empty the container")
	}
}

func TestMissingStatisticsFile(t *testing.T) {
	r := &fakeRunner{stdout: "done"}
	s, _ := newSession(t, r)
	c := wait(t, s)
	if !errors.Is(c.Err, stats.ErrMissingOutputFile) {
		t.Fatalf("want missing file, got %v", c.Err)
	}
	v := s.Snapshot()
	if v.Output != "done\nError: assembly_statistics.txt file not found." {
		t.Fatalf("output: %q", v.Output)
	}
	if len(v.Tables) != 0 || v.Busy {
		t.Fatalf("no table expected, busy=%v tables=%d", v.Busy, len(v.Tables))
	}
}

func TestInvocationErrorShownVerbatim(t *testing.T) {
	invErr := &pipeline.InvocationError{Stderr: "zsh: command not found: dorado"}
	r := &fakeRunner{err: invErr, stats: "header\nA good 1 1\n"}
	s, dir := newSession(t, r)
	c := wait(t, s)
	if !errors.Is(c.Err, invErr) {
		t.Fatalf("completion error: %v", c.Err)
	}
	v := s.Snapshot()
	if v.Output != "Error: zsh: command not found: dorado" {
		t.Fatalf("output: %q", v.Output)
	}
	if v.Busy || len(v.Tables) != 0 {
		t.Fatalf("busy=%v tables=%d", v.Busy, len(v.Tables))
	}
	if _, err := os.Stat(stats.Path(dir)); err == nil {
		t.Fatalf("failed run must not reach the statistics step")
	}
}

func TestSubmitWhileBusyIsNoop(t *testing.T) {
	r := &fakeRunner{stdout: "ok", stats: "header\nA good 100 5.0\n", gate: make(chan struct{})}
	s, _ := newSession(t, r)
	done, ok := s.Submit()
	if !ok {
		t.Fatalf("first submit refused")
	}
	v := s.Snapshot()
	if !v.Busy || v.Button != BusyLabel || v.Output != StartMessage {
		t.Fatalf("running view: %+v", v)
	}
	if _, ok := s.Submit(); ok {
		t.Fatalf("second submit must be ignored while busy")
	}
	close(r.gate)
	<-done
	if s.Busy() {
		t.Fatalf("still busy after completion")
	}
	if len(r.calls) != 1 {
		t.Fatalf("want 1 invocation, got %d", len(r.calls))
	}
	if len(s.Snapshot().Tables) != 1 {
		t.Fatalf("want 1 table")
	}
}

func TestUpdateRunsToggles(t *testing.T) {
	s, _ := newSession(t, &fakeRunner{})
	s.Update(map[string]string{
		form.FieldBasecalling: form.Dorado,
		form.FieldQuast:       form.Yes,
		form.FieldKitName:     "SQK-NBD114.24",
	})
	v := s.Snapshot()
	if !v.Form.Visible.DoradoGroup || !v.Form.Visible.KitName || !v.Form.Visible.Reference {
		t.Fatalf("visibility: %+v", v.Form.Visible)
	}
	s.Set(form.FieldQuast, form.No)
	if s.Snapshot().Form.Visible.Reference {
		t.Fatalf("reference still visible")
	}
}

// hookHandler calls fn whenever a record with message msg is logged.
type hookHandler struct {
	slog.Handler
	msg string
	fn  func()
}

func (h hookHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Message == h.msg {
		h.fn()
	}
	return h.Handler.Handle(ctx, r)
}

func TestResubmitWhileLoadingStatistics(t *testing.T) {
	for name, content := range map[string]string{
		"missing": "",
		"table":   "header\nbarcode01 PASS 4641652 88.2\n",
	} {
		r := &fakeRunner{stdout: "done", stats: content}
		s, _ := newSession(t, r)

		var accepted bool
		prev := slog.Default()
		slog.SetDefault(slog.New(hookHandler{
			Handler: slog.NewTextHandler(io.Discard, nil),
			msg:     "Load",
			fn:      func() { _, accepted = s.Submit() },
		}))
		c := wait(t, s)
		slog.SetDefault(prev)

		if accepted {
			t.Fatalf("%s: submit accepted before the run's output was final", name)
		}
		v := s.Snapshot()
		if v.Busy || len(r.calls) != 1 {
			t.Fatalf("%s: busy=%v calls=%d", name, v.Busy, len(r.calls))
		}
		if content == "" {
			if !errors.Is(c.Err, stats.ErrMissingOutputFile) || v.Output != "done"+MissingFile {
				t.Fatalf("%s: err=%v output=%q", name, c.Err, v.Output)
			}
		} else if len(v.Tables) != 1 || v.Output != "done" {
			t.Fatalf("%s: tables=%d output=%q", name, len(v.Tables), v.Output)
		}

		// the next run starts from a clean output region
		r.gate = make(chan struct{})
		done, ok := s.Submit()
		if !ok {
			t.Fatalf("%s: resubmit refused after completion", name)
		}
		if got := s.Snapshot().Output; got != StartMessage {
			t.Fatalf("%s: second run output %q", name, got)
		}
		close(r.gate)
		<-done
	}
}
