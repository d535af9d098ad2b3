package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	xterm "golang.org/x/term"

	"github.com/mfeilner/unimach"
	filestore "github.com/mfeilner/unimach/internal/adapters/file"
	"github.com/mfeilner/unimach/internal/presentation/term"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/machinefile"
	"github.com/mfeilner/unimach/pkg/observability"
)

// RunOptions carries the flags of the run and watch commands. Zero values
// mean "not set" and leave the machine file's own settings in place.
type RunOptions struct {
	FilePath  string
	Code      string
	Word      string
	Operands  []uint
	TapeSize  int
	Trace     string
	Strict    bool
	StepLimit int
	SaveDir   string
	Debug     bool
	NoColor   bool
}

// RunSession executes one machine run and renders it to stdout.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug)
	renderer := term.NewRenderer(opts.NoColor)

	if xterm.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(term.Banner(unimach.Version))
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	err := runOnce(sigCtx, opts, logger, renderer)
	if isInterrupted(err) {
		fmt.Println()
		printSystemMessage("Interrupted.")
	}
	return handleExecutionError(err)
}

// runOnce builds the machine from flags and file, runs it, renders the
// outcome and appends it to the history. Shared by run and watch mode.
func runOnce(ctx context.Context, opts RunOptions, logger *slog.Logger, renderer *term.Renderer) error {
	def, err := buildDefinition(opts)
	if err != nil {
		return err
	}

	machineOpts := []unimach.Option{unimach.WithLogger(logger)}
	if opts.Debug {
		machineOpts = append(machineOpts, unimach.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	machine, err := def.Machine(machineOpts...)
	if err != nil {
		return err
	}

	startedAt := time.Now().UTC()
	result, runErr := executeRun(ctx, machine, renderer)
	duration := time.Since(startedAt)

	if ctx.Err() != nil && runErr == nil {
		runErr = ctx.Err()
	}
	if isInterrupted(runErr) {
		return runErr
	}

	if runErr == nil {
		fmt.Print(renderer.Result(result))
	}

	// Failed runs still land in the history.
	if opts.SaveDir != "" {
		id := saveRecord(ctx, opts.SaveDir, def, machine, result, runErr, startedAt, duration, logger)
		if id != "" {
			logger.Info("run saved", "id", id, "dir", opts.SaveDir)
		}
	}

	return runErr
}

// buildDefinition merges command line flags over an optional machine file.
// Flags win; setting an input source replaces the file's own input.
func buildDefinition(opts RunOptions) (*machinefile.File, error) {
	def := &machinefile.File{}
	if opts.FilePath != "" {
		loaded, err := machinefile.Load(opts.FilePath)
		if err != nil {
			return nil, err
		}
		def = loaded
		if def.Name == "" {
			base := filepath.Base(opts.FilePath)
			def.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}

	if opts.Code != "" {
		def.Code = opts.Code
		def.Transitions = nil
	}
	if def.Code == "" && len(def.Transitions) == 0 {
		return nil, &domain.ConfigError{Reason: "no machine given (pass a machine file or --code)"}
	}
	if opts.Word != "" {
		def.Word = opts.Word
		def.Operands = nil
	}
	if len(opts.Operands) == 2 {
		def.Operands = opts.Operands
		def.Word = ""
	}
	if opts.TapeSize > 0 {
		def.TapeSize = opts.TapeSize
	}
	if opts.Trace != "" {
		mode, err := domain.ParseTraceMode(opts.Trace)
		if err != nil {
			return nil, err
		}
		def.TraceMode = mode
	}
	if opts.Strict {
		def.Strict = true
	}
	if opts.StepLimit > 0 {
		def.StepLimit = opts.StepLimit
	}

	// Without any input source, accept a word piped on stdin.
	if def.Word == "" && len(def.Operands) == 0 && !hasCompositeWord(def.Code) {
		if word := readPipedWord(); word != "" {
			def.Word = word
		}
	}
	return def, nil
}

func hasCompositeWord(code string) bool {
	_, word, ok := encoding.SplitComposite(code)
	return ok && word != ""
}

func readPipedWord() string {
	if xterm.IsTerminal(int(os.Stdin.Fd())) {
		return ""
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// executeRun drives the machine according to its trace mode.
func executeRun(ctx context.Context, machine *unimach.Machine, renderer *term.Renderer) (*domain.Result, error) {
	switch machine.TraceMode() {
	case domain.TraceStep:
		return traceRun(ctx, machine, renderer, true)
	case domain.TraceEndStep:
		return traceRun(ctx, machine, renderer, false)
	}
	return machine.Run(ctx)
}

// traceRun walks the step iterator, printing every record or only the
// halting one, and rebuilds the result from the final snapshot.
func traceRun(ctx context.Context, machine *unimach.Machine, renderer *term.Renderer, every bool) (*domain.Result, error) {
	var last domain.StepRecord
	seen := false
	for record, err := range machine.Trace(ctx) {
		if err != nil {
			return nil, err
		}
		last = record
		seen = true
		if every {
			fmt.Println(renderer.StepRecord(record))
		}
	}
	if !seen {
		return nil, errors.New("machine produced no steps")
	}
	if !every {
		fmt.Println(renderer.StepRecord(last))
	}

	return &domain.Result{
		Value:      domain.ReadResult(last.Tape),
		Steps:      last.Step,
		FinalState: last.State,
		Head:       last.Head,
		Tape:       last.Tape,
	}, nil
}

// saveRecord appends the run to the local history. Failures only warn:
// history must never break a run.
func saveRecord(ctx context.Context, dir string, def *machinefile.File, machine *unimach.Machine,
	result *domain.Result, runErr error, startedAt time.Time, duration time.Duration, logger *slog.Logger) string {

	record := &domain.RunRecord{
		ID:        uuid.NewString(),
		Name:      machine.Name,
		Code:      machine.Code(),
		Word:      machine.Word(),
		TapeSize:  machine.TapeSize(),
		Strict:    def.Strict,
		StepLimit: def.StepLimit,
		StartedAt: startedAt,
		Duration:  duration,
	}
	if runErr != nil {
		record.Status = domain.RunFailed
		record.Error = runErr.Error()
	} else {
		record.Status = domain.RunCompleted
		record.Result = result.Value
		record.Steps = result.Steps
		record.FinalState = result.FinalState
		record.FinalTape = result.Tape
	}

	store := filestore.New(dir)
	if err := store.Save(ctx, record); err != nil {
		logger.Warn("failed to save run record", "error", err)
		return ""
	}
	return record.ID
}
