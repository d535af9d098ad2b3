package unimach

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/mfeilner/unimach/internal/logging"
	"github.com/mfeilner/unimach/internal/runtime"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/machines"
)

// Version is the library version. Overridable at build time via -ldflags.
var Version = "0.2.0"

// Machine is the high-level entry point of the library. It binds a decoded
// program to an input word and a tape geometry. A Machine is reusable: Run
// and Trace materialize a fresh tape on every invocation.
type Machine struct {
	// Name is an optional label used in logs and run records.
	Name string

	program   domain.Program
	initial   *domain.Tape
	engine    *runtime.Engine
	code      string
	word      string
	tapeSize  int
	strict    bool
	stepLimit int
	traceMode domain.TraceMode
	logger    *slog.Logger
	hooks     domain.LifecycleHooks

	// input sources collected by options, resolved once in New
	inputWord     *string
	inputSymbols  []domain.Symbol
	inputOperands []uint
}

// Option defines a functional option for configuring a Machine.
type Option func(*Machine)

// WithWord sets the input word from its textual encoding ("0", "1", "_", "X").
func WithWord(word string) Option {
	return func(m *Machine) {
		m.inputWord = &word
	}
}

// WithSymbols sets the input word from already parsed symbols.
func WithSymbols(symbols []domain.Symbol) Option {
	return func(m *Machine) {
		m.inputSymbols = symbols
	}
}

// WithOperands sets the input word to the unary encoding of two operands,
// the form the built-in addition and multiplication machines consume.
func WithOperands(a, b uint) Option {
	return func(m *Machine) {
		m.inputOperands = []uint{a, b}
	}
}

// WithTapeSize sets the tape capacity (default 200 cells).
func WithTapeSize(n int) Option {
	return func(m *Machine) {
		m.tapeSize = n
	}
}

// WithStrictMatching makes an unmatched (state, symbol) pair fail the run
// instead of falling back to the first rule of the table.
func WithStrictMatching() Option {
	return func(m *Machine) {
		m.strict = true
	}
}

// WithStepLimit caps the number of steps of one run. Zero means no cap.
func WithStepLimit(n int) Option {
	return func(m *Machine) {
		m.stepLimit = n
	}
}

// WithTraceMode records how consumers should present the run. The engine
// itself never prints; the mode travels with the machine for hosts to act on.
func WithTraceMode(mode domain.TraceMode) Option {
	return func(m *Machine) {
		m.traceMode = mode
	}
}

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithName sets a label used in logs and run records.
func WithName(name string) Option {
	return func(m *Machine) {
		m.Name = name
	}
}

// New decodes the given machine code and prepares it for execution. The
// code may be a bare transition table or the composite "table 111 word"
// form; in the latter case the embedded word becomes the input. Exactly one
// input source is allowed across the composite form, WithWord, WithSymbols
// and WithOperands. No input at all yields a blank tape.
func New(code string, opts ...Option) (*Machine, error) {
	m := &Machine{
		tapeSize:  machines.DefaultTapeSize,
		traceMode: domain.TraceNone,
	}
	for _, opt := range opts {
		opt(m)
	}

	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, &domain.ConfigError{Reason: "machine code is empty"}
	}
	machineCode := trimmed
	compositeWord := ""
	if head, tail, ok := encoding.SplitComposite(trimmed); ok {
		machineCode, compositeWord = head, tail
	}

	program, err := encoding.DecodeProgram(machineCode)
	if err != nil {
		return nil, err
	}
	m.program = program
	m.code = machineCode

	symbols, word, err := m.resolveInput(compositeWord)
	if err != nil {
		return nil, err
	}
	m.word = word

	initial, err := domain.NewTape(symbols, m.tapeSize)
	if err != nil {
		return nil, err
	}
	m.initial = initial

	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	if m.Name != "" {
		m.logger = m.logger.With("machine", m.Name)
	}

	engineOpts := []runtime.Option{
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
	}
	if m.strict {
		engineOpts = append(engineOpts, runtime.WithStrictMatching())
	}
	if m.stepLimit > 0 {
		engineOpts = append(engineOpts, runtime.WithStepLimit(m.stepLimit))
	}

	engine, err := runtime.NewEngine(program, engineOpts...)
	if err != nil {
		return nil, err
	}
	m.engine = engine

	return m, nil
}

// resolveInput picks the single configured input source and returns the
// word both as symbols and in its textual encoding.
func (m *Machine) resolveInput(compositeWord string) ([]domain.Symbol, string, error) {
	sources := 0
	if compositeWord != "" {
		sources++
	}
	if m.inputWord != nil {
		sources++
	}
	if m.inputSymbols != nil {
		sources++
	}
	if m.inputOperands != nil {
		sources++
	}
	if sources > 1 {
		return nil, "", &domain.ConfigError{Reason: "input word provided more than once"}
	}

	switch {
	case compositeWord != "":
		symbols, err := encoding.ParseWord(compositeWord)
		return symbols, compositeWord, err
	case m.inputWord != nil:
		symbols, err := encoding.ParseWord(*m.inputWord)
		return symbols, *m.inputWord, err
	case m.inputSymbols != nil:
		for _, s := range m.inputSymbols {
			if !s.Valid() {
				return nil, "", &domain.ConfigError{Reason: fmt.Sprintf("invalid input symbol %q", string(s))}
			}
		}
		return m.inputSymbols, encoding.EncodeWord(m.inputSymbols), nil
	case m.inputOperands != nil:
		word := encoding.OperandWord(m.inputOperands...)
		symbols, err := encoding.ParseWord(word)
		return symbols, word, err
	}
	return nil, "", nil
}

// Run executes the machine on a fresh tape until it halts and returns the
// extracted result.
func (m *Machine) Run(ctx context.Context) (*domain.Result, error) {
	return m.engine.Run(ctx, m.initial.Clone())
}

// Trace executes the machine lazily, yielding a record after every step.
// The sequence is restartable: each range starts over from the initial tape.
func (m *Machine) Trace(ctx context.Context) iter.Seq2[domain.StepRecord, error] {
	return m.engine.Trace(ctx, m.initial.Clone())
}

// Program exposes the decoded transition table.
func (m *Machine) Program() domain.Program {
	return m.program
}

// InitialTape builds the centered tape the next run would start from.
func (m *Machine) InitialTape() *domain.Tape {
	return m.initial.Clone()
}

// Code returns the machine part of the encoding, without any embedded word.
func (m *Machine) Code() string {
	return m.code
}

// Word returns the textual encoding of the input word, empty for a blank tape.
func (m *Machine) Word() string {
	return m.word
}

// TapeSize returns the configured tape capacity.
func (m *Machine) TapeSize() int {
	return m.tapeSize
}

// TraceMode returns the presentation mode configured for this machine.
func (m *Machine) TraceMode() domain.TraceMode {
	return m.traceMode
}
