// Package machinefile reads and writes machine definitions as YAML files.
//
// A file carries the machine either as its raw encoding ("code") or as a
// structured transition table ("transitions"), plus the input word, tape
// geometry and execution settings:
//
//	name: addition
//	code: "01010101001011..."
//	input:
//	  operands: [2, 4]
//	tape_size: 200
//	trace: step
//	strict: false
//	step_limit: 0
package machinefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/mfeilner/unimach"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
)

// File is a parsed machine definition.
type File struct {
	Name        string
	Code        string
	Transitions []domain.Transition
	Word        string
	Operands    []uint
	TapeSize    int
	TraceMode   domain.TraceMode
	Strict      bool
	StepLimit   int
}

// rawFile is the YAML shape before normalization. Exactly one of Code and
// Transitions must be set; Word and Operands exclude each other.
type rawFile struct {
	Name        string           `yaml:"name"`
	Code        string           `yaml:"code" validate:"required_without=Transitions,excluded_with=Transitions"`
	Transitions []map[string]any `yaml:"transitions"`
	Input       rawInput         `yaml:"input"`
	TapeSize    int              `yaml:"tape_size" validate:"gte=0"`
	Trace       string           `yaml:"trace"`
	Strict      bool             `yaml:"strict"`
	StepLimit   int              `yaml:"step_limit" validate:"gte=0"`
}

type rawInput struct {
	Word     string `yaml:"word" validate:"excluded_with=Operands"`
	Operands []uint `yaml:"operands" validate:"omitempty,len=2"`
}

// transitionRow is one structured rule before symbol and direction
// normalization.
type transitionRow struct {
	From  uint   `mapstructure:"from"`
	Read  string `mapstructure:"read"`
	To    uint   `mapstructure:"to"`
	Write string `mapstructure:"write"`
	Move  string `mapstructure:"move"`
}

var validate = validator.New()

// Load reads and parses a machine definition file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}
	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return file, nil
}

// Parse decodes a machine definition from YAML. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse machine file: %w", err)
	}

	if err := validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("machine file validation: %w", err)
	}

	traceMode, err := domain.ParseTraceMode(raw.Trace)
	if err != nil {
		return nil, err
	}

	file := &File{
		Name:      raw.Name,
		Code:      strings.TrimSpace(raw.Code),
		Word:      raw.Input.Word,
		Operands:  raw.Input.Operands,
		TapeSize:  raw.TapeSize,
		TraceMode: traceMode,
		Strict:    raw.Strict,
		StepLimit: raw.StepLimit,
	}
	for i, row := range raw.Transitions {
		t, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i+1, err)
		}
		file.Transitions = append(file.Transitions, t)
	}
	return file, nil
}

// decodeRow converts one YAML mapping into a transition. Unused keys are
// an error so typos do not silently drop fields.
func decodeRow(row map[string]any) (domain.Transition, error) {
	var parsed transitionRow
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &parsed,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.Transition{}, err
	}
	if err := decoder.Decode(row); err != nil {
		return domain.Transition{}, err
	}

	read, err := parseSymbol(parsed.Read)
	if err != nil {
		return domain.Transition{}, fmt.Errorf("read: %w", err)
	}
	write, err := parseSymbol(parsed.Write)
	if err != nil {
		return domain.Transition{}, fmt.Errorf("write: %w", err)
	}
	move, err := parseDirection(parsed.Move)
	if err != nil {
		return domain.Transition{}, err
	}

	return domain.Transition{
		From:  domain.State(parsed.From),
		Read:  read,
		To:    domain.State(parsed.To),
		Write: write,
		Move:  move,
	}, nil
}

func parseSymbol(s string) (domain.Symbol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "zero":
		return domain.SymbolZero, nil
	case "1", "one":
		return domain.SymbolOne, nil
	case "_", "blank":
		return domain.SymbolBlank, nil
	case "x", "marker":
		return domain.SymbolMarker, nil
	}
	return "", &domain.ConfigError{Reason: fmt.Sprintf("unknown symbol %q (want 0, 1, _ or X)", s)}
}

func parseDirection(s string) (domain.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return domain.Left, nil
	case "r", "right":
		return domain.Right, nil
	}
	return "", &domain.ConfigError{Reason: fmt.Sprintf("unknown move %q (want left or right)", s)}
}

// Encode returns the single-string encoding of the file, in composite form
// when the file provides an input word or operands.
func (f *File) Encode() (string, error) {
	code := f.Code
	if len(f.Transitions) > 0 {
		encoded, err := encoding.EncodeProgram(domain.Program{Transitions: f.Transitions})
		if err != nil {
			return "", err
		}
		code = encoded
	}

	word := f.Word
	if len(f.Operands) == 2 {
		word = encoding.OperandWord(f.Operands...)
	}
	if word == "" {
		return code, nil
	}
	return encoding.EncodeComposite(code, word), nil
}

// marshalFile is the YAML shape Marshal emits. Zero-valued settings are
// dropped so generated files stay minimal.
type marshalFile struct {
	Name        string              `yaml:"name,omitempty"`
	Code        string              `yaml:"code,omitempty"`
	Transitions []domain.Transition `yaml:"transitions,omitempty"`
	Input       *marshalInput       `yaml:"input,omitempty"`
	TapeSize    int                 `yaml:"tape_size,omitempty"`
	Trace       string              `yaml:"trace,omitempty"`
	Strict      bool                `yaml:"strict,omitempty"`
	StepLimit   int                 `yaml:"step_limit,omitempty"`
}

type marshalInput struct {
	Word     string `yaml:"word,omitempty"`
	Operands []uint `yaml:"operands,flow,omitempty"`
}

// Marshal renders the definition as YAML. Files written this way parse
// back with Load. A structured transition table takes precedence over a
// raw code, matching how Encode and Machine resolve the machine.
func (f *File) Marshal() ([]byte, error) {
	if f.Code == "" && len(f.Transitions) == 0 {
		return nil, &domain.ConfigError{Reason: "definition has no machine (set code or transitions)"}
	}

	out := marshalFile{
		Name:      f.Name,
		TapeSize:  f.TapeSize,
		Strict:    f.Strict,
		StepLimit: f.StepLimit,
	}
	if len(f.Transitions) > 0 {
		out.Transitions = f.Transitions
	} else {
		out.Code = f.Code
	}
	if f.Word != "" || len(f.Operands) > 0 {
		out.Input = &marshalInput{Word: f.Word, Operands: f.Operands}
	}
	if f.TraceMode != "" && f.TraceMode != domain.TraceNone {
		out.Trace = string(f.TraceMode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to marshal machine file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Machine builds an executable machine from the file. Extra options are
// applied after the file's own settings, so callers can override them.
func (f *File) Machine(opts ...unimach.Option) (*unimach.Machine, error) {
	code := f.Code
	if len(f.Transitions) > 0 {
		encoded, err := encoding.EncodeProgram(domain.Program{Transitions: f.Transitions})
		if err != nil {
			return nil, err
		}
		code = encoded
	}

	options := []unimach.Option{unimach.WithTraceMode(f.TraceMode)}
	if f.Name != "" {
		options = append(options, unimach.WithName(f.Name))
	}
	if f.Word != "" {
		options = append(options, unimach.WithWord(f.Word))
	}
	if len(f.Operands) == 2 {
		options = append(options, unimach.WithOperands(f.Operands[0], f.Operands[1]))
	}
	if f.TapeSize > 0 {
		options = append(options, unimach.WithTapeSize(f.TapeSize))
	}
	if f.Strict {
		options = append(options, unimach.WithStrictMatching())
	}
	if f.StepLimit > 0 {
		options = append(options, unimach.WithStepLimit(f.StepLimit))
	}
	options = append(options, opts...)

	return unimach.New(code, options...)
}
