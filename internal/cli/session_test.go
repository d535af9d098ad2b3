package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfeilner/unimach/internal/testutils"
	"github.com/mfeilner/unimach/pkg/domain"
	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/machines"
)

func TestBuildDefinition(t *testing.T) {
	t.Run("code flag alone", func(t *testing.T) {
		def, err := buildDefinition(RunOptions{Code: machines.Addition})
		require.NoError(t, err)
		assert.Equal(t, machines.Addition, def.Code)
		assert.Empty(t, def.Name)
	})

	t.Run("no machine given", func(t *testing.T) {
		_, err := buildDefinition(RunOptions{})
		var cfgErr *domain.ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("name derived from file basename", func(t *testing.T) {
		path := testutils.WriteMachineFile(t, "adder.yaml", "code: \""+machines.Addition+"\"\n")
		def, err := buildDefinition(RunOptions{FilePath: path})
		require.NoError(t, err)
		assert.Equal(t, "adder", def.Name)
	})

	t.Run("file name wins over basename", func(t *testing.T) {
		path := testutils.WriteMachineFile(t, "adder.yaml", "name: addition\ncode: \""+machines.Addition+"\"\n")
		def, err := buildDefinition(RunOptions{FilePath: path})
		require.NoError(t, err)
		assert.Equal(t, "addition", def.Name)
	})

	t.Run("code flag replaces file transitions", func(t *testing.T) {
		content := "transitions:\n" +
			"  - {from: 1, read: \"0\", to: 2, write: \"_\", move: R}\n"
		path := testutils.WriteMachineFile(t, "single.yaml", content)
		def, err := buildDefinition(RunOptions{FilePath: path, Code: machines.Addition})
		require.NoError(t, err)
		assert.Equal(t, machines.Addition, def.Code)
		assert.Nil(t, def.Transitions)
	})

	t.Run("word flag replaces file operands", func(t *testing.T) {
		content := "code: \"" + machines.Addition + "\"\ninput:\n  operands: [2, 4]\n"
		path := testutils.WriteMachineFile(t, "adder.yaml", content)
		def, err := buildDefinition(RunOptions{FilePath: path, Word: "001"})
		require.NoError(t, err)
		assert.Equal(t, "001", def.Word)
		assert.Nil(t, def.Operands)
	})

	t.Run("operands flag replaces file word", func(t *testing.T) {
		content := "code: \"" + machines.Addition + "\"\ninput:\n  word: \"001\"\n"
		path := testutils.WriteMachineFile(t, "adder.yaml", content)
		def, err := buildDefinition(RunOptions{FilePath: path, Operands: []uint{4, 3}})
		require.NoError(t, err)
		assert.Equal(t, []uint{4, 3}, def.Operands)
		assert.Empty(t, def.Word)
	})

	t.Run("flags override file settings", func(t *testing.T) {
		content := "code: \"" + machines.Addition + "\"\ntape_size: 64\nstep_limit: 5\ntrace: step\n"
		path := testutils.WriteMachineFile(t, "adder.yaml", content)
		def, err := buildDefinition(RunOptions{FilePath: path, TapeSize: 100, Strict: true})
		require.NoError(t, err)
		assert.Equal(t, 100, def.TapeSize)
		assert.Equal(t, 5, def.StepLimit)
		assert.Equal(t, domain.TraceStep, def.TraceMode)
		assert.True(t, def.Strict)
	})

	t.Run("invalid trace flag", func(t *testing.T) {
		_, err := buildDefinition(RunOptions{Code: machines.Addition, Trace: "verbose"})
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := buildDefinition(RunOptions{FilePath: filepath.Join(t.TempDir(), "gone.yaml")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read machine file")
	})
}

func TestHasCompositeWord(t *testing.T) {
	composite := encoding.EncodeComposite(machines.Addition, "00100001")
	assert.True(t, hasCompositeWord(composite))
	assert.False(t, hasCompositeWord(machines.Addition))
}

func TestRunWatchNeedsFile(t *testing.T) {
	err := RunWatch(RunOptions{Code: machines.Addition})
	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
