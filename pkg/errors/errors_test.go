package errors

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorIncludesLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("config.yml", 12, errors.New("bad indentation"))
	require.EqualError(t, err, "parse error: config.yml:12: bad indentation")

	err = NewParseError("config.yml", 0, errors.New("unreadable"))
	require.EqualError(t, err, "parse error: config.yml: unreadable")
}

func TestParseErrorUnwraps(t *testing.T) {
	t.Parallel()

	err := NewParseError("missing.yml", 0, fs.ErrNotExist)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSpecError(t *testing.T) {
	t.Parallel()

	err := NewSpecError("dpi", `not a positive integer: "abc"`, nil)
	require.EqualError(t, err, `spec error: dpi: not a positive integer: "abc"`)

	var specErr *SpecError
	require.ErrorAs(t, err, &specErr)
	require.Equal(t, "dpi", specErr.Attr)
}

func TestChecksError(t *testing.T) {
	t.Parallel()

	err := NewChecksError("matplotlib", "line 3 calls .show()")
	require.EqualError(t, err, "check failed [matplotlib]: line 3 calls .show()")
}

func TestExecErrorIncludesStderr(t *testing.T) {
	t.Parallel()

	err := NewExecError("python3 /tmp/plotweave-1.py", 2, "SyntaxError")
	require.EqualError(t, err, `execution error: "python3 /tmp/plotweave-1.py" exited with code 2: SyntaxError`)

	err = NewExecError("gnuplot plot.gp", 1, "")
	require.EqualError(t, err, `execution error: "gnuplot plot.gp" exited with code 1`)
}

func TestUnavailableError(t *testing.T) {
	t.Parallel()

	err := NewUnavailableError("octave")
	require.EqualError(t, err, "toolkit unavailable: octave")

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	require.Equal(t, "octave", unavailable.Toolkit)
}
