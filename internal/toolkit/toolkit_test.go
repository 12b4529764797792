package toolkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "png", want: PNG},
		{input: "PNG", want: PNG},
		{input: " svg ", want: SVG},
		{input: "jpeg", want: JPG},
		{input: "html", want: HTML},
		{input: "bmp", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseFormat(tc.input)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		require.Equal(t, tc.want, got)
	}
}

func TestOnlyHTMLIsInteractive(t *testing.T) {
	t.Parallel()

	require.True(t, HTML.Interactive())
	require.False(t, PNG.Interactive())
	require.False(t, SVG.Interactive())
}

func TestFromClasses(t *testing.T) {
	t.Parallel()

	tk, ok := FromClasses([]string{"numbered", "matplotlib"})
	require.True(t, ok)
	require.Equal(t, Matplotlib, tk)

	tk, ok = FromClasses([]string{"Gnuplot"})
	require.True(t, ok)
	require.Equal(t, GNUPlot, tk)

	_, ok = FromClasses([]string{"python", "numbered"})
	require.False(t, ok)

	_, ok = FromClasses(nil)
	require.False(t, ok)
}

func TestLookupCoversAllToolkits(t *testing.T) {
	t.Parallel()

	all := All()
	require.Len(t, all, 6)

	for _, tk := range all {
		caps, ok := Lookup(tk)
		require.True(t, ok)
		require.Equal(t, tk, caps.Name)
		require.NotEmpty(t, caps.Extension)
		require.NotEmpty(t, caps.Executable)
		require.NotNil(t, caps.Command)
		require.NotNil(t, caps.CaptureCode)
		require.NotEmpty(t, caps.Formats)
	}

	_, ok := Lookup("matlab")
	require.False(t, ok)
}

func TestAllIsSorted(t *testing.T) {
	t.Parallel()

	all := All()
	for i := 1; i < len(all); i++ {
		require.Less(t, string(all[i-1]), string(all[i]))
	}
}
