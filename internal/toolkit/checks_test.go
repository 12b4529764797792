package toolkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoShowCallCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, noShowCallCheck.Run("import matplotlib.pyplot as plt\nplt.plot([1, 2])\n"))

	err := noShowCallCheck.Run("plt.plot([1])\nplt.show()\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")

	// Commented-out calls are fine.
	require.NoError(t, noShowCallCheck.Run("plt.plot([1])\n# plt.show()\n"))
}

func TestGraphvizGraphCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, graphvizGraphCheck.Run("digraph G { a -> b }"))
	require.NoError(t, graphvizGraphCheck.Run("graph G { a -- b }"))
	require.Error(t, graphvizGraphCheck.Run("a -> b"))
}
