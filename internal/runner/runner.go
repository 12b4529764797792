package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/plotweave/plotweave/internal/figure"
	"github.com/plotweave/plotweave/internal/logger"
	"github.com/plotweave/plotweave/internal/toolkit"
	weaveerrors "github.com/plotweave/plotweave/pkg/errors"
)

// Runner executes toolkit scripts out of process. It holds no per-figure
// state; one Runner is shared by all workers.
type Runner struct {
	log *logger.Logger
}

// New creates a Runner.
func New(log *logger.Logger) *Runner {
	return &Runner{log: log}
}

// RunIfNeeded renders the figure described by spec unless an artifact already
// exists at its content-addressed path. The returned flag reports whether a
// process was actually spawned.
//
// An existing file at the exact figure path is trusted outright: content
// addressing guarantees it was produced from byte-identical rendering-relevant
// inputs, modulo an accepted hash-collision probability. No integrity check
// is layered on top.
func (r *Runner) RunIfNeeded(ctx context.Context, spec *figure.Spec) (ran bool, err error) {
	caps, ok := toolkit.Lookup(spec.Toolkit)
	if !ok {
		return false, weaveerrors.NewUnavailableError(string(spec.Toolkit))
	}

	target := spec.FigurePath()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, weaveerrors.NewSpecError("directory", fmt.Sprintf("cannot create %s", filepath.Dir(target)), err)
	}

	if _, statErr := os.Stat(target); statErr == nil {
		r.log.WithFields(map[string]any{"path": target}).Debug("figure already rendered, skipping execution")
		return false, nil
	}

	for _, check := range caps.Checks {
		if checkErr := check.Run(spec.Script); checkErr != nil {
			return false, weaveerrors.NewChecksError(string(spec.Toolkit), checkErr.Error())
		}
	}

	exeDir, exeName, found := caps.Probe(spec.Executable, spec.ProbeDirs)
	if !found {
		// Spawning is still attempted with the configured name: the probe
		// explains failures, it does not gate execution.
		exeName = spec.Executable
		if exeName == "" {
			exeName = caps.Executable
		}
	}

	out := toolkit.OutputSpec{
		FigurePath: target,
		Format:     spec.Format,
		DPI:        spec.DPI,
	}
	out.ScriptPath, err = r.materializeScript(caps, spec, out)
	if err != nil {
		return false, err
	}

	// The resolved directory goes both into argv[0] (exec resolves the binary
	// against the parent's search path, which may not contain it) and into
	// the child's own PATH for any sub-invocations. The parent's search path
	// is never touched, so concurrent workers need no serialization.
	exePath := exeName
	if found && exeDir != "" && !strings.ContainsRune(exeName, os.PathSeparator) {
		exePath = filepath.Join(exeDir, exeName)
	}
	argv := caps.Command(out, exePath)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = childEnv(exeDir)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	command := strings.Join(argv, " ")
	r.log.WithFields(map[string]any{"toolkit": string(spec.Toolkit), "command": command}).Debug("rendering figure")

	runErr := cmd.Run()
	if runErr == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		if _, _, stillThere := caps.Probe(spec.Executable, spec.ProbeDirs); !stillThere {
			return true, weaveerrors.NewUnavailableError(string(spec.Toolkit))
		}
		return true, weaveerrors.NewExecError(command, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
	}

	// Spawn itself failed; a missing executable shows up here.
	if !found {
		return false, weaveerrors.NewUnavailableError(string(spec.Toolkit))
	}
	return false, weaveerrors.NewExecError(command, -1, runErr.Error())
}

// materializeScript writes the complete toolkit script to a temp path:
// capture code, preamble and user code composed per the toolkit's rules. The
// temp name derives from the raw script text hash, which only needs to be
// unique across concurrent blocks; identical blocks racing here write
// identical bytes.
func (r *Runner) materializeScript(caps toolkit.Capabilities, spec *figure.Spec, out toolkit.OutputSpec) (string, error) {
	var b strings.Builder
	capture := caps.CaptureCode(out)

	if caps.CaptureFirst {
		b.WriteString(capture)
	}
	if spec.Preamble != "" {
		b.WriteString(spec.Preamble)
		if !strings.HasSuffix(spec.Preamble, "\n") {
			b.WriteByte('\n')
		}
	}
	b.WriteString(spec.Script)
	if !strings.HasSuffix(spec.Script, "\n") {
		b.WriteByte('\n')
	}
	if !caps.CaptureFirst {
		b.WriteString(capture)
	}

	name := fmt.Sprintf("plotweave-%d.%s", xxhash.Sum64String(spec.Script), caps.Extension)
	path := filepath.Join(os.TempDir(), name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", weaveerrors.NewSpecError("", fmt.Sprintf("cannot write script %s", path), err)
	}
	return path, nil
}

// childEnv returns the parent environment with exeDir prepended to PATH. The
// parent process environment is left untouched.
func childEnv(exeDir string) []string {
	env := os.Environ()
	if exeDir == "" {
		return env
	}

	for i, entry := range env {
		if strings.HasPrefix(entry, "PATH=") {
			env[i] = "PATH=" + exeDir + string(os.PathListSeparator) + entry[len("PATH="):]
			return env
		}
	}
	return append(env, "PATH="+exeDir)
}
