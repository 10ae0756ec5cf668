//go:build !windows

package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alantheprice/dropdown/pkg/catalog"
	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/utils"
)

// ptyOutput collects everything the raw host writes to the terminal
type ptyOutput struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// drain keeps reading r so the host never blocks on a full terminal buffer.
// It returns when r.Read returns an error.
func (o *ptyOutput) drain(r io.Reader) {
	var buf [256]byte
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			o.mu.Lock()
			o.buf.Write(buf[:n])
			o.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (o *ptyOutput) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.String()
}

// frames counts fully painted frames
func (o *ptyOutput) frames() int {
	return strings.Count(o.String(), "q or ctrl+c quits")
}

type rawResult struct {
	sel dropdown.Selection
	err error
}

// startRaw runs the raw host on the slave end of a fresh pty sized cols x
// rows and returns the master end
func startRaw(ctx context.Context, t *testing.T, cols, rows uint16, settings dropdown.Settings) (*os.File, *ptyOutput, <-chan rawResult) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	master, tty, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		master.Close()
		tty.Close()
	})
	require.NoError(t, pty.Setsize(master, &pty.Winsize{Rows: rows, Cols: cols}))

	out := &ptyOutput{}
	go out.drain(master)

	done := make(chan rawResult, 1)
	go func() {
		set := catalog.Fruits()
		sel, err := runRaw(ctx, tty, tty, set, dropdown.EmptySelection(settings.Mode), settings, utils.GetLogger(false))
		done <- rawResult{sel: sel, err: err}
	}()
	return master, out, done
}

func waitFrames(t *testing.T, out *ptyOutput, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return out.frames() >= n }, 3*time.Second, 10*time.Millisecond,
		"waiting for frame %d, got:\n%s", n, out.String())
}

func waitResult(t *testing.T, done <-chan rawResult) rawResult {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(3 * time.Second):
		t.Fatal("raw host did not return")
		return rawResult{}
	}
}

func TestRunRawSelectsAndQuits(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	master, out, done := startRaw(ctx, t, 50, 30, dropdown.Settings{ItemExtent: 1})

	waitFrames(t, out, 1)
	assert.Contains(t, out.String(), "Select...")
	assert.Contains(t, out.String(), "┌"+strings.Repeat("─", 48)+"┐", "box fills the 50 column terminal")

	steps := []struct {
		input string
		want  string
	}{
		{" ", "▶ Apple"},
		{"\x1b[B", "▶ Banana"},
		{"\r", ""},
	}
	for i, step := range steps {
		_, err := master.WriteString(step.input)
		require.NoError(t, err)
		waitFrames(t, out, i+2)
		if step.want != "" {
			assert.Contains(t, out.String(), step.want)
		}
	}

	_, err := master.WriteString("q")
	require.NoError(t, err)
	res := waitResult(t, done)
	require.NoError(t, res.err)
	assert.Equal(t, "Banana", dropdown.DisplayLabel(res.sel, ""))
}

func TestRunRawQuitKeys(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	master, out, done := startRaw(ctx, t, 40, 20, dropdown.Settings{ItemExtent: 1, Mode: dropdown.Multiple, Searchable: true})
	waitFrames(t, out, 1)

	// q goes to the search text while the menu is open
	for i, input := range []string{" ", "q"} {
		_, err := master.WriteString(input)
		require.NoError(t, err)
		waitFrames(t, out, i+2)
	}
	assert.Contains(t, out.String(), "🔍 q_")

	_, err := master.Write([]byte{3})
	require.NoError(t, err)
	res := waitResult(t, done)
	require.NoError(t, res.err)
	assert.True(t, res.sel.Empty())
}

func TestRunRawStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, out, done := startRaw(ctx, t, 40, 20, dropdown.Settings{ItemExtent: 1})
	waitFrames(t, out, 1)

	cancel()
	res := waitResult(t, done)
	assert.ErrorIs(t, res.err, context.Canceled)
}

func TestRunRawNeedsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()

	initial := dropdown.SingleOf(dropdown.NewOption("fig", "Fig"))
	sel, err := runRaw(context.Background(), f, f, catalog.Fruits(), initial, dropdown.Settings{}, utils.GetLogger(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
	assert.True(t, sel.Equal(initial))
}
