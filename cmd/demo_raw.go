package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/ui/core"
	"github.com/alantheprice/dropdown/pkg/ui/core/components"
	"github.com/alantheprice/dropdown/pkg/utils"
)

const (
	clearScreen = "\033[H\033[2J"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	rawMaxWidth = 60
)

// crlfWriter turns bare newlines into CRLF, which a raw-mode terminal needs
// to return the cursor to column zero
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// runRaw hosts the controller in a core.App reading raw bytes from in, a
// terminal, and painting frames on out
func runRaw(ctx context.Context, in, out *os.File, set *dropdown.OptionSet, initial dropdown.Selection, settings dropdown.Settings, logger *utils.Logger) (dropdown.Selection, error) {
	inFd := int(in.Fd())
	outFd := int(out.Fd())
	if !term.IsTerminal(inFd) {
		return initial, fmt.Errorf("--raw needs an interactive terminal")
	}

	width, height, err := term.GetSize(outFd)
	if err != nil || width <= 0 || height <= 0 {
		width, height = 80, 24
	}

	oldState, err := term.MakeRaw(inFd)
	if err != nil {
		return initial, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(inFd, oldState)
	fmt.Fprint(out, hideCursor)
	defer fmt.Fprint(out, showCursor)

	value := initial
	var ctl *dropdown.Controller
	settings.OnChange = func(next dropdown.Selection) {
		value = next
		ctl.SetValue(next)
		logger.Logf("Selection: %d option(s) %v", next.Len(), next.Keys())
	}
	ctl = dropdown.New(set, initial, settings)
	defer ctl.Unmount()

	boxWidth := width
	if boxWidth > rawMaxWidth {
		boxWidth = rawMaxWidth
	}
	renderer := core.NewTextRenderer(crlfWriter{out}, boxWidth, 0)
	app := core.NewApp(renderer)
	app.Resize(width, height)
	app.SetRawMode(true)
	app.Mount(components.NewDropdownComponent("dropdown", ctl, renderer, boxWidth))

	input := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := in.Read(buf)
			if err != nil {
				readErr <- err
				return
			}
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case input <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		if w, h, err := term.GetSize(outFd); err == nil {
			app.Resize(w, h)
		}
		fmt.Fprint(out, clearScreen)
		if err := app.Render(ctx); err != nil {
			return value, err
		}
		fmt.Fprint(out, "\r\nq or ctrl+c quits\r\n")

		select {
		case <-ctx.Done():
			return value, ctx.Err()
		case err := <-readErr:
			return value, err
		case chunk := <-input:
			if quitKey(chunk, ctl.IsOpen()) {
				fmt.Fprint(out, clearScreen)
				return value, nil
			}
			if err := app.HandleInput(chunk); err != nil {
				return value, err
			}
		}
	}
}

// quitKey reports whether chunk ends the demo. Escape and q only quit while
// the menu is closed; when open they close it or go to the search text.
func quitKey(chunk []byte, open bool) bool {
	if len(chunk) != 1 {
		return false
	}
	switch chunk[0] {
	case 3: // Ctrl+C
		return true
	case 27, 'q':
		return !open
	}
	return false
}
