package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls [][]string
}

func (f *fakeExec) status() string { return "/" }

func (f *fakeExec) Execute(_ context.Context, args []string) error {
	f.calls = append(f.calls, args)
	switch args[0] {
	case "exit":
		return errQuit
	case "fail":
		return errors.New("boom")
	case "quiet":
		return reported(errors.New("already shown"))
	}
	return nil
}

func TestRunREPL_DispatchesUntilExit(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"",
		`projects add --title "My site"`,
		`bad "quote`,
		"fail",
		"quiet",
		"exit",
		"never",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, rdr(input), &out)

	require.Equal(t, [][]string{
		{"help"},
		{"projects", "add", "--title", "My site"},
		{"fail"},
		{"quiet"},
		{"exit"},
	}, exec.calls)

	s := out.String()
	assert.Contains(t, s, "portfolio /> ")
	assert.Contains(t, s, "error: unterminated \" quote")
	assert.Contains(t, s, "error: boom")
	assert.NotContains(t, s, "already shown")
	assert.True(t, strings.HasSuffix(s, "Bye!\n"))
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, rdr("help\nlast"), &out)

	require.Equal(t, [][]string{{"help"}, {"last"}}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(ctx, exec, rdr("help\n"), &out)

	assert.Empty(t, exec.calls)
}
