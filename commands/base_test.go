package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestAllCommands(t *testing.T) {
	var names []string
	for _, cmdEntry := range ListBuiltinCommands() {
		names = append(names, strings.Join(cmdEntry.Names, ","))
		t.Run(strings.Join(cmdEntry.Names, ","), func(t *testing.T) {
			if cmdEntry.Proc == nil {
				t.Fatal("nil command", cmdEntry.Names)
			}
		})
	}

	assert.Equal(t, []string{"cat", "echo", "env", "find", "grep", "mkdir", "rm", "sleep", "touch", "wc", "which", "xargs"}, names)
}

func TestLookup(t *testing.T) {
	_, ok := Lookup("wc")
	assert.True(t, ok)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestProcess_Getenv(t *testing.T) {
	p := &Process{Env: []string{"A=1", "B=2", "A=3", "EMPTY="}}

	assert.Equal(t, "3", p.Getenv("A"))
	assert.Equal(t, "2", p.Getenv("B"))
	assert.Equal(t, "", p.Getenv("EMPTY"))
	assert.Equal(t, "", p.Getenv("MISSING"))
}

// testCmd runs a command against an in-memory filesystem.
type testCmd struct {
	Fs    afero.Fs
	Stdin string
	Env   []string
}

func newTestCmd() *testCmd {
	return &testCmd{
		Fs:  afero.NewMemMapFs(),
		Env: []string{"PATH=" + os.Getenv("PATH")},
	}
}

func (tc *testCmd) run(cmd CommandFunc, args ...string) (stdout, stderr string, status int) {
	var outBuf, errBuf bytes.Buffer
	status = cmd(&Process{
		Args:   args,
		Stdin:  strings.NewReader(tc.Stdin),
		Stdout: &outBuf,
		Stderr: &errBuf,
		Fs:     tc.Fs,
		Env:    tc.Env,
	})
	return outBuf.String(), errBuf.String(), status
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args  []string
	Stdin string
	Files map[string]string
}

func (gts goldenTestSuite) Run(t *testing.T, cmd CommandFunc) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			runner := newTestCmd()
			runner.Stdin = tc.Stdin
			for name, contents := range tc.Files {
				if err := afero.WriteFile(runner.Fs, name, []byte(contents), 0644); err != nil {
					t.Fatal(err)
				}
			}

			stdout, stderr, status := runner.run(cmd, tc.Args...)
			out := fmt.Sprintf("%s%s[exit status %d]\n", stdout, stderr, status)

			g.Assert(t, tn, []byte(out))
		})
	}
}
