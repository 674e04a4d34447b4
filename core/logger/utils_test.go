package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestJsonLinesLogRecorder_roundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewJsonLinesLogRecorder(buf).NewSession()

	events := []LogType{
		&RunCommand{Line: "echo hello | wc"},
		&SyntaxError{Line: "echo <", Error: "missing file for redirection at end of input"},
		&Builtin{Name: "cd", Args: []string{"cd", "/tmp"}},
		&ExecFailed{Program: "nope", Error: "executable file not found in $PATH"},
		&JobStarted{Job: 1, Command: "sleep 1"},
		&JobFinished{Job: 1, Status: 0},
	}
	for _, event := range events {
		require.NoError(t, session.Record(event))
	}

	assert.Equal(t, len(events), strings.Count(buf.String(), "\n"))

	var got []*LogEntry
	require.NoError(t, ReadJSONLinesLog(buf, func(le *LogEntry) {
		got = append(got, le)
	}))

	require.Len(t, got, len(events))
	for i, le := range got {
		assert.Equal(t, session.SessionID(), le.GetSessionId())
		assert.Equal(t, events[i].TypeName(), le.Type)
		assert.Equal(t, events[i], le.GetLogType())
		assert.NotZero(t, le.TimestampMicros)
	}
}

func TestNewSession_uniqueIDs(t *testing.T) {
	l := NewNopLogger()
	assert.NotEqual(t, l.NewSession().SessionID(), l.NewSession().SessionID())
	assert.Empty(t, l.Sessionless().SessionID())
}

func TestReadJSONLinesLog_unknownType(t *testing.T) {
	in := `{"type": "teleport", "session_id": "abc", "event": {}}` + "\n"

	var report Report
	require.NoError(t, ReadJSONLinesLog(strings.NewReader(in), report.Update))

	assert.Equal(t, 1, report.LogEntries)
	assert.Equal(t, 1, report.InvalidEntries.Get("teleport"))
}

func TestReadJSONLinesLog_errors(t *testing.T) {
	cases := map[string]string{
		"not-json":  "{{{",
		"no-type":   `{"session_id": "abc"}`,
		"not-a-map": `[1, 2]`,
	}

	for tn, in := range cases {
		t.Run(tn, func(t *testing.T) {
			err := ReadJSONLinesLog(strings.NewReader(in), func(*LogEntry) {})
			assert.Error(t, err)
		})
	}
}

func TestReport(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewJsonLinesLogRecorder(buf).NewSession()
	session.Record(&RunCommand{Line: "echo a | wc"})
	session.Record(&RunCommand{Line: "  echo>b"})
	session.Record(&RunCommand{Line: "(ls)"})
	session.Record(&ExecFailed{Program: "nope", Error: "not found"})
	session.Record(&JobStarted{Job: 1, Command: "sleep 1"})
	session.Record(&JobFinished{Job: 1, Status: 2})

	var report Report
	bugs := NewBugReport()
	var interactions InteractionReport
	require.NoError(t, ReadJSONLinesLog(buf, func(le *LogEntry) {
		report.Update(le)
		bugs.Update(le)
		interactions.Update(le)
	}))

	assert.Equal(t, 6, report.LogEntries)
	assert.Equal(t, 3, report.RunCommand.Count)
	assert.Equal(t, 2, report.RunCommand.CommandNames.Get("echo"))
	assert.Equal(t, 1, report.RunCommand.CommandNames.Get("ls"))
	assert.Equal(t, 1, report.ExecFailed.Programs.Get("nope"))
	assert.Equal(t, 1, report.Jobs.Started)
	assert.Equal(t, 1, report.Jobs.Statuses.Get("2"))

	out, err := yaml.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "log_entries: 6")

	bugOut, err := yaml.Marshal(bugs)
	require.NoError(t, err)
	assert.Contains(t, string(bugOut), "program: nope")

	session2 := interactions.interactions[session.SessionID()]
	require.NotNil(t, session2)
	assert.Equal(t, []string{"echo a | wc", "  echo>b", "(ls)"}, session2.Commands)
	assert.Equal(t, 1, session2.Jobs)
}

func TestFirstWord(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"   ":         "",
		"echo hi":     "echo",
		"<in cat":     "in",
		"(ls;pwd)":    "ls",
		"\tgrep x|wc": "grep",
	}

	for in, want := range cases {
		assert.Equal(t, want, firstWord(in), "firstWord(%q)", in)
	}
}
