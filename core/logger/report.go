package logger

import (
	"encoding/json"
	"sort"
	"strconv"
)

func NewBugReport() *BugReport {
	return &BugReport{
		ExecFailures: NewPathCounter("program", "error"),
		SyntaxErrors: NewPathCounter("line", "error"),
	}
}

// BugReport pulls events that are likely mistakes by the user or missing
// programs on the host.
type BugReport struct {
	LogEntries int `json:"log_entries"`

	ExecFailures *PathCounter `json:"exec_failures"`
	SyntaxErrors *PathCounter `json:"syntax_errors"`
}

func (r *BugReport) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *ExecFailed:
		r.ExecFailures.Increment(event.Program, event.Error)
	case *SyntaxError:
		r.SyntaxErrors.Increment(event.Line, event.Error)
	}
}

type InteractionReport struct {
	// Map of sessionID -> interactions
	interactions map[string]*InteractiveSession
}

type InteractiveSession struct {
	LogEntries int      `json:"log_entries"`
	Commands   []string `json:"commands"`
	Jobs       int      `json:"jobs"`
}

func (i *InteractiveSession) Update(le *LogEntry) {
	i.LogEntries++

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		i.Commands = append(i.Commands, event.Line)
	case *JobStarted:
		i.Jobs++
	}
}

func (i *InteractionReport) init() {
	if i.interactions == nil {
		i.interactions = make(map[string]*InteractiveSession)
	}
}

// MarshalJSON implemnts custom JSON marshaler.
func (i *InteractionReport) MarshalJSON() ([]byte, error) {
	i.init()

	return json.Marshal(i.interactions)
}

func (i *InteractionReport) Update(le *LogEntry) {
	i.init()

	sessionID := le.GetSessionId()
	if sessionID == "" {
		return
	}
	report, ok := i.interactions[sessionID]
	if !ok {
		report = &InteractiveSession{}
		i.interactions[sessionID] = report
	}

	report.Update(le)
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries"`

	RunCommand  RunCommandReport  `json:"run_command_report"`
	SyntaxError SyntaxErrorReport `json:"syntax_error_report"`
	Builtin     BuiltinReport     `json:"builtin_report"`
	ExecFailed  ExecFailedReport  `json:"exec_failed_report"`
	Jobs        JobReport         `json:"job_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *SyntaxError:
		r.SyntaxError.update(event)
	case *Builtin:
		r.Builtin.update(event)
	case *ExecFailed:
		r.ExecFailed.update(event)
	case *JobStarted:
		r.Jobs.Started++
	case *JobFinished:
		r.Jobs.Finished++
		r.Jobs.Statuses.Increment(strconv.Itoa(event.Status))
	default:
		r.InvalidEntries.Increment(le.Type)
	}
}

type RunCommandReport struct {
	Count int `json:"count"`
	// Name of the first program in the line
	CommandNames StrCounter `json:"command_names"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.Count++
	if name := firstWord(rc.Line); name != "" {
		r.CommandNames.Increment(name)
	}
}

type SyntaxErrorReport struct {
	Count  int        `json:"count"`
	Errors StrCounter `json:"errors"`
}

func (r *SyntaxErrorReport) update(se *SyntaxError) {
	r.Count++
	r.Errors.Increment(se.Error)
}

type BuiltinReport struct {
	Names StrCounter `json:"names"`
}

func (r *BuiltinReport) update(b *Builtin) {
	r.Names.Increment(b.Name)
}

type ExecFailedReport struct {
	Programs StrCounter `json:"programs"`
}

func (r *ExecFailedReport) update(ef *ExecFailed) {
	r.Programs.Increment(ef.Program)
}

type JobReport struct {
	Started  int        `json:"started"`
	Finished int        `json:"finished"`
	Statuses StrCounter `json:"statuses"`
}

// firstWord returns the leading run of characters that aren't whitespace or
// shell operators.
func firstWord(line string) string {
	start := -1
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t', '\r', '\n', '\v', '<', '|', '>', '&', ';', '(', ')':
			if start >= 0 {
				return line[start:i]
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start < 0 {
		return ""
	}
	return line[start:]
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for a key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of strings seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
