package logger

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// LogType is an event that can be stored in the log.
type LogType interface {
	// TypeName is the value of the "type" field of the entry.
	TypeName() string

	fields() map[string]interface{}
	load(s *structpb.Struct)
}

// RunCommand is logged for every unit the shell executes.
type RunCommand struct {
	Line string `json:"line"`
}

// SyntaxError is logged when a unit fails to parse.
type SyntaxError struct {
	Line  string `json:"line"`
	Error string `json:"error"`
}

// Builtin is logged when a built-in handles a unit.
type Builtin struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// ExecFailed is logged when a program can't be started.
type ExecFailed struct {
	Program string `json:"program"`
	Error   string `json:"error"`
}

// JobStarted is logged when a background job is launched.
type JobStarted struct {
	Job     int    `json:"job"`
	Command string `json:"command"`
}

// JobFinished is logged when a background job exits.
type JobFinished struct {
	Job    int `json:"job"`
	Status int `json:"status"`
}

var (
	_ LogType = (*RunCommand)(nil)
	_ LogType = (*SyntaxError)(nil)
	_ LogType = (*Builtin)(nil)
	_ LogType = (*ExecFailed)(nil)
	_ LogType = (*JobStarted)(nil)
	_ LogType = (*JobFinished)(nil)
)

// newLogType returns an empty event for the type name, or nil if the name is
// unknown.
func newLogType(name string) LogType {
	switch name {
	case "run_command":
		return &RunCommand{}
	case "syntax_error":
		return &SyntaxError{}
	case "builtin":
		return &Builtin{}
	case "exec_failed":
		return &ExecFailed{}
	case "job_started":
		return &JobStarted{}
	case "job_finished":
		return &JobFinished{}
	default:
		return nil
	}
}

func (*RunCommand) TypeName() string  { return "run_command" }
func (*SyntaxError) TypeName() string { return "syntax_error" }
func (*Builtin) TypeName() string     { return "builtin" }
func (*ExecFailed) TypeName() string  { return "exec_failed" }
func (*JobStarted) TypeName() string  { return "job_started" }
func (*JobFinished) TypeName() string { return "job_finished" }

func (e *RunCommand) fields() map[string]interface{} {
	return map[string]interface{}{"line": e.Line}
}

func (e *RunCommand) load(s *structpb.Struct) {
	e.Line = stringField(s, "line")
}

func (e *SyntaxError) fields() map[string]interface{} {
	return map[string]interface{}{"line": e.Line, "error": e.Error}
}

func (e *SyntaxError) load(s *structpb.Struct) {
	e.Line = stringField(s, "line")
	e.Error = stringField(s, "error")
}

func (e *Builtin) fields() map[string]interface{} {
	// structpb only accepts []interface{} for lists.
	args := make([]interface{}, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg
	}
	return map[string]interface{}{"name": e.Name, "args": args}
}

func (e *Builtin) load(s *structpb.Struct) {
	e.Name = stringField(s, "name")
	e.Args = nil
	for _, v := range s.GetFields()["args"].GetListValue().GetValues() {
		e.Args = append(e.Args, v.GetStringValue())
	}
}

func (e *ExecFailed) fields() map[string]interface{} {
	return map[string]interface{}{"program": e.Program, "error": e.Error}
}

func (e *ExecFailed) load(s *structpb.Struct) {
	e.Program = stringField(s, "program")
	e.Error = stringField(s, "error")
}

func (e *JobStarted) fields() map[string]interface{} {
	return map[string]interface{}{"job": e.Job, "command": e.Command}
}

func (e *JobStarted) load(s *structpb.Struct) {
	e.Job = intField(s, "job")
	e.Command = stringField(s, "command")
}

func (e *JobFinished) fields() map[string]interface{} {
	return map[string]interface{}{"job": e.Job, "status": e.Status}
}

func (e *JobFinished) load(s *structpb.Struct) {
	e.Job = intField(s, "job")
	e.Status = intField(s, "status")
}

func stringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

func intField(s *structpb.Struct, name string) int {
	return int(s.GetFields()[name].GetNumberValue())
}
