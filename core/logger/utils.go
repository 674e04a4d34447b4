package logger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// LogEntry is a single event in the log.
type LogEntry struct {
	TimestampMicros int64
	SessionId       string
	// Type is the name of the event, it's kept even if the event is unknown.
	Type    string
	LogType LogType
}

// GetSessionId returns the session of the entry.
func (le *LogEntry) GetSessionId() string {
	if le == nil {
		return ""
	}
	return le.SessionId
}

// GetLogType returns the decoded event, or nil if it was unknown.
func (le *LogEntry) GetLogType() LogType {
	if le == nil {
		return nil
	}
	return le.LogType
}

func (le *LogEntry) toStruct() (*structpb.Struct, error) {
	var fields map[string]interface{}
	if le.LogType != nil {
		fields = le.LogType.fields()
	}
	return structpb.NewStruct(map[string]interface{}{
		"timestamp_micros": le.TimestampMicros,
		"session_id":       le.SessionId,
		"type":             le.Type,
		"event":            fields,
	})
}

func (le *LogEntry) fromStruct(s *structpb.Struct) {
	le.TimestampMicros = int64(s.GetFields()["timestamp_micros"].GetNumberValue())
	le.SessionId = stringField(s, "session_id")
	le.Type = stringField(s, "type")
	le.LogType = newLogType(le.Type)
	if le.LogType != nil {
		le.LogType.load(s.GetFields()["event"].GetStructValue())
	}
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures session event logs.
type Logger struct {
	Record LogRecorder
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			s, err := le.toStruct()
			if err != nil {
				return err
			}
			entry, err := protojson.Marshal(s)
			if err != nil {
				return err
			}

			// Background jobs log from their own goroutines.
			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error {
			return nil
		},
	}
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	le := &LogEntry{}
	le.TimestampMicros = time.Now().UnixMicro()
	le.SessionId = sessionID
	le.Type = event.TypeName()
	le.LogType = event

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event of the session.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var rawEntry json.RawMessage
		if err := decoder.Decode(&rawEntry); err != nil {
			return err
		}

		var s structpb.Struct
		if err := protojson.Unmarshal(rawEntry, &s); err != nil {
			return err
		}
		if _, ok := s.GetFields()["type"]; !ok {
			return errors.New("log entry has no type")
		}

		var logEntry LogEntry
		logEntry.fromStruct(&s)
		handler(&logEntry)
	}
	return nil
}
