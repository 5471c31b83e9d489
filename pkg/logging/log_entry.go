package logging

// LogEntry represents a structured log record.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Run correlation
	RunID      string // The optimization run this entry belongs to
	Generation int    // Generation index at emission time, -1 when not applicable

	// General structured data
	Fields map[string]interface{}
}
