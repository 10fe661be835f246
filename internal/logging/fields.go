package logging

// Field names for structured log entries.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldConfig = "config"

	// Pipeline fields.
	FieldTag      = "tag"
	FieldURL      = "url"
	FieldLine     = "line"
	FieldColumn   = "column"
	FieldDepth    = "depth"
	FieldBytes    = "bytes"
	FieldDuration = "duration"
	FieldEvent    = "event"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
