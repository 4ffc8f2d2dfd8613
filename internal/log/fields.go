package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldTool      = "tool"
	FieldResource  = "resource"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldDate      = "date"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldActivity  = "activity"
	FieldMinutes   = "duration_minutes"
	FieldID        = "id"
	FieldPath      = "path"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentServer   = "server"
	ComponentStorage  = "storage"
	ComponentTools    = "tools"
	ComponentResource = "resource"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpList     = "list"
	OpSummary  = "summary"
	OpSeed     = "seed"
	OpMigrate  = "migrate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
