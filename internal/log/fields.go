package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldReason     = "reason"
	FieldMonth      = "month"
	FieldCategory   = "category"
	FieldRows       = "rows"
	FieldDropped    = "dropped"
	FieldExcluded   = "excluded"
	FieldFile       = "file"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentImport  = "import"
	ComponentReports = "reports"
)

// Operations defines standard operation names
const (
	OpRebuild  = "rebuild"
	OpImport   = "import"
	OpArchive  = "archive"
	OpRender   = "render"
	OpParse    = "parse"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
