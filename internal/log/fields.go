package log

// Field names for structured logging.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"

	FieldRecordID  = "record_id"
	FieldGroupID   = "group_id"
	FieldKind      = "kind"
	FieldAmount    = "amount"
	FieldFrequency = "frequency"
	FieldPeriod    = "period"
	FieldDueDate   = "due_date"
	FieldCount     = "count"

	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldRemoteRef  = "remote_ref"
)

// Component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentIncome  = "income"
	ComponentExpense = "expense"
	ComponentReport  = "report"
	ComponentStorage = "storage"
	ComponentSheets  = "sheets"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentEmail   = "email"
)
