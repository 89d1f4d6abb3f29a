package commands

// ResultStatus discriminates handler outcomes for machine consumers.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusFail    ResultStatus = "fail"
)

// Failure reason codes. Machine consumers key off these, never the
// localized message text.
const (
	CodeJobTaken       = "job_already_taken"
	CodeDoubleBooked   = "translator_double_booked"
	CodeCancelWindow   = "cancel_window_closed"
	CodeNotPending     = "job_not_pending"
	CodeNotTransitable = "transition_rejected"
)

// Result is the structured outcome a mutating operation reports to its
// caller: a success/fail discriminator, a machine-readable reason code on
// failure, and a localized human-readable message.
type Result struct {
	Status  ResultStatus
	Code    string
	Message string
}

func successResult(message string) Result {
	return Result{Status: StatusSuccess, Message: message}
}

func failResult(code, message string) Result {
	return Result{Status: StatusFail, Code: code, Message: message}
}

// IsSuccess reports whether the operation went through.
func (r Result) IsSuccess() bool {
	return r.Status == StatusSuccess
}
