package http

import "time"

// Request and response models for the booking API.

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OperationResponse reports a localized business outcome. Status is
// "success" or "fail"; Code carries the machine-readable failure reason.
type OperationResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// CreateJobRequest is the booking creation body.
type CreateJobRequest struct {
	CustomerID      string    `json:"customer_id"`
	LanguageID      string    `json:"language_id"`
	Immediate       bool      `json:"immediate"`
	Due             time.Time `json:"due"`
	Duration        int       `json:"duration"`
	Gender          string    `json:"gender,omitempty"`
	Certified       string    `json:"certified,omitempty"`
	PhoneBooking    bool      `json:"phone_booking"`
	PhysicalBooking bool      `json:"physical_booking"`
	Town            string    `json:"town,omitempty"`
	ByAdmin         bool      `json:"by_admin,omitempty"`
	UserEmail       string    `json:"user_email,omitempty"`
	Reference       string    `json:"reference,omitempty"`
	Address         string    `json:"address,omitempty"`
	Instructions    string    `json:"instructions,omitempty"`
}

// CreateJobResponse returns the id of the created booking.
type CreateJobResponse struct {
	ID string `json:"id"`
}

// UpdateJobRequest is the admin edit body. Absent fields are left as is.
type UpdateJobRequest struct {
	Status        *string    `json:"status,omitempty"`
	TranslatorID  *string    `json:"translator_id,omitempty"`
	Due           *time.Time `json:"due,omitempty"`
	LanguageID    *string    `json:"language_id,omitempty"`
	AdminComments *string    `json:"admin_comments,omitempty"`
	Reference     *string    `json:"reference,omitempty"`
	SessionTime   string     `json:"session_time,omitempty"`
}

// AcceptJobRequest identifies the accepting translator, and for the
// body-addressed variant the booking too.
type AcceptJobRequest struct {
	JobID        string `json:"job_id,omitempty"`
	TranslatorID string `json:"translator_id"`
}

// AcceptJobResponse reports the accept outcome together with the
// translator's refreshed feed of still-acceptable bookings.
type AcceptJobResponse struct {
	Status        string       `json:"status"`
	Code          string       `json:"code,omitempty"`
	Message       string       `json:"message,omitempty"`
	PotentialJobs []JobSummary `json:"potential_jobs"`
}

// ActorRequest identifies the user performing a lifecycle action.
type ActorRequest struct {
	UserID string `json:"user_id"`
}

// ReopenJobResponse returns the id of the booking now pending.
type ReopenJobResponse struct {
	ID string `json:"id"`
}

// SetJobContactRequest is the contact update body.
type SetJobContactRequest struct {
	Email        string `json:"email,omitempty"`
	Reference    string `json:"reference,omitempty"`
	Address      string `json:"address,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Town         string `json:"town,omitempty"`
}

// JobSummary is one booking in a listing or feed response.
type JobSummary struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id,omitempty"`
	Language        string    `json:"language"`
	Status          string    `json:"status,omitempty"`
	Due             time.Time `json:"due"`
	Duration        int       `json:"duration"`
	Immediate       bool      `json:"immediate"`
	PhoneBooking    bool      `json:"phone_booking"`
	PhysicalBooking bool      `json:"physical_booking"`
	Town            string    `json:"town,omitempty"`
	JobType         string    `json:"job_type"`
	Flagged         bool      `json:"flagged,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	WillExpireAt    time.Time `json:"will_expire_at,omitempty"`
}
