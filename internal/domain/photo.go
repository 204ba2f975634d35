package domain

import "time"

type Status string

const (
	StatusInQueue   Status = "IN_QUEUE"
	StatusPrinting  Status = "PRINTING"
	StatusSuccess   Status = "SUCCESS"
	StatusError     Status = "ERROR"
	StatusDelivered Status = "DELIVERED"
)

// Audit log actions, one per kind of mutation.
const (
	ActionCreated          = "CREATED"
	ActionStatusChanged    = "STATUS_CHANGED"
	ActionDelivered        = "DELIVERED"
	ActionPaymentUpdated   = "PAYMENT_UPDATED"
	ActionNoteAdded        = "NOTE_ADDED"
	ActionPrintStarted     = "PRINT_STARTED"
	ActionReprintStarted   = "REPRINT_STARTED"
	ActionAutoPrintStarted = "AUTO_PRINT_STARTED"
	ActionPrintSuccess     = "PRINT_SUCCESS"
	ActionPrintError       = "PRINT_ERROR"
)

type LogEntry struct {
	Timestamp time.Time `json:"ts"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
}

// Photo is a single print job tracked through its lifecycle.
// ReceivedAt is set only when the photo transitions into DELIVERED.
type Photo struct {
	ID           string     `json:"id"`
	Status       Status     `json:"status"`
	Price        int        `json:"price"`
	Paid         bool       `json:"paid"`
	PaidOnline   bool       `json:"paid_online"`
	CustomerName string     `json:"customer_name"`
	Thumbnail    *string    `json:"thumbnail"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Attempts     int        `json:"attempts"`
	Logs         []LogEntry `json:"logs"`
	ReceivedAt   *time.Time `json:"received_at"`
}

// AddLog appends an audit entry. The log is append-only, never compacted.
func (p *Photo) AddLog(action, message string) {
	p.Logs = append(p.Logs, LogEntry{
		Timestamp: time.Now().UTC(),
		Action:    action,
		Message:   message,
	})
}
