package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("not found")

// CakeRequest is the persisted form of a custom cake request. Status is written
// only by the order state machine and always mirrors the latest history entry.
type CakeRequest struct {
	ID                  uuid.UUID  `db:"id"`
	TrackingCode        string     `db:"tracking_code"`
	CustomerName        string     `db:"customer_name"`
	CustomerPhone       string     `db:"customer_phone"`
	CustomerEmail       string     `db:"customer_email"`
	Layers              int        `db:"layers"`
	Flavors             string     `db:"flavors"`
	Sizes               string     `db:"sizes"`
	Theme               string     `db:"theme"`
	FrostingType        string     `db:"frosting_type"`
	Decorations         string     `db:"decorations"`
	CakeText            string     `db:"cake_text"`
	SpecialInstructions string     `db:"special_instructions"`
	Status              string     `db:"status"`
	QuotedPrice         *int       `db:"quoted_price"`
	PreparationDays     *int       `db:"preparation_days"`
	ScheduledPickupAt   *time.Time `db:"scheduled_pickup_at"`
	AssignedBakerID     *string    `db:"assigned_baker_id"`
	BakerNotes          *string    `db:"baker_notes"`
	SubmittedAt         *time.Time `db:"submitted_at"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// StatusHistoryEntry rows are append-only; the log is the source of truth for
// a request's current status.
type StatusHistoryEntry struct {
	ID         int64     `db:"id"`
	RequestID  uuid.UUID `db:"request_id"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	Actor      string    `db:"actor"`
	Notes      *string   `db:"notes"`
	ChangedAt  time.Time `db:"changed_at"`
}

// PaymentReceipt rows are append-only; rejected receipts stay for audit.
type PaymentReceipt struct {
	ID                 uuid.UUID  `db:"id"`
	RequestID          uuid.UUID  `db:"request_id"`
	Amount             int        `db:"amount"`
	Method             string     `db:"method"`
	Reference          string     `db:"reference"`
	ImageRef           string     `db:"image_ref"`
	VerificationStatus string     `db:"verification_status"`
	IsPrimary          bool       `db:"is_primary"`
	VerificationNotes  *string    `db:"verification_notes"`
	UploadedAt         time.Time  `db:"uploaded_at"`
	VerifiedAt         *time.Time `db:"verified_at"`
}

type DesignSession struct {
	Token       string          `db:"token"`
	KioskID     string          `db:"kiosk_id"`
	Status      string          `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	CreatedAt   time.Time       `db:"created_at"`
	ExpiresAt   time.Time       `db:"expires_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusFailed     TaskStatus = "FAILED"
)

type OutboxTask struct {
	ID          uuid.UUID  `db:"id"`
	Status      TaskStatus `db:"status"`
	Topic       string     `db:"topic"`
	Payload     []byte     `db:"payload"`
	Attempts    int        `db:"attempts"`
	LastError   *string    `db:"last_error"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	CompletedAt *time.Time `db:"completed_at"`
}
