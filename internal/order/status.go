package order

// Status is the lifecycle state of a custom cake request.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusPendingReview     Status = "pending_review"
	StatusQuoted            Status = "quoted"
	StatusPaymentPending    Status = "payment_pending_verification"
	StatusPaymentVerified   Status = "payment_verified"
	StatusScheduled         Status = "scheduled"
	StatusInProduction      Status = "in_production"
	StatusReadyForPickup    Status = "ready_for_pickup"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
	StatusRejected          Status = "rejected"
	StatusRevisionRequested Status = "revision_requested"
)

// transitions is the full edge set. A request changes status only along these
// edges, and only through Machine.Transition.
var transitions = map[Status][]Status{
	StatusDraft:             {StatusPendingReview, StatusCancelled},
	StatusPendingReview:     {StatusQuoted, StatusRejected, StatusRevisionRequested, StatusCancelled},
	StatusRevisionRequested: {StatusPendingReview, StatusCancelled},
	StatusQuoted:            {StatusPaymentPending, StatusCancelled},
	StatusPaymentPending:    {StatusPaymentVerified, StatusQuoted, StatusCancelled},
	StatusPaymentVerified:   {StatusScheduled},
	StatusScheduled:         {StatusInProduction},
	StatusInProduction:      {StatusReadyForPickup},
	StatusReadyForPickup:    {StatusCompleted},
}

// productionOrder drives the admin "advance" progression after scheduling.
var productionOrder = map[Status]Status{
	StatusScheduled:      StatusInProduction,
	StatusInProduction:   StatusReadyForPickup,
	StatusReadyForPickup: StatusCompleted,
}

func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether a request may still be cancelled. Once payment has
// been verified the cake is committed to production and cancellation is closed.
func CanCancel(s Status) bool {
	return CanTransition(s, StatusCancelled)
}

// CanUploadReceipt reports whether a payment receipt upload is accepted in the
// given status. Upload is re-entrant while verification is pending so a
// customer whose receipt was rejected can try again.
func CanUploadReceipt(s Status) bool {
	return s == StatusQuoted || s == StatusPaymentPending
}

// NextProductionStage returns the stage that follows s in the post-scheduling
// progression, or "" when s is not part of it.
func NextProductionStage(s Status) Status {
	return productionOrder[s]
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}
