package domain

// Event is an external trigger applied to a payment.
type Event string

const (
	EventSettlementSucceeded Event = "SETTLEMENT_SUCCEEDED"
	EventSettlementDeclined  Event = "SETTLEMENT_DECLINED"
	EventRefund              Event = "REFUND"
	EventCancel              Event = "CANCEL"
)

// Outcome is the result of a legal transition: the next status and
// whether downstream consumers must be notified.
type Outcome struct {
	Status PaymentStatus
	Notify bool
}

// Transition is the payment state machine. It is a pure function of
// the current status and the triggering event, with no knowledge of
// storage or collaborators.
//
//	PENDING --settlement succeeded--> PAID      (notify)
//	PENDING --settlement declined---> FAILED    (notify)
//	PAID    --refund----------------> REFUNDED  (notify)
//	PENDING --cancel----------------> CANCELLED
//	FAILED  --cancel----------------> CANCELLED
//
// Cancellation deliberately does not notify. Every other pairing is
// rejected with an INVALID_TRANSITION error.
func Transition(from PaymentStatus, ev Event) (Outcome, error) {
	switch ev {
	case EventSettlementSucceeded:
		if from == StatusPending {
			return Outcome{Status: StatusPaid, Notify: true}, nil
		}
	case EventSettlementDeclined:
		if from == StatusPending {
			return Outcome{Status: StatusFailed, Notify: true}, nil
		}
	case EventRefund:
		if from == StatusPaid {
			return Outcome{Status: StatusRefunded, Notify: true}, nil
		}
		return Outcome{}, NewInvalidTransitionError(from, "only PAID payments may be refunded")
	case EventCancel:
		if from == StatusPaid {
			return Outcome{}, NewInvalidTransitionError(from, "cannot cancel a PAID payment, use refund instead")
		}
		if from == StatusPending || from == StatusFailed {
			return Outcome{Status: StatusCancelled}, nil
		}
	}
	return Outcome{}, NewInvalidTransitionError(from, "event "+string(ev)+" is not allowed")
}
