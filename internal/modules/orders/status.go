package orders

// ParseStatus validates a status coming from a form or query string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled, StatusReturned:
		return st, nil
	}
	return "", ErrUnknownStatus
}

// CanTransition reports whether an order may move from one status to another.
// Cancellation is only possible before the order ships.
func CanTransition(from, to Status) bool {
	switch to {
	case StatusConfirmed:
		return from == StatusPending
	case StatusShipped:
		return from == StatusConfirmed
	case StatusDelivered:
		return from == StatusShipped
	case StatusCancelled:
		return from == StatusPending || from == StatusConfirmed
	case StatusReturned:
		return from == StatusDelivered
	}
	return false
}

// Scheduled reports whether the order is still on its way to the client.
func (o Order) Scheduled() bool {
	switch o.OrderStatus {
	case StatusPending, StatusConfirmed, StatusShipped:
		return true
	}
	return false
}
