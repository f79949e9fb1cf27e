package order

import "time"

// Status strings exactly as the order API reports them.
const (
	StatusPlaced         = "Placed"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

var progressSteps = []string{
	StatusPlaced,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// Steps returns the fixed delivery-progress track, in order.
func Steps() []string {
	out := make([]string, len(progressSteps))
	copy(out, progressSteps)
	return out
}

// StepIndex maps a status to its position on the progress track.
// Cancelled orders and missing statuses have no position (-1). A status the
// server reports that we do not recognize falls back to the first step
// rather than erroring, the tracking page must keep rendering.
func StepIndex(status string) int {
	if status == "" || status == StatusCancelled {
		return -1
	}
	for i, s := range progressSteps {
		if s == status {
			return i
		}
	}
	return 0
}

// IsTerminal reports whether no further lifecycle transition is possible.
func IsTerminal(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

// CanCancel reports whether a cancel request is legal for this status.
func CanCancel(status string) bool {
	switch status {
	case StatusPlaced, StatusShipped, StatusOutForDelivery:
		return true
	}
	return false
}

// DeliveryEstimateDays is a heuristic, not an SLA: the storefront promises
// nothing, it shows creation date plus four days.
const DeliveryEstimateDays = 4

var createdAtLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// EstimatedDelivery derives the estimate from the order's creation time.
// An absent or unparsable timestamp falls back to now.
func EstimatedDelivery(createdAt string, now time.Time) time.Time {
	base := now
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, createdAt); err == nil {
			base = t
			break
		}
	}
	return base.AddDate(0, 0, DeliveryEstimateDays)
}
