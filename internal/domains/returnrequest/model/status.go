package model

// Status is the closed set of return request states.
type Status string

const (
	StatusNew                 Status = "new"
	StatusProcessing          Status = "processing"
	StatusPickedUpFromClient  Status = "pickedUpFromClient"
	StatusPendingVerification Status = "pendingVerification"
	StatusPackageVerified     Status = "packageVerified"
	StatusDenied              Status = "denied"
	StatusCancelled           Status = "cancelled"
	StatusAmountRefunded      Status = "amountRefunded"
)

// Caller roles consulted by the cancellation sub-table.
const (
	RoleAdminUser = "adminUser"
	RoleStoreUser = "storeUser"
)

// ParseStatus validates a raw status string against the closed set.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	_, ok := allowedTransitions[s]
	return s, ok
}

// allowedTransitions is the base transition table. A self-loop means an
// idempotent re-apply: it is accepted and appends one history entry.
// pendingVerification is resolved through item verification, never by a
// caller-chosen transition, so it only allows its self-loop here.
var allowedTransitions = map[Status]map[Status]bool{
	StatusNew: {
		StatusNew:        true,
		StatusProcessing: true,
		StatusDenied:     true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusProcessing:         true,
		StatusPickedUpFromClient: true,
		StatusDenied:             true,
		StatusCancelled:          true,
	},
	StatusPickedUpFromClient: {
		StatusPickedUpFromClient:  true,
		StatusPendingVerification: true,
		StatusDenied:              true,
	},
	StatusPendingVerification: {
		StatusPendingVerification: true,
	},
	StatusPackageVerified: {
		StatusPackageVerified: true,
		StatusAmountRefunded:  true,
	},
	StatusAmountRefunded: {
		StatusAmountRefunded: true,
	},
	StatusDenied: {
		StatusDenied: true,
	},
	StatusCancelled: {
		StatusCancelled: true,
	},
}

// cancellableFrom is the role-specific cancellation sub-table. Cancellation
// authorization depends on who asks, not just on the current status.
var cancellableFrom = map[string]map[Status]bool{
	RoleAdminUser: {
		StatusNew:        true,
		StatusProcessing: true,
	},
	RoleStoreUser: {
		StatusNew: true,
	},
}

// CanTransition reports whether the base table allows from → to.
func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}

// CanCancel reports whether a caller with the given role may cancel a
// request currently in from. The self-loop on cancelled stays open to every
// role so re-applies remain idempotent.
func CanCancel(role string, from Status) bool {
	if from == StatusCancelled {
		return true
	}
	return cancellableFrom[role][from]
}

// IsTerminal reports whether no outgoing edge except the self-loop exists.
func (s Status) IsTerminal() bool {
	return s == StatusDenied || s == StatusCancelled || s == StatusAmountRefunded
}
