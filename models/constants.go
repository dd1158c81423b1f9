package models

// Profile roles
const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
)

// Account statuses
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Approval statuses (accounts and gallery photos)
const (
	ApprovalApproved = "approved"
	ApprovalPending  = "pending"
	ApprovalRejected = "rejected"
)

// Interest states derived from list membership
const (
	InterestStateNone     = "none"
	InterestStatePending  = "pending"
	InterestStateAccepted = "accepted"
	InterestStateDeclined = "declined"
)

// Interest response actions
const (
	InterestActionAccept  = "accept"
	InterestActionDecline = "decline"
)
