package domain

import "time"

// ActivityKind identifies an audited account action.
type ActivityKind string

const (
	ActivitySignup            ActivityKind = "signup"
	ActivityLogin             ActivityKind = "login"
	ActivityLogout            ActivityKind = "logout"
	ActivityMessagePosted     ActivityKind = "message_posted"
	ActivityMembershipGranted ActivityKind = "membership_granted"
	ActivityPasscodeRejected  ActivityKind = "passcode_rejected"
)

// Activity is a single audit-trail entry.
type Activity struct {
	AccountID string       `json:"account_id" bson:"account_id"`
	Kind      ActivityKind `json:"kind" bson:"kind"`
	Subject   string       `json:"subject,omitempty" bson:"subject,omitempty"`
	At        time.Time    `json:"at" bson:"at"`
}
