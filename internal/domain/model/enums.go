package model

// ReviewState represents the state of a review as reported by GitHub.
type ReviewState string

const (
	ReviewStateApproved         ReviewState = "APPROVED"
	ReviewStateChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewStateCommented        ReviewState = "COMMENTED"
	ReviewStatePending          ReviewState = "PENDING"
	ReviewStateDismissed        ReviewState = "DISMISSED"
)

// Trigger identifies what started a polling cycle. It is informational only;
// every trigger runs the same cycle.
type Trigger string

const (
	TriggerInterval Trigger = "interval"
	TriggerInstall  Trigger = "install"
	TriggerManual   Trigger = "manual"
)

// BadgeColor is the color of the unreviewed-count badge.
type BadgeColor string

const (
	BadgeColorGreen BadgeColor = "green"
	BadgeColorRed   BadgeColor = "red"
	BadgeColorBlack BadgeColor = "black"
)
