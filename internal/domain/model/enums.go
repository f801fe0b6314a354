package model

// ReviewState is the state string GitHub reports for a pull request review.
// Values are compared case-sensitively.
type ReviewState string

const (
	ReviewStateApproved         ReviewState = "APPROVED"
	ReviewStateChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewStateCommented        ReviewState = "COMMENTED"
	ReviewStatePending          ReviewState = "PENDING"
	ReviewStateDismissed        ReviewState = "DISMISSED"
)

// HoverKind classifies the outcome of a single line resolution.
type HoverKind string

const (
	HoverIdentityMissing  HoverKind = "identity_missing"
	HoverCommitMissing    HoverKind = "commit_missing"
	HoverPRMissing        HoverKind = "pr_missing"
	HoverApprovalsMissing HoverKind = "approvals_missing"
	HoverApproved         HoverKind = "approved"
	HoverError            HoverKind = "error"
)
