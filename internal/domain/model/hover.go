package model

import (
	"fmt"
	"strings"
)

// HoverResult is the rendered outcome of one line resolution.
// Commit and PRNumber are set once the corresponding stage succeeded.
type HoverResult struct {
	Kind      HoverKind
	Commit    CommitHash
	PRNumber  int
	Approvers []string
}

func IdentityMissing() HoverResult { return HoverResult{Kind: HoverIdentityMissing} }

func CommitMissing() HoverResult { return HoverResult{Kind: HoverCommitMissing} }

func PRMissing(commit CommitHash) HoverResult {
	return HoverResult{Kind: HoverPRMissing, Commit: commit}
}

func ApprovalsMissing(commit CommitHash, pr int) HoverResult {
	return HoverResult{Kind: HoverApprovalsMissing, Commit: commit, PRNumber: pr}
}

// ApprovedBy lists the approving reviewers in review order.
func ApprovedBy(commit CommitHash, pr int, approvals []Review) HoverResult {
	logins := make([]string, 0, len(approvals))
	for _, r := range approvals {
		logins = append(logins, r.ReviewerLogin)
	}
	return HoverResult{Kind: HoverApproved, Commit: commit, PRNumber: pr, Approvers: logins}
}

func Failed() HoverResult { return HoverResult{Kind: HoverError} }

// Message renders the result as the plain text shown in a hover.
func (h HoverResult) Message() string {
	switch h.Kind {
	case HoverIdentityMissing:
		return "Could not determine repository owner or name."
	case HoverCommitMissing:
		return "No commit found for this line."
	case HoverPRMissing:
		return fmt.Sprintf("No PR found for commit %s.", h.Commit)
	case HoverApprovalsMissing:
		return fmt.Sprintf("No approvals found for PR #%d.", h.PRNumber)
	case HoverApproved:
		return "Approved by: " + strings.Join(h.Approvers, ", ")
	default:
		return "Error fetching PR approval info."
	}
}

// Markdown renders the result for hosts that display markdown hovers.
func (h HoverResult) Markdown() string {
	switch h.Kind {
	case HoverPRMissing:
		return fmt.Sprintf("No PR found for commit `%s`.", h.Commit)
	case HoverApprovalsMissing:
		return fmt.Sprintf("No approvals found for PR **#%d**.", h.PRNumber)
	case HoverApproved:
		quoted := make([]string, 0, len(h.Approvers))
		for _, login := range h.Approvers {
			quoted = append(quoted, "`"+login+"`")
		}
		return fmt.Sprintf("**Approved by:** %s (PR #%d)", strings.Join(quoted, ", "), h.PRNumber)
	default:
		return h.Message()
	}
}
