package model

// Review is one reviewer's verdict on a pull request. Only the fields the
// approval lookup depends on are carried.
type Review struct {
	ReviewerLogin string
	State         ReviewState
}

// IsApproval reports whether the review state is exactly APPROVED.
func (r Review) IsApproval() bool {
	return r.State == ReviewStateApproved
}

// Approvals returns the reviews whose state is APPROVED, in input order.
// Repeated approvals from the same reviewer are kept.
func Approvals(reviews []Review) []Review {
	approved := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if r.IsApproval() {
			approved = append(approved, r)
		}
	}
	return approved
}
