package review

// SubmitReview is the payload of a review submission. Kind tells which
// direction the rating goes: a contractor rating the provider's work, or a
// provider rating the contractor.
type SubmitReview struct {
	ConfirmationID string `json:"confirmation_id"`
	TargetID       string `json:"target_id"`
	Kind           string `json:"kind"`
	Score1         int    `json:"score1"`
	Score2         int    `json:"score2"`
	Comment        string `json:"comment"`
}
