package voting

import "github.com/dealboard/dealboard-backend/internal/domain"

// RecordVoteInput holds the parameters for recording a vote.
type RecordVoteInput struct {
	Target domain.TargetRef
	Type   domain.VoteType
}

// Validate checks all fields and collects all errors.
func (i RecordVoteInput) Validate() error {
	var errs []domain.FieldError

	if i.Target.Kind() == "" {
		errs = append(errs, domain.FieldError{
			Field:   "target",
			Message: "exactly one of dealId, couponId, discussionId, commentId is required",
		})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "voteType", Message: "must be UP or DOWN"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
