package comments

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

const maxContentLength = 5000

// PostCommentInput holds the parameters for posting a comment or reply.
type PostCommentInput struct {
	Content  string
	Target   domain.TargetRef
	ParentID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i PostCommentInput) Validate() error {
	var errs []domain.FieldError

	content := strings.TrimSpace(i.Content)
	if content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if len(content) > maxContentLength {
		errs = append(errs, domain.FieldError{Field: "content", Message: "max 5000 characters"})
	}

	kind := i.Target.Kind()
	if kind == "" {
		errs = append(errs, domain.FieldError{
			Field:   "target",
			Message: "exactly one of dealId, couponId, discussionId is required",
		})
	} else if kind == domain.TargetComment {
		// Threading goes through parentId; comments are not targets here.
		errs = append(errs, domain.FieldError{Field: "target", Message: "cannot attach a comment to a comment"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteCommentInput holds the parameters for deleting a comment.
type DeleteCommentInput struct {
	CommentID uuid.UUID
}
