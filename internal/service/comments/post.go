package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// PostComment creates a top-level comment or a reply for the
// authenticated user and returns it as a rendered node (zero score, no
// replies) so clients can insert it into the tree directly. A reply's
// parent must exist, be top-level and belong to the same target; depth
// past domain.MaxThreadDepth and cross-target parenting are rejected as
// validation errors.
func (s *Service) PostComment(ctx context.Context, input PostCommentInput) (*domain.CommentNode, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := s.comments.GetByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("parentId", "parent comment does not exist")
			}
			return nil, fmt.Errorf("comments.PostComment get parent: %w", err)
		}
		if parent.IsReply() {
			return nil, domain.NewValidationError("parentId", "replies to replies are not allowed")
		}
		if parent.Target.Kind() != input.Target.Kind() || parent.Target.ID() != input.Target.ID() {
			return nil, domain.NewValidationError("parentId", "parent belongs to a different target")
		}
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		Content:  strings.TrimSpace(input.Content),
		UserID:   userID,
		Target:   input.Target,
		ParentID: input.ParentID,
	})
	if err != nil {
		return nil, fmt.Errorf("comments.PostComment create: %w", err)
	}

	s.log.InfoContext(ctx, "comment posted",
		slog.String("comment_id", created.ID.String()),
		slog.String("target", string(input.Target.Kind())),
		slog.Bool("reply", input.ParentID != nil),
	)

	return &domain.CommentNode{
		ID:        created.ID,
		Content:   created.Content,
		ParentID:  created.ParentID,
		CreatedAt: created.CreatedAt,
		PostedBy:  created.Author,
		Replies:   []domain.CommentNode{},
	}, nil
}

// DeleteComment removes a comment. Allowed for its author and for
// admins; replies and votes cascade in the store.
func (s *Service) DeleteComment(ctx context.Context, input DeleteCommentInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	comment, err := s.comments.GetByID(ctx, input.CommentID)
	if err != nil {
		return fmt.Errorf("comments.DeleteComment get: %w", err)
	}

	if comment.UserID != userID && !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, input.CommentID); err != nil {
		return fmt.Errorf("comments.DeleteComment delete: %w", err)
	}

	s.log.InfoContext(ctx, "comment deleted", slog.String("comment_id", input.CommentID.String()))

	return nil
}
