package comments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	commentrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/comment"
	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func adminCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserRole(authedCtx(userID), "ADMIN")
}

func TestPostComment_Anonymous(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &fakeCommentRepo{}, &fakeVoteRepo{})
	dealID := uuid.New()

	_, err := svc.PostComment(context.Background(), PostCommentInput{
		Content: "hi",
		Target:  domain.TargetRef{DealID: &dealID},
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("PostComment() anonymous = %v, want ErrUnauthorized", err)
	}
}

func TestPostComment_Validation(t *testing.T) {
	t.Parallel()

	dealID := uuid.New()
	commentID := uuid.New()

	tests := []struct {
		name  string
		input PostCommentInput
	}{
		{"empty content", PostCommentInput{Target: domain.TargetRef{DealID: &dealID}}},
		{"whitespace content", PostCommentInput{Content: "   ", Target: domain.TargetRef{DealID: &dealID}}},
		{
			"content too long",
			PostCommentInput{Content: strings.Repeat("a", maxContentLength+1), Target: domain.TargetRef{DealID: &dealID}},
		},
		{"no target", PostCommentInput{Content: "hi"}},
		{"comment as target", PostCommentInput{Content: "hi", Target: domain.TargetRef{CommentID: &commentID}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(testLogger(), &fakeCommentRepo{}, &fakeVoteRepo{})
			_, err := svc.PostComment(authedCtx(uuid.New()), tt.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("PostComment() = %v, want ErrValidation", err)
			}
		})
	}
}

func TestPostComment_TopLevel(t *testing.T) {
	t.Parallel()

	repo := &fakeCommentRepo{}
	svc := NewService(testLogger(), repo, &fakeVoteRepo{})

	userID := uuid.New()
	dealID := uuid.New()

	created, err := svc.PostComment(authedCtx(userID), PostCommentInput{
		Content: "  great find  ",
		Target:  domain.TargetRef{DealID: &dealID},
	})
	if err != nil {
		t.Fatalf("PostComment: %v", err)
	}
	if created.Content != "great find" {
		t.Errorf("content = %q, want trimmed", created.Content)
	}
	if created.PostedBy.ID != userID {
		t.Errorf("postedBy = %s, want %s", created.PostedBy.ID, userID)
	}
	if created.ParentID != nil {
		t.Error("top-level comment got a parent")
	}
}

func TestPostComment_ReturnsRenderedNode(t *testing.T) {
	t.Parallel()

	repo := &fakeCommentRepo{}
	svc := NewService(testLogger(), repo, &fakeVoteRepo{})

	userID := uuid.New()
	dealID := uuid.New()

	created, err := svc.PostComment(authedCtx(userID), PostCommentInput{
		Content: "first",
		Target:  domain.TargetRef{DealID: &dealID},
	})
	if err != nil {
		t.Fatalf("PostComment: %v", err)
	}

	// A fresh comment renders like a tree node: author attached, zero
	// score, no caller vote, empty reply list.
	if created.PostedBy.ID != userID || created.PostedBy.Username == "" {
		t.Errorf("postedBy = %+v, want author summary for %s", created.PostedBy, userID)
	}
	if created.Score != 0 {
		t.Errorf("score = %d, want 0", created.Score)
	}
	if created.UserVote != nil {
		t.Errorf("userVote = %v, want nil", created.UserVote)
	}
	if created.Replies == nil || len(created.Replies) != 0 {
		t.Errorf("replies = %v, want empty slice", created.Replies)
	}
}

func TestPostComment_Reply(t *testing.T) {
	t.Parallel()

	dealID := uuid.New()
	target := domain.TargetRef{DealID: &dealID}
	parentID := uuid.New()

	repo := &fakeCommentRepo{comments: []commentrepo.WithAuthor{
		topLevel(parentID, target, time.Now(), "alice"),
	}}
	svc := NewService(testLogger(), repo, &fakeVoteRepo{})

	created, err := svc.PostComment(authedCtx(uuid.New()), PostCommentInput{
		Content:  "agreed",
		Target:   target,
		ParentID: &parentID,
	})
	if err != nil {
		t.Fatalf("PostComment reply: %v", err)
	}
	if created.ParentID == nil || *created.ParentID != parentID {
		t.Errorf("parentID = %v, want %s", created.ParentID, parentID)
	}
}

func TestPostComment_ParentMissing(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &fakeCommentRepo{}, &fakeVoteRepo{})

	dealID := uuid.New()
	missing := uuid.New()

	_, err := svc.PostComment(authedCtx(uuid.New()), PostCommentInput{
		Content:  "hi",
		Target:   domain.TargetRef{DealID: &dealID},
		ParentID: &missing,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("PostComment() with missing parent = %v, want ErrValidation", err)
	}
}

func TestPostComment_ReplyToReply(t *testing.T) {
	t.Parallel()

	dealID := uuid.New()
	target := domain.TargetRef{DealID: &dealID}
	rootID := uuid.New()
	replyID := uuid.New()

	repo := &fakeCommentRepo{comments: []commentrepo.WithAuthor{
		topLevel(rootID, target, time.Now(), "alice"),
		reply(replyID, target, rootID, time.Now(), "bob"),
	}}
	svc := NewService(testLogger(), repo, &fakeVoteRepo{})

	_, err := svc.PostComment(authedCtx(uuid.New()), PostCommentInput{
		Content:  "too deep",
		Target:   target,
		ParentID: &replyID,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("PostComment() reply-to-reply = %v, want ErrValidation", err)
	}
}

func TestPostComment_CrossTargetParent(t *testing.T) {
	t.Parallel()

	dealID := uuid.New()
	otherDealID := uuid.New()
	parentID := uuid.New()

	repo := &fakeCommentRepo{comments: []commentrepo.WithAuthor{
		topLevel(parentID, domain.TargetRef{DealID: &dealID}, time.Now(), "alice"),
	}}
	svc := NewService(testLogger(), repo, &fakeVoteRepo{})

	// Same kind, different entity.
	_, err := svc.PostComment(authedCtx(uuid.New()), PostCommentInput{
		Content:  "hi",
		Target:   domain.TargetRef{DealID: &otherDealID},
		ParentID: &parentID,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("PostComment() cross-deal parent = %v, want ErrValidation", err)
	}

	// Different kind entirely.
	couponID := uuid.New()
	_, err = svc.PostComment(authedCtx(uuid.New()), PostCommentInput{
		Content:  "hi",
		Target:   domain.TargetRef{CouponID: &couponID},
		ParentID: &parentID,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("PostComment() cross-kind parent = %v, want ErrValidation", err)
	}
}

func TestDeleteComment_Authorization(t *testing.T) {
	t.Parallel()

	dealID := uuid.New()
	target := domain.TargetRef{DealID: &dealID}
	author := uuid.New()
	commentID := uuid.New()

	newRepo := func() *fakeCommentRepo {
		c := topLevel(commentID, target, time.Now(), "alice")
		c.UserID = author
		return &fakeCommentRepo{comments: []commentrepo.WithAuthor{c}}
	}

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		svc := NewService(testLogger(), newRepo(), &fakeVoteRepo{})
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{CommentID: commentID})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("DeleteComment() = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("stranger", func(t *testing.T) {
		t.Parallel()

		svc := NewService(testLogger(), newRepo(), &fakeVoteRepo{})
		err := svc.DeleteComment(authedCtx(uuid.New()), DeleteCommentInput{CommentID: commentID})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("DeleteComment() = %v, want ErrForbidden", err)
		}
	})

	t.Run("author", func(t *testing.T) {
		t.Parallel()

		repo := newRepo()
		svc := NewService(testLogger(), repo, &fakeVoteRepo{})
		if err := svc.DeleteComment(authedCtx(author), DeleteCommentInput{CommentID: commentID}); err != nil {
			t.Fatalf("DeleteComment() by author: %v", err)
		}
		if len(repo.deleted) != 1 || repo.deleted[0] != commentID {
			t.Errorf("deleted = %v, want [%s]", repo.deleted, commentID)
		}
	})

	t.Run("admin", func(t *testing.T) {
		t.Parallel()

		repo := newRepo()
		svc := NewService(testLogger(), repo, &fakeVoteRepo{})
		if err := svc.DeleteComment(adminCtx(uuid.New()), DeleteCommentInput{CommentID: commentID}); err != nil {
			t.Fatalf("DeleteComment() by admin: %v", err)
		}
		if len(repo.deleted) != 1 {
			t.Errorf("deleted = %v, want one entry", repo.deleted)
		}
	})
}
