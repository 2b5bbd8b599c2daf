package comments

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	commentrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/comment"
	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeCommentRepo serves canned comments with the store's ordering
// contract: top-level newest first, replies oldest first.
type fakeCommentRepo struct {
	comments []commentrepo.WithAuthor
	created  []*domain.Comment
	deleted  []uuid.UUID
}

func (f *fakeCommentRepo) Create(_ context.Context, c *domain.Comment) (*commentrepo.WithAuthor, error) {
	out := *c
	out.ID = uuid.New()
	out.CreatedAt = time.Now()
	f.created = append(f.created, &out)
	return &commentrepo.WithAuthor{
		Comment: out,
		Author:  domain.PostedBy{ID: c.UserID, Username: "author"},
	}, nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			out := c.Comment
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCommentRepo) ListTopLevel(_ context.Context, target domain.TargetRef) ([]commentrepo.WithAuthor, error) {
	var out []commentrepo.WithAuthor
	for _, c := range f.comments {
		if c.ParentID == nil && c.Target.ID() == target.ID() {
			out = append(out, c)
		}
	}
	sortByCreated(out, false)
	return out, nil
}

func (f *fakeCommentRepo) ListReplies(_ context.Context, parentIDs []uuid.UUID) ([]commentrepo.WithAuthor, error) {
	var out []commentrepo.WithAuthor
	for _, c := range f.comments {
		if c.ParentID == nil {
			continue
		}
		for _, pid := range parentIDs {
			if *c.ParentID == pid {
				out = append(out, c)
			}
		}
	}
	sortByCreated(out, true)
	return out, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func sortByCreated(cs []commentrepo.WithAuthor, asc bool) {
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0; j-- {
			before := cs[j].CreatedAt.Before(cs[j-1].CreatedAt)
			if (asc && before) || (!asc && !before) {
				cs[j], cs[j-1] = cs[j-1], cs[j]
			}
		}
	}
}

type fakeVoteRepo struct {
	votes []domain.Vote
}

func (f *fakeVoteRepo) ListByTargets(_ context.Context, _ domain.TargetKind, ids []uuid.UUID) ([]domain.Vote, error) {
	var out []domain.Vote
	for _, v := range f.votes {
		for _, id := range ids {
			if v.Target.ID() == id {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func TestTreeFor_Ordering(t *testing.T) {
	t.Parallel()

	dealID := uuid.New()
	target := domain.TargetRef{DealID: &dealID}
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t1 := uuid.New()
	t2 := uuid.New()
	t3 := uuid.New()
	r1 := uuid.New()
	r2 := uuid.New()

	repo := &fakeCommentRepo{comments: []commentrepo.WithAuthor{
		topLevel(t1, target, base.Add(1*time.Minute), "alice"),
		topLevel(t2, target, base.Add(2*time.Minute), "bob"),
		topLevel(t3, target, base.Add(3*time.Minute), "carol"),
		reply(r2, target, t1, base.Add(5*time.Minute), "dave"),
		reply(r1, target, t1, base.Add(4*time.Minute), "erin"),
	}}

	svc := NewService(testLogger(), repo, &fakeVoteRepo{})

	tree, err := svc.TreeFor(context.Background(), target)
	if err != nil {
		t.Fatalf("TreeFor: %v", err)
	}

	// Top level newest first: T3, T2, T1.
	if len(tree) != 3 {
		t.Fatalf("top-level count = %d, want 3", len(tree))
	}
	wantTop := []uuid.UUID{t3, t2, t1}
	for i, want := range wantTop {
		if tree[i].ID != want {
			t.Errorf("top-level[%d] = %s, want %s", i, tree[i].ID, want)
		}
	}

	// Replies under T1 oldest first: R1, R2.
	t1Node := tree[2]
	if len(t1Node.Replies) != 2 {
		t.Fatalf("replies under t1 = %d, want 2", len(t1Node.Replies))
	}
	if t1Node.Replies[0].ID != r1 || t1Node.Replies[1].ID != r2 {
		t.Errorf("reply order = [%s %s], want [%s %s]",
			t1Node.Replies[0].ID, t1Node.Replies[1].ID, r1, r2)
	}

	// No deeper nesting and no replies under the others.
	for _, r := range t1Node.Replies {
		if len(r.Replies) != 0 {
			t.Error("reply node carries nested replies")
		}
	}
	if len(tree[0].Replies) != 0 || len(tree[1].Replies) != 0 {
		t.Error("unexpected replies under t2/t3")
	}
}

func TestTreeFor_ScoresAndUserVotes(t *testing.T) {
	t.Parallel()

	dealID := uuid.New()
	target := domain.TargetRef{DealID: &dealID}
	base := time.Now()

	c1 := uuid.New()
	alice := uuid.New()

	repo := &fakeCommentRepo{comments: []commentrepo.WithAuthor{
		topLevel(c1, target, base, "bob"),
	}}
	votes := &fakeVoteRepo{votes: []domain.Vote{
		{ID: uuid.New(), UserID: alice, Target: domain.TargetRef{CommentID: &c1}, Type: domain.VoteUp},
		{ID: uuid.New(), UserID: uuid.New(), Target: domain.TargetRef{CommentID: &c1}, Type: domain.VoteUp},
		{ID: uuid.New(), UserID: uuid.New(), Target: domain.TargetRef{CommentID: &c1}, Type: domain.VoteDown},
	}}

	svc := NewService(testLogger(), repo, votes)

	// Authenticated caller sees their own vote.
	tree, err := svc.TreeFor(ctxutil.WithUserID(context.Background(), alice), target)
	if err != nil {
		t.Fatalf("TreeFor: %v", err)
	}
	if tree[0].Score != 1 {
		t.Errorf("score = %d, want 1", tree[0].Score)
	}
	if tree[0].UserVote == nil || *tree[0].UserVote != domain.VoteUp {
		t.Errorf("userVote = %v, want UP", tree[0].UserVote)
	}

	// Anonymous caller gets nil user votes, never an error.
	tree, err = svc.TreeFor(context.Background(), target)
	if err != nil {
		t.Fatalf("TreeFor anonymous: %v", err)
	}
	if tree[0].UserVote != nil {
		t.Errorf("anonymous userVote = %v, want nil", tree[0].UserVote)
	}
}

func TestTreeFor_EmptyTarget(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &fakeCommentRepo{}, &fakeVoteRepo{})

	dealID := uuid.New()
	tree, err := svc.TreeFor(context.Background(), domain.TargetRef{DealID: &dealID})
	if err != nil {
		t.Fatalf("TreeFor: %v", err)
	}
	if len(tree) != 0 {
		t.Errorf("tree = %d nodes, want 0", len(tree))
	}
}

func topLevel(id uuid.UUID, target domain.TargetRef, createdAt time.Time, author string) commentrepo.WithAuthor {
	return commentrepo.WithAuthor{
		Comment: domain.Comment{
			ID:        id,
			Content:   "comment",
			UserID:    uuid.New(),
			Target:    target,
			CreatedAt: createdAt,
		},
		Author: domain.PostedBy{ID: uuid.New(), Username: author},
	}
}

func reply(id uuid.UUID, target domain.TargetRef, parentID uuid.UUID, createdAt time.Time, author string) commentrepo.WithAuthor {
	c := topLevel(id, target, createdAt, author)
	c.ParentID = &parentID
	return c
}
