package content

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	dealrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/deal"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

func TestCreateDeal_Anonymous(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubDealRepo{}, stubVoteRepo{}, stubCommentRepo{})

	_, err := svc.CreateDeal(context.Background(), CreateDealInput{
		Title:       "Cheap SSD",
		Description: "1TB for 59.99",
		Price:       59.99,
		Merchant:    "TechStore",
		Category:    domain.CategoryElectronics,
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("CreateDeal() anonymous = %v, want ErrUnauthorized", err)
	}
}

func TestCreateDeal_Validation(t *testing.T) {
	t.Parallel()

	negative := -1.0
	belowPrice := 10.0

	tests := []struct {
		name  string
		input CreateDealInput
	}{
		{"empty title", CreateDealInput{Description: "d", Price: 1, Merchant: "m", Category: domain.CategoryOther}},
		{"empty description", CreateDealInput{Title: "t", Price: 1, Merchant: "m", Category: domain.CategoryOther}},
		{"empty merchant", CreateDealInput{Title: "t", Description: "d", Price: 1, Category: domain.CategoryOther}},
		{"bad category", CreateDealInput{Title: "t", Description: "d", Price: 1, Merchant: "m", Category: "GADGETS"}},
		{"negative price", CreateDealInput{Title: "t", Description: "d", Price: negative, Merchant: "m", Category: domain.CategoryOther}},
		{
			"original below price",
			CreateDealInput{Title: "t", Description: "d", Price: 20, OriginalPrice: &belowPrice, Merchant: "m", Category: domain.CategoryOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t, &stubDealRepo{}, stubVoteRepo{}, stubCommentRepo{})
			_, err := svc.CreateDeal(authedCtx(uuid.New()), tt.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("CreateDeal() = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateDeal_SlugCollision(t *testing.T) {
	t.Parallel()

	repo := &stubDealRepo{
		slugExistsFn: func(_ context.Context, slug string) (bool, error) {
			return slug == "cheap-ssd", nil
		},
	}
	svc := newTestService(t, repo, stubVoteRepo{}, stubCommentRepo{})

	created, err := svc.CreateDeal(authedCtx(uuid.New()), CreateDealInput{
		Title:       "Cheap SSD",
		Description: "1TB for 59.99",
		Price:       59.99,
		Merchant:    "TechStore",
		Category:    domain.CategoryElectronics,
	})
	if err != nil {
		t.Fatalf("CreateDeal: %v", err)
	}
	if created.Slug != "cheap-ssd-2" {
		t.Errorf("slug = %q, want %q", created.Slug, "cheap-ssd-2")
	}
}

func TestUpdateDeal_OwnerOnly(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	dealID := uuid.New()

	repo := &stubDealRepo{
		getByIDFn: func(context.Context, uuid.UUID) (*dealrepo.WithAuthor, error) {
			return &dealrepo.WithAuthor{Deal: domain.Deal{ID: dealID, UserID: owner}}, nil
		},
	}
	svc := newTestService(t, repo, stubVoteRepo{}, stubCommentRepo{})

	newTitle := "Updated title"
	input := UpdateDealInput{ID: dealID, Params: domain.DealUpdateParams{Title: &newTitle}}

	if _, err := svc.UpdateDeal(authedCtx(uuid.New()), input); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("UpdateDeal() by stranger = %v, want ErrForbidden", err)
	}

	// Admins do not get edit rights, only the owner does.
	if _, err := svc.UpdateDeal(adminCtx(uuid.New()), input); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("UpdateDeal() by admin = %v, want ErrForbidden", err)
	}

	if _, err := svc.UpdateDeal(authedCtx(owner), input); err != nil {
		t.Errorf("UpdateDeal() by owner = %v, want nil", err)
	}
}

func TestDeleteDeal_OwnerAndAdmin(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	dealID := uuid.New()

	newRepo := func() *stubDealRepo {
		return &stubDealRepo{
			getByIDFn: func(context.Context, uuid.UUID) (*dealrepo.WithAuthor, error) {
				return &dealrepo.WithAuthor{Deal: domain.Deal{ID: dealID, UserID: owner}}, nil
			},
		}
	}

	t.Run("stranger", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, newRepo(), stubVoteRepo{}, stubCommentRepo{})
		if err := svc.DeleteDeal(authedCtx(uuid.New()), dealID); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("DeleteDeal() = %v, want ErrForbidden", err)
		}
	})

	t.Run("owner", func(t *testing.T) {
		t.Parallel()

		repo := newRepo()
		svc := newTestService(t, repo, stubVoteRepo{}, stubCommentRepo{})
		if err := svc.DeleteDeal(authedCtx(owner), dealID); err != nil {
			t.Fatalf("DeleteDeal() by owner: %v", err)
		}
		if len(repo.deleted) != 1 {
			t.Errorf("deleted = %v, want one entry", repo.deleted)
		}
	})

	t.Run("admin", func(t *testing.T) {
		t.Parallel()

		repo := newRepo()
		svc := newTestService(t, repo, stubVoteRepo{}, stubCommentRepo{})
		if err := svc.DeleteDeal(adminCtx(uuid.New()), dealID); err != nil {
			t.Fatalf("DeleteDeal() by admin: %v", err)
		}
		if len(repo.deleted) != 1 {
			t.Errorf("deleted = %v, want one entry", repo.deleted)
		}
	})
}

func TestGetDealBySlug_View(t *testing.T) {
	t.Parallel()

	dealID := uuid.New()
	alice := uuid.New()

	repo := &stubDealRepo{
		getBySlugFn: func(_ context.Context, slug string) (*dealrepo.WithAuthor, error) {
			if slug != "cheap-ssd" {
				return nil, domain.ErrNotFound
			}
			return &dealrepo.WithAuthor{
				Deal:   domain.Deal{ID: dealID, Slug: slug, Title: "Cheap SSD"},
				Author: domain.PostedBy{ID: uuid.New(), Username: "bob"},
			}, nil
		},
	}
	votes := stubVoteRepo{votes: []domain.Vote{
		{ID: uuid.New(), UserID: alice, Target: domain.TargetRef{DealID: &dealID}, Type: domain.VoteUp},
		{ID: uuid.New(), UserID: uuid.New(), Target: domain.TargetRef{DealID: &dealID}, Type: domain.VoteUp},
	}}
	comments := stubCommentRepo{counts: map[uuid.UUID]int{dealID: 4}}

	svc := newTestService(t, repo, votes, comments)

	view, err := svc.GetDealBySlug(authedCtx(alice), "cheap-ssd")
	if err != nil {
		t.Fatalf("GetDealBySlug: %v", err)
	}
	if view.Score != 2 {
		t.Errorf("score = %d, want 2", view.Score)
	}
	if view.CommentCount != 4 {
		t.Errorf("commentCount = %d, want 4", view.CommentCount)
	}
	if view.UserVote == nil || *view.UserVote != domain.VoteUp {
		t.Errorf("userVote = %v, want UP", view.UserVote)
	}
	if view.PostedBy.Username != "bob" {
		t.Errorf("postedBy = %q, want bob", view.PostedBy.Username)
	}

	if _, err := svc.GetDealBySlug(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetDealBySlug(missing) = %v, want ErrNotFound", err)
	}
}
