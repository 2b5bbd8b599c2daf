package feed

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	dealrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/deal"
	"github.com/dealboard/dealboard-backend/internal/config"
	"github.com/dealboard/dealboard-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type fakeDealRepo struct {
	window     []dealrepo.WithAuthor
	discussed  []dealrepo.WithCount
	lastFilter dealrepo.Filter
}

func (f *fakeDealRepo) List(_ context.Context, filter dealrepo.Filter) ([]dealrepo.WithAuthor, error) {
	f.lastFilter = filter
	return f.window, nil
}

func (f *fakeDealRepo) MostDiscussed(_ context.Context, limit int) ([]dealrepo.WithCount, error) {
	if limit > len(f.discussed) {
		limit = len(f.discussed)
	}
	return f.discussed[:limit], nil
}

// fakeViewBuilder stamps canned scores onto rows, standing in for the
// content service's annotation queries.
type fakeViewBuilder struct {
	scores map[uuid.UUID]int
	counts map[uuid.UUID]int
}

func (f fakeViewBuilder) DealViews(_ context.Context, items []dealrepo.WithAuthor) ([]domain.DealView, error) {
	views := make([]domain.DealView, len(items))
	for i, d := range items {
		views[i] = domain.DealView{
			Deal:         d.Deal,
			PostedBy:     d.Author,
			Score:        f.scores[d.ID],
			CommentCount: f.counts[d.ID],
		}
	}
	return views, nil
}

func testCfg() config.FeedConfig {
	return config.FeedConfig{HottestWindow: 50, HottestLimit: 3, PageSize: 20}
}

func deal(id uuid.UUID, title string) dealrepo.WithAuthor {
	return dealrepo.WithAuthor{
		Deal:   domain.Deal{ID: id, Title: title},
		Author: domain.PostedBy{ID: uuid.New(), Username: "poster"},
	}
}

func TestHottest_RankingAndTies(t *testing.T) {
	t.Parallel()

	// Window arrives newest first; b and c tie on score.
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	d := uuid.New()
	e := uuid.New()

	repo := &fakeDealRepo{window: []dealrepo.WithAuthor{
		deal(d, "newest"), deal(b, "tie-new"), deal(c, "tie-old"), deal(a, "top"), deal(e, "down"),
	}}
	views := fakeViewBuilder{scores: map[uuid.UUID]int{a: 10, b: 7, c: 7, d: 3, e: -1}}

	svc := NewService(testLogger(), repo, views, testCfg())

	got, err := svc.Hottest(context.Background(), 5)
	if err != nil {
		t.Fatalf("Hottest: %v", err)
	}

	// Limit above the configured cap clamps to 3.
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []uuid.UUID{a, b, c}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("hottest[%d] = %q, want id %s", i, got[i].Title, id)
		}
	}

	if repo.lastFilter.Limit != 50 {
		t.Errorf("window limit = %d, want 50", repo.lastFilter.Limit)
	}
	if repo.lastFilter.IncludeExpired {
		t.Error("hottest window must exclude expired deals")
	}
}

func TestHottest_DefaultLimit(t *testing.T) {
	t.Parallel()

	repo := &fakeDealRepo{window: []dealrepo.WithAuthor{
		deal(uuid.New(), "a"), deal(uuid.New(), "b"),
	}}
	svc := NewService(testLogger(), repo, fakeViewBuilder{}, testCfg())

	got, err := svc.Hottest(context.Background(), 0)
	if err != nil {
		t.Fatalf("Hottest: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want the whole short window", len(got))
	}
}

func TestNewest_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &fakeDealRepo{}, fakeViewBuilder{}, testCfg())

	bad := domain.Category("GADGETS")
	if _, err := svc.Newest(context.Background(), &bad, 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Newest(bad category) = %v, want ErrValidation", err)
	}
	if _, err := svc.Newest(context.Background(), nil, -1); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Newest(negative page) = %v, want ErrValidation", err)
	}
}

func TestNewest_Paging(t *testing.T) {
	t.Parallel()

	repo := &fakeDealRepo{}
	svc := NewService(testLogger(), repo, fakeViewBuilder{}, testCfg())

	category := domain.CategoryTravel
	if _, err := svc.Newest(context.Background(), &category, 3); err != nil {
		t.Fatalf("Newest: %v", err)
	}

	if repo.lastFilter.Category == nil || *repo.lastFilter.Category != category {
		t.Errorf("filter category = %v, want %s", repo.lastFilter.Category, category)
	}
	if repo.lastFilter.Limit != 20 || repo.lastFilter.Offset != 60 {
		t.Errorf("limit/offset = %d/%d, want 20/60", repo.lastFilter.Limit, repo.lastFilter.Offset)
	}
	if repo.lastFilter.IncludeExpired {
		t.Error("browse listing must exclude expired deals")
	}
}

func TestMostDiscussed_KeepsAggregateCounts(t *testing.T) {
	t.Parallel()

	a := uuid.New()
	b := uuid.New()

	repo := &fakeDealRepo{discussed: []dealrepo.WithCount{
		{WithAuthor: deal(a, "busy"), CommentCount: 12},
		{WithAuthor: deal(b, "quiet"), CommentCount: 5},
	}}
	// The view builder reports stale counts; the aggregate's numbers win.
	views := fakeViewBuilder{counts: map[uuid.UUID]int{a: 11, b: 5}}

	svc := NewService(testLogger(), repo, views, testCfg())

	got, err := svc.MostDiscussed(context.Background(), 10)
	if err != nil {
		t.Fatalf("MostDiscussed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != a || got[0].CommentCount != 12 {
		t.Errorf("first = %s count %d, want %s count 12", got[0].ID, got[0].CommentCount, a)
	}
	if got[1].CommentCount != 5 {
		t.Errorf("second count = %d, want 5", got[1].CommentCount)
	}
}

func TestMostDiscussed_ClampsLimit(t *testing.T) {
	t.Parallel()

	var discussed []dealrepo.WithCount
	for i := 0; i < 30; i++ {
		discussed = append(discussed, dealrepo.WithCount{
			WithAuthor:   deal(uuid.New(), "d"),
			CommentCount: 30 - i,
		})
	}
	repo := &fakeDealRepo{discussed: discussed}
	svc := NewService(testLogger(), repo, fakeViewBuilder{}, testCfg())

	got, err := svc.MostDiscussed(context.Background(), 100)
	if err != nil {
		t.Fatalf("MostDiscussed: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("len = %d, want page size 20", len(got))
	}
}
