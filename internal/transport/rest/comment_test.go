package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/internal/service/comments"
)

type stubCommentService struct {
	postFn func(ctx context.Context, input comments.PostCommentInput) (*domain.CommentNode, error)
}

func (s *stubCommentService) PostComment(ctx context.Context, input comments.PostCommentInput) (*domain.CommentNode, error) {
	return s.postFn(ctx, input)
}

func (s *stubCommentService) DeleteComment(context.Context, comments.DeleteCommentInput) error {
	return nil
}

func (s *stubCommentService) TreeFor(context.Context, domain.TargetRef) ([]domain.CommentNode, error) {
	return nil, nil
}

func TestPostComment_ResponseShape(t *testing.T) {
	t.Parallel()

	author := domain.PostedBy{ID: uuid.New(), Username: "alice"}
	parentID := uuid.New()

	svc := &stubCommentService{
		postFn: func(_ context.Context, input comments.PostCommentInput) (*domain.CommentNode, error) {
			return &domain.CommentNode{
				ID:        uuid.New(),
				Content:   input.Content,
				ParentID:  input.ParentID,
				CreatedAt: time.Now(),
				PostedBy:  author,
				Replies:   []domain.CommentNode{},
			}, nil
		},
	}
	h := NewCommentHandler(svc, testLogger())

	dealID := uuid.New()
	body := `{"content":"nice one","dealId":"` + dealID.String() + `","parentId":"` + parentID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Post(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not json: %v", err)
	}

	// A fresh comment must render the same fields the tree does, so
	// clients can splice it in without a refetch.
	if string(resp["score"]) != "0" {
		t.Errorf("score = %s, want 0", resp["score"])
	}
	var postedBy domain.PostedBy
	if err := json.Unmarshal(resp["postedBy"], &postedBy); err != nil {
		t.Fatalf("postedBy missing or malformed: %v", err)
	}
	if postedBy.Username != "alice" {
		t.Errorf("postedBy.name = %q, want alice", postedBy.Username)
	}
	if _, ok := resp["userVote"]; !ok {
		t.Error("missing userVote field")
	}
	var gotParent string
	if err := json.Unmarshal(resp["parentId"], &gotParent); err != nil || gotParent != parentID.String() {
		t.Errorf("parentId = %s, want %s", resp["parentId"], parentID)
	}
}
