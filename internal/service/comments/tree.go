package comments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	commentrepo "github.com/dealboard/dealboard-backend/internal/adapter/postgres/comment"
	"github.com/dealboard/dealboard-backend/internal/domain"
	"github.com/dealboard/dealboard-backend/internal/service/voting"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// TreeFor builds the rendered comment tree for one target: top-level
// comments newest first, each carrying its replies oldest first. Every
// node gets its score and, for authenticated callers, their own vote.
func (s *Service) TreeFor(ctx context.Context, target domain.TargetRef) ([]domain.CommentNode, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	topLevel, err := s.comments.ListTopLevel(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("comments.TreeFor list top-level: %w", err)
	}

	parentIDs := make([]uuid.UUID, len(topLevel))
	for i, c := range topLevel {
		parentIDs[i] = c.ID
	}

	replies, err := s.comments.ListReplies(ctx, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("comments.TreeFor list replies: %w", err)
	}

	allIDs := make([]uuid.UUID, 0, len(topLevel)+len(replies))
	allIDs = append(allIDs, parentIDs...)
	for _, r := range replies {
		allIDs = append(allIDs, r.ID)
	}

	votes, err := s.votes.ListByTargets(ctx, domain.TargetComment, allIDs)
	if err != nil {
		return nil, fmt.Errorf("comments.TreeFor list votes: %w", err)
	}

	// Anonymous callers get nil user votes throughout.
	callerID, _ := ctxutil.UserIDFromCtx(ctx)
	scores := voting.ScoresByTarget(votes)
	userVotes := voting.UserVotesByTarget(votes, callerID)

	byParent := make(map[uuid.UUID][]commentrepo.WithAuthor, len(topLevel))
	for _, r := range replies {
		if r.ParentID == nil {
			continue
		}
		byParent[*r.ParentID] = append(byParent[*r.ParentID], r)
	}

	tree := make([]domain.CommentNode, 0, len(topLevel))
	for _, c := range topLevel {
		node := buildNode(c, scores, userVotes)
		children := byParent[c.ID]
		node.Replies = make([]domain.CommentNode, 0, len(children))
		for _, r := range children {
			node.Replies = append(node.Replies, buildNode(r, scores, userVotes))
		}
		tree = append(tree, node)
	}

	return tree, nil
}

func buildNode(c commentrepo.WithAuthor, scores map[uuid.UUID]int, userVotes map[uuid.UUID]domain.VoteType) domain.CommentNode {
	node := domain.CommentNode{
		ID:        c.ID,
		Content:   c.Content,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		PostedBy:  c.Author,
		Score:     scores[c.ID],
		Replies:   []domain.CommentNode{},
	}
	if vt, ok := userVotes[c.ID]; ok {
		node.UserVote = &vt
	}
	return node
}
