package voting

import (
	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/domain"
)

// ComputeScore derives a target's score from its votes: upvotes minus
// downvotes. No votes means zero; scores go negative freely.
func ComputeScore(votes []domain.Vote) int {
	score := 0
	for _, v := range votes {
		switch v.Type {
		case domain.VoteUp:
			score++
		case domain.VoteDown:
			score--
		}
	}
	return score
}

// ResolveUserVote returns the given user's vote type within votes, or
// nil when the user has not voted. At most one vote per user exists on
// a target, so the first match wins.
func ResolveUserVote(votes []domain.Vote, userID uuid.UUID) *domain.VoteType {
	if userID == uuid.Nil {
		return nil
	}
	for _, v := range votes {
		if v.UserID == userID {
			t := v.Type
			return &t
		}
	}
	return nil
}

// ScoresByTarget folds a mixed vote list into per-target scores.
func ScoresByTarget(votes []domain.Vote) map[uuid.UUID]int {
	scores := make(map[uuid.UUID]int)
	for _, v := range votes {
		switch v.Type {
		case domain.VoteUp:
			scores[v.Target.ID()]++
		case domain.VoteDown:
			scores[v.Target.ID()]--
		}
	}
	return scores
}

// UserVotesByTarget folds a mixed vote list into the given user's vote
// per target. An empty map is returned for the nil user.
func UserVotesByTarget(votes []domain.Vote, userID uuid.UUID) map[uuid.UUID]domain.VoteType {
	result := make(map[uuid.UUID]domain.VoteType)
	if userID == uuid.Nil {
		return result
	}
	for _, v := range votes {
		if v.UserID == userID {
			result[v.Target.ID()] = v.Type
		}
	}
	return result
}
