package feed

import (
	"microblog-service/internal/micropost"
	"microblog-service/internal/relationship"
)

// Service recomputes the home feed on every call from the follow graph and
// the post store. There is no materialized feed and no cache: the invariant
// is the membership set, the ordering comes from the store.
type Service interface {
	Home(userID uint, limit, offset int) ([]micropost.Micropost, error)
}

type service struct {
	follows relationship.Repository
	posts   micropost.Repository
}

func NewService(follows relationship.Repository, posts micropost.Repository) Service {
	return &service{follows: follows, posts: posts}
}

func (s *service) Home(userID uint, limit, offset int) ([]micropost.Micropost, error) {
	ids, err := s.follows.FollowedIDs(userID)
	if err != nil {
		return nil, err
	}
	owners := append(ids, userID)
	items, err := s.posts.ListByOwners(owners, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		// An empty feed is a normal result, never a fault.
		items = []micropost.Micropost{}
	}
	return items, nil
}
