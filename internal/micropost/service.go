package micropost

import (
	"context"
	"fmt"
	"log"
	"time"

	"microblog-service/internal/kafka"
	"microblog-service/internal/shared/apperr"
)

type Service interface {
	Create(actingUserID uint, content string) (*Micropost, error)
	Destroy(actingUserID, postID uint) error
	ListMine(actingUserID uint, limit, offset int) ([]Micropost, error)
}

type service struct {
	repo   Repository
	events kafka.Writer
}

func NewService(repo Repository, events kafka.Writer) Service {
	return &service{repo: repo, events: events}
}

func (s *service) Create(actingUserID uint, content string) (*Micropost, error) {
	p, err := s.repo.Create(actingUserID, content)
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: "created", ID: p.ID, UserID: p.UserID, Content: p.Content, CreatedAt: p.CreatedAt})
	return p, nil
}

// Destroy removes the post only when the acting user owns it. A missing post
// and someone else's post fail the same way outward; callers that need the
// distinction can unwrap ErrForbidden.
func (s *service) Destroy(actingUserID, postID uint) error {
	p, err := s.repo.GetByID(postID)
	if err != nil {
		return err
	}
	if p.UserID != actingUserID {
		return fmt.Errorf("micropost %d: %w", postID, apperr.ErrForbidden)
	}
	if err := s.repo.Delete(postID); err != nil {
		return err
	}
	s.publish(Event{Type: "deleted", ID: p.ID, UserID: p.UserID, CreatedAt: p.CreatedAt})
	return nil
}

func (s *service) ListMine(actingUserID uint, limit, offset int) ([]Micropost, error) {
	return s.repo.ListByOwner(actingUserID, limit, offset)
}

// publish is best-effort: feed correctness never depends on the event stream.
func (s *service) publish(ev Event) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.events.WriteJSON(ctx, fmt.Sprintf("%d", ev.UserID), ev); err != nil {
		log.Printf("micropost event publish: %v", err)
	}
}
