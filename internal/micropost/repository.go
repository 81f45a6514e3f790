package micropost

import (
	"errors"
	"strings"

	"microblog-service/internal/shared/apperr"
	"microblog-service/internal/util"

	"gorm.io/gorm"
)

// Every read method returns newest-first: created_at DESC with ties in
// insertion order. The ordering is an explicit postcondition here, not a
// store-wide default scope.
const newestFirst = "created_at DESC, id ASC"

type Repository interface {
	Create(ownerID uint, content string) (*Micropost, error)
	GetByID(id uint) (*Micropost, error)
	Delete(id uint) error
	ListByOwner(ownerID uint, limit, offset int) ([]Micropost, error)
	ListByOwners(ownerIDs []uint, limit, offset int) ([]Micropost, error)
}

type repo struct {
	db    *gorm.DB
	clock util.Clock
}

func NewRepository(db *gorm.DB, clock util.Clock) Repository {
	return &repo{db: db, clock: clock}
}

func (r *repo) Create(ownerID uint, content string) (*Micropost, error) {
	if ownerID == 0 {
		return nil, apperr.Validation("user_id", "required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("content", "required")
	}
	if len([]rune(content)) > MaxContentLen {
		return nil, apperr.Validation("content", "too long")
	}
	p := &Micropost{UserID: ownerID, Content: content, CreatedAt: r.clock.NowUtc()}
	if err := r.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) GetByID(id uint) (*Micropost, error) {
	var p Micropost
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete does not re-check ownership; authorization is the service's job.
func (r *repo) Delete(id uint) error {
	res := r.db.Delete(&Micropost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repo) ListByOwner(ownerID uint, limit, offset int) ([]Micropost, error) {
	var posts []Micropost
	if err := r.db.Where("user_id = ?", ownerID).
		Order(newestFirst).
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repo) ListByOwners(ownerIDs []uint, limit, offset int) ([]Micropost, error) {
	if len(ownerIDs) == 0 {
		return []Micropost{}, nil
	}
	var posts []Micropost
	if err := r.db.Where("user_id IN ?", ownerIDs).
		Order(newestFirst).
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
