package relationship

import (
	"errors"

	"microblog-service/internal/shared/apperr"
	"microblog-service/internal/user"

	"gorm.io/gorm"
)

type Repository interface {
	Follow(followerID, followedID uint) error
	Unfollow(followerID, followedID uint) error
	IsFollowing(followerID, followedID uint) (bool, error)
	FollowedIDs(followerID uint) ([]uint, error)
	ListFollowing(followerID uint, limit, offset int) ([]uint, error)
	ListFollowers(followedID uint, limit, offset int) ([]uint, error)
}

type repo struct {
	db    *gorm.DB
	users user.Repository
}

func NewRepository(db *gorm.DB, ur user.Repository) Repository {
	return &repo{db: db, users: ur}
}

func (r *repo) ensureUser(id uint) error {
	_, err := r.users.GetByID(id)
	return err
}

func (r *repo) Follow(followerID, followedID uint) error {
	if followerID == followedID {
		return apperr.Validation("followed_id", "cannot follow self")
	}
	if err := r.ensureUser(followedID); err != nil {
		return apperr.Validation("followed_id", "target not found")
	}
	ok, err := r.IsFollowing(followerID, followedID)
	if err != nil {
		return err
	}
	if ok {
		return apperr.Validation("followed_id", "already followed")
	}
	return r.db.Create(&Relationship{FollowerID: followerID, FollowedID: followedID}).Error
}

// Unfollow destroys the edge and reports an error when it does not exist,
// mirroring a destroy-a-record-that-must-exist contract.
func (r *repo) Unfollow(followerID, followedID uint) error {
	res := r.db.Delete(&Relationship{}, "follower_id = ? AND followed_id = ?", followerID, followedID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repo) IsFollowing(followerID, followedID uint) (bool, error) {
	var rel Relationship
	err := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *repo) FollowedIDs(followerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&Relationship{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) ListFollowing(followerID uint, limit, offset int) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&Relationship{}).
		Where("follower_id = ?", followerID).Order("created_at DESC").
		Limit(limit).Offset(offset).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) ListFollowers(followedID uint, limit, offset int) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&Relationship{}).
		Where("followed_id = ?", followedID).Order("created_at DESC").
		Limit(limit).Offset(offset).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
