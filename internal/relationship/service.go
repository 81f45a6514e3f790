package relationship

type Service interface {
	Follow(followerID, followedID uint) error
	Unfollow(followerID, followedID uint) error
	IsFollowing(followerID, followedID uint) (bool, error)
	ListFollowing(followerID uint, limit, offset int) ([]uint, error)
	ListFollowers(followedID uint, limit, offset int) ([]uint, error)
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Follow(followerID, followedID uint) error {
	return s.repo.Follow(followerID, followedID)
}
func (s *service) Unfollow(followerID, followedID uint) error {
	return s.repo.Unfollow(followerID, followedID)
}
func (s *service) IsFollowing(followerID, followedID uint) (bool, error) {
	return s.repo.IsFollowing(followerID, followedID)
}
func (s *service) ListFollowing(followerID uint, limit, offset int) ([]uint, error) {
	return s.repo.ListFollowing(followerID, limit, offset)
}
func (s *service) ListFollowers(followedID uint, limit, offset int) ([]uint, error) {
	return s.repo.ListFollowers(followedID, limit, offset)
}
