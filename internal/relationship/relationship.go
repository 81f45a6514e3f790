package relationship

import "time"

// Relationship is a directed follow edge: follower receives followed's posts.
// The composite primary key keeps the pair unique.
type Relationship struct {
	FollowerID uint      `gorm:"primaryKey" json:"follower_id"`
	FollowedID uint      `gorm:"primaryKey" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}
