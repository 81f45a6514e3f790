package micropost

import "time"

const MaxContentLen = 140

type Micropost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Content   string    `gorm:"size:140" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is published to Kafka on every post mutation.
type Event struct {
	Type      string    `json:"type"` // "created" | "deleted"
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
