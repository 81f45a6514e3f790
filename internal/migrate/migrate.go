package migrate

import (
	"microblog-service/internal/micropost"
	"microblog-service/internal/relationship"
	"microblog-service/internal/user"

	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&relationship.Relationship{},
		&micropost.Micropost{},
	)
}
