package database

import "orbit/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserPrivacy{},
		&models.UserBio{},
		&models.UserImages{},
		&models.UserMetaData{},
		&models.UserLogin{},
		&models.Friendship{},
		&models.FriendEdge{},
		&models.Post{},
		&models.PostFile{},
		&models.PostLike{},
		&models.Comment{},
		&models.CommentLike{},
	}
}
