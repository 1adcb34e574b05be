// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"

	"orbit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder orchestrates demo data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll truncates every application table. Order matters under foreign key
// enforcement: content first, side tables next, users last.
func (s *Seeder) ClearAll() error {
	log.Println("Cleaning database...")
	tables := []interface{}{
		&models.CommentLike{},
		&models.Comment{},
		&models.PostLike{},
		&models.PostFile{},
		&models.Post{},
		&models.FriendEdge{},
		&models.Friendship{},
		&models.UserLogin{},
		&models.UserMetaData{},
		&models.UserImages{},
		&models.UserBio{},
		&models.UserPrivacy{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}
	return nil
}

// SeedUsers creates n fully provisioned accounts.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))
	return users, nil
}

// SeedFriendships links random user pairs symmetrically, roughly edgesPerUser
// friends each.
func (s *Seeder) SeedFriendships(users []*models.User, edgesPerUser int) error {
	if len(users) < 2 {
		return nil
	}
	count := 0
	for i, user := range users {
		for j := 0; j < edgesPerUser; j++ {
			other := users[(i+j+1)%len(users)]
			if other.ID == user.ID {
				continue
			}
			pair := []models.FriendEdge{
				{UserID: user.ID, FriendID: other.ID},
				{UserID: other.ID, FriendID: user.ID},
			}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&pair).Error; err != nil {
				return err
			}
			count++
		}
	}
	log.Printf("Created %d friendships", count)
	return nil
}

// SeedEngagement creates posts with likes and comments spread across users.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) error {
	if len(users) == 0 {
		return nil
	}
	for i := 0; i < numPosts; i++ {
		author := users[i%len(users)]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return err
		}

		for j := 0; j < len(users)/3; j++ {
			liker := users[(i+j)%len(users)]
			like := models.PostLike{UserID: liker.ID, PostID: post.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
		}

		for j := 0; j < 2; j++ {
			commenter := users[(i+j+1)%len(users)]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return err
			}
		}
	}
	log.Printf("Created %d posts with likes and comments", numPosts)
	return nil
}
