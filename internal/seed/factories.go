package seed

import (
	"math/rand"
	"time"

	"orbit/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a sample user with the full side-table set the
// registration cascade would have created. All seed users share the password
// "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
	}
	for _, override := range overrides {
		override(user)
	}

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserPrivacy{UserID: user.ID, ProfileIsLocked: f.r.Intn(4) == 0}).Error; err != nil {
			return err
		}
		about := gofakeit.Sentence(10)
		lives := gofakeit.City()
		bio := models.UserBio{UserID: user.ID, About: &about, Lives: &lives}
		if err := tx.Create(&bio).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserImages{UserID: user.ID}).Error; err != nil {
			return err
		}
		meta := models.UserMetaData{
			UserID:           user.ID,
			RegisteredIP:     gofakeit.IPv4Address(),
			RegisteredDevice: gofakeit.UserAgent(),
		}
		if err := tx.Create(&meta).Error; err != nil {
			return err
		}
		return tx.Create(&models.Friendship{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a sample post for the user with a realistic created_at
// spread over the last 90 days.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:  user.ID,
		Content: gofakeit.Paragraph(1, 3, 5, "\n"),
	}
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a sample comment by the user on the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(12),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
