// Package service implements the business logic between handlers and
// repositories.
package service

import (
	"context"

	"orbit/internal/models"
	"orbit/internal/repository"
	"orbit/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries everything the registration cascade needs, including
// the request circumstances recorded in UserMetaData.
type RegisterInput struct {
	FirstName        string
	LastName         string
	Email            string
	Password         string
	ProfileImageName string
	IP               string
	Device           string
}

// BioInput carries the editable bio fields. Every field is written as
// submitted; an absent field clears the stored value.
type BioInput struct {
	About    *string
	WorkedAt *string
	School   *string
	Lives    *string
	From     *string
}

// AuthUserView is the merged self-view returned by the me endpoint: the user
// row plus every side table.
type AuthUserView struct {
	User     *models.User
	MetaData *models.UserMetaData
	Privacy  *models.UserPrivacy
	Images   *models.UserImages
	Bio      *models.UserBio
	Logins   []models.UserLogin
}

// AccountService owns the account lifecycle: registration, credentials,
// self-view aggregation, owner edits and account deletion.
type AccountService struct {
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	profileRepo repository.ProfileRepository
}

// NewAccountService returns a new AccountService.
func NewAccountService(userRepo repository.UserRepository, accountRepo repository.AccountRepository, profileRepo repository.ProfileRepository) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		profileRepo: profileRepo,
	}
}

// Register validates the input, hashes the password and runs the registration
// cascade that provisions every side table.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) error {
	if err := validation.ValidateRegistration(in.FirstName, in.LastName, in.Email, in.Password); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashed),
	}
	return s.accountRepo.Register(ctx, user, in.ProfileImageName, in.IP, in.Device)
}

// Login verifies credentials and returns the user with their images row for
// the login response body.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, *models.UserImages, error) {
	if email == "" || password == "" {
		return nil, nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewNotFoundError("There is no user with that e-mail address.")
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		return nil, nil, models.NewValidationError("Password is incorrect.")
	}

	images, err := s.profileRepo.GetImages(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, images, nil
}

// Me assembles the authenticated user's full self-view across all side
// tables. Empty login history passes through as an empty list.
func (s *AccountService) Me(ctx context.Context, userID uint) (*AuthUserView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	meta, err := s.profileRepo.GetMetaData(ctx, userID)
	if err != nil {
		return nil, err
	}
	privacy, err := s.profileRepo.GetPrivacy(ctx, userID)
	if err != nil {
		return nil, err
	}
	images, err := s.profileRepo.GetImages(ctx, userID)
	if err != nil {
		return nil, err
	}
	bio, err := s.profileRepo.GetBio(ctx, userID)
	if err != nil {
		return nil, err
	}
	logins, err := s.profileRepo.GetLogins(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AuthUserView{
		User:     user,
		MetaData: meta,
		Privacy:  privacy,
		Images:   images,
		Bio:      bio,
		Logins:   logins,
	}, nil
}

// EditInformations replaces the user's name and email fields.
func (s *AccountService) EditInformations(ctx context.Context, userID uint, firstName, lastName, email string) (*models.User, error) {
	if err := validation.ValidateName("first name", firstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EditBio overwrites the bio row with the submitted fields.
func (s *AccountService) EditBio(ctx context.Context, userID uint, in BioInput) (*models.UserBio, error) {
	bio, err := s.profileRepo.GetBio(ctx, userID)
	if err != nil {
		return nil, err
	}

	bio.About = in.About
	bio.WorkedAt = in.WorkedAt
	bio.School = in.School
	bio.Lives = in.Lives
	bio.From = in.From
	if err := s.profileRepo.SaveBio(ctx, bio); err != nil {
		return nil, err
	}
	return bio, nil
}

// ChangeAccountPrivacy toggles the profile lock and returns the message
// describing the new state.
func (s *AccountService) ChangeAccountPrivacy(ctx context.Context, userID uint) (string, error) {
	locked, err := s.profileRepo.TogglePrivacy(ctx, userID)
	if err != nil {
		return "", err
	}
	if locked {
		return "You changed your profile privacy to private from public", nil
	}
	return "You changed your profile privacy to public from private", nil
}

// DeleteAccount runs the full deletion cascade.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.accountRepo.Delete(ctx, userID)
}
