package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/conduitapp/conduit/internal/models"
	"github.com/conduitapp/conduit/internal/types"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9]+$`)
	emailPattern    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// UserUpdateInput carries a partial account update. Nil fields are left
// untouched; this mirrors the contract that absent request fields must never
// overwrite stored values.
type UserUpdateInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
	Password *string `json:"password"`
}

// RegisterUser validates and persists a new account. Username and email are
// lowercased before validation and must be globally unique.
func RegisterUser(db *gorm.DB, username, email, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	errs := map[string]string{}
	validateUsername(errs, username)
	validateEmail(errs, email)
	if password == "" {
		errs["password"] = "can't be blank"
	}
	if len(errs) > 0 {
		return nil, &types.ValidationError{Errors: errs}
	}

	user := &models.User{
		Username: username,
		Email:    email,
	}
	if err := SetPassword(user, password); err != nil {
		return nil, err
	}

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateUserError(db, username, email)
		}
		return nil, err
	}

	return user, nil
}

// AuthenticateUser resolves an account by email and verifies the plaintext
// against the stored credential pair. Both a missing account and a bad
// password collapse into the same validation failure so callers cannot probe
// for registered emails.
func AuthenticateUser(db *gorm.DB, email, password string) (*models.User, error) {
	errs := map[string]string{}
	if email == "" {
		errs["email"] = "can't be blank"
	}
	if password == "" {
		errs["password"] = "can't be blank"
	}
	if len(errs) > 0 {
		return nil, &types.ValidationError{Errors: errs}
	}

	var user models.User
	err := db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewValidationError("email or password", "is invalid")
		}
		return nil, err
	}

	if !ValidatePassword(&user, password) {
		return nil, types.NewValidationError("email or password", "is invalid")
	}

	return &user, nil
}

// UpdateUser applies the non-nil fields of input to the user and persists it.
// A nil password field leaves the credential pair untouched.
func UpdateUser(db *gorm.DB, user *models.User, input UserUpdateInput) error {
	errs := map[string]string{}

	if input.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*input.Username))
		validateUsername(errs, username)
		user.Username = username
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		validateEmail(errs, email)
		user.Email = email
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Image != nil {
		user.Image = *input.Image
	}
	if len(errs) > 0 {
		return &types.ValidationError{Errors: errs}
	}

	if input.Password != nil {
		if *input.Password == "" {
			return types.NewValidationError("password", "can't be blank")
		}
		if err := SetPassword(user, *input.Password); err != nil {
			return err
		}
	}

	if err := db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return duplicateUserError(db.Where("id <> ?", user.ID), user.Username, user.Email)
		}
		return err
	}
	return nil
}

// GetUserByID resolves an account by primary key.
func GetUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername resolves an account by its unique username.
func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", strings.ToLower(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func validateUsername(errs map[string]string, username string) {
	if username == "" {
		errs["username"] = "can't be blank"
	} else if !usernamePattern.MatchString(username) {
		errs["username"] = "is invalid"
	}
}

func validateEmail(errs map[string]string, email string) {
	if email == "" {
		errs["email"] = "can't be blank"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "is invalid"
	}
}

// duplicateUserError maps a unique-constraint violation to the field that
// caused it by checking which value already exists.
func duplicateUserError(db *gorm.DB, username, email string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
		return types.NewValidationError("username", "is already taken")
	}
	return types.NewValidationError("email", "is already taken")
}
