package services

import (
	"errors"
	"testing"

	"github.com/conduitapp/conduit/internal/types"
)

func TestRegisterUserNormalizes(t *testing.T) {
	db := newTestDB(t)

	user, err := RegisterUser(db, "  Ana42 ", "Ana42@Example.COM", "secret")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	if user.Username != "ana42" {
		t.Errorf("Expected lowercased username ana42, got %s", user.Username)
	}
	if user.Email != "ana42@example.com" {
		t.Errorf("Expected lowercased email, got %s", user.Email)
	}
	if user.Hash == "" || user.Salt == "" {
		t.Error("Expected stored credentials after registration")
	}
	if user.ID == 0 {
		t.Error("Expected a persisted id")
	}
}

func TestRegisterUserValidation(t *testing.T) {
	db := newTestDB(t)

	_, err := RegisterUser(db, "", "", "")
	var validation *types.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	for _, field := range []string{"username", "email", "password"} {
		if validation.Errors[field] != "can't be blank" {
			t.Errorf("Expected %s to be flagged blank, got %q", field, validation.Errors[field])
		}
	}

	_, err = RegisterUser(db, "has spaces", "not-an-email", "pw")
	if !errors.As(err, &validation) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	if validation.Errors["username"] != "is invalid" {
		t.Errorf("Expected invalid username message, got %q", validation.Errors["username"])
	}
	if validation.Errors["email"] != "is invalid" {
		t.Errorf("Expected invalid email message, got %q", validation.Errors["email"])
	}
}

func TestRegisterUserDuplicates(t *testing.T) {
	db := newTestDB(t)

	if _, err := RegisterUser(db, "ana", "ana@example.com", "secret"); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	_, err := RegisterUser(db, "ana", "other@example.com", "secret")
	var validation *types.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Expected a validation error for duplicate username, got %v", err)
	}
	if validation.Errors["username"] != "is already taken" {
		t.Errorf("Expected username taken message, got %v", validation.Errors)
	}

	_, err = RegisterUser(db, "other", "ana@example.com", "secret")
	if !errors.As(err, &validation) {
		t.Fatalf("Expected a validation error for duplicate email, got %v", err)
	}
	if validation.Errors["email"] != "is already taken" {
		t.Errorf("Expected email taken message, got %v", validation.Errors)
	}
}

func TestAuthenticateUser(t *testing.T) {
	db := newTestDB(t)

	if _, err := RegisterUser(db, "ana", "ana@example.com", "secret"); err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	user, err := AuthenticateUser(db, "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Expected login to succeed, got %v", err)
	}
	if user.Username != "ana" {
		t.Errorf("Expected ana, got %s", user.Username)
	}

	// Wrong password and unknown email collapse into the same failure.
	var validation *types.ValidationError
	_, err = AuthenticateUser(db, "ana@example.com", "wrong")
	if !errors.As(err, &validation) || validation.Errors["email or password"] != "is invalid" {
		t.Errorf("Expected generic invalid-credentials error for wrong password, got %v", err)
	}
	_, err = AuthenticateUser(db, "nobody@example.com", "secret")
	if !errors.As(err, &validation) || validation.Errors["email or password"] != "is invalid" {
		t.Errorf("Expected generic invalid-credentials error for unknown email, got %v", err)
	}

	_, err = AuthenticateUser(db, "", "")
	if !errors.As(err, &validation) {
		t.Fatalf("Expected validation error for blank credentials, got %v", err)
	}
	if validation.Errors["email"] != "can't be blank" || validation.Errors["password"] != "can't be blank" {
		t.Errorf("Expected blank-field messages, got %v", validation.Errors)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	db := newTestDB(t)

	user, err := RegisterUser(db, "ana", "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Registration failed: %v", err)
	}
	originalHash := user.Hash

	bio := "gopher"
	if err := UpdateUser(db, user, UserUpdateInput{Bio: &bio}); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	reloaded, err := GetUserByID(db, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if reloaded.Bio != "gopher" {
		t.Errorf("Expected updated bio, got %q", reloaded.Bio)
	}
	if reloaded.Username != "ana" || reloaded.Email != "ana@example.com" {
		t.Errorf("Expected untouched identity fields, got %s / %s", reloaded.Username, reloaded.Email)
	}
	if reloaded.Hash != originalHash {
		t.Error("Expected credentials untouched when password is absent")
	}

	password := "newsecret"
	if err := UpdateUser(db, user, UserUpdateInput{Password: &password}); err != nil {
		t.Fatalf("UpdateUser with password failed: %v", err)
	}
	if _, err := AuthenticateUser(db, "ana@example.com", "newsecret"); err != nil {
		t.Errorf("Expected new password to authenticate, got %v", err)
	}

	blank := ""
	err = UpdateUser(db, user, UserUpdateInput{Password: &blank})
	var validation *types.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("Expected validation error for blank password, got %v", err)
	}
}

func TestUpdateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ana")
	bob := seedUser(t, db, "bob")

	taken := "ana"
	err := UpdateUser(db, bob, UserUpdateInput{Username: &taken})
	var validation *types.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Expected validation error for taken username, got %v", err)
	}
	if validation.Errors["username"] != "is already taken" {
		t.Errorf("Expected username taken message, got %v", validation.Errors)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db := newTestDB(t)

	if _, err := GetUserByID(db, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound by id, got %v", err)
	}
	if _, err := GetUserByUsername(db, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound by username, got %v", err)
	}
}
