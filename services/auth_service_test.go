package services

import (
	"testing"
	"time"

	"github.com/atelier-studio/atelier-api/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-signing-secret"

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	hash, err := HashPassword("atelier-pass")
	assert.NoError(t, err)

	user := models.User{Name: "Maria Chen", Email: "designer@atelier.com", Password: hash, Role: "designer"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	svc := NewAuthService(db, testSecret, time.Hour)

	loggedIn, token, err := svc.Login("designer@atelier.com", "atelier-pass")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	// The token carries the user ID as subject and is signed with our secret
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	hash, err := HashPassword("atelier-pass")
	assert.NoError(t, err)

	user := models.User{Name: "Maria Chen", Email: "designer@atelier.com", Password: hash, Role: "designer"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	svc := NewAuthService(db, testSecret, time.Hour)

	_, _, err = svc.Login("designer@atelier.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)

	_, _, err := svc.Login("nobody@atelier.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	db := setupTestDB(t)
	designer := seedDesigner(t, db)
	svc := NewAuthService(db, testSecret, time.Hour)

	user, err := svc.GetUser(designer.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Maria Chen", user.Name)

	_, err = svc.GetUser("missing-user")
	assert.Error(t, err)
	assert.IsType(t, &ReferentialError{}, err)
}
