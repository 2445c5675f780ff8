package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"tourane/db"
	"tourane/globals"
	"tourane/models"
	"tourane/rdx"
	"tourane/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
	tokenHash       = "tokki" // redis hash of live access tokens per user
)

type authClaims struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func generateAccessToken(user models.User) (string, error) {
	claims := authClaims{
		Name:   user.Name,
		UserID: user.UserID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register creates an account. Guides start pending and get an
// unapproved GuideProfile alongside the account.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name           string   `json:"name"`
		Email          string   `json:"email"`
		Phone          string   `json:"phone"`
		Password       string   `json:"password"`
		Role           string   `json:"role"`
		Languages      []string `json:"languages"`
		Certifications []string `json:"certifications"`
		Bio            string   `json:"bio"`
		PricePerDay    float64  `json:"pricePerDay"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	role := input.Role
	if role != models.RoleGuide {
		role = models.RoleUser
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Email already in use")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := time.Now().UTC()
	status := models.StatusActive
	if role == models.RoleGuide {
		status = models.StatusPending
	}

	user := models.User{
		UserID:       utils.GetUUID(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Status:       status,
		Phone:        strings.TrimSpace(input.Phone),
		Languages:    input.Languages,
		Bio:          input.Bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	if role == models.RoleGuide {
		profile := models.GuideProfile{
			ProfileID:      utils.GetUUID(),
			UserID:         user.UserID,
			Languages:      input.Languages,
			Certifications: input.Certifications,
			Bio:            input.Bio,
			PricePerDay:    input.PricePerDay,
			Approved:       false,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := db.GuideProfilesCollection.InsertOne(ctx, profile); err != nil {
			log.Printf("guide profile create failed for %s: %v", user.UserID, err)
		}
	}

	token, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	message := "Registration successful"
	if role == models.RoleGuide {
		message = "Registration successful, awaiting admin approval"
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": message,
		"token":   token,
		"user": utils.M{
			"userid": user.UserID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   user.Role,
			"status": user.Status,
		},
	})
}

// Login verifies credentials and issues access + refresh tokens.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	switch {
	case user.Status == models.StatusSuspended:
		utils.RespondWithError(w, http.StatusForbidden, "Account suspended")
		return
	case user.Role == models.RoleGuide && user.Status == models.StatusPending:
		utils.RespondWithError(w, http.StatusForbidden, "Guide account awaiting approval")
		return
	case user.Role == models.RoleGuide && user.Status == models.StatusRejected:
		utils.RespondWithError(w, http.StatusForbidden, "Guide application was rejected")
		return
	}

	tokenString, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	now := time.Now().UTC()
	expiry := now.Add(refreshTokenTTL)
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashToken(refreshToken),
			"refresh_expiry": expiry,
			"last_login":     now,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}

	if err := rdx.RdxHset(tokenHash, user.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":      true,
		"message":      "Login successful",
		"token":        tokenString,
		"refreshToken": refreshToken,
		"user": utils.M{
			"userid": user.UserID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   user.Role,
			"status": user.Status,
		},
	})
}

// Logout drops the cached access token and invalidates the refresh token.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, _ = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$unset": bson.M{"refresh_token": "", "refresh_expiry": ""}},
	)
	if err := rdx.RdxHdel(tokenHash, userID); err != nil {
		log.Printf("Redis token removal failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Logged out"})
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		UserID       string `json:"userid"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.UserID == "" || input.RefreshToken == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": input.UserID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unknown account")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if user.RefreshToken == "" || user.RefreshToken != hashToken(input.RefreshToken) ||
		user.RefreshExpiry == nil || user.RefreshExpiry.Before(time.Now()) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	tokenString, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	if err := rdx.RdxHset(tokenHash, user.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "token": tokenString})
}
