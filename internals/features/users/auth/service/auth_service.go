package service

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	authDTO "kursusku_backend/internals/features/users/auth/dto"
	authModel "kursusku_backend/internals/features/users/auth/model"
	helper "kursusku_backend/internals/helpers"
)

/* ==========================
   REGISTER
   POST /api/auth/register
========================== */
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var cnt int64
	if err := db.Model(&authModel.UserModel{}).Where("email = ?", req.Email).Count(&cnt).Error; err != nil {
		log.Println("[ERROR] register email check failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register")
	}
	if cnt > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := authModel.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: hashed,
	}
	if err := db.Create(&user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
		}
		log.Println("[ERROR] register failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register")
	}

	return helper.JsonCreated(c, "Registered successfully", authDTO.FromUserModel(user))
}

/* ==========================
   LOGIN
   POST /api/auth/login
========================== */
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var user authModel.UserModel
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email or password is incorrect")
		}
		log.Println("[ERROR] login lookup failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to login")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if err := CheckPasswordHash(user.Password, req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email or password is incorrect")
	}

	return respondWithTokens(c, &user, "Logged in successfully")
}

/* ==========================
   GOOGLE SIGN-IN
   POST /api/auth/login-google
========================== */
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID token")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	if email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google account has no email")
	}

	// Match by google_id first, then by email (links an existing local
	// account), otherwise provision a new user.
	var user authModel.UserModel
	err = db.Where("google_id = ?", claimSet.Sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			name := strings.TrimSpace(claimSet.Name)
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			user = authModel.UserModel{
				UserName: name,
				Email:    email,
				Password: uuid.NewString(), // never used for login
				GoogleID: &claimSet.Sub,
			}
			if err := db.Create(&user).Error; err != nil {
				log.Println("[ERROR] google sign-in provisioning failed:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to login with Google")
			}
			return respondWithTokens(c, &user, "Logged in with Google successfully")
		}
		if err != nil {
			log.Println("[ERROR] google sign-in lookup failed:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to login with Google")
		}

		// Existing account: link the Google identity.
		if user.GoogleID == nil {
			if err := db.Model(&user).Update("google_id", claimSet.Sub).Error; err != nil {
				log.Println("[ERROR] google id link failed:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to login with Google")
			}
		}
	} else if err != nil {
		log.Println("[ERROR] google sign-in lookup failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to login with Google")
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return respondWithTokens(c, &user, "Logged in with Google successfully")
}

/* ==========================
   REFRESH
   POST /api/auth/refresh-token
========================== */
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	userID, err := ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	var user authModel.UserModel
	if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
		}
		log.Println("[ERROR] refresh lookup failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to refresh token")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return respondWithTokens(c, &user, "Token refreshed successfully")
}

/* ==========================
   LOGOUT
   POST /api/u/auth/logout
   Blacklists the presented access token until its natural expiry.
========================== */
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing bearer token")
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	expiredAt := time.Now().UTC().Add(accessTTLDefault)
	if tok, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{}); err == nil {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				expiredAt = time.Unix(int64(exp), 0).UTC()
			}
		}
	}

	row := authModel.TokenBlacklistModel{
		Token:     tokenString,
		ExpiredAt: expiredAt,
	}
	if err := db.Create(&row).Error; err != nil {
		msg := strings.ToLower(err.Error())
		// Logging out twice with the same token is fine.
		if !strings.Contains(msg, "duplicate") && !strings.Contains(msg, "unique") {
			log.Println("[ERROR] logout blacklist insert failed:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to logout")
		}
	}

	return helper.JsonOK(c, "Logged out successfully", nil)
}

func respondWithTokens(c *fiber.Ctx, user *authModel.UserModel, message string) error {
	access, refresh, err := IssueTokenPair(user)
	if err != nil {
		log.Println("[ERROR] token signing failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return helper.JsonOK(c, message, authDTO.LoginResponse{
		User: authDTO.FromUserModel(*user),
		Tokens: authDTO.TokenPairResponse{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	})
}
