package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"tmms/auth"
	"tmms/config"
	"tmms/database"
	"tmms/mailer"
	"tmms/middleware"
	"tmms/models"
	"tmms/storage"
)

type AuthController struct {
	cfg     *config.Config
	mail    *mailer.Mailer
	uploads *storage.Uploads
}

func NewAuthController(cfg *config.Config, mail *mailer.Mailer, uploads *storage.Uploads) *AuthController {
	return &AuthController{cfg: cfg, mail: mail, uploads: uploads}
}

type registerInput struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	AdminCode string `json:"adminCode"`
}

// CustomerRegister creates an unverified customer and mails a one-time code.
// No token is issued until the email is verified.
func (a *AuthController) CustomerRegister(c *gin.Context) {
	a.register(c, models.RoleCustomer)
}

// AdminRegister creates an admin. The shared access code gates it; admins
// skip email verification and get a token immediately.
func (a *AuthController) AdminRegister(c *gin.Context) {
	a.register(c, models.RoleAdmin)
}

func (a *AuthController) register(c *gin.Context, role string) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	input.Email = normalizeEmail(input.Email)

	if role == models.RoleAdmin && input.AdminCode != a.cfg.AdminCode {
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid admin access code"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Password:   string(hashed),
		Role:       role,
		AccountID:  newAccountID(),
		IsVerified: !auth.RequiresVerification(role),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if auth.RequiresVerification(role) {
		user.OTP = auth.GenerateOTP()
		user.OTPExpires = now.Add(auth.OTPTTL)
	}

	if _, err := database.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
			return
		}
		log.Error().Err(err).Msg("user insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	if auth.RequiresVerification(role) {
		if err := a.mail.SendOTP(user.Email, user.OTP, "verification"); err != nil {
			// The code stays resendable; registration itself succeeded.
			log.Error().Err(err).Str("email", user.Email).Msg("otp mail failed")
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration successful. Please verify your email.",
			"email":   user.Email,
		})
		return
	}

	token, err := auth.GenerateToken(user.ID.Hex(), a.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin registration successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// VerifyEmail checks the one-time code, marks the account verified and
// issues the first token. Codes are single-use: a verified account always
// gets "already verified" back.
func (a *AuthController) VerifyEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	input.Email = normalizeEmail(input.Email)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already verified"})
		return
	}

	if !auth.OTPMatches(user.OTP, input.OTP, user.OTPExpires) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP"})
		return
	}

	_, err := database.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"isVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"otp": "", "otpExpires": ""},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Verification failed"})
		return
	}
	user.IsVerified = true

	if err := a.mail.SendWelcome(user.Email, user.Name); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("welcome mail failed")
	}

	token, err := auth.GenerateToken(user.ID.Hex(), a.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

// ResendOTP regenerates and re-mails the verification code.
func (a *AuthController) ResendOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	input.Email = normalizeEmail(input.Email)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already verified"})
		return
	}

	if err := a.setOTP(ctx, user.ID, user.Email, "verification"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to resend OTP"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP resent successfully"})
}

// CustomerLogin authenticates a verified customer.
func (a *AuthController) CustomerLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	input.Email = normalizeEmail(input.Email)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email, "role": models.RoleCustomer}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	if auth.RequiresVerification(user.Role) && !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{
			"message":    "Email not verified. Please verify your email.",
			"isVerified": false,
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID.Hex(), a.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// AdminLogin authenticates an admin; the shared access code is checked
// before credentials.
func (a *AuthController) AdminLogin(c *gin.Context) {
	var input struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		AdminCode string `json:"adminCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	input.Email = normalizeEmail(input.Email)

	if input.AdminCode != a.cfg.AdminCode {
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid admin access code"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email, "role": models.RoleAdmin}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials or not an admin"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID.Hex(), a.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// ForgotPassword sets a reset code and mails it.
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	input.Email = normalizeEmail(input.Email)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if err := a.setOTP(ctx, user.ID, user.Email, "reset"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset OTP sent"})
}

// ResetPassword overwrites the password after checking the reset code.
func (a *AuthController) ResetPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required,email"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	input.Email = normalizeEmail(input.Email)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if !auth.OTPMatches(user.OTP, input.OTP, user.OTPExpires) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password"})
		return
	}

	_, err = database.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"password": string(hashed), "updatedAt": time.Now()},
		"$unset": bson.M{"otp": "", "otpExpires": ""},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

// Verify echoes the user the bearer token resolves to.
func (a *AuthController) Verify(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

// UpdateProfilePhoto stores a new profile image and records its path.
func (a *AuthController) UpdateProfilePhoto(c *gin.Context) {
	user := middleware.CurrentUser(c)

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Photo file is required"})
		return
	}

	path, err := a.uploads.Save(file, "profile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = database.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"profilePhoto": path, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile photo updated", "profilePhoto": path})
}

// UpdateProfile changes name and/or phone.
func (a *AuthController) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
		user.Name = input.Name
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
		user.Phone = input.Phone
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := database.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user.Public()})
}

func (a *AuthController) setOTP(ctx context.Context, id primitive.ObjectID, email, purpose string) error {
	otp := auth.GenerateOTP()
	_, err := database.UserCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"otp": otp, "otpExpires": time.Now().Add(auth.OTPTTL), "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if err := a.mail.SendOTP(email, otp, purpose); err != nil {
		log.Error().Err(err).Str("email", email).Msg("otp mail failed")
	}
	return nil
}

// normalizeEmail canonicalizes an address so the unique index and every
// lookup agree: the store never sees two casings of the same mailbox.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newAccountID derives the human-facing account id from a fresh UUID, so
// ids never collide across processes.
func newAccountID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TMMS-" + raw[:8]
}
