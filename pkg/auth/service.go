package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 12
	// TokenExpiry is how long JWT tokens are valid.
	TokenExpiry = 7 * 24 * time.Hour // 7 days
	// ResetTokenExpiry is how long password reset tokens are valid.
	ResetTokenExpiry = 1 * time.Hour
)

// JWTClaims represents the claims in a JWT token.
type JWTClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service handles authentication operations.
type Service struct {
	db        *bun.DB
	jwtSecret []byte
}

// NewService creates a new auth service.
func NewService(db *bun.DB, jwtSecret string) *Service {
	return &Service{
		db:        db,
		jwtSecret: []byte(jwtSecret),
	}
}

// SignupOptions contains options for creating an account.
type SignupOptions struct {
	DisplayName string
	Email       string
	Password    string
}

// Signup creates a new account and its profile record.
func (s *Service) Signup(ctx context.Context, opts SignupOptions) (*models.User, error) {
	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("email = ? COLLATE NOCASE", opts.Email).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.ValidationError("Email already exists")
	}

	hashedPassword, err := HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		DisplayName:  opts.DisplayName,
		Email:        opts.Email,
		PasswordHash: hashedPassword,
		Provider:     models.ProviderPassword,
	}

	_, err = s.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return s.GetUserByID(ctx, user.ID)
}

// Authenticate validates credentials and returns the user if valid.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("email = ? COLLATE NOCASE", email).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid email or password")
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, errcodes.Unauthorized("Invalid email or password")
	}

	return user, nil
}

// GenerateToken creates a new JWT token for the user.
func (s *Service) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GetUserByID retrieves a user by ID.
func (s *Service) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	user.HasAvatar = user.AvatarPath != nil
	return user, nil
}

// RequestPasswordReset issues a reset token for the account with the given
// email. The token is returned for out-of-band delivery; callers must not
// reveal to the requester whether the email exists.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("email = ? COLLATE NOCASE", email).
		Scan(ctx)
	if err != nil {
		return "", errcodes.NotFound("User")
	}

	token := uuid.New().String()
	expiresAt := time.Now().Add(ResetTokenExpiry)

	_, err = s.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("reset_token = ?", token).
		Set("reset_token_expires_at = ?", expiresAt).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("id = ?", user.ID).
		Exec(ctx)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return token, nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("reset_token = ?", token).
		Scan(ctx)
	if err != nil {
		return errcodes.ValidationError("Invalid or expired reset token")
	}

	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return errcodes.ValidationError("Invalid or expired reset token")
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = s.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("password_hash = ?", hashedPassword).
		Set("reset_token = NULL").
		Set("reset_token_expires_at = NULL").
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("id = ?", user.ID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a password with a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
