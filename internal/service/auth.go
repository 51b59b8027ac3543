package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNameRequired       = errors.New("name is required")
)

// AuthService owns every way into an account: password, magic link,
// password recovery, and OAuth. Each sign-in path ends in the same JWT
// cookie.
type AuthService struct {
	userRepository           repository.UserRepository
	profileRepository        repository.ProfileRepository
	tokenRepository          repository.TokenRepository
	emailService             *EmailService
	jwtSecret                string
	isProduction             bool
	jwtExpiry                time.Duration
	tokenPasswordResetExpiry time.Duration
	tokenMagicLinkExpiry     time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	tokenRepository repository.TokenRepository,
	emailService *EmailService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
	tokenPasswordResetExpiry time.Duration,
	tokenMagicLinkExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:           userRepository,
		profileRepository:        profileRepository,
		tokenRepository:          tokenRepository,
		emailService:             emailService,
		jwtSecret:                jwtSecret,
		isProduction:             isProduction,
		jwtExpiry:                jwtExpiry,
		tokenPasswordResetExpiry: tokenPasswordResetExpiry,
		tokenMagicLinkExpiry:     tokenMagicLinkExpiry,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// createAccount inserts a user plus their planter profile. passwordHash and
// verifiedAt are nil for passwordless accounts.
func (s *AuthService) createAccount(email, name, surname string, passwordHash *string, verifiedAt *time.Time) (*model.User, error) {
	now := time.Now()
	user := &model.User{
		ID:              uuid.New().String(),
		Email:           email,
		PasswordHash:    passwordHash,
		EmailVerifiedAt: verifiedAt,
		CreatedAt:       now,
	}

	if err := s.userRepository.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &model.Profile{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      strings.TrimSpace(name),
		Surname:   strings.TrimSpace(surname),
		Role:      model.RolePlanter,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profileRepository.Create(profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return user, nil
}

// Register creates an email+password account with a seeded profile.
func (s *AuthService) Register(email, password, name, surname string) (*model.User, error) {
	email = normalizeEmail(email)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, ErrNameRequired
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := s.createAccount(email, name, surname, &hash, &now)
	if err != nil {
		return nil, err
	}

	if err := s.emailService.SendWelcomeEmail(email, strings.TrimSpace(name)); err != nil {
		slog.Warn("failed to send welcome email", "error", err, "email", email)
	}

	slog.Info("new user registered", "email", email, "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepository.ByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return nil, fmt.Errorf("this account uses passwordless login. Please use the magic link option")
	}

	if err := s.ComparePassword(password, *user.PasswordHash); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	return user, nil
}

func (s *AuthService) ValidatePassword(password string) error {
	return validation.ValidatePassword(password)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateToken returns a 256-bit hex token for email links.
func (s *AuthService) GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     now.Add(s.jwtExpiry).Unix(),
		"iat":     now.Unix(),
	})
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) JWTExpiry() time.Duration {
	return s.jwtExpiry
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// issueEmailToken replaces any outstanding token of the given type with a
// fresh one.
func (s *AuthService) issueEmailToken(userID, tokenType string, expiry time.Duration) (string, error) {
	if err := s.tokenRepository.DeleteByUserAndType(userID, tokenType); err != nil {
		slog.Warn("failed to delete old tokens", "error", err, "user_id", userID, "type", tokenType)
	}

	value, err := s.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	err = s.tokenRepository.Create(&model.Token{
		UserID:    userID,
		Type:      tokenType,
		Token:     value,
		ExpiresAt: time.Now().Add(expiry),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	return value, nil
}

func (s *AuthService) profileName(userID string) string {
	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil || profile == nil {
		return ""
	}
	return profile.Name
}

// SendMagicLink is the combined login/signup path: an unknown address gets
// a passwordless account first, then the link.
func (s *AuthService) SendMagicLink(email string) error {
	email = normalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		user, err = s.createAccount(email, "", "", nil, nil)
		if err != nil {
			return err
		}
		slog.Info("new passwordless user created", "email", email, "user_id", user.ID)
	}

	magicToken, err := s.issueEmailToken(user.ID, model.TokenTypeMagicLink, s.tokenMagicLinkExpiry)
	if err != nil {
		return err
	}

	if err := s.emailService.SendMagicLinkEmail(user.Email, magicToken, s.profileName(user.ID)); err != nil {
		slog.Error("failed to send magic link email", "error", err, "email", user.Email)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("magic link sent", "email", user.Email)
	return nil
}

// SendForgotPasswordLink mails a recovery link. Unknown addresses and
// passwordless accounts succeed silently so the endpoint cannot be used to
// probe for accounts.
func (s *AuthService) SendForgotPasswordLink(email string) error {
	email = normalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		slog.Info("forgot password requested for non-existent email", "email", email)
		return nil
	}
	if !user.HasPassword() {
		slog.Info("forgot password requested for passwordless account", "email", email)
		return nil
	}

	resetToken, err := s.issueEmailToken(user.ID, model.TokenTypePasswordReset, s.tokenPasswordResetExpiry)
	if err != nil {
		return err
	}

	if err := s.emailService.SendForgotPasswordEmail(user.Email, resetToken, s.profileName(user.ID)); err != nil {
		slog.Error("failed to send forgot password email", "error", err, "email", user.Email)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("forgot password link sent", "email", user.Email)
	return nil
}

// consumeTypedToken consumes a link token and loads its user, rejecting
// tokens of the wrong type.
func (s *AuthService) consumeTypedToken(token, wantType string) (*model.User, error) {
	tokenModel, err := s.tokenRepository.ConsumeToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired link")
	}
	if tokenModel.Type != wantType {
		return nil, fmt.Errorf("invalid token type")
	}

	user, err := s.userRepository.ByID(tokenModel.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return user, nil
}

func (s *AuthService) markEmailVerified(user *model.User) {
	if user.EmailVerifiedAt != nil {
		return
	}
	now := time.Now()
	user.EmailVerifiedAt = &now
	if err := s.userRepository.Update(user); err != nil {
		slog.Warn("failed to mark email as verified", "error", err, "user_id", user.ID)
	}
}

// VerifyMagicLink consumes the token and signs the user in, verifying the
// email address as a side effect.
func (s *AuthService) VerifyMagicLink(token string) (*model.User, error) {
	user, err := s.consumeTypedToken(token, model.TokenTypeMagicLink)
	if err != nil {
		return nil, err
	}

	s.markEmailVerified(user)

	slog.Info("user authenticated via magic link", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// VerifyForgotPasswordLink consumes a recovery token, removes the password,
// and signs the user in. A new password is set from Settings.
func (s *AuthService) VerifyForgotPasswordLink(token string) (*model.User, error) {
	user, err := s.consumeTypedToken(token, model.TokenTypePasswordReset)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = nil
	if err := s.userRepository.Update(user); err != nil {
		return nil, fmt.Errorf("failed to remove password: %w", err)
	}

	slog.Info("password removed via reset link", "user_id", user.ID)
	return user, nil
}

// AuthenticateOAuth signs in a provider-verified email, creating the
// account on first sight.
func (s *AuthService) AuthenticateOAuth(email, name, provider string) (*model.User, error) {
	email = normalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to lookup user: %w", err)
		}

		now := time.Now()
		user, err = s.createAccount(email, name, "", nil, &now)
		if err != nil {
			return nil, err
		}

		slog.Info("new OAuth user created", "email", email, "user_id", user.ID, "provider", provider)
		return user, nil
	}

	s.markEmailVerified(user)

	slog.Info("user authenticated via OAuth", "user_id", user.ID, "email", user.Email, "provider", provider)
	return user, nil
}
