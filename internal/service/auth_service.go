package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bloghub/internal/auth"
	"bloghub/internal/config"
	"bloghub/internal/mailer"
	"bloghub/internal/models"
	"bloghub/internal/repository"
	"bloghub/internal/store"
)

var (
	ErrNicknameInUse      = errors.New("nickname already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims carried by an access token.
type Claims struct {
	UserID   uint        `json:"user_id"`
	Nickname string      `json:"nickname"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, nickname, email, password string) (*models.User, error)
	Login(ctx context.Context, nickname, password string) (token string, user *models.User, err error)
	ValidateToken(tokenString string) (*Claims, error)
	ChangePassword(ctx context.Context, userID uint, plaintext string) error
	SendPasswordReset(ctx context.Context, email, resetBaseURL string) error
	ResetPassword(ctx context.Context, token, plaintext string) error
}

type authService struct {
	users     repository.UserRepository
	mail      mailer.Mailer
	jwtSecret string
	accessTTL time.Duration
	resetTTL  time.Duration
}

func NewAuthService(users repository.UserRepository, mail mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		users:     users,
		mail:      mail,
		jwtSecret: cfg.JWTSecret,
		accessTTL: cfg.AccessTTL,
		resetTTL:  cfg.ResetTokenTTL,
	}
}

// Register creates a new general-role user. Nickname and email uniqueness
// is global, soft-deleted users included.
func (s *authService) Register(ctx context.Context, nickname, email, password string) (*models.User, error) {
	if _, err := s.users.GetByNickname(ctx, nickname, store.Any); err == nil {
		return nil, ErrNicknameInUse
	}
	if _, err := s.users.GetByEmail(ctx, email, store.Any); err == nil {
		return nil, ErrEmailInUse
	}

	user := &models.User{
		Nickname: nickname,
		Email:    email,
		Role:     models.RoleGeneral,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The existence checks race against concurrent registrations; the
		// unique constraints are the authority.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrNicknameInUse
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, nickname, password string) (string, *models.User, error) {
	user, err := s.users.GetByNickname(ctx, nickname, store.Visible)
	if err != nil {
		// Dummy compare so unknown nicknames take as long as bad passwords.
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", nil, ErrInvalidCredentials
	}
	if !user.VerifyPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Nickname: user.Nickname,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ChangePassword re-hashes and persists a new password. The plaintext
// never travels through the generic attribute update path.
func (s *authService) ChangePassword(ctx context.Context, userID uint, plaintext string) error {
	user, err := s.users.GetByID(ctx, userID, store.Visible)
	if err != nil {
		return err
	}
	if err := user.SetPassword(plaintext); err != nil {
		return err
	}
	return s.users.Update(ctx, user, map[string]any{"password_hash": user.PasswordHash})
}

// SendPasswordReset mails a short-lived reset link. Unknown addresses are
// reported as not found; delivery itself is fire-and-forget.
func (s *authService) SendPasswordReset(ctx context.Context, email, resetBaseURL string) error {
	user, err := s.users.GetByEmail(ctx, email, store.Visible)
	if err != nil {
		return err
	}
	token, err := s.generateResetToken(user)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(
		"<p>Hello %s,</p>"+
			"<p>A password reset was requested for your account. "+
			"Follow the link below to pick a new password:</p>"+
			"<p>%s?token=%s</p>",
		user.Nickname, resetBaseURL, token,
	)
	s.mail.Send("Reset your password", body, []string{user.Email})
	return nil
}

func (s *authService) generateResetToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"reset_password": user.ID,
		"iat":            now.Unix(),
		"exp":            now.Add(s.resetTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ResetPassword(ctx context.Context, tokenString, plaintext string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	raw, ok := claims["reset_password"].(float64)
	if !ok {
		return ErrInvalidToken
	}
	return s.ChangePassword(ctx, uint(raw), plaintext)
}
