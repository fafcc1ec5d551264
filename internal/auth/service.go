package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/db"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/i18n"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service struct {
	secret []byte
	db     db.Querier
	tr     *i18n.Translator
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewService(secret string, db db.Querier, tr *i18n.Translator) *Service {
	if tr == nil {
		tr = i18n.New(i18n.DefaultLanguage)
	}
	return &Service{
		secret: []byte(secret),
		db:     db,
		tr:     tr,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, TokenResponse, error) {
	if err := ValidateEmail(req.Email, s.tr); err != nil {
		return User{}, TokenResponse{}, err
	}
	if strings.TrimSpace(req.Username) == "" {
		return User{}, TokenResponse{}, errors.New(s.tr.T("auth.username_required"))
	}
	if err := ValidatePassword(req.Password, s.tr); err != nil {
		return User{}, TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, TokenResponse{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(req.Email),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		AvatarURL:    req.AvatarURL,
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, email, username, password_hash, display_name, avatar_url)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at
	`, user.ID, user.Email, user.Username, user.PasswordHash, user.DisplayName, user.AvatarURL)
	if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return User{}, TokenResponse{}, err
	}

	_, _ = s.db.Exec(ctx, `
		INSERT INTO user_profiles (id, display_name)
		VALUES ($1,$2)
		ON CONFLICT (id) DO UPDATE SET display_name=EXCLUDED.display_name
	`, user.ID, user.DisplayName)

	tokens, err := s.GenerateTokens(ctx, user.ID)
	if err != nil {
		return User{}, TokenResponse{}, err
	}
	return user, tokens, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (User, TokenResponse, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, username, password_hash, display_name, avatar_url, created_at, updated_at
		FROM users WHERE email = $1
	`, NormalizeEmail(req.Email))

	var user User
	if err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.DisplayName, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return User{}, TokenResponse{}, errors.New(s.tr.T("auth.invalid_credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return User{}, TokenResponse{}, errors.New(s.tr.T("auth.invalid_credentials"))
	}

	tokens, err := s.GenerateTokens(ctx, user.ID)
	if err != nil {
		return User{}, TokenResponse{}, err
	}
	return user, tokens, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	var hash string
	if err := s.db.QueryRow(ctx, `SELECT password_hash FROM users WHERE id=$1`, userID).Scan(&hash); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)); err != nil {
		return errors.New(s.tr.T("auth.invalid_credentials"))
	}
	if err := ValidatePassword(req.NewPassword, s.tr); err != nil {
		return err
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1`, userID, string(newHash))
	return err
}

// DeleteAccount removes the user together with everything hanging off the
// account. Cleanup of associated rows is best effort: a failing step is
// logged and the remaining steps still run. Only failing to remove the user
// row itself is an error.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	steps := []struct {
		name string
		sql  string
	}{
		{"refresh tokens", `DELETE FROM refresh_tokens WHERE user_id=$1`},
		{"favorites", `DELETE FROM favorites WHERE user_id=$1`},
		{"favorites on own posts", `DELETE FROM favorites WHERE post_id IN (SELECT id FROM post WHERE user_id=$1)`},
		{"comment reactions", `DELETE FROM comment_reactions WHERE user_id=$1`},
		{"comments", `DELETE FROM comments WHERE user_id=$1`},
		{"saved searches", `DELETE FROM saved_searches WHERE user_id=$1`},
		{"post images", `DELETE FROM post_image WHERE post_id IN (SELECT id FROM post WHERE user_id=$1)`},
		{"post colors", `DELETE FROM post_color WHERE post_id IN (SELECT id FROM post WHERE user_id=$1)`},
		{"posts", `DELETE FROM post WHERE user_id=$1`},
		{"storage objects", `DELETE FROM storage_objects WHERE user_id=$1`},
		{"profile", `DELETE FROM user_profiles WHERE id=$1`},
	}
	for _, step := range steps {
		if _, err := s.db.Exec(ctx, step.sql, userID); err != nil {
			log.Printf("delete account %s: %s: %v", userID, step.name, err)
		}
	}

	_, err := s.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, userID)
	return err
}

func (s *Service) GenerateTokens(ctx context.Context, userID string) (TokenResponse, error) {
	access, err := s.signToken(userID, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh, err := s.signToken(userID, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.saveRefreshToken(ctx, refresh, userID, refreshTokenTTL); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateRefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}

	userID, expiresAt, err := s.lookupRefreshToken(ctx, token)
	if err != nil || userID != claims.UserID || time.Now().After(expiresAt) {
		return "", errors.New("refresh token invalid")
	}
	return claims.UserID, nil
}

func (s *Service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (s *Service) signToken(userID string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}

func (s *Service) saveRefreshToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), userID, token, time.Now().Add(ttl))
	return err
}

func (s *Service) lookupRefreshToken(ctx context.Context, token string) (string, time.Time, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, expires_at
		FROM refresh_tokens
		WHERE token = $1 AND revoked_at IS NULL
	`, token)
	var userID string
	var expiresAt time.Time
	if err := row.Scan(&userID, &expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return userID, expiresAt, nil
}
