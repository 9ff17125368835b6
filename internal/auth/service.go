package auth

import (
	"context"
	"errors"
	"time"

	"github.com/Glaser1/Yatube/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// sessionTTL bounds how long a login cookie stays valid.
const sessionTTL = 7 * 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	secret []byte
	db     db.Querier
}

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewService(secret string, db db.Querier) *Service {
	return &Service{
		secret: []byte(secret),
		db:     db,
	}
}

func (s *Service) Register(ctx context.Context, form SignupForm) (User, error) {
	if form.Email == "" || form.Username == "" || form.Password == "" {
		return User{}, errors.New("email, username, password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        form.Email,
		Username:     form.Username,
		PasswordHash: string(hash),
		FullName:     form.FullName,
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, email, username, password_hash, full_name)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, user.ID, user.Email, user.Username, user.PasswordHash, user.FullName)
	if err := row.Scan(&user.CreatedAt); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, username, password_hash, full_name, created_at
		FROM users WHERE username = $1
	`, username)

	var user User
	if err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.FullName, &user.CreatedAt); err != nil {
		return User{}, err
	}
	return user, nil
}

// SessionToken signs the claims carried by the login cookie.
func (s *Service) SessionToken(userID, username string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ParseSessionToken(token string) (*Claims, error) {
	return parseClaims(token, s.secret)
}

func parseClaims(token string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
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
