// Package auth issues and checks the bearer tokens that guard board access.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/inklet/inklet/backend-go/internal/db"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

const (
	tokenTTL   = 24 * time.Hour
	bcryptCost = 12

	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt ignores everything past 72 bytes
	maxNameLen     = 64
)

// dummyHash is compared against when no account matches the email, so a
// login probe cannot tell a missing account from a wrong password by timing.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

var (
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrUnknownUser        = errors.New("unknown user")
)

// ValidationError reports which registration field was rejected so the
// client can point at it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// boardClaims carries the display name alongside the registered claims so
// the websocket handshake can label a session without a user lookup.
type boardClaims struct {
	DisplayName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the verified subject of a token.
type Identity struct {
	UserID      string
	DisplayName string
}

// Profile is the public view of an account.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Grant is what a successful register or login hands back.
type Grant struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Profile   `json:"user"`
}

// Registration is the sign-up input. Validation lives here with the rest of
// the account rules, not in the HTTP layer.
type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

func (reg *Registration) validate() error {
	email := normalizeEmail(reg.Email)
	at := strings.IndexByte(email, '@')
	if at < 1 || at == len(email)-1 {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if len(reg.Password) < minPasswordLen {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}
	if len(reg.Password) > maxPasswordLen {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at most %d characters", maxPasswordLen)}
	}
	name := strings.TrimSpace(reg.DisplayName)
	if name == "" || len(name) > maxNameLen {
		return &ValidationError{Field: "displayName", Reason: fmt.Sprintf("must be 1-%d characters", maxNameLen)}
	}
	return nil
}

type Service struct {
	queries *db.Queries
	secret  []byte
}

func NewService(queries *db.Queries, jwtSecret string) *Service {
	return &Service{
		queries: queries,
		secret:  []byte(jwtSecret),
	}
}

// Register creates an account and signs the caller straight in.
func (s *Service) Register(ctx context.Context, reg Registration) (*Grant, error) {
	if err := reg.validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.queries.CreateUser(ctx, db.CreateUserParams{
		ID:          typeid.NewUserID(),
		Email:       normalizeEmail(reg.Email),
		Password:    string(hash),
		DisplayName: strings.TrimSpace(reg.DisplayName),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.grant(user)
}

// Login checks the credentials and returns a fresh grant.
func (s *Service) Login(ctx context.Context, email, password string) (*Grant, error) {
	user, err := s.queries.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.grant(user)
}

// ValidateToken verifies a bearer token and returns who it speaks for.
func (s *Service) ValidateToken(tokenString string) (*Identity, error) {
	var claims boardClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return &Identity{UserID: claims.Subject, DisplayName: claims.DisplayName}, nil
}

// Profile fetches the public view of an account.
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &Profile{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName}, nil
}

func (s *Service) grant(user db.User) (*Grant, error) {
	now := time.Now()
	expires := now.Add(tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, boardClaims{
		DisplayName: user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Grant{
		Token:     signed,
		ExpiresAt: expires,
		User:      Profile{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
