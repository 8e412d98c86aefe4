package services

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/authorizerdev/authorizer-go"
	"github.com/careerpilot/careerpilot-api/internal/config"
	"github.com/careerpilot/careerpilot-api/internal/models"
	"github.com/careerpilot/careerpilot-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// RegisterUser validates and creates a local user row. Session issuance is
// not handled here; it stays with the external Authorizer service.
func RegisterUser(db *gorm.DB, in RegisterInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, &ValidationError{Msg: "Missing fields"}
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, &ValidationError{Msg: "Invalid email format"}
	}
	if len(in.Password) < minPasswordLength {
		return nil, &ValidationError{Msg: "Password must be at least 8 characters"}
	}

	var existing models.User
	err := db.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("registerUser lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("registerUser hash: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("registerUser create: %w", err)
	}
	return user, nil
}

// SessionResolver validates a session cookie against the external session
// service and yields the session's email. Kept as an interface so handlers
// can be tested without a live Authorizer.
type SessionResolver interface {
	ValidateSession(cookie string) (email string, err error)
}

// AuthorizerResolver delegates session validation to an Authorizer instance.
// The client is created lazily on first use so the API can boot while the
// Authorizer is still coming up.
type AuthorizerResolver struct {
	cfg     *config.Config
	once    sync.Once
	client  *authorizer.AuthorizerClient
	initErr error
}

// NewAuthorizerResolver returns a resolver for the configured Authorizer.
func NewAuthorizerResolver(cfg *config.Config) *AuthorizerResolver {
	return &AuthorizerResolver{cfg: cfg}
}

// ValidateSession implements SessionResolver.
func (r *AuthorizerResolver) ValidateSession(cookie string) (string, error) {
	r.once.Do(func() {
		if err := utils.PingAuthorizer(r.cfg.AuthzURL); err != nil {
			r.initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}
		r.client, r.initErr = authorizer.NewAuthorizerClient(
			r.cfg.AuthzClientID, r.cfg.AuthzURL, r.cfg.AuthzURL, nil)
	})
	if r.initErr != nil {
		return "", r.initErr
	}

	role := "user"
	res, err := r.client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  []*string{&role},
	})
	if err != nil {
		return "", fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid || res.User == nil {
		return "", fmt.Errorf("session is not valid")
	}
	return res.User.Email, nil
}

// ResolveOwner maps a session cookie to the local owner id. An empty cookie,
// an invalid session, or an unknown email all yield ErrUnauthenticated.
func ResolveOwner(db *gorm.DB, resolver SessionResolver, cookie string) (string, error) {
	if cookie == "" {
		return "", ErrUnauthenticated
	}

	email, err := resolver.ValidateSession(cookie)
	if err != nil {
		return "", ErrUnauthenticated
	}

	var user models.User
	if err := db.Select("id").Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrUnauthenticated
	}
	return user.ID, nil
}
