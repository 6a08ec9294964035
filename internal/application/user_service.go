package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adisetya/recipe-api/internal/domain/entity"
	repo "github.com/adisetya/recipe-api/internal/domain/repository"
	"github.com/adisetya/recipe-api/pkg/helpers"
	"github.com/adisetya/recipe-api/pkg/mailer"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService owns the account lifecycle: registration, superuser creation,
// authentication, token issuance, and self-profile management.
type UserService struct {
	Repo    repo.UserRepository
	Tokens  TokenStore
	Pub     *helpers.RabbitPublisher
	Logger  *logrus.Logger
	AppName string

	// MailEnabled gates the async welcome email on registration.
	MailEnabled bool
}

func NewUserService(r repo.UserRepository, tokens TokenStore, pub *helpers.RabbitPublisher, logger *logrus.Logger, appName string, mailEnabled bool) *UserService {
	return &UserService{
		Repo:        r,
		Tokens:      tokens,
		Pub:         pub,
		Logger:      logger,
		AppName:     appName,
		MailEnabled: mailEnabled,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates a new user. The email domain is case-folded before
// storage and only the bcrypt hash of the password is persisted.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Email == "" {
		return nil, ErrEmailRequired
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    helpers.NormalizeEmail(in.Email),
		Password: hash,
		Name:     in.Name,
		IsActive: true,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: "welcome",
			Data:     map[string]any{"Name": u.Name, "Email": u.Email, "AppName": s.AppName},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue welcome email")
		}
	}
	return u, nil
}

// CreateSuperuser registers a user and re-persists it with the staff and
// superuser flags set.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Register(ctx, RegisterInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	u.IsStaff = true
	u.IsSuperuser = true
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate validates email/password. It reports the same error for an
// unknown email, a wrong password, and a deactivated account so callers
// cannot probe which one failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(helpers.NormalizeEmail(email))
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Token is an issued opaque bearer token.
type Token struct {
	Key       string
	ExpiresAt time.Time
}

// IssueToken generates an opaque token and records it in the token store.
func (s *UserService) IssueToken(ctx context.Context, u *entity.User) (Token, error) {
	key, err := helpers.GenToken(32)
	if err != nil {
		return Token{}, err
	}
	if err := s.Tokens.Save(ctx, key, u.ID); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("failed to save token")
		}
		return Token{}, err
	}
	return Token{Key: key, ExpiresAt: time.Now().Add(s.Tokens.TTL())}, nil
}

func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Email    *string
	Name     *string
	Password *string
}

// UpdateProfile applies a partial update to the caller's own record.
// Changing the password revokes every token issued to the user; the client
// must authenticate again.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Email != nil {
		if *in.Email == "" {
			return nil, ErrEmailRequired
		}
		u.Email = helpers.NormalizeEmail(*in.Email)
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	passwordChanged := false
	if in.Password != nil && *in.Password != "" {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
		passwordChanged = true
	}
	if err := s.Repo.Update(u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if passwordChanged && s.Tokens != nil {
		if err := s.Tokens.RevokeUser(ctx, u.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to revoke tokens after password change")
		}
	}
	return u, nil
}
