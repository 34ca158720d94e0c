package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/internal/domain/repository"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
	"github.com/devtrail/bootcamp-api/pkg/helpers"
	"github.com/devtrail/bootcamp-api/pkg/mailer"
)

// MailPublisher enqueues outbound email jobs.
type MailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements registration, login, self-service account
// updates, and the password-reset flow.
type AuthService struct {
	Users    repository.UserRepository
	JWT      *helpers.JWTManager
	Mail     MailPublisher
	Logger   *logrus.Logger
	ResetURL string // base URL the plaintext reset token is appended to
}

// Register creates an account and issues a session token. Only the
// user and publisher roles are self-assignable.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role entity.Role) (*entity.User, string, time.Time, error) {
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RolePublisher {
		return nil, "", time.Time{}, apperr.New(apperr.Validation, "role must be user or publisher")
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u := &entity.User{Name: name, Email: email, Role: role, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}
	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	return s.Users.GetByID(ctx, userID)
}

// UpdateDetails changes the caller's own name and email.
func (s *AuthService) UpdateDetails(ctx context.Context, userID, name, email string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePassword requires the current password before accepting a new
// one, then issues a fresh session token.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, updated string) (string, time.Time, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return "", time.Time{}, apperr.New(apperr.Unauthenticated, "password is incorrect")
	}
	hash, err := helpers.HashPassword(updated)
	if err != nil {
		return "", time.Time{}, err
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return "", time.Time{}, err
	}
	return s.JWT.Issue(u.ID)
}

// ForgotPassword persists a hashed reset token and enqueues the reset
// email. If the email cannot be enqueued the token fields are cleared
// again so no orphaned token stays behind.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return apperr.New(apperr.NotFound, "there is no user with that email")
	}

	plain, hashed, expire, err := helpers.GenerateResetToken()
	if err != nil {
		return err
	}
	u.ResetPasswordToken = hashed
	u.ResetPasswordExpire = &expire
	if err := s.Users.Update(ctx, u); err != nil {
		return err
	}

	if s.Mail == nil {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Warn("mail publisher not configured; reset token issued without email")
		}
		return nil
	}

	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateResetPassword,
		Data: map[string]any{
			"Name":     u.Name,
			"ResetURL": s.ResetURL + "/" + plain,
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		// Compensate: drop the token so it cannot dangle unusable.
		u.ResetPasswordToken = ""
		u.ResetPasswordExpire = nil
		if uerr := s.Users.Update(ctx, u); uerr != nil && s.Logger != nil {
			s.Logger.WithError(uerr).WithField("user_id", u.ID).Error("reset token cleanup failed")
		}
		return apperr.Wrap(apperr.Upstream, err, "email could not be sent")
	}
	return nil
}

// ResetPassword exchanges a valid, unexpired reset token for a new
// password and a fresh session token.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Users.GetByResetToken(ctx, helpers.HashResetToken(plainToken))
	if err != nil {
		return nil, "", time.Time{}, apperr.New(apperr.Validation, "invalid token")
	}
	if u.ResetPasswordExpire == nil || u.ResetPasswordExpire.Before(time.Now()) {
		return nil, "", time.Time{}, apperr.New(apperr.Validation, "invalid token")
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u.Password = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = nil
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}
