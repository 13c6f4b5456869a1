package services

import (
	"context"
	"errors"
	"strings"

	"notehub/internal/common"
	"notehub/internal/models"
	"notehub/internal/repositories"

	"github.com/google/uuid"
)

// UserService owns user identity: registration, credential checks,
// profile and password mutation, soft-delete deactivation and the
// dashboard composition over note statistics.
type UserService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*models.UserSummary, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName, email *string) (*models.UserSummary, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, confirmPassword string) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
	Dashboard(ctx context.Context, userID uuid.UUID) (*models.Dashboard, error)
}

type userService struct {
	userRepo repositories.UserRepository
	noteRepo repositories.NoteRepository
	authSvc  AuthService
}

func NewUserService(userRepo repositories.UserRepository, noteRepo repositories.NoteRepository, authSvc AuthService) UserService {
	return &userService{
		userRepo: userRepo,
		noteRepo: noteRepo,
		authSvc:  authSvc,
	}
}

const dashboardNoteLimit = 5

func (s *userService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.AuthResponse, error) {
	verr := &common.ValidationError{}

	firstName = strings.TrimSpace(firstName)
	if err := common.ValidateName(firstName, "first_name"); err != nil {
		verr.Add("first_name", err.Error())
	}
	lastName = strings.TrimSpace(lastName)
	if err := common.ValidateName(lastName, "last_name"); err != nil {
		verr.Add("last_name", err.Error())
	}
	email = common.NormalizeEmail(email)
	if err := common.ValidateEmail(email); err != nil {
		verr.Add("email", err.Error())
	}
	if err := common.ValidatePassword(password); err != nil {
		verr.Add("password", err.Error())
	}
	if verr.HasErrors() {
		return nil, verr
	}

	hash, err := s.authSvc.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	email = common.NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	// The deactivation check runs after existence is confirmed and
	// before the password comparison.
	if user.Status != models.UserStatusActive {
		return nil, common.ErrAccountDeactivated
	}

	if !s.authSvc.VerifyPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

func (s *userService) issueSession(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	token, err := s.authSvc.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user.Summary()}, nil
}

func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*models.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Summary(), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName, email *string) (*models.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	verr := &common.ValidationError{}
	if firstName != nil {
		*firstName = strings.TrimSpace(*firstName)
		if err := common.ValidateName(*firstName, "first_name"); err != nil {
			verr.Add("first_name", err.Error())
		}
	}
	if lastName != nil {
		*lastName = strings.TrimSpace(*lastName)
		if err := common.ValidateName(*lastName, "last_name"); err != nil {
			verr.Add("last_name", err.Error())
		}
	}
	var newEmail string
	if email != nil {
		newEmail = common.NormalizeEmail(*email)
		if err := common.ValidateEmail(newEmail); err != nil {
			verr.Add("email", err.Error())
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if email != nil && newEmail != user.Email {
		taken, err := s.userRepo.EmailTaken(ctx, newEmail, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, common.ErrEmailTaken
		}
		user.Email = newEmail
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user.Summary(), nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, confirmPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.authSvc.VerifyPassword(user.PasswordHash, currentPassword) {
		return common.ErrInvalidCredentials
	}

	verr := &common.ValidationError{}
	if err := common.ValidatePassword(newPassword); err != nil {
		verr.Add("new_password", err.Error())
	}
	if confirmPassword != newPassword {
		verr.Add("confirm_password", "confirmation does not match the new password")
	}
	if verr.HasErrors() {
		return verr
	}

	// Checked against the stored hash, not the confirm field.
	if s.authSvc.VerifyPassword(user.PasswordHash, newPassword) {
		return common.ErrSamePassword
	}

	hash, err := s.authSvc.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// Deactivate soft-deletes the account. Calling it on an already
// inactive user succeeds silently; notes are left in place.
func (s *userService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.SetStatus(ctx, userID, models.UserStatusInactive)
}

func (s *userService) Dashboard(ctx context.Context, userID uuid.UUID) (*models.Dashboard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.noteRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.noteRepo.RecentlyUpdated(ctx, userID, false, dashboardNoteLimit)
	if err != nil {
		return nil, err
	}
	pinned, err := s.noteRepo.RecentlyUpdated(ctx, userID, true, dashboardNoteLimit)
	if err != nil {
		return nil, err
	}
	today, err := s.noteRepo.CountUpdatedToday(ctx, userID)
	if err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []*models.Note{}
	}
	if pinned == nil {
		pinned = []*models.Note{}
	}

	return &models.Dashboard{
		Profile:     user.Summary(),
		Statistics:  stats,
		RecentNotes: recent,
		PinnedNotes: pinned,
		NotesToday:  today,
	}, nil
}
