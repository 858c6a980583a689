package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/aokana/reportform/config"
	"github.com/aokana/reportform/internal/dto"
	"github.com/aokana/reportform/internal/model"
	"github.com/aokana/reportform/internal/repository"
)

const (
	nameMaxLen      = 20
	emailMaxLen     = 100
	passwordMinLen  = 8
	passwordMaxLen  = 30
	inviteTokenTTL  = 72 * time.Hour
	tempPasswordLen = 12
)

var (
	emailFormat = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	// Passwords are restricted to half-width lowercase letters and digits.
	passwordFormat = regexp.MustCompile(`^[a-z0-9]+$`)
)

type UserService interface {
	Register(req dto.UserRegisterDTO) (*dto.UserResponseDTO, error)
	Invite(req dto.UserInviteDTO) (*dto.UserResponseDTO, error)
	UpdateWithoutCurrentPassword(userID uint, req dto.UserProfileUpdateDTO) (*dto.UserResponseDTO, error)
	IsProjectLeader(userID uint) (bool, error)
}

type userService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	mailer      Mailer
	tokenSecret string
}

func NewUserService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository, mailer Mailer, cfg *config.Config) UserService {
	return &userService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		mailer:      mailer,
		tokenSecret: cfg.Auth.TokenSecret,
	}
}

func (s *userService) Register(req dto.UserRegisterDTO) (*dto.UserResponseDTO, error) {
	if err := s.validateName(req.Name); err != nil {
		return nil, err
	}
	if err := s.validateEmail(req.Email, 0); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password, req.PasswordConfirmation); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := model.User{
		Name:              req.Name,
		Email:             req.Email,
		EncryptedPassword: string(hash),
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return nil, newValidationError("failed to register the account")
	}

	var resp dto.UserResponseDTO
	copier.Copy(&resp, &user)
	return &resp, nil
}

// Invite creates the invited account with a generated temporary password and
// mails a signed invitation token to the address.
func (s *userService) Invite(req dto.UserInviteDTO) (*dto.UserResponseDTO, error) {
	if err := s.validateName(req.Name); err != nil {
		return nil, err
	}
	if err := s.validateEmail(req.Email, 0); err != nil {
		return nil, err
	}

	tempPassword := generateTempPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing temporary password: %w", err)
	}
	user := model.User{
		Name:              req.Name,
		Email:             req.Email,
		EncryptedPassword: string(hash),
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create invited user")
		return nil, newValidationError("failed to register the invited account")
	}

	token, err := s.signInviteToken(&user)
	if err != nil {
		return nil, fmt.Errorf("signing invitation token: %w", err)
	}
	if err := s.mailer.SendInvitation(user.Email, token, user.Name, tempPassword); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("Failed to send invitation mail")
		return nil, err
	}
	log.Info().Str("email", user.Email).Msg("Invitation sent")

	var resp dto.UserResponseDTO
	copier.Copy(&resp, &user)
	return &resp, nil
}

func (s *userService) UpdateWithoutCurrentPassword(userID uint, req dto.UserProfileUpdateDTO) (*dto.UserResponseDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found with ID %d: %w", userID, err)
	}

	if req.Name != nil && *req.Name != "" {
		if err := s.validateName(*req.Name); err != nil {
			return nil, err
		}
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		if err := s.validateEmail(*req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	// Blank password fields leave the stored hash untouched.
	if req.Password != nil && *req.Password != "" {
		confirmation := ""
		if req.PasswordConfirmation != nil {
			confirmation = *req.PasswordConfirmation
		}
		if err := validatePassword(*req.Password, confirmation); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.EncryptedPassword = string(hash)
	}

	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to update user profile")
		return nil, newValidationError("failed to update the account")
	}
	var resp dto.UserResponseDTO
	copier.Copy(&resp, user)
	return &resp, nil
}

// IsProjectLeader reports whether the user leads at least one project.
func (s *userService) IsProjectLeader(userID uint) (bool, error) {
	return s.projectRepo.ExistsWithLeader(userID)
}

func (s *userService) validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError("name is required")
	}
	if len([]rune(name)) > nameMaxLen {
		return newValidationError(fmt.Sprintf("name must be at most %d characters", nameMaxLen))
	}
	return nil
}

// validateEmail checks presence, length, format and case-insensitive
// uniqueness. selfID excludes the user's own record during profile updates.
func (s *userService) validateEmail(email string, selfID uint) error {
	if email == "" {
		return newValidationError("email is required")
	}
	if len(email) > emailMaxLen {
		return newValidationError(fmt.Sprintf("email must be at most %d characters", emailMaxLen))
	}
	if !emailFormat.MatchString(email) {
		return newValidationError("email format is invalid")
	}
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("checking email uniqueness: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return newValidationError("email is already taken")
	}
	return nil
}

func validatePassword(password, confirmation string) error {
	if password == "" {
		return newValidationError("password is required")
	}
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return newValidationError(fmt.Sprintf("password must be %d to %d characters", passwordMinLen, passwordMaxLen))
	}
	if !passwordFormat.MatchString(password) {
		return newValidationError("password must be lowercase letters and digits only")
	}
	if password != confirmation {
		return newValidationError("password confirmation does not match")
	}
	return nil
}

func (s *userService) signInviteToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"name": user.Name,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(inviteTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.tokenSecret))
}

// generateTempPassword produces a throwaway password that satisfies the
// lowercase-alphanumeric rule.
func generateTempPassword() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:tempPasswordLen]
}
