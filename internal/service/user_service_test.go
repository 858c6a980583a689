package service

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aokana/reportform/config"
	"github.com/aokana/reportform/internal/dto"
	"github.com/aokana/reportform/internal/model"
	"github.com/aokana/reportform/internal/repository"
)

type fakeMailer struct {
	toEmail  string
	token    string
	name     string
	password string
	calls    int
}

func (m *fakeMailer) SendInvitation(toEmail, token, name, password string) error {
	m.toEmail = toEmail
	m.token = token
	m.name = name
	m.password = password
	m.calls++
	return nil
}

const testTokenSecret = "test-secret"

func newUserService(t *testing.T) (UserService, *fakeMailer, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	mailer := &fakeMailer{}
	cfg := &config.Config{}
	cfg.Auth.TokenSecret = testTokenSecret
	svc := NewUserService(repository.NewUserRepository(db), repository.NewProjectRepository(db), mailer, cfg)
	return svc, mailer, db
}

func validRegistration() dto.UserRegisterDTO {
	return dto.UserRegisterDTO{
		Name:                 "name",
		Email:                "sample1@email.com",
		Password:             "password",
		PasswordConfirmation: "password",
	}
}

func TestRegisterValidations(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*dto.UserRegisterDTO)
		wantErr bool
	}{
		{"valid", func(r *dto.UserRegisterDTO) {}, false},
		{"name missing", func(r *dto.UserRegisterDTO) { r.Name = "" }, true},
		{"name at limit", func(r *dto.UserRegisterDTO) { r.Name = strings.Repeat("a", 20) }, false},
		{"name too long", func(r *dto.UserRegisterDTO) { r.Name = strings.Repeat("a", 21) }, true},
		{"email missing", func(r *dto.UserRegisterDTO) { r.Email = "" }, true},
		{"email bad format", func(r *dto.UserRegisterDTO) { r.Email = "invalid_email" }, true},
		{"email at limit", func(r *dto.UserRegisterDTO) { r.Email = strings.Repeat("a", 90) + "@email.com" }, false},
		{"email too long", func(r *dto.UserRegisterDTO) { r.Email = strings.Repeat("a", 101) + "@email.com" }, true},
		{"password missing", func(r *dto.UserRegisterDTO) { r.Password = ""; r.PasswordConfirmation = "" }, true},
		{"password too short", func(r *dto.UserRegisterDTO) { r.Password = "abcdefg"; r.PasswordConfirmation = "abcdefg" }, true},
		{"password at lower limit", func(r *dto.UserRegisterDTO) { r.Password = "abcdefgh"; r.PasswordConfirmation = "abcdefgh" }, false},
		{"password at upper limit", func(r *dto.UserRegisterDTO) {
			p := strings.Repeat("a", 30)
			r.Password, r.PasswordConfirmation = p, p
		}, false},
		{"password too long", func(r *dto.UserRegisterDTO) {
			p := strings.Repeat("a", 31)
			r.Password, r.PasswordConfirmation = p, p
		}, true},
		{"password uppercase", func(r *dto.UserRegisterDTO) { r.Password = "PASSWORD"; r.PasswordConfirmation = "PASSWORD" }, true},
		{"confirmation mismatch", func(r *dto.UserRegisterDTO) { r.PasswordConfirmation = "passward" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newUserService(t)
			req := validRegistration()
			tc.mutate(&req)

			_, err := svc.Register(req)
			if tc.wantErr {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRegisterRejectsDuplicateEmailCaseInsensitively(t *testing.T) {
	svc, _, _ := newUserService(t)
	first := validRegistration()
	first.Email = "test-1@email.com"
	_, err := svc.Register(first)
	require.NoError(t, err)

	second := validRegistration()
	second.Email = "TEST-1@EMAIL.COM"
	_, err = svc.Register(second)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages, "email is already taken")
}

func TestRegisterNormalizesEmailToLowercase(t *testing.T) {
	svc, _, db := newUserService(t)
	req := validRegistration()
	req.Email = "SAMPLE@EMAIL.COM"

	created, err := svc.Register(req)
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, "sample@email.com", stored.Email)
}

func TestRegisterStoresPasswordHash(t *testing.T) {
	svc, _, db := newUserService(t)
	created, err := svc.Register(validRegistration())
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.NotEqual(t, "password", stored.EncryptedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.EncryptedPassword), []byte("password")))
}

func TestInviteCreatesAccountAndSendsMail(t *testing.T) {
	svc, mailer, db := newUserService(t)

	invited, err := svc.Invite(dto.UserInviteDTO{Name: "invitee", Email: "Invitee@Email.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "invitee@email.com", mailer.toEmail)
	assert.Equal(t, "invitee", mailer.name)

	// The temporary password satisfies the registration rules.
	assert.GreaterOrEqual(t, len(mailer.password), passwordMinLen)
	assert.Regexp(t, "^[a-z0-9]+$", mailer.password)

	var stored model.User
	require.NoError(t, db.First(&stored, invited.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.EncryptedPassword), []byte(mailer.password)))

	token, err := jwt.Parse(mailer.token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testTokenSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "invitee@email.com", claims["sub"])
	assert.Equal(t, "invitee", claims["name"])
	assert.NotEmpty(t, claims["jti"])
}

func TestUpdateWithoutCurrentPasswordKeepsHashWhenPasswordBlank(t *testing.T) {
	svc, _, db := newUserService(t)
	created, err := svc.Register(validRegistration())
	require.NoError(t, err)

	var before model.User
	require.NoError(t, db.First(&before, created.ID).Error)

	blank := ""
	updated, err := svc.UpdateWithoutCurrentPassword(created.ID, dto.UserProfileUpdateDTO{
		Email:                ptr("new-address@email.com"),
		Password:             &blank,
		PasswordConfirmation: &blank,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-address@email.com", updated.Email)

	var after model.User
	require.NoError(t, db.First(&after, created.ID).Error)
	assert.Equal(t, "new-address@email.com", after.Email)
	assert.Equal(t, before.EncryptedPassword, after.EncryptedPassword)
}

func TestUpdateWithoutCurrentPasswordChangesPasswordWhenGiven(t *testing.T) {
	svc, _, db := newUserService(t)
	created, err := svc.Register(validRegistration())
	require.NoError(t, err)

	_, err = svc.UpdateWithoutCurrentPassword(created.ID, dto.UserProfileUpdateDTO{
		Password:             ptr("newpassword1"),
		PasswordConfirmation: ptr("newpassword1"),
	})
	require.NoError(t, err)

	var after model.User
	require.NoError(t, db.First(&after, created.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after.EncryptedPassword), []byte("newpassword1")))
}

func TestIsProjectLeader(t *testing.T) {
	svc, _, db := newUserService(t)
	leader, err := svc.Register(validRegistration())
	require.NoError(t, err)

	other := validRegistration()
	other.Email = "other@email.com"
	bystander, err := svc.Register(other)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Project{Name: "led project", LeaderID: &leader.ID}).Error)

	isLeader, err := svc.IsProjectLeader(leader.ID)
	require.NoError(t, err)
	assert.True(t, isLeader)

	isLeader, err = svc.IsProjectLeader(bystander.ID)
	require.NoError(t, err)
	assert.False(t, isLeader)
}
