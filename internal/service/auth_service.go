package service

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"qrmenu/config"
	"qrmenu/internal/auth"
	"qrmenu/internal/domain"
	"qrmenu/internal/models"
	"qrmenu/pkg/sms"

	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(*models.User) error
	GetByID(id uint) (*models.User, error)
	GetByPhone(phoneNumber string) (*models.User, error)
	Save(*models.User) error
}

type OTPStore interface {
	Upsert(phoneNumber, code string, expiresAt time.Time) error
	GetByPhone(phoneNumber string) (*models.OTP, error)
	Delete(phoneNumber string) error
}

// AuthService handles phone/OTP login, password accounts, and tokens.
type AuthService struct {
	cfg   *config.Config
	users UserStore
	otps  OTPStore
	sms   sms.Sender
	now   func() time.Time
}

func NewAuthService(cfg *config.Config, users UserStore, otps OTPStore, sender sms.Sender) *AuthService {
	return &AuthService{cfg: cfg, users: users, otps: otps, sms: sender, now: time.Now}
}

// RequestOTP generates a fresh 6-digit code for the phone number, stores it
// with its expiry, and sends it over SMS. A new request replaces any
// outstanding code for the same number.
func (s *AuthService) RequestOTP(ctx context.Context, phoneNumber string) error {
	if phoneNumber == "" {
		return fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	}
	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("%w: generate otp: %v", domain.ErrInternal, err)
	}
	expiresAt := s.now().Add(s.cfg.SMS.OTPExpiry)
	if err := s.otps.Upsert(phoneNumber, code, expiresAt); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	minutes := int(s.cfg.SMS.OTPExpiry.Minutes())
	text := fmt.Sprintf("Your QRMenu verification code is %s. It expires in %d minutes.", code, minutes)
	to := s.cfg.SMS.CountryCode + strings.TrimPrefix(phoneNumber, s.cfg.SMS.CountryCode)
	if err := s.sms.Send(ctx, to, text); err != nil {
		return fmt.Errorf("%w: send otp: %v", domain.ErrUpstream, err)
	}
	return nil
}

// VerifyOTP checks the submitted code, consumes it on success, finds or
// creates the user for the phone number, and returns a signed token.
func (s *AuthService) VerifyOTP(phoneNumber, code string) (string, *models.User, error) {
	if phoneNumber == "" || code == "" {
		return "", nil, fmt.Errorf("%w: phone number and otp are required", domain.ErrValidation)
	}
	rec, err := s.otps.GetByPhone(phoneNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid or expired otp", domain.ErrAuthentication)
		}
		return "", nil, fmt.Errorf("load otp: %w", err)
	}
	if rec.Code != code || s.now().After(rec.ExpiresAt) {
		return "", nil, fmt.Errorf("%w: invalid or expired otp", domain.ErrAuthentication)
	}
	// Single use.
	if err := s.otps.Delete(phoneNumber); err != nil {
		log.Printf("[auth] delete otp for %s: %v", phoneNumber, err)
	}

	user, err := s.findOrCreateUser(phoneNumber)
	if err != nil {
		return "", nil, err
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, user.ID, user.Phone(), user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%w: sign token: %v", domain.ErrInternal, err)
	}
	return token, user, nil
}

const minPasswordLength = 6

// Register creates a password-backed account, or logs in an existing one
// when the password matches. The bool reports whether a new user was
// created.
func (s *AuthService) Register(phoneNumber, password, ip string) (string, *models.User, bool, error) {
	if phoneNumber == "" || password == "" {
		return "", nil, false, fmt.Errorf("%w: phone number and password are required", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return "", nil, false, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	existing, err := s.users.GetByPhone(phoneNumber)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) != nil {
			return "", nil, false, fmt.Errorf("%w: account exists and password does not match", domain.ErrConflict)
		}
		token, err := s.IssueToken(existing)
		if err != nil {
			return "", nil, false, err
		}
		return token, existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", nil, false, fmt.Errorf("load user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, false, fmt.Errorf("%w: hash password: %v", domain.ErrInternal, err)
	}
	user := &models.User{
		PhoneNumber:  &phoneNumber,
		PasswordHash: string(hash),
		IPAddress:    ip,
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(user); err != nil {
		return "", nil, false, fmt.Errorf("create user: %w", err)
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, false, err
	}
	return token, user, true, nil
}

// Login authenticates a password-backed account.
func (s *AuthService) Login(phoneNumber, password string) (string, *models.User, error) {
	if phoneNumber == "" || password == "" {
		return "", nil, fmt.Errorf("%w: phone number and password are required", domain.ErrValidation)
	}
	user, err := s.users.GetByPhone(phoneNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid phone number or password", domain.ErrAuthentication)
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, fmt.Errorf("%w: invalid phone number or password", domain.ErrAuthentication)
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs a token for an already-authenticated user (OAuth flows).
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	token, err := auth.GenerateToken(&s.cfg.JWT, user.ID, user.Phone(), user.Role)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", domain.ErrInternal, err)
	}
	return token, nil
}

// VerifyToken parses a token and returns the user it was issued to.
func (s *AuthService) VerifyToken(token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrValidation)
	}
	claims, err := auth.ParseToken(&s.cfg.JWT, token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired token", domain.ErrAuthentication)
	}
	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: token subject no longer exists", domain.ErrAuthentication)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// CheckUser reports whether an account exists for the phone number.
func (s *AuthService) CheckUser(phoneNumber string) (*models.User, error) {
	if phoneNumber == "" {
		return nil, fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	}
	user, err := s.users.GetByPhone(phoneNumber)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// GetProfile loads the user by id. Lookup is by id rather than phone so
// Google-created accounts without a phone number can still read their
// profile.
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	return s.users.GetByID(userID)
}

type ProfileUpdate struct {
	Name               *string
	Email              *string
	PhoneNumber        *string
	AlternativeContact *string
	Address            *string
}

func (s *AuthService) UpdateProfile(userID uint, upd ProfileUpdate) (*models.User, error) {
	if upd.PhoneNumber != nil && *upd.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: phone number cannot be empty", domain.ErrValidation)
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = upd.Email
	}
	if upd.PhoneNumber != nil {
		user.PhoneNumber = upd.PhoneNumber
	}
	if upd.AlternativeContact != nil {
		user.AlternativeContact = *upd.AlternativeContact
	}
	if upd.Address != nil {
		user.Address = *upd.Address
	}
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

func (s *AuthService) findOrCreateUser(phoneNumber string) (*models.User, error) {
	user, err := s.users.GetByPhone(phoneNumber)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load user: %w", err)
	}
	user = &models.User{PhoneNumber: &phoneNumber, Role: domain.RoleCustomer}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func generateOTP() (string, error) {
	n, err := crand.Int(crand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
