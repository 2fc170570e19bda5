package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/booth-market/internal/model"
	"github.com/iliyamo/booth-market/internal/queue"
	"github.com/iliyamo/booth-market/internal/repository"
	"github.com/iliyamo/booth-market/internal/utils"
)

// IdentityOptions configures password hashing, token issuing and the
// vendor delete policy.
type IdentityOptions struct {
	BcryptCost   int
	JWTSecret    string
	TokenTTLMin  int
	DeletePolicy string
}

// IdentityService handles vendor registration, login, password recovery
// and profile maintenance.
type IdentityService struct {
	vendors VendorStore
	events  queue.Publisher
	opts    IdentityOptions
}

func NewIdentityService(vendors VendorStore, events queue.Publisher, opts IdentityOptions) *IdentityService {
	return &IdentityService{vendors: vendors, events: events, opts: opts}
}

// VendorInput carries the profile fields accepted by Register and Update.
type VendorInput struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Description string  `json:"description"`
	Owner       string  `json:"owner"`
	Logo        *string `json:"logo"`
}

// vendor applies the optional-field defaults: absent strings are stored
// as '' and an absent or empty logo as NULL.
func (in VendorInput) vendor(id uint64) *model.Vendor {
	v := &model.Vendor{
		ID:          id,
		Name:        in.Name,
		Phone:       in.Phone,
		Email:       in.Email,
		Description: in.Description,
		Owner:       in.Owner,
	}
	if in.Logo != nil && *in.Logo != "" {
		logo := *in.Logo
		v.Logo = &logo
	}
	return v
}

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	VendorInput
	Password string `json:"password"`
}

// Register creates a vendor with its credentials and returns the stored
// vendor.  The password is hashed before anything is written and both rows
// are inserted in one transaction.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*model.Vendor, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, invalid("name, email, and password required")
	}
	hash, err := utils.HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, invalid("password cannot be used")
	}
	v := in.vendor(0)
	if err := s.vendors.CreateWithAuth(ctx, v, in.Email, hash); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("email already registered", err)
		}
		return nil, storage("Error creating vendor", err)
	}
	stored, err := s.vendors.GetByID(ctx, v.ID)
	if err != nil {
		return nil, storage("Error creating vendor", err)
	}
	publish(ctx, s.events, queue.VendorRegistered, queue.NewVendorRegistered(stored.ID, stored.Name, in.Email))
	return stored, nil
}

// Session is the result of a successful login.
type Session struct {
	VendorID uint64        `json:"vendor_id"`
	Vendor   *model.Vendor `json:"vendor"`
	Token    string        `json:"token"`
	Expires  time.Time     `json:"expires"`
}

const msgInvalidCredentials = "Invalid credentials"

// Login verifies email and password.  An unknown email and a wrong
// password fail with the same ErrAuth message.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, invalid("email and password required")
	}
	auth, err := s.vendors.GetAuthByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Error{Kind: ErrAuth, Msg: msgInvalidCredentials}
	}
	if err != nil {
		return nil, storage("Server error", err)
	}
	if !utils.VerifyPassword(auth.PasswordHash, password) {
		return nil, &Error{Kind: ErrAuth, Msg: msgInvalidCredentials}
	}
	v, err := s.vendors.GetByID(ctx, auth.VendorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Error{Kind: ErrAuth, Msg: msgInvalidCredentials}
	}
	if err != nil {
		return nil, storage("Server error", err)
	}
	tok, err := utils.NewAccessToken(s.opts.JWTSecret, v.ID, auth.Email, s.opts.TokenTTLMin)
	if err != nil {
		return nil, storage("Server error", err)
	}
	return &Session{VendorID: v.ID, Vendor: v, Token: tok.Token, Expires: tok.Exp}, nil
}

// RecoveryInput is the body of a forgot-password request.
type RecoveryInput struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Owner       string `json:"owner"`
	NewPassword string `json:"newPassword"`
}

// ForgotPassword resets the password of the vendor matching email, phone
// and owner exactly.  created reports whether a missing credential row was
// inserted rather than updated.
func (s *IdentityService) ForgotPassword(ctx context.Context, in RecoveryInput) (created bool, err error) {
	if in.Email == "" || in.NewPassword == "" {
		return false, invalid("email and newPassword required")
	}
	v, err := s.vendors.FindForRecovery(ctx, in.Email, in.Phone, in.Owner)
	if errors.Is(err, repository.ErrNotFound) {
		return false, notFound("Vendor not found or details do not match")
	}
	if err != nil {
		return false, storage("Server error", err)
	}
	hash, err := utils.HashPassword(in.NewPassword, s.opts.BcryptCost)
	if err != nil {
		return false, invalid("password cannot be used")
	}
	created, err = s.vendors.SetPassword(ctx, v.ID, in.Email, hash)
	if errors.Is(err, repository.ErrDuplicate) {
		return false, conflict("email already used by another vendor", err)
	}
	if err != nil {
		return false, storage("Server error", err)
	}
	return created, nil
}

// List returns every vendor.
func (s *IdentityService) List(ctx context.Context) ([]model.Vendor, error) {
	list, err := s.vendors.List(ctx)
	if err != nil {
		return nil, storage("Error fetching vendors", err)
	}
	return list, nil
}

// Get returns the vendor with the given id as a zero-or-one slice.
func (s *IdentityService) Get(ctx context.Context, id uint64) ([]model.Vendor, error) {
	v, err := s.vendors.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.Vendor{}, nil
	}
	if err != nil {
		return nil, storage("Error fetching vendor", err)
	}
	return []model.Vendor{*v}, nil
}

// Update overwrites the vendor profile and returns the stored row.
func (s *IdentityService) Update(ctx context.Context, id uint64, in VendorInput) (*model.Vendor, error) {
	if in.Name == "" {
		return nil, invalid("name is required")
	}
	if err := s.vendors.Update(ctx, in.vendor(id)); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("Vendor not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, conflict("email already registered", err)
		}
		return nil, storage("Error updating vendor", err)
	}
	v, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, storage("Error updating vendor", err)
	}
	return v, nil
}

// Delete removes the vendor and its credentials.  Products and
// reservations follow the configured delete policy.
func (s *IdentityService) Delete(ctx context.Context, id uint64) error {
	err := s.vendors.Delete(ctx, id, s.opts.DeletePolicy)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound("Vendor not found")
	case errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrReferenced):
		return conflict("Vendor still has products or reservations", err)
	}
	return storage("Error deleting vendor account", err)
}
