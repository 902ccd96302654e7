package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/parla-app/parla-backend/internal/models"
	"github.com/parla-app/parla-backend/pkg/utils"
)

// ChangeCooldown is the minimum wall-clock interval between two
// successive changes to the name or the username.
const ChangeCooldown = 60 * 24 * time.Hour

// Username availability statuses reported by the live check. Advisory
// only: the save-time validation remains the sole gate.
const (
	UsernameIdle    = "idle"
	UsernameInvalid = "invalid"
	UsernameTaken   = "taken"
	UsernameOK      = "ok"
)

// EditRequest is the full proposed edit set from the account editor.
type EditRequest struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Username         string `json:"username"`
	Bio              string `json:"bio"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PhoneCode        string `json:"phone_code"`
	Gender           string `json:"gender"`
	BirthDate        string `json:"birth_date"`
	Province         string `json:"province"`
	ItalianLevel     string `json:"italian_level"`
	PrivacyHideStats bool   `json:"privacy_hide_stats"`
}

// OnboardingRequest is the mandatory subset collected by the one-time
// complete-your-profile form.
type OnboardingRequest struct {
	BirthDate    string `json:"birth_date"`
	Province     string `json:"province"`
	Gender       string `json:"gender"`
	PhoneCode    string `json:"phone_code"`
	Phone        string `json:"phone"`
	ItalianLevel string `json:"italian_level"`
}

// SettingsUpdate carries optional preference changes; nil means keep.
type SettingsUpdate struct {
	Language         *string `json:"language,omitempty"`
	PrivacyHideStats *bool   `json:"privacy_hide_stats,omitempty"`
}

// ProfileService validates and applies profile mutations. Collaborators
// are injected so the rules can be exercised against fakes.
type ProfileService struct {
	store   UserStore
	bios    BioCache
	avatars AvatarIngester
	now     func() time.Time
}

func NewProfileService(store UserStore, bios BioCache, avatars AvatarIngester) *ProfileService {
	return &ProfileService{
		store:   store,
		bios:    bios,
		avatars: avatars,
		now:     time.Now,
	}
}

func notFoundError() *utils.ValidationError {
	return &utils.ValidationError{
		Field:   "user",
		Code:    utils.CodeRecordNotFound,
		Message: "Account record not found",
	}
}

// cooldownRemaining reports whether the cooldown is still active for a
// field last changed at `last`, and if so how many whole days remain.
// A nil timestamp means the field has never been changed.
func cooldownRemaining(last *time.Time, now time.Time) (int, bool) {
	if last == nil {
		return 0, false
	}
	elapsed := now.Sub(*last)
	if elapsed >= ChangeCooldown {
		return 0, false
	}
	remaining := ChangeCooldown - elapsed
	const day = 24 * time.Hour
	days := int((remaining + day - 1) / day)
	return days, true
}

// Profile returns the stored record, falling back to the side cache
// when the record carries no bio.
func (s *ProfileService) Profile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, notFoundError()
		}
		return nil, err
	}
	if u.Bio == "" && s.bios != nil {
		if bio, ok, _ := s.bios.Get(ctx, userID); ok {
			u.Bio = bio
		}
	}
	return u, nil
}

// SaveEdit applies a proposed edit set to the stored record. Checks run
// in a fixed order and short-circuit: the first failure aborts with no
// write at all. On success every proposed field is copied onto the
// record and persisted in one store write.
func (s *ProfileService) SaveEdit(ctx context.Context, userID string, req EditRequest) (*models.User, error) {
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// A logged-in session with no backing record: surface it
			// instead of silently returning.
			log.Printf("WARNING: save-edit for missing user record %s", userID)
			return nil, notFoundError()
		}
		return nil, err
	}

	now := s.now()
	newName := models.FullName(req.FirstName, req.LastName)

	// A no-op edit never consults the cooldown.
	if newName != u.Name {
		if days, active := cooldownRemaining(u.NameChangeDate, now); active {
			return nil, &utils.ValidationError{
				Field:   "name",
				Code:    utils.CodeCooldownActive,
				Message: fmt.Sprintf("Name can be changed again in %d days", days),
				Days:    days,
			}
		}
	}
	if req.Username != "" && req.Username != u.Username {
		if days, active := cooldownRemaining(u.UsernameChangeDate, now); active {
			return nil, &utils.ValidationError{
				Field:   "username",
				Code:    utils.CodeCooldownActive,
				Message: fmt.Sprintf("Username can be changed again in %d days", days),
				Days:    days,
			}
		}
	}

	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateBio(req.Bio); err != nil {
		return nil, err
	}

	if req.Username != "" && req.Username != u.Username {
		taken, err := s.store.ListUsernames(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if err := utils.ValidateUsername(req.Username, u.Username, taken); err != nil {
			return nil, err
		}
	}

	// All checks passed; mutate the loaded record and write it once.
	if newName != u.Name {
		u.NameChangeDate = &now
	}
	if req.Username != "" && req.Username != u.Username {
		u.UsernameChangeDate = &now
	}
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Name = newName
	u.Username = req.Username
	u.Bio = req.Bio
	u.Email = req.Email
	u.Phone = phone
	u.PhoneCode = req.PhoneCode
	u.Gender = req.Gender
	u.BirthDate = req.BirthDate
	u.Province = req.Province
	u.ItalianLevel = req.ItalianLevel
	u.PrivacyHideStats = req.PrivacyHideStats
	u.UpdatedAt = now

	if s.bios != nil {
		if err := s.bios.Set(ctx, u.ID, u.Bio); err != nil {
			// The record remains the source of truth for the bio.
			log.Printf("WARNING: failed to cache bio for user %s: %v", u.ID, err)
		}
	}

	if err := s.store.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CheckUsername is the live availability check behind the editor's
// per-keystroke feedback.
func (s *ProfileService) CheckUsername(ctx context.Context, userID, candidate string) (string, error) {
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", notFoundError()
		}
		return "", err
	}

	if candidate == "" || candidate == u.Username {
		return UsernameIdle, nil
	}

	taken, err := s.store.ListUsernames(ctx, u.ID)
	if err != nil {
		return "", err
	}

	var verr *utils.ValidationError
	if err := utils.ValidateUsername(candidate, u.Username, taken); errors.As(err, &verr) {
		if verr.Code == utils.CodeUsernameTaken {
			return UsernameTaken, nil
		}
		return UsernameInvalid, nil
	}
	return UsernameOK, nil
}

// ChangePassword verifies the current password and replaces the stored
// hash. All rejections are local; nothing is written on failure.
func (s *ProfileService) ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error {
	if current == "" {
		return &utils.ValidationError{
			Field:   "current_password",
			Code:    utils.CodeMissingRequired,
			Message: "Please enter your current password",
		}
	}
	if len(newPassword) < 6 {
		return &utils.ValidationError{
			Field:   "new_password",
			Code:    utils.CodeFormatInvalid,
			Message: "New password must be at least 6 characters",
		}
	}
	if newPassword != confirm {
		return &utils.ValidationError{
			Field:   "confirm_password",
			Code:    utils.CodeValueMismatch,
			Message: "New password and confirmation do not match",
		}
	}

	// Re-fetch the authoritative record before verifying.
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return notFoundError()
		}
		return err
	}

	valid, err := utils.VerifyPassword(current, u.Password)
	if err != nil || !valid {
		return &utils.ValidationError{
			Field:   "current_password",
			Code:    utils.CodeCredentialInvalid,
			Message: "Current password is incorrect",
		}
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdatePassword(ctx, userID, hash)
}

// UpdateAvatar ingests the image and stores the result on the record.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID, contentType string, data []byte) (string, error) {
	avatar, err := s.avatars.Ingest(ctx, contentType, data)
	if err != nil {
		return "", err
	}
	if err := s.store.UpdateAvatar(ctx, userID, avatar); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", notFoundError()
		}
		return "", err
	}
	return avatar, nil
}

// DeleteAvatar clears the record's avatar field.
func (s *ProfileService) DeleteAvatar(ctx context.Context, userID string) error {
	err := s.store.UpdateAvatar(ctx, userID, "")
	if errors.Is(err, ErrUserNotFound) {
		return notFoundError()
	}
	return err
}

// CompleteOnboarding writes the mandatory subset plus profileComplete
// in one operation. Any validation failure leaves the record unmodified.
func (s *ProfileService) CompleteOnboarding(ctx context.Context, userID string, req OnboardingRequest) (*models.User, error) {
	for field, val := range map[string]string{
		"birth_date":    req.BirthDate,
		"province":      req.Province,
		"gender":        req.Gender,
		"phone":         req.Phone,
		"italian_level": req.ItalianLevel,
	} {
		if val == "" {
			return nil, &utils.ValidationError{
				Field:   field,
				Code:    utils.CodeMissingRequired,
				Message: "Please fill in all required fields",
			}
		}
	}

	if !models.ValidProvince(req.Province) {
		return nil, &utils.ValidationError{
			Field:   "province",
			Code:    utils.CodeFormatInvalid,
			Message: "Unknown province",
		}
	}
	if !models.ValidGender(req.Gender) {
		return nil, &utils.ValidationError{
			Field:   "gender",
			Code:    utils.CodeFormatInvalid,
			Message: "Unknown gender",
		}
	}
	if !models.ValidItalianLevel(req.ItalianLevel) {
		return nil, &utils.ValidationError{
			Field:   "italian_level",
			Code:    utils.CodeFormatInvalid,
			Message: "Unknown Italian level",
		}
	}

	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	u, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, notFoundError()
		}
		return nil, err
	}

	u.BirthDate = req.BirthDate
	u.Country = "Italia"
	u.Province = req.Province
	u.Gender = req.Gender
	u.PhoneCode = req.PhoneCode
	u.Phone = phone
	u.ItalianLevel = req.ItalianLevel
	u.ProfileComplete = true
	u.UpdatedAt = s.now()

	if err := s.store.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateSettings applies preference changes (interface language,
// hide-stats toggle) to the record.
func (s *ProfileService) UpdateSettings(ctx context.Context, userID string, req SettingsUpdate) (*models.User, error) {
	if req.Language != nil && !models.ValidLanguage(*req.Language) {
		return nil, &utils.ValidationError{
			Field:   "language",
			Code:    utils.CodeFormatInvalid,
			Message: "Unknown language setting",
		}
	}

	u, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, notFoundError()
		}
		return nil, err
	}

	if req.Language != nil {
		u.Settings.Language = *req.Language
	}
	if req.PrivacyHideStats != nil {
		u.PrivacyHideStats = *req.PrivacyHideStats
	}
	u.UpdatedAt = s.now()

	if err := s.store.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
