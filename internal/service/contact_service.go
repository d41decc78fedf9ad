package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "contactsapi/internal/errors"
	"contactsapi/internal/model"
	"contactsapi/internal/repository"
)

// birthdayWindowDays is how far ahead the upcoming-birthday queries look.
const birthdayWindowDays = 7

// ContactInput carries the fields a caller may set on a contact.
type ContactInput struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Birthday    time.Time
}

// ContactService handles address-book operations. Reads and writes are
// scoped to the owning user except ListAll, which backs the role-gated
// admin view.
type ContactService interface {
	Create(ctx context.Context, user *model.User, input ContactInput) (*model.Contact, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Contact, error)
	GetByID(ctx context.Context, id uint) (*model.Contact, error)
	GetByFullname(ctx context.Context, user *model.User, fullname string) (*model.Contact, error)
	GetByEmail(ctx context.Context, user *model.User, email string) (*model.Contact, error)
	UpcomingBirthdays(ctx context.Context, user *model.User, from time.Time) ([]model.Contact, error)
	Update(ctx context.Context, user *model.User, id uint, input ContactInput) (*model.Contact, error)
	Delete(ctx context.Context, user *model.User, id uint) error
}

type contactService struct {
	contacts repository.ContactRepository
}

// NewContactService creates a new contact service.
func NewContactService(contacts repository.ContactRepository) ContactService {
	return &contactService{contacts: contacts}
}

func (s *contactService) Create(ctx context.Context, user *model.User, input ContactInput) (*model.Contact, error) {
	existing, err := s.contacts.FindOwnedByEmail(ctx, user.ID, input.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrContactExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check contact existence: %w", err)
	}

	contact := &model.Contact{
		Fullname:    input.Fullname,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Birthday:    input.Birthday,
		UserID:      user.ID,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		// concurrent creates race at the owner+email unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrContactExists
		}
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) ListAll(ctx context.Context, limit, offset int) ([]model.Contact, error) {
	return s.contacts.ListAll(ctx, limit, offset)
}

func (s *contactService) GetByID(ctx context.Context, id uint) (*model.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrContactNotFound
	}
	return contact, nil
}

func (s *contactService) GetByFullname(ctx context.Context, user *model.User, fullname string) (*model.Contact, error) {
	contact, err := s.contacts.FindOwnedByFullname(ctx, user.ID, fullname)
	if err != nil {
		return nil, apperrors.ErrContactNotFound
	}
	return contact, nil
}

func (s *contactService) GetByEmail(ctx context.Context, user *model.User, email string) (*model.Contact, error) {
	contact, err := s.contacts.FindOwnedByEmail(ctx, user.ID, email)
	if err != nil {
		return nil, apperrors.ErrContactNotFound
	}
	return contact, nil
}

// UpcomingBirthdays returns the user's contacts whose birthday falls within
// the next 7 days of the given date, by calendar month and day.
func (s *contactService) UpcomingBirthdays(ctx context.Context, user *model.User, from time.Time) ([]model.Contact, error) {
	contacts, err := s.contacts.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	upcoming := make([]model.Contact, 0)
	for _, c := range contacts {
		if birthdayInWindow(c.Birthday, from, birthdayWindowDays) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

func (s *contactService) Update(ctx context.Context, user *model.User, id uint, input ContactInput) (*model.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil || contact.UserID != user.ID {
		return nil, apperrors.ErrContactNotFound
	}

	contact.Fullname = input.Fullname
	contact.Email = input.Email
	contact.PhoneNumber = input.PhoneNumber
	contact.Birthday = input.Birthday
	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, user *model.User, id uint) error {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil || contact.UserID != user.ID {
		return apperrors.ErrContactNotFound
	}
	return s.contacts.Delete(ctx, contact)
}

// birthdayInWindow reports whether the next occurrence of birthday lands in
// [from, from+days], comparing calendar dates only.
func birthdayInWindow(birthday, from time.Time, days int) bool {
	if birthday.IsZero() {
		return false
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(from.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(start) {
		next = next.AddDate(1, 0, 0)
	}
	return !next.After(start.AddDate(0, 0, days))
}
