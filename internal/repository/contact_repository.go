package repository

import (
	"context"

	"gorm.io/gorm"

	"contactsapi/internal/model"
)

// ContactRepository defines persistence operations on contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	FindByID(ctx context.Context, id uint) (*model.Contact, error)
	FindOwnedByEmail(ctx context.Context, userID uint, email string) (*model.Contact, error)
	FindOwnedByFullname(ctx context.Context, userID uint, fullname string) (*model.Contact, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Contact, error)
	ListByOwner(ctx context.Context, userID uint) ([]model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, contact *model.Contact) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository builds a GORM-backed repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) FindOwnedByEmail(ctx context.Context, userID uint, email string) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND email = ?", userID, email).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) FindOwnedByFullname(ctx context.Context, userID uint, fullname string) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fullname = ?", userID, fullname).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Delete(contact).Error
}
