package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "contactsapi/internal/errors"
	"contactsapi/internal/model"
)

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uint) (*model.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) FindOwnedByEmail(ctx context.Context, userID uint, email string) (*model.Contact, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) FindOwnedByFullname(ctx context.Context, userID uint, fullname string) (*model.Contact, error) {
	args := m.Called(ctx, userID, fullname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Contact, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}

func (m *MockContactRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func owner() *model.User {
	return &model.User{ID: 7, Email: "owner@example.com", Role: model.RoleUser}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestContactService_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockContactRepository)
		expectedError error
	}{
		{
			name: "successful create",
			setupMock: func(m *MockContactRepository) {
				m.On("FindOwnedByEmail", mock.Anything, uint(7), "friend@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Contact")).Return(nil)
			},
		},
		{
			name: "duplicate contact",
			setupMock: func(m *MockContactRepository) {
				m.On("FindOwnedByEmail", mock.Anything, uint(7), "friend@example.com").
					Return(&model.Contact{Email: "friend@example.com", UserID: 7}, nil)
			},
			expectedError: apperrors.ErrContactExists,
		},
		{
			name: "duplicate key on create",
			setupMock: func(m *MockContactRepository) {
				m.On("FindOwnedByEmail", mock.Anything, uint(7), "friend@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Contact")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrContactExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContactRepository)
			tt.setupMock(mockRepo)

			svc := NewContactService(mockRepo)
			contact, err := svc.Create(context.Background(), owner(), ContactInput{
				Fullname:    "Good Friend",
				Email:       "friend@example.com",
				PhoneNumber: "+123456789",
				Birthday:    date(1990, time.June, 15),
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, contact)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, contact)
				assert.Equal(t, uint(7), contact.UserID)
				assert.Equal(t, "Good Friend", contact.Fullname)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestContactService_GetByID_NotFound(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewContactService(mockRepo)
	contact, err := svc.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
	assert.Nil(t, contact)
}

func TestContactService_Update_OtherOwnersContactIsNotFound(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42)).
		Return(&model.Contact{ID: 42, UserID: 99}, nil)

	svc := NewContactService(mockRepo)
	contact, err := svc.Update(context.Background(), owner(), 42, ContactInput{
		Fullname: "New Name",
		Email:    "friend@example.com",
	})

	assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
	assert.Nil(t, contact)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestContactService_Delete(t *testing.T) {
	contact := &model.Contact{ID: 42, UserID: 7}

	mockRepo := new(MockContactRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42)).Return(contact, nil)
	mockRepo.On("Delete", mock.Anything, contact).Return(nil)

	svc := NewContactService(mockRepo)
	assert.NoError(t, svc.Delete(context.Background(), owner(), 42))
	mockRepo.AssertExpectations(t)
}

func TestContactService_UpcomingBirthdays(t *testing.T) {
	from := date(2026, time.December, 28)
	contacts := []model.Contact{
		{ID: 1, Fullname: "Today", Birthday: date(1990, time.December, 28), UserID: 7},
		{ID: 2, Fullname: "Within Window", Birthday: date(1985, time.January, 2), UserID: 7}, // wraps the year
		{ID: 3, Fullname: "Past", Birthday: date(1990, time.December, 20), UserID: 7},
		{ID: 4, Fullname: "Too Far", Birthday: date(1990, time.January, 20), UserID: 7},
		{ID: 5, Fullname: "No Birthday", UserID: 7},
	}

	mockRepo := new(MockContactRepository)
	mockRepo.On("ListByOwner", mock.Anything, uint(7)).Return(contacts, nil)

	svc := NewContactService(mockRepo)
	upcoming, err := svc.UpcomingBirthdays(context.Background(), owner(), from)

	assert.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Today", upcoming[0].Fullname)
	assert.Equal(t, "Within Window", upcoming[1].Fullname)
}

func TestBirthdayInWindow(t *testing.T) {
	tests := []struct {
		name     string
		birthday time.Time
		from     time.Time
		want     bool
	}{
		{"same day", date(1990, time.June, 15), date(2026, time.June, 15), true},
		{"last day of window", date(1990, time.June, 22), date(2026, time.June, 15), true},
		{"just past window", date(1990, time.June, 23), date(2026, time.June, 15), false},
		{"yesterday", date(1990, time.June, 14), date(2026, time.June, 15), false},
		{"year wrap", date(1990, time.January, 3), date(2026, time.December, 30), true},
		{"zero birthday", time.Time{}, date(2026, time.June, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, birthdayInWindow(tt.birthday, tt.from, birthdayWindowDays))
		})
	}
}
