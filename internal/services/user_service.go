package services

import (
	"errors"
	"strings"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// UserUpdate carries the mutable profile fields. Email is the user's
// identity and cannot be changed.
type UserUpdate struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

type UserService interface {
	CreateUser(user *models.User) error
	CreateSuperuser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateUser(id uint, input UserUpdate) (*models.User, error)
	ListUsers() ([]models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

// NormalizeEmail lowercases the domain part of an email address while
// preserving the local part as given.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// CreateUser stores a new user. The password is expected to be hashed
// already (models.User.HashPassword). The email is normalized here and is
// required: creation without one fails.
func (s *userService) CreateUser(user *models.User) error {
	user.Email = NormalizeEmail(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return ErrEmailRequired
	}

	var existing models.User
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	user.IsActive = true
	return s.db.Create(user).Error
}

// CreateSuperuser creates a user with staff and superuser flags set
func (s *userService) CreateSuperuser(email, password string) (*models.User, error) {
	user := &models.User{
		Email:       email,
		Password:    password,
		IsStaff:     true,
		IsSuperuser: true,
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}
	if err := s.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateUser(id uint, input UserUpdate) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Password != nil {
		hashed := models.User{Password: *input.Password}
		if err := hashed.HashPassword(); err != nil {
			return nil, err
		}
		updates["password"] = hashed.Password
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
