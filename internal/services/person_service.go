package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"geo_directory/internal/dto"
	"geo_directory/internal/models"
)

// PersonService owns Person rows. Passwords are hashed exactly once, here at
// the write boundary; no caller ever stores plaintext and nothing tries to
// guess whether a value is already hashed.
type PersonService struct {
	db *gorm.DB
}

func NewPersonService(db *gorm.DB) *PersonService {
	return &PersonService{db: db}
}

var personSortable = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"role":      "role",
	"birthDate": "birth_date",
	"cityId":    "city_id",
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *PersonService) cityByID(id uint) (*models.City, error) {
	var city models.City
	if err := s.db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("city with id %d not found", id)
		}
		return nil, err
	}
	return &city, nil
}

func (s *PersonService) reload(id uint) (*models.Person, error) {
	var person models.Person
	if err := s.db.Preload("City").First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Internal("could not reload person %d", id)
		}
		return nil, err
	}
	return &person, nil
}

func (s *PersonService) Create(input *dto.CreatePerson) (*models.Person, error) {
	var existing models.Person
	err := s.db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, Conflict("the email '%s' is already in use", input.Email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.CityID != nil {
		if _, err := s.cityByID(*input.CityID); err != nil {
			return nil, err
		}
	}

	birthDate, err := dto.ParseBirthDate(input.BirthDate)
	if err != nil {
		return nil, BadRequest("birthDate must use the YYYY-MM-DD format")
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	// Binding enforces this on the HTTP path; direct callers get the same
	// guarantee here.
	if !models.ValidRole(role) {
		return nil, BadRequest("'%s' is not a valid role", role)
	}

	person := models.Person{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hashed,
		BirthDate: birthDate,
		Role:      role,
		CityID:    input.CityID,
	}
	if err := s.db.Create(&person).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("the email '%s' is already in use", input.Email)
		}
		return nil, err
	}
	logrus.Infof("person created with id %d", person.ID)
	return s.reload(person.ID)
}

func (s *PersonService) FindAll(p *dto.Pagination) ([]models.Person, int64, error) {
	order, err := p.OrderClause(personSortable)
	if err != nil {
		return nil, 0, BadRequest("%s", err.Error())
	}

	var total int64
	if err := s.db.Model(&models.Person{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var persons []models.Person
	if err := s.db.Preload("City").
		Order(order).Offset(p.Offset()).Limit(p.LimitValue()).Find(&persons).Error; err != nil {
		return nil, 0, err
	}
	return persons, total, nil
}

func (s *PersonService) FindOne(id uint) (*models.Person, error) {
	var person models.Person
	if err := s.db.Preload("City").First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("person with id %d not found", id)
		}
		return nil, err
	}
	return &person, nil
}

// Exists is the cheap liveness check the auth middleware runs per request.
func (s *PersonService) Exists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Person{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByEmailForAuth is the only read path that returns the password hash.
// It must never feed a response DTO; returns (nil, nil) when absent.
func (s *PersonService) FindByEmailForAuth(email string) (*models.Person, error) {
	var person models.Person
	err := s.db.Where("email = ?", email).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// SearchByName matches the term against first or last name.
func (s *PersonService) SearchByName(term string, p *dto.Pagination) ([]models.Person, int64, error) {
	if term == "" {
		return nil, 0, BadRequest("search term cannot be empty")
	}
	order, err := p.OrderClause(personSortable)
	if err != nil {
		return nil, 0, BadRequest("%s", err.Error())
	}

	pattern := "%" + term + "%"
	cond := "LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)"

	var total int64
	if err := s.db.Model(&models.Person{}).Where(cond, pattern, pattern).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var persons []models.Person
	if err := s.db.Preload("City").Where(cond, pattern, pattern).
		Order(order).Offset(p.Offset()).Limit(p.LimitValue()).Find(&persons).Error; err != nil {
		return nil, 0, err
	}
	return persons, total, nil
}

func (s *PersonService) checkEmailFree(email string, selfID uint) error {
	var clash models.Person
	err := s.db.Where("email = ? AND id <> ?", email, selfID).First(&clash).Error
	if err == nil {
		return Conflict("the email '%s' is already in use by another person", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *PersonService) UpdatePartial(id uint, input *dto.UpdatePatchPerson) (*models.Person, error) {
	person, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		person.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		person.LastName = *input.LastName
	}
	if input.Email != nil && *input.Email != person.Email {
		if err := s.checkEmailFree(*input.Email, id); err != nil {
			return nil, err
		}
		person.Email = *input.Email
	}
	if input.NewPassword != nil {
		hashed, err := hashPassword(*input.NewPassword)
		if err != nil {
			return nil, err
		}
		person.Password = hashed
	}
	if input.BirthDate != nil {
		birthDate, err := dto.ParseBirthDate(input.BirthDate)
		if err != nil {
			return nil, BadRequest("birthDate must use the YYYY-MM-DD format")
		}
		person.BirthDate = birthDate
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return nil, BadRequest("'%s' is not a valid role", *input.Role)
		}
		person.Role = *input.Role
	}
	if input.CityID.Set {
		if input.CityID.Value == nil {
			person.CityID = nil
			person.City = nil
		} else {
			city, err := s.cityByID(*input.CityID.Value)
			if err != nil {
				return nil, err
			}
			person.CityID = &city.ID
			person.City = city
		}
	}

	if err := s.saveClearingCity(person); err != nil {
		return nil, err
	}
	logrus.Infof("person %d updated (PATCH)", person.ID)
	return s.reload(person.ID)
}

func (s *PersonService) UpdateFull(id uint, input *dto.UpdatePutPerson) (*models.Person, error) {
	person, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if !models.ValidRole(input.Role) {
		return nil, BadRequest("'%s' is not a valid role", input.Role)
	}
	if input.Email != person.Email {
		if err := s.checkEmailFree(input.Email, id); err != nil {
			return nil, err
		}
	}

	birthDate, err := dto.ParseBirthDate(input.BirthDate)
	if err != nil {
		return nil, BadRequest("birthDate must use the YYYY-MM-DD format")
	}

	person.FirstName = input.FirstName
	person.LastName = input.LastName
	person.Email = input.Email
	person.Role = input.Role
	person.BirthDate = birthDate

	if input.NewPassword != nil {
		hashed, err := hashPassword(*input.NewPassword)
		if err != nil {
			return nil, err
		}
		person.Password = hashed
	}

	if input.CityID == nil {
		person.CityID = nil
		person.City = nil
	} else if person.CityID == nil || *person.CityID != *input.CityID {
		city, err := s.cityByID(*input.CityID)
		if err != nil {
			return nil, err
		}
		person.CityID = &city.ID
		person.City = city
	}

	if err := s.saveClearingCity(person); err != nil {
		return nil, err
	}
	logrus.Infof("person %d updated (PUT)", person.ID)
	return s.reload(person.ID)
}

// saveClearingCity persists every column, including a nil city_id; Save
// writes all fields so an explicit null clears the reference.
func (s *PersonService) saveClearingCity(person *models.Person) error {
	if err := s.db.Omit(clause.Associations).Save(person).Error; err != nil {
		if isUniqueViolation(err) {
			return Conflict("the email '%s' is already in use by another person", person.Email)
		}
		return err
	}
	return nil
}

func (s *PersonService) Remove(id uint) (string, error) {
	if _, err := s.FindOne(id); err != nil {
		return "", err
	}
	if err := s.db.Delete(&models.Person{}, id).Error; err != nil {
		return "", err
	}
	logrus.Infof("person %d removed", id)
	return "person removed successfully", nil
}
