package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agenda-br/core/internal/models"
	"github.com/agenda-br/core/internal/pkg/pagination"
	"github.com/agenda-br/core/internal/pkg/validation"
	"gorm.io/gorm"
)

const uniqueCPFMessage = "O campo cpf já está em uso."

// orderColumns whitelists sortable columns; anything else falls back to
// name so raw client input never reaches the ORDER BY clause.
var orderColumns = map[string]string{
	"name":       "name",
	"cpf":        "cpf",
	"city":       "city",
	"state":      "state",
	"created_at": "created_at",
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns the caller's contacts, optionally filtered by a
// case-insensitive substring over cpf or name, sorted and paginated.
func (s *Service) List(userID, search, orderBy, orderDir string, q pagination.Query) (*pagination.Page[models.ContactModel], error) {
	col, ok := orderColumns[strings.ToLower(strings.TrimSpace(orderBy))]
	if !ok {
		col = "name"
	}
	dir := strings.ToLower(strings.TrimSpace(orderDir))
	if dir != "desc" {
		dir = "asc"
	}

	tx := s.db.Model(&models.ContactModel{}).Where("user_id = ?", userID)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(cpf) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	tx = tx.Order(fmt.Sprintf("%s %s", col, dir))

	return pagination.Paginate[models.ContactModel](tx, q)
}

// Create validates the whole DTO, checks per-owner CPF uniqueness and
// persists. All violations are reported together. The unique index is the
// authority under concurrency; a race past the pre-check surfaces as
// gorm.ErrDuplicatedKey and maps to the same cpf error.
func (s *Service) Create(userID string, dto *ContactDTO) (*models.ContactModel, error) {
	errs := validation.Check(dto)
	if len(errs["cpf"]) == 0 {
		taken, err := s.cpfTaken(userID, dto.CPF, "")
		if err != nil {
			return nil, err
		}
		if taken {
			errs["cpf"] = append(errs["cpf"], uniqueCPFMessage)
		}
	}
	if len(errs) > 0 {
		return nil, &validation.Error{Fields: errs}
	}

	c := dtoToModel(userID, dto)
	if err := s.db.Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &validation.Error{Fields: map[string][]string{"cpf": {uniqueCPFMessage}}}
		}
		return nil, err
	}
	return c, nil
}

// Get fetches one of the caller's contacts. A foreign owner's contact and
// a nonexistent id both return ErrNotFound.
func (s *Service) Get(userID, id string) (*models.ContactModel, error) {
	var c models.ContactModel
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update re-validates every field (partial update is not supported) and
// saves. Uniqueness excludes the record being updated.
func (s *Service) Update(userID, id string, dto *ContactDTO) (*models.ContactModel, error) {
	c, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	errs := validation.Check(dto)
	if len(errs["cpf"]) == 0 {
		taken, err := s.cpfTaken(userID, dto.CPF, c.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs["cpf"] = append(errs["cpf"], uniqueCPFMessage)
		}
	}
	if len(errs) > 0 {
		return nil, &validation.Error{Fields: errs}
	}

	applyDTO(c, dto)
	if err := s.db.Save(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &validation.Error{Fields: map[string][]string{"cpf": {uniqueCPFMessage}}}
		}
		return nil, err
	}
	return c, nil
}

// Delete removes one of the caller's contacts, immediately and
// unconditionally once ownership is confirmed.
func (s *Service) Delete(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.ContactModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) cpfTaken(userID, cpfValue, excludeID string) (bool, error) {
	tx := s.db.Model(&models.ContactModel{}).
		Where("user_id = ? AND cpf = ?", userID, cpfValue)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func dtoToModel(userID string, dto *ContactDTO) *models.ContactModel {
	c := &models.ContactModel{UserID: userID}
	applyDTO(c, dto)
	return c
}

func applyDTO(c *models.ContactModel, dto *ContactDTO) {
	c.Name = dto.Name
	c.CPF = dto.CPF
	c.Phone = dto.Phone
	c.CEP = dto.CEP
	c.Street = dto.Street
	c.Number = dto.Number
	c.Complement = dto.Complement
	c.Neighborhood = dto.Neighborhood
	c.City = dto.City
	c.State = dto.State
	if dto.Latitude != nil {
		c.Latitude = *dto.Latitude
	}
	if dto.Longitude != nil {
		c.Longitude = *dto.Longitude
	}
}
