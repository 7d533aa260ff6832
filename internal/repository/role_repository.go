package repository

import (
	"github.com/kyildiz/user-admin-api/internal/models"
	"gorm.io/gorm"
)

// GormRoleRepository is a GORM implementation of RoleRepository
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: db}
}

// Create creates a new role
func (r *GormRoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// FindByID finds a role by ID with optional preloading
func (r *GormRoleRepository) FindByID(id uint64, preload ...string) (*models.Role, error) {
	var role models.Role
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByName finds a role by its unique name
func (r *GormRoleRepository) FindByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByIDs resolves a set of role IDs
func (r *GormRoleRepository) FindByIDs(ids []uint64) ([]models.Role, error) {
	var roles []models.Role
	if len(ids) == 0 {
		return roles, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// List retrieves all roles with members loaded
func (r *GormRoleRepository) List() ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Preload("Users").Order("roles.id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Update persists changes to a role
func (r *GormRoleRepository) Update(role *models.Role) error {
	return r.db.Omit("Users").Save(role).Error
}

// CountMembers counts users holding the role
func (r *GormRoleRepository) CountMembers(roleID uint64) (int64, error) {
	var count int64
	err := r.db.Table("user_roles").Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

// Delete removes a role
func (r *GormRoleRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Role{}, id).Error
}

// CountAll counts every role
func (r *GormRoleRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Role{}).Count(&count).Error
	return count, err
}
