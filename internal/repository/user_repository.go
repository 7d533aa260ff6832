package repository

import (
	"time"

	"github.com/kyildiz/user-admin-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user; role associations on the struct are
// created in the same transaction.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUserName finds a user by username with roles and manager loaded
func (r *GormUserRepository) FindByUserName(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").Preload("Manager").
		Where("user_name = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUserName reports whether a username is already taken
func (r *GormUserRepository) ExistsByUserName(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("user_name = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail reports whether an email is already taken
func (r *GormUserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// List retrieves users matching the filter
func (r *GormUserRepository) List(filter UserFilter) ([]models.User, error) {
	query := r.db.Model(&models.User{}).Preload("Roles").Preload("Manager")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"user_name LIKE ? OR email LIKE ? OR full_name LIKE ?",
			like, like, like,
		)
	}
	if filter.Role != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM user_roles JOIN roles ON roles.id = user_roles.role_id"+
				" WHERE user_roles.user_id = users.id AND roles.name = ?)",
			filter.Role,
		)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var users []models.User
	if err := query.Order("users.id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListManagedBy lists users whose manager is the given user
func (r *GormUserRepository) ListManagedBy(managerID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("Roles").Preload("Manager").
		Where("manager_id = ?", managerID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByIDs resolves a set of user IDs
func (r *GormUserRepository) FindByIDs(ids []uint64) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindFirstWithRole returns an arbitrary user holding the named role.
// Selection is by lowest ID, matching the legacy registration fallback.
func (r *GormUserRepository) FindFirstWithRole(roleName string) (*models.User, error) {
	var user models.User
	if err := r.db.
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", roleName).
		Order("users.id").
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Omit("Roles", "Manager", "Assignments").Save(user).Error
}

// ReplaceRoles replaces the user's role set
func (r *GormUserRepository) ReplaceRoles(user *models.User, roles []models.Role) error {
	return r.db.Model(user).Association("Roles").Replace(roles)
}

// UpdateLastLogin records a successful login
func (r *GormUserRepository) UpdateLastLogin(id uint64, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_date", at).Error
}

// CountReports counts users managed by the given user
func (r *GormUserRepository) CountReports(managerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("manager_id = ?", managerID).Count(&count).Error
	return count, err
}

// Delete removes a user. The user's task assignments and role
// associations are removed in the same transaction; tasks the user
// created are left in place.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&user).Association("Roles").Clear(); err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

// Recent lists the newest users by creation date
func (r *GormUserRepository) Recent(limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("Roles").
		Order("created_date DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountAll counts every user
func (r *GormUserRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountActive counts active users
func (r *GormUserRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountWithRole counts users holding the named role
func (r *GormUserRepository) CountWithRole(roleName string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", roleName).
		Count(&count).Error
	return count, err
}
