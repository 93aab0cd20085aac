package repository

import (
	"Nebula_Tube/internal/model"

	"gorm.io/gorm"
)

// 用户仓库接口：注册、按各种方式查找、重名校验、资料更新、注销
type UserRepository interface {
	Create(user *model.User) error
	FindByID(userID uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	// 登录时用户名和邮箱都能登，一条查询搞定
	FindByUsernameOrEmail(identifier string) (*model.User, error)
	// 注册查重：用户名或邮箱任一撞了都算重复
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	// 改资料时查重要排除自己
	ExistsEmailExcept(email string, userID uint64) (bool, error)
	ExistsUsernameExcept(username string, userID uint64) (bool, error)
	ExistsByID(userID uint64) (bool, error)

	UpdateFields(userID uint64, fields map[string]interface{}) error
	UpdateRefreshToken(userID uint64, refreshToken string) error
	UpdatePassword(userID uint64, hashed string) error
	Delete(userID uint64) error
	SearchByName(keyword string, limit int) ([]model.User, error)

	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 userRepository 实例
func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(userID uint64) (*model.User, error) {
	var result model.User
	err := r.db.First(&result, userID).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindByUsernameOrEmail(identifier string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ? OR email = ?", identifier, identifier).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsEmailExcept(email string, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("email = ? AND id <> ?", email, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsUsernameExcept(username string, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("username = ? AND id <> ?", username, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByID(userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdateFields(userID uint64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(fields).Error
}

func (r *userRepository) UpdateRefreshToken(userID uint64, refreshToken string) error {
	// 单字段更新用UpdateColumn，不去动UpdatedAt
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("refresh_token", refreshToken).Error
}

func (r *userRepository) UpdatePassword(userID uint64, hashed string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("password", hashed).Error
}

func (r *userRepository) Delete(userID uint64) error {
	return r.db.Delete(&model.User{}, userID).Error
}

// SearchByName 大小写不敏感的子串匹配（MySQL的utf8mb4默认排序规则本身就不区分大小写）
func (r *userRepository) SearchByName(keyword string, limit int) ([]model.User, error) {
	var users []model.User
	pattern := "%" + keyword + "%"
	err := r.db.
		Where("username LIKE ? OR full_name LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}
