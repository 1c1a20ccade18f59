package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"purelife/internal/infra"
	"purelife/internal/models/db_models"
)

type MemberRepository interface {
	Insert(ctx context.Context, member *db_models.Member) error
	FindById(ctx context.Context, id uint) (*db_models.Member, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Member, error)
	UpdateProfile(ctx context.Context, id uint, name string, phone *string) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	SetActive(ctx context.Context, id uint, active bool) (bool, error)
	ListAll(ctx context.Context) ([]db_models.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{
		db: db,
	}
}

func (m *memberRepository) Insert(ctx context.Context, member *db_models.Member) error {
	return infra.DB(ctx, m.db).Create(member).Error
}

func (m *memberRepository) FindById(ctx context.Context, id uint) (*db_models.Member, error) {
	var member db_models.Member
	err := infra.DB(ctx, m.db).First(&member, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

func (m *memberRepository) FindByEmail(ctx context.Context, email string) (*db_models.Member, error) {
	var member db_models.Member
	err := infra.DB(ctx, m.db).First(&member, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

func (m *memberRepository) UpdateProfile(ctx context.Context, id uint, name string, phone *string) error {
	return infra.DB(ctx, m.db).Model(&db_models.Member{BaseModel: db_models.BaseModel{ID: id}}).
		Updates(map[string]interface{}{"name": name, "phone": phone}).Error
}

func (m *memberRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return infra.DB(ctx, m.db).Model(&db_models.Member{BaseModel: db_models.BaseModel{ID: id}}).
		Update("password_hash", passwordHash).Error
}

// SetActive reports false when no member has the given id.
func (m *memberRepository) SetActive(ctx context.Context, id uint, active bool) (bool, error) {
	res := infra.DB(ctx, m.db).Model(&db_models.Member{BaseModel: db_models.BaseModel{ID: id}}).
		Update("is_active", active)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (m *memberRepository) ListAll(ctx context.Context) ([]db_models.Member, error) {
	var members []db_models.Member
	if err := infra.DB(ctx, m.db).Order("id DESC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

type AdminRepository interface {
	FindByAccount(ctx context.Context, account string) (*db_models.Admin, error)
	FindById(ctx context.Context, id uint) (*db_models.Admin, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (a *adminRepository) FindByAccount(ctx context.Context, account string) (*db_models.Admin, error) {
	var admin db_models.Admin
	err := infra.DB(ctx, a.db).First(&admin, "account = ?", account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &admin, nil
}

func (a *adminRepository) FindById(ctx context.Context, id uint) (*db_models.Admin, error) {
	var admin db_models.Admin
	err := infra.DB(ctx, a.db).First(&admin, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &admin, nil
}
