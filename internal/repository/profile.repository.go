package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/pg"
)

type ProfileRepository struct {
	*pg.DB
}

func NewProfileRepository(db *pg.DB) *ProfileRepository {
	return &ProfileRepository{
		db,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	entity := toProfileEntity(profile)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toProfileModel(entity), nil
}

func (r *ProfileRepository) Get(ctx context.Context, id int64) (*model.Profile, error) {
	var entity ProfileEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile %d", apperr.ErrNotFound, id)
		}
		return nil, err
	}
	return toProfileModel(&entity), nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var entity ProfileEntity
	err := r.Read(ctx).Where("email = ?", email).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile %s", apperr.ErrNotFound, email)
		}
		return nil, err
	}
	return toProfileModel(&entity), nil
}

type InviteRepository struct {
	*pg.DB
}

func NewInviteRepository(db *pg.DB) *InviteRepository {
	return &InviteRepository{
		db,
	}
}

func (r *InviteRepository) Create(ctx context.Context, invite *model.Invite) (*model.Invite, error) {
	entity := toInviteEntity(invite)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toInviteModel(entity), nil
}

func (r *InviteRepository) GetByToken(ctx context.Context, token string) (*model.Invite, error) {
	var entity InviteEntity
	err := r.Read(ctx).Where("token = ?", token).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invite", apperr.ErrNotFound)
		}
		return nil, err
	}
	return toInviteModel(&entity), nil
}

// MarkUsed consumes the invite. The used_at guard makes redemption
// single-shot even under concurrent attempts.
func (r *InviteRepository) MarkUsed(ctx context.Context, id int64, usedAt time.Time) error {
	result := r.Write(ctx).
		Model(&InviteEntity{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", usedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: invite already used", apperr.ErrValidation)
	}
	return nil
}
