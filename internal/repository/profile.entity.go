package repository

import (
	"time"

	"github.com/acolin/asso-ledger/internal/model"
	"github.com/acolin/asso-ledger/pkg/pg"
)

type ProfileEntity struct {
	ID           int64  `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Email        string `db:"email"         gorm:"column:email;not null;uniqueIndex"`
	DisplayName  string `db:"display_name"  gorm:"column:display_name;not null"`
	Role         string `db:"role"          gorm:"column:role;not null"`
	PasswordHash string `db:"password_hash" gorm:"column:password_hash;not null"`
	pg.Audit
}

func (ProfileEntity) TableName() string {
	return "profiles"
}

type InviteEntity struct {
	ID        int64      `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Token     string     `db:"token"      gorm:"column:token;not null;uniqueIndex"`
	Email     string     `db:"email"      gorm:"column:email;not null"`
	Role      string     `db:"role"       gorm:"column:role;not null"`
	ExpiresAt time.Time  `db:"expires_at" gorm:"column:expires_at;not null"`
	UsedAt    *time.Time `db:"used_at"    gorm:"column:used_at"`
	CreatedBy int64      `db:"created_by" gorm:"column:created_by;not null"`
	pg.Audit
}

func (InviteEntity) TableName() string {
	return "invites"
}

func toProfileEntity(m *model.Profile) *ProfileEntity {
	if m == nil {
		return nil
	}
	return &ProfileEntity{
		ID:           m.ID,
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		Role:         string(m.Role),
		PasswordHash: m.PasswordHash,
	}
}

func toProfileModel(e *ProfileEntity) *model.Profile {
	if e == nil {
		return nil
	}
	return &model.Profile{
		ID:           e.ID,
		Email:        e.Email,
		DisplayName:  e.DisplayName,
		Role:         model.Role(e.Role),
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toInviteEntity(m *model.Invite) *InviteEntity {
	if m == nil {
		return nil
	}
	return &InviteEntity{
		ID:        m.ID,
		Token:     m.Token,
		Email:     m.Email,
		Role:      string(m.Role),
		ExpiresAt: m.ExpiresAt,
		UsedAt:    m.UsedAt,
		CreatedBy: m.CreatedBy,
	}
}

func toInviteModel(e *InviteEntity) *model.Invite {
	if e == nil {
		return nil
	}
	return &model.Invite{
		ID:        e.ID,
		Token:     e.Token,
		Email:     e.Email,
		Role:      model.Role(e.Role),
		ExpiresAt: e.ExpiresAt,
		UsedAt:    e.UsedAt,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
