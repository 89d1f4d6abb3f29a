// Package userrepo provides data transfer objects and mapping functions for
// account persistence, covering customers, translators and administrators.
package userrepo

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"tolkbook/internal/core/domain/model/kernel"
	"tolkbook/internal/core/domain/model/user"
)

// UserDTO represents the database structure for persisting user aggregates.
// The language and blacklist sets are stored as uuid text arrays; both are
// small per account and always read with the aggregate.
type UserDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role   string    `gorm:"index"`
	Active bool      `gorm:"index"`

	Name  string
	Email string
	Phone string

	TranslatorType  string
	TranslatorLevel string
	Gender          string
	City            string
	ConsumerType    string

	OptOutAll       bool
	OptOutNightTime bool
	OptOutEmergency bool

	Languages pq.StringArray `gorm:"type:text[]"`
	Blacklist pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(aggregate *user.User) UserDTO {
	meta := aggregate.Meta()
	return UserDTO{
		ID:              aggregate.ID().Bytes(),
		Role:            string(aggregate.Role()),
		Active:          aggregate.Active(),
		Name:            aggregate.Name(),
		Email:           aggregate.Email(),
		Phone:           aggregate.Phone(),
		TranslatorType:  string(meta.TranslatorType),
		TranslatorLevel: string(meta.TranslatorLevel),
		Gender:          meta.Gender,
		City:            meta.City,
		ConsumerType:    meta.ConsumerType,
		OptOutAll:       meta.OptOutAll,
		OptOutNightTime: meta.OptOutNightTime,
		OptOutEmergency: meta.OptOutEmergency,
		Languages:       idsToStrings(aggregate.Languages()),
		Blacklist:       idsToStrings(aggregate.Blacklist()),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	languages, err := stringsToIDs(dto.Languages)
	if err != nil {
		return nil, err
	}
	blacklist, err := stringsToIDs(dto.Blacklist)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		user.Role(dto.Role),
		dto.Active,
		dto.Name, dto.Email, dto.Phone,
		user.Meta{
			TranslatorType:  user.TranslatorType(dto.TranslatorType),
			TranslatorLevel: user.TranslatorLevel(dto.TranslatorLevel),
			Gender:          dto.Gender,
			City:            dto.City,
			ConsumerType:    dto.ConsumerType,
			OptOutAll:       dto.OptOutAll,
			OptOutNightTime: dto.OptOutNightTime,
			OptOutEmergency: dto.OptOutEmergency,
		},
		languages, blacklist,
	)
}

func idsToStrings(ids []kernel.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func stringsToIDs(raw pq.StringArray) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
