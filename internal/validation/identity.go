package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/iudanet/deltasync/internal/models"
)

// ErrInvalid базовая ошибка валидации, все ошибки пакета оборачивают ее
var ErrInvalid = errors.New("invalid input")

// ClientIDPattern определяет допустимый формат идентификатора клиента.
// Латинские буквы, цифры, '_', '-' и '.', длина 1-128.
// Двоеточие запрещено: оно разделяет части ключей хранилища.
var ClientIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{1,128}$`)

// EntityIDPattern формат идентификатора сущности
var EntityIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.:\-]{1,128}$`)

const (
	// MaxClientIDLen максимальная длина идентификатора клиента
	MaxClientIDLen = 128
	// MaxBatchSize максимальное число сущностей в пакетной синхронизации
	MaxBatchSize = 100
	// MaxTargets максимальное число получателей рассылки
	MaxTargets = 10_000
)

// ValidateClientID проверяет идентификатор клиента
func ValidateClientID(clientID string) error {
	if clientID == "" {
		return fmt.Errorf("%w: client id cannot be empty", ErrInvalid)
	}

	if len(clientID) > MaxClientIDLen {
		return fmt.Errorf("%w: client id must not exceed %d characters", ErrInvalid, MaxClientIDLen)
	}

	if !ClientIDPattern.MatchString(clientID) {
		return fmt.Errorf("%w: client id can only contain letters, numbers, '_', '-' and '.'", ErrInvalid)
	}

	if clientID == models.ServerNodeID {
		return fmt.Errorf("%w: client id %q is reserved", ErrInvalid, clientID)
	}

	return nil
}

// ValidateEntityType проверяет, что тип сущности входит в закрытый список
func ValidateEntityType(entityType models.EntityType) error {
	if !entityType.Valid() {
		return fmt.Errorf("%w: unknown entity type %q", ErrInvalid, entityType)
	}
	return nil
}

// ValidateEntityID проверяет идентификатор сущности; пустой допустим (весь список)
func ValidateEntityID(id string) error {
	if id == "" {
		return nil
	}
	if !EntityIDPattern.MatchString(id) {
		return fmt.Errorf("%w: malformed entity id", ErrInvalid)
	}
	return nil
}
