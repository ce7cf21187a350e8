package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
	svc "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate hash"
)

// ServiceBcrypt реализует интерфейс PasswordService.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает новый экземпляр сервиса bcrypt.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash хэширует секрет с помощью bcrypt.
func (s *ServiceBcrypt) Hash(_ context.Context, secret string) (string, error) {
	if secret == "" {
		return "", domain.ErrInvalidPassword
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errMsgFailedToGenerateHash, domain.ErrHashingFailed)
	}

	return string(hashedBytes), nil
}

// Verify проверяет соответствие секрета хэшу. Несовпадение и поврежденный
// формат хэша равнозначны: false без ошибки.
func (s *ServiceBcrypt) Verify(_ context.Context, secret, hash string) (bool, error) {
	if secret == "" || hash == "" {
		return false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return false, nil
	}

	return true, nil
}
