package services

import "context"

// PasswordService определяет операции одностороннего хэширования секретов.
// Используется и для паролей, и для ответов на секретный вопрос.
type PasswordService interface {
	Hash(ctx context.Context, secret string) (string, error)

	// Verify возвращает false без ошибки и при несовпадении,
	// и при некорректном формате хэша.
	Verify(ctx context.Context, secret, hash string) (bool, error)
}
