package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/entities"
	domain "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
	svc "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/ports/services"
	"github.com/Jay-TheFullStackEngineer/Medici-User-Hub/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateAccessToken  = "GenerateAccessToken"
	methodGenerateRefreshToken = "GenerateRefreshToken"
	methodValidateToken        = "ValidateTokenAndGetUserID"
	methodTokenExpiration      = "TokenExpiration"
	msgGeneratingToken         = "generating token"
	msgTokenGenerated          = "token generated successfully"
	msgValidatingToken         = "validating token"
	msgTokenValidated          = "token validated successfully"
	msgTokenExpired            = "token has expired"
	msgInvalidToken            = "invalid token"
	msgNilUser                 = "cannot issue token for nil user"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims определяет полезную нагрузку выпускаемых токенов.
type Claims struct {
	Username  string `json:"username,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService поверх HMAC-подписанных JWT.
// Подписи проверяются единственным общим ключом; компенсация расхождения
// часов не выполняется, предполагается один доверенный источник времени.
type ServiceJWT struct {
	config domain.JWTConfig
}

// NewJWT создает новый экземпляр токенного сервиса.
// signingKey - уже декодированный ключ подписи, неизменяемый после загрузки.
func NewJWT(signingKey []byte, accessTokenTTL, refreshTokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: domain.JWTConfig{
			SigningKey:      signingKey,
			AccessTokenTTL:  accessTokenTTL,
			RefreshTokenTTL: refreshTokenTTL,
		},
	}
}

// GenerateAccessToken выпускает access токен с видом ACCESS.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, user *entities.User) (string, time.Time, error) {
	return s.generate(ctx, methodGenerateAccessToken, user, domain.TokenKindAccess, s.config.AccessTokenTTL)
}

// GenerateRefreshToken выпускает refresh токен с видом REFRESH.
func (s *ServiceJWT) GenerateRefreshToken(ctx context.Context, user *entities.User) (string, time.Time, error) {
	return s.generate(ctx, methodGenerateRefreshToken, user, domain.TokenKindRefresh, s.config.RefreshTokenTTL)
}

func (s *ServiceJWT) generate(ctx context.Context, method string, user *entities.User, kind domain.TokenKind, ttl time.Duration) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", method))

	if user == nil {
		log.Error(ctx, msgNilUser)
		return "", time.Time{}, fmt.Errorf("%s: %w", errCtxGeneratingToken, domain.ErrNilUser)
	}

	log = log.With(zap.String("userID", user.ID))
	log.Debug(ctx, msgGeneratingToken, zap.String("kind", string(kind)))

	if len(s.config.SigningKey) == 0 {
		log.Error(ctx, "empty signing key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty signing key", errCtxGeneratingToken, domain.ErrGeneratingToken)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Username:  user.Username,
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	tokenString, err := token.SignedString(s.config.SigningKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, domain.ErrGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// ValidateTokenAndGetUserID проверяет подпись и срок действия токена и
// возвращает ID субъекта. Просроченный токен отличим от поддельного:
// errors.Is(err, domain.ErrExpiredToken) против domain.ErrInvalidToken.
func (s *ServiceJWT) ValidateTokenAndGetUserID(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	if strings.TrimSpace(tokenString) == "" {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w: %w", errCtxValidatingToken, domain.ErrInvalidToken, domain.ErrEmptyToken)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxValidatingToken, domain.ErrExpiredToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxParsingToken, domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, domain.ErrInvalidToken)
	}

	if claims.Subject == "" {
		log.Debug(ctx, "subject claim is empty")
		return "", fmt.Errorf("%s: %w: empty subject", errCtxValidatingToken, domain.ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.Subject))
	return claims.Subject, nil
}

// TokenExpiration возвращает момент истечения токена. Подпись проверяется,
// истекший срок сам по себе ошибкой не является.
func (s *ServiceJWT) TokenExpiration(ctx context.Context, tokenString string) (time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodTokenExpiration))

	if strings.TrimSpace(tokenString) == "" {
		return time.Time{}, fmt.Errorf("%s: %w: %w", errCtxParsingToken, domain.ErrInvalidToken, domain.ErrEmptyToken)
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, s.keyFunc)
	if err != nil {
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return time.Time{}, fmt.Errorf("%s: %w: %w", errCtxParsingToken, domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil {
		log.Debug(ctx, msgInvalidToken)
		return time.Time{}, fmt.Errorf("%s: %w: missing expiry", errCtxParsingToken, domain.ErrInvalidToken)
	}

	return claims.ExpiresAt.Time, nil
}

// IsTokenExpired сообщает, истек ли структурно корректный токен.
// На просроченном, но подлинном токене ошибки не возникает.
func (s *ServiceJWT) IsTokenExpired(ctx context.Context, tokenString string) (bool, error) {
	expiresAt, err := s.TokenExpiration(ctx, tokenString)
	if err != nil {
		return false, err
	}
	return expiresAt.Before(time.Now()), nil
}

func (s *ServiceJWT) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
	}
	return s.config.SigningKey, nil
}
