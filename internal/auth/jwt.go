package auth

import (
	"errors"
	"time"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/config"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/constant"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/util"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type JWT struct {
	logger    *zap.SugaredLogger
	jwtSecret string
}

type JWTInterface interface {
	GenerateRefreshAndAccessToken(payload JWTPayload) (*string, *string, error)
	VerifyJwtToken(token string) (*JWTClaims, error)
}

func NewJwt(cfg config.AuthConfig, logger *zap.SugaredLogger) *JWT {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("development")
	}

	return &JWT{
		jwtSecret: cfg.JWT_SECRET,
		logger:    logger,
	}
}

// JWTPayload identifies the admin a session token was issued to.
type JWTPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type JWTClaims struct {
	Admin JWTPayload       `json:"admin"`
	Type  constant.JwtType `json:"type"`
	IAT   int64            `json:"iat"`
	EXP   int64            `json:"exp"`
}

func (j JWT) signToken(payload JWTPayload, jwtType constant.JwtType, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"admin": payload,
		"type":  jwtType,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.jwtSecret))
}

// Return refreshToken, accessToken, error
func (j JWT) GenerateRefreshAndAccessToken(payload JWTPayload) (*string, *string, error) {
	j.logger.Debugf("Generate refresh and access token with payload: %v", payload)

	refreshToken, err := j.signToken(payload, constant.JWT_TYPE_REFRESH, 7*24*time.Hour)
	if err != nil {
		return nil, nil, err
	}

	accessToken, err := j.signToken(payload, constant.JWT_TYPE_ACCESS, 15*time.Minute)
	if err != nil {
		return nil, nil, err
	}

	return &refreshToken, &accessToken, nil
}

func (j JWT) VerifyJwtToken(token string) (*JWTClaims, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(j.jwtSecret), nil
	})
	if err != nil {
		j.logger.Debugf("Failed to verify jwt token. Error: %v", err)
		return nil, err
	}

	if !parsedToken.Valid {
		j.logger.Debug("Jwt token is not valid")
		return nil, errors.New("jwt token is not valid")
	}

	admin, ok := claims["admin"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid token: admin field is missing or malformed")
	}

	id, _ := admin["id"].(string)
	username, _ := admin["username"].(string)
	jwtType, _ := claims["type"].(string)

	return &JWTClaims{
		Admin: JWTPayload{
			ID:       id,
			Username: username,
		},
		Type: constant.JwtType(jwtType),
		IAT:  int64(claims["iat"].(float64)),
		EXP:  int64(claims["exp"].(float64)),
	}, nil
}
