package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Manager 负责访问令牌/刷新令牌这对credential的签发和校验
// 两种令牌用不同的密钥：access短命、随身带；refresh长命、落库，一个用户同时只有一个有效refresh
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

var ErrInvalidToken = errors.New("无效或过期的令牌")

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// 令牌的Payload不加密，只签名，所以只放user_id这种无害信息
func (m *Manager) sign(userID uint64, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(), // 过期时间
		"iat":     time.Now().Unix(),          // 签发时间
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func (m *Manager) NewAccessToken(userID uint64) (string, error) {
	return m.sign(userID, m.accessSecret, m.accessTTL)
}

func (m *Manager) NewRefreshToken(userID uint64) (string, error) {
	return m.sign(userID, m.refreshSecret, m.refreshTTL)
}

func (m *Manager) parse(tokenString string, secret []byte) (uint64, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族，防止alg=none之类的偷梁换柱
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// jwt.MapClaims里的数字会被解析成float64，拿出来要转回uint64
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uint64(idFloat), nil
}

// ParseAccessToken 校验访问令牌，返回其中的用户ID
func (m *Manager) ParseAccessToken(tokenString string) (uint64, error) {
	return m.parse(tokenString, m.accessSecret)
}

// ParseRefreshToken 校验刷新令牌。注意这只证明令牌本身没伪造没过期，
// 是否和用户记录里存的那一个匹配（防止旧令牌重放）要由service层再查一次
func (m *Manager) ParseRefreshToken(tokenString string) (uint64, error) {
	return m.parse(tokenString, m.refreshSecret)
}

// AccessTTL / RefreshTTL 暴露给handler层设置cookie的MaxAge用
func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }
