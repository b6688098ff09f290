package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/biopanel-ai/biopanel/app/panel/internal/conf"
)

// defaultDailyQuota 单个用户每天可发起的分析次数
const defaultDailyQuota = 10

// User 用户实体
type User struct {
	ID           int
	Username     string
	PasswordHash string
}

// UserRepo 用户仓库接口
type UserRepo interface {
	// CreateUser 创建用户
	CreateUser(ctx context.Context, u *User) error
	// GetUserByUsername 根据用户名获取用户
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// IncrementUsage 累加某天的用量并返回累加后的次数，跨天自动清零
	IncrementUsage(ctx context.Context, id int, day string) (int, error)
}

// UserUseCase 用户业务逻辑
type UserUseCase struct {
	repo       UserRepo
	log        *log.Helper
	jwtKey     string
	dailyQuota int
}

// NewUserUseCase 创建用户业务逻辑实例
func NewUserUseCase(repo UserRepo, auth *conf.Auth, logger log.Logger) *UserUseCase {
	jwtKey := "default-secret"
	quota := defaultDailyQuota
	if auth != nil {
		if auth.JwtKey != "" {
			jwtKey = auth.JwtKey
		}
		if auth.DailyQuota > 0 {
			quota = int(auth.DailyQuota)
		}
	}
	return &UserUseCase{
		repo:       repo,
		log:        log.NewHelper(logger),
		jwtKey:     jwtKey,
		dailyQuota: quota,
	}
}

// Register 用户注册
func (uc *UserUseCase) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.BadRequest("INVALID_ARGUMENT", "username and password are required")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	return uc.repo.CreateUser(ctx, u)
}

// Login 用户登录，成功返回 JWT Token
func (uc *UserUseCase) Login(ctx context.Context, username, password string) (string, error) {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": u.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})

	return token.SignedString([]byte(uc.jwtKey))
}

// ParseToken 校验 Token 并返回其中的用户名
func (uc *UserUseCase) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.jwtKey), nil
	})
	if err != nil || !token.Valid {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid claims")
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid claims")
	}
	return username, nil
}

// ConsumeQuota 消耗一次当日分析额度，超限返回 Forbidden
func (uc *UserUseCase) ConsumeQuota(ctx context.Context, username string) error {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	day := time.Now().Format("2006-01-02")
	count, err := uc.repo.IncrementUsage(ctx, u.ID, day)
	if err != nil {
		return err
	}
	if count > uc.dailyQuota {
		uc.log.Warnf("user %s exceeded daily quota (%d)", username, uc.dailyQuota)
		return errors.Forbidden("QUOTA_EXCEEDED", "일일 분석 한도를 초과했습니다")
	}
	return nil
}
