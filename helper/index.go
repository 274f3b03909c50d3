package helper

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"time"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetUserByEmail(e string) (*model.User, error) {
	db := database.DB
	var user model.User
	if err := db.Where(&model.User{Email: e}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func ValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = tokenClaim.UserId
	claims["email"] = tokenClaim.Email
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	return token.SignedString(JwtSecret)
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})
}

// GetInfoUserFromToken resolves the token stored by middleware.Protected into
// the acting user. The second return is false when the account no longer
// exists or is blocked.
func GetInfoUserFromToken(c *fiber.Ctx) (model.TokenClaim, *model.User, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, nil, false
	}

	userId, _ := claims["userId"].(float64)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	tokenClaim := model.TokenClaim{UserId: uint(userId), Email: email, Role: role}

	var user model.User
	if err := database.DB.First(&user, tokenClaim.UserId).Error; err != nil {
		return tokenClaim, nil, false
	}
	if user.IsBlocked {
		return tokenClaim, &user, false
	}
	return tokenClaim, &user, true
}

func IsAdmin(user *model.User) bool {
	return user != nil && user.Role == constants.ROLE_ADMIN
}
