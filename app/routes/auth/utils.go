package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ahmednooor/SRS/app/config"
	"github.com/ahmednooor/SRS/app/database"
	"github.com/ahmednooor/SRS/app/models"
)

// InvalidCredentialsMsg is the single message both login failure paths
// return; the interface never reveals whether the username or the password
// was wrong.
const InvalidCredentialsMsg = "Invalid Username or Password."

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// dummyHash absorbs a bcrypt verification when the username does not exist,
// so unknown-user and wrong-password attempts cost the same.
var dummyHash, _ = HashPassword(uuid.NewString())

// VerifyCredentials looks the admin up by username and verifies the password
// against the stored hash. It returns (nil, nil) for any credential failure;
// the caller responds with InvalidCredentialsMsg either way.
func VerifyCredentials(ctx context.Context, db *sql.DB, username, password string) (*models.Admin, error) {
	admin, err := database.GetAdminByUsername(ctx, db, username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		CheckPasswordHash(password, dummyHash)
		return nil, nil
	}
	if !CheckPasswordHash(password, admin.Password) {
		return nil, nil
	}
	return admin, nil
}

// SessionClaims is the fixed-shape session record carried by the cookie.
type SessionClaims struct {
	AdminID   int64       `json:"adminID"`
	Username  string      `json:"username"`
	FirstName string      `json:"firstname"`
	LastName  string      `json:"lastname"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueSession builds a signed session token for the admin. Only the login
// step (and a profile save refreshing its own fields) calls this.
func IssueSession(admin *models.Admin) (string, error) {
	claims := SessionClaims{
		AdminID:   admin.ID,
		Username:  admin.Username,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		Role:      admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "SRS",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ParseSession validates a session token and returns the session record.
func ParseSession(tokenString string) (*models.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &models.Session{
		AdminID:   claims.AdminID,
		Username:  claims.Username,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      claims.Role,
	}, nil
}
