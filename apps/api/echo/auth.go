package echoapi

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/rohit95037-cmyk/backend-repo/core"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

var (
	contextClaimsKey   = "userToken"
	contextIdentityKey = "identity"
)

// Claims represents the authorization claims transmitted via a JWT.
// They are returned to handlers verbatim, without a store re-fetch:
// they may lag behind concurrent profile edits for the token's lifetime.
type Claims struct {
	jwt.StandardClaims
	Email string    `json:"email,omitempty"`
	Name  string    `json:"name,omitempty"`
	Role  user.Role `json:"role,omitempty"`
}

// Identity converts the claims into the caller identity passed to the stores.
func (c Claims) Identity() (user.Identity, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return user.Identity{}, errors.Wrap(err, "parsing token subject")
	}
	return user.Identity{
		ID:    id,
		Email: c.Email,
		Name:  c.Name,
		Role:  c.Role,
	}, nil
}

// newJWTConfig is the JWT auth middleware config.
func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextClaimsKey,
		Claims:        new(Claims),
	}
}

// GetUserClaims builds the claims embedded in a user's token.
func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: usr.Email,
		Name:  usr.Name,
		Role:  usr.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextClaimsKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextIdentity(ctx echo.Context) (user.Identity, error) {
	if caller, ok := ctx.Get(contextIdentityKey).(user.Identity); ok {
		return caller, nil
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return user.Identity{}, err
	}
	caller, err := claims.Identity()
	if err != nil {
		return user.Identity{}, err
	}
	ctx.Set(contextIdentityKey, caller)
	return caller, nil
}
