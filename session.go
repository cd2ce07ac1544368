package main

import (
	"net/http"
	"time"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookieName = "session"
	sessionDuration   = 30 * 24 * time.Hour
	userContextKey    = "user"
)

// issueSessionToken signs a session token binding the cookie to a user id.
func (a *App) issueSessionToken(userID uint, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": userID,
		"exp": now.Add(sessionDuration).Unix(),
	})
	return token.SignedString(a.secret)
}

// parseSessionToken validates a session token and returns the user id it
// was issued for. Expired or tampered tokens fail.
func (a *App) parseSessionToken(raw string) (uint, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return a.secret, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return uint(uid), nil
}

func (a *App) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(sessionDuration.Seconds()), "/", "", a.secureCookie, true)
}

func (a *App) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", a.secureCookie, true)
}

// requireLogin redirects unauthenticated requests to /login and resolves
// the session cookie to a user row once per request. Handlers downstream
// read the user via currentUser and pass its id explicitly into every
// data access.
func (a *App) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionCookieName)
		if err != nil || raw == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		uid, err := a.parseSessionToken(raw)
		if err != nil {
			a.clearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		var user models.User
		if err := a.reqDB(c).First(&user, uid).Error; err != nil {
			// account gone since the cookie was issued
			a.clearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(userContextKey, &user)
		c.Next()
	}
}

// currentUser returns the user resolved by requireLogin.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
