package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/response"
	"github.com/madaris/school-app-backend/internal/service"
)

// CheckSingleDeviceSession enforces the one-active-session rule for
// students: the token's JTI must match the session stored at sign-in.
// A second sign-in is refused while a session is live, so a mismatch
// here means the original session was signed out or expired and the
// token is no longer valid. Agents and admins are exempt.
func CheckSingleDeviceSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.Role != model.RoleStudent {
			c.Next()
			return
		}

		if err := authService.ValidateStudentSession(c.Request.Context(), claims.UserID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}
