package v1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushq/campus-events-api/internal/api/middleware"
	"github.com/campushq/campus-events-api/internal/domain"
)

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %v %q", name, raw)
	}

	return uint(id), nil
}

func parseUintQuery(ctx *gin.Context, name string) uint {
	raw := ctx.Query(name)
	if raw == "" {
		return 0
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}

	return uint(id)
}

func parseIntQuery(ctx *gin.Context, name string) int {
	raw := ctx.Query(name)
	if raw == "" {
		return 0
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}

	return n
}

func parseTimeQuery(ctx *gin.Context, name string) time.Time {
	raw := ctx.Query(name)
	if raw == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Date-only filters are the common case for reports.
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}
		}
	}

	return t
}

type identity struct {
	UserID uint
	Role   string
}

func callerIdentity(ctx *gin.Context) identity {
	return identity{
		UserID: ctx.GetUint(middleware.ContextKeyUserID),
		Role:   ctx.GetString(middleware.ContextKeyRole),
	}
}

// canActForStudent allows admins to act for anyone and students only for
// themselves.
func canActForStudent(caller identity, studentID uint) bool {
	if caller.Role == domain.RoleAdmin || caller.Role == domain.RoleSuperAdmin {
		return true
	}

	return caller.Role == domain.RoleStudent && caller.UserID == studentID
}
