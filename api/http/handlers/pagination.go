package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	listDefaultLimit = 50
	listMaxLimit     = 200
	// поиск по навыку идёт через join с resume_skills, поэтому страница меньше
	skillMaxLimit = 100
)

type page struct {
	Limit  int
	Offset int
}

// parsePage reads ?limit and ?offset. A limit above maxLimit is clamped to it,
// any other unusable limit falls back to def. Offset is never negative.
func parsePage(c *fiber.Ctx, def, maxLimit int) page {
	p := page{Limit: def}
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = min(n, maxLimit)
		}
	}
	if v := strings.TrimSpace(c.Query("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Offset = n
		}
	}
	return p
}
