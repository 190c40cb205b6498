package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/pharmanet/internal/domain/errors"
)

func querySince(c *gin.Context) (*time.Time, error) {
	raw := c.Query("since")
	if raw == "" {
		return nil, nil
	}
	since, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domainErrors.Validationf("since must be an RFC3339 timestamp, got %q", raw)
	}
	return &since, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainErrors.Validationf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func queryBool(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domainErrors.Validationf("%s must be a boolean, got %q", name, raw)
	}
	return v, nil
}

// page reads limit and offset. Range checks belong to the use cases.
func page(c *gin.Context) (limit, offset int, err error) {
	if limit, err = queryInt(c, "limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(c, "offset"); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
