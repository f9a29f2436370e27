package helpers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxPageSize = 100

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseUUIDParam reads a uuid path parameter.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

func (p Page) TotalPages(total int64) int64 {
	return (total + int64(p.Limit) - 1) / int64(p.Limit)
}

func ParsePage(c *gin.Context) (Page, error) {
	pageNum, err := StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || pageNum < 1 {
		return Page{}, fmt.Errorf("Invalid page number.")
	}

	limitNum, err := StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil || limitNum < 1 || limitNum > maxPageSize {
		return Page{}, fmt.Errorf("Invalid limit.")
	}

	return Page{Number: pageNum, Limit: limitNum}, nil
}
