package helpers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/boxoffice/boxoffice/internal/helpers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithQuery(query string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/events?"+query, nil)
	return c
}

func TestParsePage(t *testing.T) {
	page, err := helpers.ParsePage(contextWithQuery(""))
	require.NoError(t, err)
	assert.Equal(t, helpers.Page{Number: 1, Limit: 10}, page)
	assert.Zero(t, page.Offset())

	page, err = helpers.ParsePage(contextWithQuery("page=3&limit=20"))
	require.NoError(t, err)
	assert.Equal(t, 40, page.Offset())
	assert.EqualValues(t, 3, page.TotalPages(41))
	assert.EqualValues(t, 2, page.TotalPages(40))
	assert.EqualValues(t, 0, page.TotalPages(0))

	for _, query := range []string{"page=0", "page=x", "limit=0", "limit=101", "limit=-5"} {
		_, err := helpers.ParsePage(contextWithQuery(query))
		assert.Error(t, err, query)
	}
}

func TestParseUUIDParam(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, err := helpers.ParseUUIDParam(c, "id")
	assert.EqualError(t, err, "invalid id")
}
