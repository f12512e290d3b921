package server

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "id", humanizeParam("id"))
	assert.Equal(t, "comment id", humanizeParam("commentId"))
	assert.Equal(t, "user id", humanizeParam("userId"))
}

func TestSplitCamel(t *testing.T) {
	assert.Equal(t, []string{"comment", "Id"}, splitCamel("commentId"))
	assert.Equal(t, []string{"id"}, splitCamel("id"))
}

func TestParseID(t *testing.T) {
	app := fiber.New()
	var gotID uint
	var gotErr error
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		gotID, gotErr = parseID(c, "id")
		if gotErr != nil {
			return nil
		}
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("valid id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/42", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, uint(42), gotID)
		assert.NoError(t, gotErr)
	})

	t.Run("non-numeric id writes 400", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.ErrorIs(t, gotErr, errResponseWritten)
	})

	t.Run("zero id writes 400", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/items/0", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var limit, offset int
	app.Get("/list", func(c *fiber.Ctx) error {
		limit, offset = parsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/list", 20, 0},
		{"explicit", "/list?limit=50&offset=10", 50, 10},
		{"cap at 100", "/list?limit=500", 100, 0},
		{"negative values fall back", "/list?limit=-1&offset=-5", 20, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := app.Test(httptest.NewRequest("GET", tc.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}
