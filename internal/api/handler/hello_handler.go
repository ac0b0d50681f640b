package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Hello handles GET /api/hello?name=.
//
// @Summary      Greeting
// @Tags         misc
// @Produce      json
// @Param        name  query     string  false  "Name to greet"  default(World)
// @Success      200   {object}  map[string]string
// @Router       /api/hello [get]
func Hello(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		name = "World"
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Hello, " + name + "!"})
}
