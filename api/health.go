// Package api
package api

import (
	"github.com/labstack/echo"
)

func (s *restServer) Ping(c echo.Context) error {
	return OK.SetData("pong").Build(c)
}

func (s *restServer) ServerStatus(c echo.Context) error {
	return OK.SetData(s.svc.Status(c.Request().Context())).Build(c)
}
