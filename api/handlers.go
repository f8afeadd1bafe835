package api

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"todo-manager-api/resources"
	"todo-manager-api/tools"
)

// maxToolArgsSize caps tool argument bodies.
const maxToolArgsSize = 64 << 10

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, reg Dispatcher, auth Authenticator, logger *log.Logger) {
	e.GET("/healthz", healthz())
	e.GET("/api/tools", getTools(reg, auth))
	e.POST("/api/tools/:name", postToolCall(reg, auth, logger))
	e.GET("/api/resources", getResources(auth))
	e.GET("/api/resources/:name", getResource(auth))
	e.GET("/api/prompts", getPrompts(auth))
	e.GET("/api/prompts/:name", getPrompt(auth))
}

type toolsResponse struct {
	Tools []tools.Tool `json:"tools"`
}

type resourcesResponse struct {
	Resources []resources.Resource `json:"resources"`
}

type promptsResponse struct {
	Prompts []resources.Prompt `json:"prompts"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

// authorize checks the request's Authorization header. A nil Authenticator
// leaves the route open.
func authorize(c echo.Context, auth Authenticator) error {
	if auth == nil {
		return nil
	}
	_, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
	return err
}

func getTools(reg Dispatcher, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := authorize(c, auth); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		return c.JSON(http.StatusOK, toolsResponse{Tools: reg.Tools()})
	}
}

func postToolCall(reg Dispatcher, auth Authenticator, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newToolCallMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		name := c.Param("name")
		metrics.SetTool(name)

		authStart := time.Now()
		authErr := authorize(c, auth)
		metrics.ObserveAuth(time.Since(authStart))
		if authErr != nil {
			metrics.SetErrorStage("auth")
			err = c.String(http.StatusUnauthorized, authErr.Error())
			return err
		}

		args, readErr := io.ReadAll(io.LimitReader(c.Request().Body, maxToolArgsSize))
		if readErr != nil {
			metrics.SetErrorStage("read_body")
			err = c.String(http.StatusBadRequest, "invalid body")
			return err
		}

		dispatchStart := time.Now()
		env, known := reg.Call(ctx, name, args)
		metrics.ObserveDispatch(time.Since(dispatchStart))
		metrics.SetIsError(env.IsError)

		status := http.StatusOK
		if !known {
			metrics.SetErrorStage("unknown_tool")
			status = http.StatusNotFound
		}
		err = c.JSON(status, env)
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func getResources(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := authorize(c, auth); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		return c.JSON(http.StatusOK, resourcesResponse{Resources: resources.All()})
	}
}

func getResource(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := authorize(c, auth); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		r, ok := resources.Find(c.Param("name"))
		if !ok {
			return c.String(http.StatusNotFound, "unknown resource")
		}
		return c.JSON(http.StatusOK, r)
	}
}

func getPrompts(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := authorize(c, auth); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		return c.JSON(http.StatusOK, promptsResponse{Prompts: resources.Prompts()})
	}
}

func getPrompt(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := authorize(c, auth); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		p, ok := resources.FindPrompt(c.Param("name"))
		if !ok {
			return c.String(http.StatusNotFound, "unknown prompt")
		}
		return c.JSON(http.StatusOK, p)
	}
}
