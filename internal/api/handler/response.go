package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Response is the canonical envelope wrapping every API payload.
type Response struct {
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// NewResponse builds an envelope stamped with the current time.
func NewResponse(message string, data any, status int) Response {
	return Response{
		Message:   message,
		Data:      data,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}

func respondOK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, NewResponse("Success", data, http.StatusOK))
}

func respondOKMsg(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, NewResponse(message, data, http.StatusOK))
}

func respondCreated(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, NewResponse("Created successfully", data, http.StatusCreated))
}

func respondNoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// pageResponse is the paginated payload placed inside the envelope.
type pageResponse struct {
	Content       any    `json:"content"`
	PageNo        int    `json:"pageNo"`
	PageSize      int    `json:"pageSize"`
	TotalElements int64  `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	First         bool   `json:"first"`
	Last          bool   `json:"last"`
	NextPage      string `json:"nextPage,omitempty"`
	PrevPage      string `json:"prevPage,omitempty"`
}

// newPageResponse derives next/prev page links from the incoming request URL
// so clients can walk the listing without rebuilding query strings.
func newPageResponse(c echo.Context, content any, pageNo, pageSize int, totalElements int64, totalPages int) pageResponse {
	resp := pageResponse{
		Content:       content,
		PageNo:        pageNo,
		PageSize:      pageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		First:         pageNo == 0,
		Last:          pageNo >= totalPages-1,
	}
	if !resp.Last {
		resp.NextPage = pageURL(c, pageNo+1)
	}
	if !resp.First {
		resp.PrevPage = pageURL(c, pageNo-1)
	}
	return resp
}

func pageURL(c echo.Context, page int) string {
	u := *c.Request().URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// pageQueryParams reads the standard pagination query parameters with the
// same defaults on every listing endpoint.
func pageQueryParams(c echo.Context) (page, size int, sortBy, sortDir string) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size <= 0 {
		size = 10
	}
	sortBy = c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = "id"
	}
	sortDir = strings.ToLower(c.QueryParam("sortDir"))
	if sortDir != "desc" {
		sortDir = "asc"
	}
	return page, size, sortBy, sortDir
}
