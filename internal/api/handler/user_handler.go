package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quang/user-service/internal/api/middleware"
	"github.com/quang/user-service/internal/core/domain"
	"github.com/quang/user-service/internal/core/ports"
	"github.com/quang/user-service/internal/core/service"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=ADMIN USER"`
}

type updateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=ADMIN USER"`
	Enabled   bool   `json:"enabled"`
	Locked    bool   `json:"locked"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	Enabled   bool      `json:"enabled"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		Enabled:   u.Enabled,
		Locked:    u.Locked,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		CreatedBy: u.CreatedBy,
		UpdatedBy: u.UpdatedBy,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// List handles GET /api/v1/users.
//
// @Summary      Get all users with pagination
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int     false  "Page number (0-based)"
// @Param        size     query     int     false  "Number of items per page"
// @Param        sortBy   query     string  false  "Sort field"
// @Param        sortDir  query     string  false  "Sort direction (asc or desc)"
// @Success      200      {object}  Response
// @Failure      403      {object}  Response
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	if err := service.Authorize(middleware.PrincipalFrom(c), service.Resource{AdminOnly: true}); err != nil {
		return err
	}

	page, size, sortBy, sortDir := pageQueryParams(c)
	result, err := h.userService.List(c.Request().Context(), ports.PageQuery{
		Page: page, Size: size, SortBy: sortBy, SortDir: sortDir,
	})
	if err != nil {
		return err
	}

	return respondOK(c, newPageResponse(c, toUserResponses(result.Users),
		result.PageNo, result.PageSize, result.TotalElements, result.TotalPages))
}

// Search handles GET /api/v1/users/search.
//
// @Summary      Search and filter users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        keyword  query     string  false  "Search keyword for username, email, or name"
// @Param        role     query     string  false  "Filter by role"
// @Param        page     query     int     false  "Page number (0-based)"
// @Param        size     query     int     false  "Number of items per page"
// @Success      200      {object}  Response
// @Failure      403      {object}  Response
// @Router       /api/v1/users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	if err := service.Authorize(middleware.PrincipalFrom(c), service.Resource{AdminOnly: true}); err != nil {
		return err
	}

	role := domain.Role(c.QueryParam("role"))
	if role != "" && !role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role filter")
	}

	page, size, sortBy, sortDir := pageQueryParams(c)
	result, err := h.userService.Search(c.Request().Context(),
		ports.UserFilter{Keyword: c.QueryParam("keyword"), Role: role},
		ports.PageQuery{Page: page, Size: size, SortBy: sortBy, SortDir: sortDir},
	)
	if err != nil {
		return err
	}

	return respondOK(c, newPageResponse(c, toUserResponses(result.Users),
		result.PageNo, result.PageSize, result.TotalElements, result.TotalPages))
}

// Me handles GET /api/v1/users/me. The target is always resolved from the
// authenticated principal, never from a client-supplied id.
//
// @Summary      Get current user information
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=userResponse}
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	p := middleware.PrincipalFrom(c)
	if p.IsAnonymous() {
		return domain.ErrUnauthorized
	}

	user, err := h.userService.GetByUsername(c.Request().Context(), p.Username)
	if err != nil {
		return err
	}
	return respondOK(c, toUserResponse(user))
}

// GetByID handles GET /api/v1/users/:id. Users can read their own record,
// admins can read any.
//
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  Response{data=userResponse}
// @Failure      403  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	if err := service.Authorize(middleware.PrincipalFrom(c), service.Resource{OwnerUsername: user.Username}); err != nil {
		return err
	}

	return respondOK(c, toUserResponse(user))
}

// Create handles POST /api/v1/users.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  Response{data=userResponse}
// @Failure      400   {object}  Response
// @Failure      403   {object}  Response
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	p := middleware.PrincipalFrom(c)
	if err := service.Authorize(p, service.Resource{AdminOnly: true}); err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Request().Context(), p.Username, ports.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return respondCreated(c, toUserResponse(user))
}

// Update handles PUT /api/v1/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "User details"
// @Success      200   {object}  Response{data=userResponse}
// @Failure      400   {object}  Response
// @Failure      403   {object}  Response
// @Failure      404   {object}  Response
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	p := middleware.PrincipalFrom(c)
	if err := service.Authorize(p, service.Resource{AdminOnly: true}); err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.Request().Context(), p.Username, c.Param("id"), ports.UpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
		Enabled:   req.Enabled,
		Locked:    req.Locked,
	})
	if err != nil {
		return err
	}

	return respondOKMsg(c, "User updated successfully", toUserResponse(user))
}

// Delete handles DELETE /api/v1/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      204  {object}  Response
// @Failure      403  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := service.Authorize(middleware.PrincipalFrom(c), service.Resource{AdminOnly: true}); err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondNoContent(c)
}
