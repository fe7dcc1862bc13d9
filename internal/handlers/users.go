package handlers

import (
	"github.com/conduitapp/conduit/internal/middleware"
	"github.com/conduitapp/conduit/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserHandler handles registration, login and current-user routes
type UserHandler struct {
	DB     *gorm.DB
	Secret string
}

type registerRequest struct {
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

type loginRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

type updateUserRequest struct {
	User services.UserUpdateInput `json:"user"`
}

type userResponse struct {
	User services.AuthUserJSON `json:"user"`
}

// Register handles POST /api/users
// @Summary Register a new user
// @Description Create a new account and return its auth payload with a fresh token
// @Tags User
// @Accept json
// @Produce json
// @Param user body registerRequest true "Registration fields"
// @Success 200 {object} userResponse
// @Failure 422 {object} utils.ErrorsResponseStruct
// @Router /users [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrUnprocessableEntity
	}

	user, err := services.RegisterUser(h.DB, req.User.Username, req.User.Email, req.User.Password)
	if err != nil {
		return err
	}

	token, err := services.IssueToken(user, h.Secret)
	if err != nil {
		return err
	}

	return c.JSON(userResponse{User: services.ProjectAuthUser(user, token)})
}

// Login handles POST /api/users/login
// @Summary Log in
// @Description Verify credentials and return the auth payload with a fresh token
// @Tags User
// @Accept json
// @Produce json
// @Param user body loginRequest true "Credentials"
// @Success 200 {object} userResponse
// @Failure 422 {object} utils.ErrorsResponseStruct
// @Router /users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrUnprocessableEntity
	}

	user, err := services.AuthenticateUser(h.DB, req.User.Email, req.User.Password)
	if err != nil {
		return err
	}

	token, err := services.IssueToken(user, h.Secret)
	if err != nil {
		return err
	}

	return c.JSON(userResponse{User: services.ProjectAuthUser(user, token)})
}

// Current handles GET /api/user
// @Summary Get the current user
// @Description Return the account behind the presented token; the token is echoed, not reissued
// @Tags User
// @Produce json
// @Success 200 {object} userResponse
// @Failure 401 {string} string
// @Security TokenAuth
// @Router /user [get]
func (h *UserHandler) Current(c *fiber.Ctx) error {
	user, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	token, _ := c.Locals(middleware.LocalsToken).(string)
	return c.JSON(userResponse{User: services.ProjectAuthUser(user, token)})
}

// Update handles PUT /api/user
// @Summary Update the current user
// @Description Apply only the fields present in the request body
// @Tags User
// @Accept json
// @Produce json
// @Param user body updateUserRequest true "Fields to update"
// @Success 200 {object} userResponse
// @Failure 401 {string} string
// @Failure 422 {object} utils.ErrorsResponseStruct
// @Security TokenAuth
// @Router /user [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	user, err := requireUser(h.DB, c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.ErrUnprocessableEntity
	}

	if err := services.UpdateUser(h.DB, user, req.User); err != nil {
		return err
	}

	token, _ := c.Locals(middleware.LocalsToken).(string)
	return c.JSON(userResponse{User: services.ProjectAuthUser(user, token)})
}
