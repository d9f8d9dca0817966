package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-server/internal/interfaces/httpserver/handlers/authhandler"
	"crm-server/internal/interfaces/httpserver/requests/authreq"
	"crm-server/internal/interfaces/httpserver/responses"
	"crm-server/internal/utils/platformerrors"
)

// AuthRoute handles authentication routes
type AuthRoute struct {
	handler *authhandler.AuthHandler
}

// NewAuthRoute creates a new auth route
func NewAuthRoute(handler *authhandler.AuthHandler) *AuthRoute {
	return &AuthRoute{handler: handler}
}

// RegisterRouter registers auth routes on the public router
func (a *AuthRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/auth/login", a.login)
	router.POST("/auth/register", a.register)
}

// login godoc
// @Summary Log in with username and password
// @Description Verifies the credentials and returns a signed bearer token together with the user profile. Failed attempts always return the same unauthorized error regardless of which check failed.
// @Tags Authentication API
// @Accept json
// @Produce json
// @Param request body authreq.LoginRequest true "Login credentials"
// @Success 200 {object} userres.TokenResponse "Signed access token and user profile"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unknown user, wrong password, or deactivated account"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (a *AuthRoute) login(reqCtx *gin.Context) {
	var req authreq.LoginRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "9c2e7a4f-1b8d-4e6a-a3c9-7f5d2b8e1c60")
		return
	}

	resp, err := a.handler.Login(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to log in")
		return
	}

	reqCtx.JSON(http.StatusOK, resp)
}

// register godoc
// @Summary Register a new account
// @Description Creates a sales rep account with the given credentials and returns a signed bearer token. Username and email must be unused.
// @Tags Authentication API
// @Accept json
// @Produce json
// @Param request body authreq.RegisterRequest true "Registration fields"
// @Success 201 {object} userres.TokenResponse "Signed access token and the created user"
// @Failure 400 {object} responses.ErrorResponse "Invalid request body"
// @Failure 409 {object} responses.ErrorResponse "Username or email already registered"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (a *AuthRoute) register(reqCtx *gin.Context) {
	var req authreq.RegisterRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "4f8b2d7e-9a1c-4c3e-b6f8-2e7a5d9c1b40")
		return
	}

	resp, err := a.handler.Register(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to register")
		return
	}

	reqCtx.JSON(http.StatusCreated, resp)
}
