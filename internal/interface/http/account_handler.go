package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/application"
	"github.com/oksasatya/event-portal/pkg/helpers"
	"github.com/oksasatya/event-portal/pkg/response"
	"github.com/oksasatya/event-portal/pkg/validation"
)

type AccountHandler struct {
	Directory *application.DirectoryService
	Profiles  *application.ProfileService
	Cookies   *helpers.CookieManager
	Logger    *logrus.Logger
}

func NewAccountHandler(dir *application.DirectoryService, profiles *application.ProfileService, cookies *helpers.CookieManager, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Directory: dir, Profiles: profiles, Cookies: cookies, Logger: logger}
}

type createAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"fullName"`
	Batch    string `json:"batch"`
}

// selfUpdateRequest carries every field a client may send; the profile
// policy decides which of them are honored. Fields only an administrator may
// change are validated in UpdateSelf once the caller's role is known.
type selfUpdateRequest struct {
	Username        *string `json:"username"`
	FullName        *string `json:"fullName"`
	Email           *string `json:"email"`
	Batch           *string `json:"batch"`
	ProfilePic      *string `json:"profilePic"`
	IsAdmin         *bool   `json:"isAdmin"`
	Password        string  `json:"password" binding:"omitempty,pwd"`
	ConfirmPassword string  `json:"confirmPassword" binding:"eqfield=Password"`
}

type adminUpdateRequest struct {
	Username *string `json:"username" binding:"omitempty,handle"`
	FullName *string `json:"fullName"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Batch    *string `json:"batch"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// Create POST /api/auth/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user, err := h.Directory.Create(c.Request.Context(), application.CreateAccountInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Batch:    req.Batch,
	})
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user}, "New profile created", nil)
}

// UpdateSelf PUT /api/auth/profile
func (h *AccountHandler) UpdateSelf(c *gin.Context) {
	var req selfUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	caller := Caller(c)
	if caller != nil && caller.IsAdmin {
		admin := adminUpdateRequest{Username: req.Username, FullName: req.FullName, Email: req.Email, Batch: req.Batch, IsAdmin: req.IsAdmin}
		if err := binding.Validator.ValidateStruct(admin); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
	}
	user, tok, err := h.Profiles.SelfUpdate(c.Request.Context(), caller, application.SelfProfileInput{
		Username:   req.Username,
		FullName:   req.FullName,
		Email:      req.Email,
		Batch:      req.Batch,
		ProfilePic: req.ProfilePic,
		IsAdmin:    req.IsAdmin,
		Password:   req.Password,
	})
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	if tok != nil {
		h.Cookies.Set(c, *tok)
	}
	response.Success(c, http.StatusOK, gin.H{"user": user}, "profile updated", nil)
}

// UpdateByAdmin PUT /api/auth/accounts/:id
func (h *AccountHandler) UpdateByAdmin(c *gin.Context) {
	var req adminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	user, err := h.Profiles.AdminUpdate(c.Request.Context(), c.Param("id"), application.AdminProfileInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Batch:    req.Batch,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user}, "profile updated", nil)
}

// List GET /api/auth/accounts?search=&batch=&page=&limit=
func (h *AccountHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	res, err := h.Directory.List(c.Request.Context(), application.ListQuery{
		Search: c.Query("search"),
		Batch:  c.Query("batch"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "users", nil)
}

// Get GET /api/auth/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	user, err := h.Directory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user}, "user", nil)
}

// Delete DELETE /api/auth/accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	user, err := h.Directory.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user}, "User deleted successfully", nil)
}
