package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/constant"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/gmail"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EmailController struct {
	*baseController
}

// SearchEmails runs a live inbox search against the active Google
// configuration and caches the normalized results.
func (ec EmailController) SearchEmails(ctx *gin.Context) {
	type Request struct {
		SearchEmail string `json:"searchEmail" form:"searchEmail" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Email address is required", util.GenerateErrorMessages(err), nil)
		return
	}

	cfg, err := ec.app.Repository.GoogleAuthConfig.GetActive(ctx, nil)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		ec.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	var emails []model.Email
	retryCfg := util.DefaultRetryConfig()
	retryCfg.Retryable = gmail.Retryable
	err = util.RetryWithBackoff(ctx, retryCfg, func() error {
		var searchErr error
		emails, searchErr = ec.app.Searcher.Search(ctx, cfg, body.SearchEmail)
		return searchErr
	})
	if err != nil {
		ec.respondSearchError(ctx, err)
		return
	}

	message := constant.REQUEST_SUCCESSFUL
	if len(emails) == 0 {
		message = "No emails found from this sender"
	}

	util.ResponseSuccess(ctx, gin.H{
		"emails":  emails,
		"count":   len(emails),
		"message": message,
	})
}

// respondSearchError maps the search error taxonomy onto HTTP statuses the
// frontend can act on.
func (ec EmailController) respondSearchError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gmail.ErrMissingParameter):
		util.ResponseFailed(ctx, http.StatusBadRequest, "Email address is required", nil, nil)
	case errors.Is(err, gmail.ErrNoActiveConfig):
		util.ResponseFailed(ctx, http.StatusConflict, "No active Google configuration. Activate one in the Admin panel.", nil, nil)
	case errors.Is(err, gmail.ErrReauthorizeRequired):
		util.ResponseFailed(ctx, http.StatusBadGateway, gmail.ErrReauthorizeRequired.Error(), nil, nil)
	default:
		var apiErr *gmail.APIError
		if errors.As(err, &apiErr) {
			ec.app.Logger.Errorf("Gmail API rejected search: %v", err)
			util.ResponseFailed(ctx, http.StatusBadGateway, "Gmail API request failed", util.GenerateErrorMessages(err), nil)
			return
		}

		ec.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
	}
}

// ListEmails pages through the cached search results, newest first.
func (ec EmailController) ListEmails(ctx *gin.Context) {
	page := parseUintQuery(ctx, "page", constant.DefaultPage)
	pageSize := parseUintQuery(ctx, "pageSize", constant.DefaultPageSize)
	if pageSize > constant.MaxPageSize {
		pageSize = constant.MaxPageSize
	}

	emails, total, err := ec.app.Repository.Email.List(ctx, nil, page, pageSize)
	if err != nil {
		ec.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"emails":    emails,
		"total":     total,
		"page":      page,
		"pageSize":  pageSize,
		"totalPage": util.CalculateTotalPage(total, pageSize),
	})
}

// ToggleVisibility flips the hidden flag on a cached email. Hidden rows stay
// hidden across re-searches because the cache upsert never touches the flag.
func (ec EmailController) ToggleVisibility(ctx *gin.Context) {
	emailId := ctx.Param("emailId")

	hidden, err := ec.app.Repository.Email.ToggleHidden(ctx, nil, emailId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Email not found", nil, nil)
			return
		}

		ec.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"isHidden": hidden,
	})
}

func parseUintQuery(ctx *gin.Context, key string, fallback uint) uint {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}

	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return fallback
	}

	return uint(parsed)
}
