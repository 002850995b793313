package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/botofarm/internal/common"
	"github.com/dmitrijs2005/botofarm/internal/server/metrics"
	"github.com/dmitrijs2005/botofarm/internal/server/models"
	"github.com/dmitrijs2005/botofarm/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const readyTimeout = 2 * time.Second

func (s *Server) createAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.validationError(c, err)
		return
	}

	draft := services.AccountDraft{
		Login:     req.Login,
		Password:  req.Password,
		ProjectID: req.ProjectID,
		Env:       models.Env(req.Env),
		Domain:    models.Domain(req.Domain),
	}

	account, err := s.accounts.CreateAccount(c.Request.Context(), draft)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateLogin) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": msgDuplicate})
			return
		}
		if errors.Is(err, common.ErrorValidation) {
			s.validationError(c, err)
			return
		}
		s.internalError(c, err)
		return
	}

	if s.opts.Metrics != nil {
		s.opts.Metrics.AccountCreated()
	}

	c.JSON(http.StatusOK, newAccountResponse(account))
}

func (s *Server) listAccounts(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.validationError(c, err)
		return
	}

	accounts, err := s.accounts.ListAccounts(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, newAccountResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) lockAccount(c *gin.Context) {
	var uri accountURI
	if err := c.ShouldBindUri(&uri); err != nil {
		s.validationError(c, err)
		return
	}

	ts, err := s.leases.Acquire(c.Request.Context(), uri.ID)
	switch {
	case err == nil:
		s.observeLease("acquire", metrics.OutcomeOK)
		c.JSON(http.StatusOK, lockResponse{Success: true, Message: msgLocked, LockExpiryAt: &ts})
	case errors.Is(err, common.ErrAlreadyLocked):
		s.observeLease("acquire", metrics.OutcomeAlreadyLocked)
		c.JSON(http.StatusOK, lockResponse{Success: false, Message: msgAlreadyLocked})
	case errors.Is(err, common.ErrorNotFound):
		s.observeLease("acquire", metrics.OutcomeNotFound)
		c.JSON(http.StatusOK, lockResponse{Success: false, Message: msgNotFound})
	default:
		s.observeLease("acquire", metrics.OutcomeError)
		s.internalError(c, err)
	}
}

func (s *Server) unlockAccount(c *gin.Context) {
	var uri accountURI
	if err := c.ShouldBindUri(&uri); err != nil {
		s.validationError(c, err)
		return
	}

	err := s.leases.Release(c.Request.Context(), uri.ID)
	switch {
	case err == nil:
		s.observeLease("release", metrics.OutcomeOK)
		c.JSON(http.StatusOK, lockResponse{Success: true, Message: msgUnlocked})
	case errors.Is(err, common.ErrorNotFound):
		s.observeLease("release", metrics.OutcomeNotFound)
		c.JSON(http.StatusOK, lockResponse{Success: false, Message: msgNotFound})
	default:
		s.observeLease("release", metrics.OutcomeError)
		s.internalError(c, err)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	if err := s.accounts.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "readiness check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) observeLease(op, outcome string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveLease(op, outcome)
	}
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), err.Error(), "path", c.Request.URL.Path, "request_id", c.GetString(requestIDKey))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": msgInternal})
}

func (s *Server) validationError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": fieldErrors(err)})
}

func fieldErrors(err error) []fieldError {
	var (
		verrs     validator.ValidationErrors
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &verrs):
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Message: describe(fe)})
		}
		return out
	case errors.As(err, &typeErr):
		return []fieldError{{Field: typeErr.Field, Message: fmt.Sprintf("expected %s", typeErr.Type)}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return []fieldError{{Field: "body", Message: "invalid JSON body"}}
	default:
		return []fieldError{{Field: "request", Message: err.Error()}}
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "uuid":
		return "value is not a valid uuid"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
