package service

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"

	"github.com/iWorld-y/aura/app/aura/pkg/alignment"
	"github.com/iWorld-y/aura/app/aura/pkg/engine"
	"github.com/iWorld-y/aura/app/aura/pkg/llm"
	"github.com/iWorld-y/aura/app/aura/pkg/schema"
	"github.com/iWorld-y/aura/app/display/internal/usecase"
)

// toHTTPError 将业务错误映射为带原因码的 kratos 错误
func toHTTPError(err error) error {
	if err == nil {
		return nil
	}
	if se := new(errors.Error); stderrors.As(err, &se) {
		return se
	}

	switch {
	case stderrors.Is(err, engine.ErrInvalidInput),
		stderrors.Is(err, alignment.ErrNoRegions):
		return errors.BadRequest("INVALID_INPUT", err.Error()).WithCause(err)
	case stderrors.Is(err, schema.ErrSchemaViolation):
		return errors.New(422, "SCHEMA_VIOLATION", err.Error()).WithCause(err)
	case stderrors.Is(err, llm.ErrCollaboratorUnavailable),
		stderrors.Is(err, alignment.ErrEmptyBriefing):
		return errors.ServiceUnavailable("COLLABORATOR_UNAVAILABLE", err.Error()).WithCause(err)
	case stderrors.Is(err, usecase.ErrSuperseded):
		return errors.Conflict("SUPERSEDED", err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.GatewayTimeout("TIMEOUT", err.Error())
	}
	return errors.InternalServer("INTERNAL", err.Error()).WithCause(err)
}
