package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder writes Problem Details. BaseURI is prepended to relative type URIs.
type Responder struct {
	BaseURI string
}

func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI}
}

var defaultResponder = NewResponder("")

// Respond sends problem with the problem+json content type, filling Instance
// from the request path when unset.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// Respond writes problem with relative type URIs.
func Respond(c *gin.Context, problem ProblemDetail) {
	defaultResponder.Respond(c, problem)
}

// ErrorMapper maps a service error to a problem; ok is false when it does not apply.
type ErrorMapper func(err error) (problem ProblemDetail, ok bool)

// ChainedResponder resolves errors through mappers in order, then falls back
// to any ProblemDetail in the chain and finally to a 500.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(baseURI),
		mappers:   mappers,
	}
}

// RespondError writes the problem err resolves to. A nil err writes nothing.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	r.Respond(c, r.Resolve(err))
}

// Resolve returns the problem err maps to without writing a response.
func (r *ChainedResponder) Resolve(err error) ProblemDetail {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	return ErrInternal.WithDetail(err.Error())
}
