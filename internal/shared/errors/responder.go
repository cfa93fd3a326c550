package errors

import (
	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type of problem responses.
const ContentTypeProblemJSON = "application/problem+json"

// Mapper turns a specific error into a problem; ok is false when the mapper
// does not recognise err.
type Mapper func(err error) (ProblemDetail, bool)

// Responder writes problem responses.
type Responder struct {
	// BaseURI is prepended to relative problem types.
	BaseURI string
	mappers []Mapper
}

// NewResponder creates a responder. Mappers are tried in order before the
// kind based fallback.
func NewResponder(baseURI string, mappers ...Mapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// DefaultResponder uses relative problem types and no mappers.
var DefaultResponder = NewResponder("")

// Respond writes problem with the problem+json content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err to a problem and writes it.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, m := range r.mappers {
		if problem, ok := m(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Respond(c, FromError(err))
}

// BadRequest writes a 400 problem.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// NotFound writes a 404 problem.
func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}

// Respond uses DefaultResponder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

// RespondError uses DefaultResponder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}
