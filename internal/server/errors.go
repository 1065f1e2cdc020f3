package server

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse renders an error as JSON with a matching status code.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func newErrResponse(err error, code int) render.Renderer {
	resp := &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		StatusText:     http.StatusText(code),
	}
	if err != nil {
		resp.ErrorText = err.Error()
	}
	return resp
}

func ErrNotFound(err error) render.Renderer {
	return newErrResponse(err, http.StatusNotFound)
}

func ErrUnprocessable(err error) render.Renderer {
	return newErrResponse(err, http.StatusUnprocessableEntity)
}

func ErrInternalServerError(err error) render.Renderer {
	return newErrResponse(err, http.StatusInternalServerError)
}
