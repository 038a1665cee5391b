package xhttp

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

type Router = router.Router
type RouterGroup = router.Group

type RequestCtx = fasthttp.RequestCtx
type RequestHandler = fasthttp.RequestHandler
type MiddlewareFunc func(next RequestHandler) RequestHandler

var StatusText = fasthttp.StatusMessage

const (
	StatusNotFound            = fasthttp.StatusNotFound
	StatusRequestTimeout      = fasthttp.StatusRequestTimeout
	StatusInternalServerError = fasthttp.StatusInternalServerError
)

func NewRouter() *Router {
	return router.New()
}

// CreateDefaultRouter returns a router with sane 404/405 handling and
// trailing-slash redirects enabled.
func CreateDefaultRouter() *Router {
	r := NewRouter()
	r.RedirectFixedPath = true
	r.RedirectTrailingSlash = true
	r.SaveMatchedRoutePath = true
	r.NotFound = NotFoundHandler
	r.MethodNotAllowed = NotFoundHandler
	r.HandleOPTIONS = false
	r.HandleMethodNotAllowed = true
	return r
}

func NotFoundHandler(ctx *RequestCtx) {
	ctx.Error(StatusText(StatusNotFound), StatusNotFound)
}
