package xhttp

import (
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/acolin/asso-ledger/pkg/logger"
)

type Server = fasthttp.Server

type ServerOption struct {
	Name string

	// IdleTimeout bounds how long a keep-alive connection may sit unused
	// before the server reclaims it.
	IdleTimeout time.Duration

	// MaxRequestBodySize caps uploads; invoice attachments are the largest
	// payload this service accepts.
	MaxRequestBodySize int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Concurrency   int
	MaxConnsPerIP int

	NoDefaultServerHeader bool
	CloseOnShutdown       bool
}

var DefaultServerOption = ServerOption{
	IdleTimeout:           time.Second * 10,
	MaxRequestBodySize:    12 * 1024 * 1024,
	ReadTimeout:           time.Millisecond * 5000,
	WriteTimeout:          time.Millisecond * 5000,
	Concurrency:           10_000,
	MaxConnsPerIP:         1_000,
	NoDefaultServerHeader: true,
	CloseOnShutdown:       true,
}

// Engine ties the router, server, and middleware chain together.
type Engine struct {
	*Router
	*Server
	middle []MiddlewareFunc
}

func NewServer(option ServerOption) *Engine {
	return &Engine{
		Server: &fasthttp.Server{
			Name:                  option.Name,
			IdleTimeout:           option.IdleTimeout,
			MaxRequestBodySize:    option.MaxRequestBodySize,
			ReadTimeout:           option.ReadTimeout,
			WriteTimeout:          option.WriteTimeout,
			Concurrency:           option.Concurrency,
			MaxConnsPerIP:         option.MaxConnsPerIP,
			NoDefaultServerHeader: option.NoDefaultServerHeader,
			CloseOnShutdown:       option.CloseOnShutdown,
			Logger:                logger.GetLogger(),
		},
		Router: CreateDefaultRouter(),
	}
}

// Use appends middleware to the chain. The first registered middleware is the
// outermost at request time.
func (e *Engine) Use(middleware MiddlewareFunc) {
	e.middle = append(e.middle, middleware)
}

func (e *Engine) ListenAndServe(addr string) error {
	e.doRouting()
	e.Server.Logger.Printf("[xhttp] server is listening on %s", addr)
	return e.Server.ListenAndServe(addr)
}

func (e *Engine) doRouting() {
	for method, routes := range e.Router.List() {
		for _, r := range routes {
			e.Server.Logger.Printf("[xhttp] method: %s, path: %s", method, r)
		}
	}
	e.Server.Handler = e.Router.Handler
	slices.Reverse(e.middle)
	for _, m := range e.middle {
		e.Server.Handler = m(e.Server.Handler)
	}
}

// CloseOnSignal shuts the server down gracefully on SIGINT/SIGTERM.
func (e *Engine) CloseOnSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig
		e.Shutdown()
	}()
}

func (e *Engine) Shutdown() {
	e.Server.Logger.Printf("[xhttp] server is shutting down, process id: %d", os.Getpid())
	if err := e.Server.Shutdown(); err != nil {
		e.Server.Logger.Printf("[xhttp] error while shutting down: %v", err)
	}
}
