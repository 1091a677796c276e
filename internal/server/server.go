// Package server serves expression evaluation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zephyrtronium/rpn"
	"github.com/zephyrtronium/rpn/internal/report"
)

const (
	healthOK = "OK"
)

type Options struct {
	Address string
	Logger  *zap.SugaredLogger
}

type Server struct {
	Options

	engine *gin.Engine
	server http.Server
}

// evalRequest is the body of a POST to /eval.
type evalRequest struct {
	Expr *string `json:"expr" binding:"required"`
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	server := &Server{
		Options: opts,
		engine:  gin.New(),
	}

	server.engine.Use(gin.Recovery())

	server.engine.GET("/health", server.handleHealth)
	server.engine.GET("/eval", server.handleEvalQuery)
	server.engine.POST("/eval", server.handleEvalBody)

	server.server = http.Server{
		Handler: server.engine,
		Addr:    opts.Address,
	}

	return server
}

// Handler returns the server's HTTP handler.
func (server *Server) Handler() http.Handler {
	return server.engine
}

// Start serves until Shutdown is called. The returned channel receives any
// error that stops the server other than shutting down.
func (server *Server) Start() <-chan error {
	errs := make(chan error, 1)

	go func() {
		defer close(errs)

		server.Logger.Infof("server listening on '%s'", server.Address)

		if err := server.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	return errs
}

func (server *Server) Shutdown(ctx context.Context) error {
	server.Logger.Infof("stopping server")

	if err := server.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	return nil
}

func (server *Server) handleHealth(ctx *gin.Context) {
	ctx.String(http.StatusOK, healthOK)
}

func (server *Server) handleEvalQuery(ctx *gin.Context) {
	expr, ok := ctx.GetQuery("expr")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter 'expr'"})
		return
	}

	server.eval(ctx, expr)
}

func (server *Server) handleEvalBody(ctx *gin.Context) {
	var req evalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %s", err)})
		return
	}

	server.eval(ctx, *req.Expr)
}

func (server *Server) eval(ctx *gin.Context, expr string) {
	r := report.New(rpn.Calculate(expr))

	if r.Failed() {
		server.Logger.Infow("evaluation failed", "input", expr, "error", r.Error)
		ctx.JSON(http.StatusBadRequest, r)
		return
	}

	server.Logger.Debugw("evaluated", "input", expr, "postfix", rpn.FormatTokens(r.Postfix), "result", r.Result)
	ctx.JSON(http.StatusOK, r)
}
