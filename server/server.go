// Package server exposes stored projects over a small JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"plan-measure/store"
)

type Options struct {
	Port uint
}

func Run(ctx context.Context, st store.Store, log *logrus.Logger, opts *Options) error {
	s := newServer(st, log, opts)

	log.WithField("port", s.opts.Port).Info("starting server")

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%v", s.opts.Port),
		Handler: s.router(),
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = srv.Shutdown(context.Background())
		case <-done:
		}
	}()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errors.Wrap(err, "serve")
}

type server struct {
	opts  *Options
	store store.Store
	log   *logrus.Logger
}

func newServer(st store.Store, log *logrus.Logger, opts *Options) *server {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Port == 0 {
		opts.Port = 2428
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &server{
		opts:  opts,
		store: st,
		log:   log,
	}
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	s.initProjects(r)

	return r
}
