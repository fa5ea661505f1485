package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"plan-measure/export"
	"plan-measure/project"
)

type ExportParams struct {
	IDParams
	Format string `form:"format"`
}

func (s *server) initProjects(r *gin.Engine) {
	r.GET("/api/projects", s.get(s.projectsList))
	r.GET("/api/projects/:id", getP(s, s.projectGet))
	r.PUT("/api/projects/:id", s.projectPut)
	r.DELETE("/api/projects/:id", getP(s, s.projectDelete))
	r.GET("/api/projects/:id/export", s.projectExport)
}

func (s *server) projectsList(ctx context.Context) (any, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}

	return gin.H{"projects": ids}, nil
}

func (s *server) projectGet(ctx context.Context, params *IDParams) (any, error) {
	return s.store.Load(ctx, params.ID)
}

func (s *server) projectDelete(ctx context.Context, params *IDParams) (any, error) {
	err := s.store.Delete(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	s.log.WithField("project", params.ID).Info("project deleted")
	return gin.H{"id": params.ID}, nil
}

func (s *server) projectPut(c *gin.Context) {
	var params IDParams
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var snap project.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if snap.ID != "" && snap.ID != params.ID {
		s.sendError(c, errors.Wrapf(errBadRequest, "body id %q does not match %q", snap.ID, params.ID))
		return
	}

	snap.ID = params.ID
	snap.Normalize()

	ctx := c.Request.Context()
	if err := s.store.Save(ctx, &snap); err != nil {
		s.sendError(c, err)
		return
	}

	s.log.WithField("project", snap.ID).WithField("measurements", len(snap.Measurements)).Info("project saved")
	c.JSON(http.StatusOK, &snap)
}

func (s *server) projectExport(c *gin.Context) {
	var params ExportParams
	if err := c.ShouldBindUri(&params.IDParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.Format == "" {
		params.Format = "csv"
	}
	if params.Format != "csv" && params.Format != "xlsx" {
		s.sendError(c, errors.Wrapf(errBadRequest, "unknown export format %q", params.Format))
		return
	}

	snap, err := s.store.Load(c.Request.Context(), params.ID)
	if err != nil {
		s.sendError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+snap.ID+"."+params.Format+"\"")
	c.Header("Content-Type", export.ContentType(params.Format))
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, params.Format, snap.Measurements); err != nil {
		s.log.WithError(err).WithField("project", snap.ID).Error("export failed")
	}
}
