package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"socialgraph/backend/internal/network"
	apperrors "socialgraph/backend/pkg/errors"
	"go.uber.org/zap"
)

type addPersonRequest struct {
	Name       string             `json:"name" binding:"required"`
	Attributes network.Attributes `json:"attributes"`
}

type updatePersonRequest struct {
	Attributes network.Attributes `json:"attributes" binding:"required"`
}

type addFriendshipRequest struct {
	A string `json:"a" binding:"required"`
	B string `json:"b" binding:"required"`
}

type separationResponse struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Degree  int             `json:"degree"`
	Outcome network.Outcome `json:"outcome"`
	Visited int             `json:"visited"`
}

func (h *Handler) listPeople(c *gin.Context) {
	people := h.graph.People(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"people": people, "count": len(people)})
}

func (h *Handler) getPerson(c *gin.Context) {
	p, err := h.graph.Person(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) addPerson(c *gin.Context) {
	var req addPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.graph.AddPerson(ctx, req.Name, req.Attributes); err != nil {
		h.writeError(c, err)
		return
	}

	p, err := h.graph.Person(ctx, req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) updatePerson(c *gin.Context) {
	var req updatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	name := c.Param("name")
	if err := h.graph.UpdatePersonDetails(ctx, name, req.Attributes); err != nil {
		h.writeError(c, err)
		return
	}

	p, err := h.graph.Person(ctx, name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) addFriendship(c *gin.Context) {
	var req addFriendshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.graph.AddFriendship(c.Request.Context(), req.A, req.B); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"a": req.A, "b": req.B})
}

func (h *Handler) separation(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	res, err := h.graph.Separation(c.Request.Context(), from, to)
	if err != nil {
		h.writeError(c, err)
		return
	}

	// All three outcomes are answers, not failures
	c.JSON(http.StatusOK, separationResponse{
		From:    from,
		To:      to,
		Degree:  res.Degree(),
		Outcome: res.Outcome,
		Visited: res.Visited,
	})
}

func (h *Handler) project(c *gin.Context) {
	if h.projector == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "projection is not configured"})
		return
	}

	ctx := c.Request.Context()
	stats, err := h.projector.ProjectSnapshot(ctx, h.graph.Snapshot(ctx))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// writeError maps typed errors onto HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case apperrors.IsAlreadyExists(err):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidName), errors.Is(err, apperrors.ErrSelfFriendship):
		status = http.StatusBadRequest
	case apperrors.IsErrorType(err, apperrors.ErrorTypeNetwork):
		status = http.StatusBadRequest
	case apperrors.IsErrorType(err, apperrors.ErrorTypeContext):
		status = http.StatusRequestTimeout
	case apperrors.IsErrorType(err, apperrors.ErrorTypeGraph):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
