package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/smallbiznis/portal/internal/client/domain"
)

func (s *Server) ListClients(c *gin.Context) {
	clients, err := s.clientSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": clients})
}

func (s *Server) GetClientByID(c *gin.Context) {
	item, err := s.clientSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) CreateClient(c *gin.Context) {
	var req clientdomain.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	item, err := s.clientSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (s *Server) UpdateClient(c *gin.Context) {
	var req clientdomain.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	item, err := s.clientSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) DeleteClient(c *gin.Context) {
	if err := s.clientSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
