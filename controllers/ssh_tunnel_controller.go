package controllers

import (
	"errors"
	"net/http"

	"sshtunnelapi/pkg/logger"
	"sshtunnelapi/services/dto"
	"sshtunnelapi/services/sshtunnel"
	"sshtunnelapi/utils"

	"github.com/gin-gonic/gin"
)

var sshTunnelSrv sshtunnel.SSHTunnelService

// SetSSHTunnelService initializes the SSH tunnel service instance.
// Used for dependency injection in tests to provide mock implementations.
func SetSSHTunnelService(s sshtunnel.SSHTunnelService) {
	sshTunnelSrv = s
}

// getSSHTunnel returns the SSH tunnel of a database
// @Summary Get SSH tunnel
// @Description Returns the SSH tunnel of a database with secrets masked
// @Tags SSH Tunnel
// @Produce json
// @Param id path int true "Database ID"
// @Success 200 {object} models.SSHTunnelView
// @Failure 400 {object} StandardErrorResponse "Invalid database ID"
// @Failure 404 {object} StandardErrorResponse "SSH tunnel not found"
// @Router /databases/{id}/ssh_tunnel [get]
func getSSHTunnel(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	tunnel, err := sshTunnelSrv.Get(c.Request.Context(), id)
	if err != nil {
		sshTunnelErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, tunnel.Masked())
}

// createSSHTunnel attaches an SSH tunnel to a database
// @Summary Create SSH tunnel
// @Description Creates the SSH tunnel of a database. The port defaults from the database connection string.
// @Tags SSH Tunnel
// @Accept json
// @Produce json
// @Param id path int true "Database ID"
// @Param tunnel body SSHTunnelRequest true "SSH tunnel fields"
// @Success 201 {object} models.SSHTunnelView
// @Failure 404 {object} StandardErrorResponse "Database not found"
// @Failure 409 {object} StandardErrorResponse "SSH tunnel already exists"
// @Failure 422 {object} SSHTunnelErrorResponse "Invalid SSH tunnel parameters"
// @Router /databases/{id}/ssh_tunnel [post]
func createSSHTunnel(c *gin.Context) {
	id, patch, ok := bindSSHTunnelPatch(c)
	if !ok {
		return
	}

	logger.Debugf("Creating ssh tunnel for database id=%d", id)
	tunnel, err := sshTunnelSrv.Create(c.Request.Context(), id, patch)
	if err != nil {
		sshTunnelErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, tunnel.Masked())
}

// updateSSHTunnel applies a partial update to the SSH tunnel of a database
// @Summary Update SSH tunnel
// @Description Updates only the supplied fields; null clears a field
// @Tags SSH Tunnel
// @Accept json
// @Produce json
// @Param id path int true "Database ID"
// @Param tunnel body SSHTunnelRequest true "Fields to change"
// @Success 200 {object} models.SSHTunnelView
// @Failure 404 {object} StandardErrorResponse "SSH tunnel not found"
// @Failure 422 {object} SSHTunnelErrorResponse "Invalid SSH tunnel parameters or missing port"
// @Router /databases/{id}/ssh_tunnel [put]
func updateSSHTunnel(c *gin.Context) {
	id, patch, ok := bindSSHTunnelPatch(c)
	if !ok {
		return
	}

	logger.Debugf("Updating ssh tunnel for database id=%d", id)
	tunnel, err := sshTunnelSrv.Update(c.Request.Context(), id, patch)
	if err != nil {
		sshTunnelErrorResponse(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusOK, tunnel.Masked())
}

// bindSSHTunnelPatch decodes the body into a map so absent keys stay untouched.
func bindSSHTunnelPatch(c *gin.Context) (uint, dto.SSHTunnelPatch, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return 0, dto.SSHTunnelPatch{}, false
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.ErrorResponse(c, err)
		return 0, dto.SSHTunnelPatch{}, false
	}

	patch, err := dto.SSHTunnelPatchFromMap(payload)
	if err != nil {
		utils.ErrorResponseWithStatus(c, http.StatusUnprocessableEntity, sshtunnel.ErrInvalidParameters, gin.H{"payload": err.Error()})
		return 0, dto.SSHTunnelPatch{}, false
	}
	return id, patch, true
}

func sshTunnelErrorResponse(c *gin.Context, err error) {
	var details interface{}
	var verr *sshtunnel.ValidationError
	if errors.As(err, &verr) {
		fields := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			fields[f.Field] = f.Reason
		}
		details = fields
	}

	switch {
	case errors.Is(err, sshtunnel.ErrNotFound):
		utils.ErrorResponseWithStatus(c, http.StatusNotFound, err, nil)
	case errors.Is(err, sshtunnel.ErrAlreadyExists):
		utils.ErrorResponseWithStatus(c, http.StatusConflict, err, nil)
	case errors.Is(err, sshtunnel.ErrInvalidParameters), errors.Is(err, sshtunnel.ErrMissingPort):
		utils.ErrorResponseWithStatus(c, http.StatusUnprocessableEntity, err, details)
	default:
		utils.ErrorResponseWithStatus(c, http.StatusInternalServerError, err, nil)
	}
}

// RegisterSSHTunnelRoutes registers HTTP endpoints for SSH tunnel operations.
func RegisterSSHTunnelRoutes(rg *gin.RouterGroup) {
	tunnel := rg.Group("/databases/:id/ssh_tunnel")
	{
		tunnel.GET("", getSSHTunnel)
		tunnel.POST("", createSSHTunnel)
		tunnel.PUT("", updateSSHTunnel)
	}
}
