package controllers

import (
	"errors"
	"net/http"

	"sshtunnelapi/models"
	"sshtunnelapi/pkg/logger"
	"sshtunnelapi/services/database"
	"sshtunnelapi/utils"

	"github.com/gin-gonic/gin"
)

var databaseSrv database.DatabaseService

// SetDatabaseService initializes the database connection service instance.
func SetDatabaseService(s database.DatabaseService) {
	databaseSrv = s
}

// createDatabase registers a database connection
// @Summary Register database
// @Description Registers a database connection that SSH tunnels can be attached to
// @Tags Databases
// @Accept json
// @Produce json
// @Param database body DatabaseCreateRequest true "Database connection"
// @Success 201 {object} DatabaseCreateResponse "Database registered successfully"
// @Failure 400 {object} StandardErrorResponse "Invalid request body or validation error"
// @Failure 409 {object} StandardErrorResponse "Database name already in use"
// @Router /databases [post]
func createDatabase(c *gin.Context) {
	var data models.Database
	if err := c.ShouldBindJSON(&data); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	if err := utils.ValidateStruct(&data); err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	logger.Debugf("Registering database: %s", data.DatabaseName)
	newObj, err := databaseSrv.Create(c.Request.Context(), data)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicateDatabase):
			utils.ErrorResponseWithStatus(c, http.StatusConflict, err, nil)
		case errors.Is(err, database.ErrInvalidURI):
			utils.ErrorResponse(c, err)
		default:
			utils.ErrorResponseWithStatus(c, http.StatusInternalServerError, err, nil)
		}
		return
	}
	utils.JSONResponse(c, http.StatusCreated, gin.H{
		"message": "Database was registered successfully",
		"id":      newObj.ID,
	})
}

// RegisterDatabaseRoutes registers HTTP endpoints for database connection operations.
func RegisterDatabaseRoutes(rg *gin.RouterGroup) {
	rg.POST("/databases", createDatabase)
}
