package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/app/models/dto"
	"github.com/ozank/stationhub/internal/app/services"
	"github.com/ozank/stationhub/internal/middleware"
)

// ReadingController handles sensor reading ingestion and queries
type ReadingController struct {
	readingService services.ReadingService
	logger         zerolog.Logger
}

// NewReadingController creates a new ReadingController
func NewReadingController(readingService services.ReadingService, logger zerolog.Logger) *ReadingController {
	return &ReadingController{
		readingService: readingService,
		logger:         logger,
	}
}

// Ingest handles POST /reading/create: unordered bulk insert of a reading
// batch
func (c *ReadingController) Ingest(ctx *gin.Context) {
	var readings []*models.Reading
	if err := ctx.ShouldBindJSON(&readings); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid reading batch payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Request body must be an array of readings")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(err.Error())))
		return
	}

	count, err := c.readingService.Ingest(ctx.Request.Context(), readings)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("readings created", dto.IngestResponse{
		InsertedCount: count,
		Readings:      readings,
	}))
}

// GetByDeviceAndTime handles GET /readings/:deviceName/:time
func (c *ReadingController) GetByDeviceAndTime(ctx *gin.Context) {
	deviceName := ctx.Param("deviceName")

	t, err := parseTimestamp(ctx.Param("time"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reading, err := c.readingService.GetByDeviceAndTime(ctx.Request.Context(), deviceName, t)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("reading found", reading))
}

// GetWithinHour handles GET /readings/hour/:deviceName/:time: readings in
// the clock hour containing the instant, reduced field set
func (c *ReadingController) GetWithinHour(ctx *gin.Context) {
	deviceName := ctx.Param("deviceName")

	t, err := parseTimestamp(ctx.Param("time"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows, err := c.readingService.GetWithinHour(ctx.Request.Context(), deviceName, t)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("readings found", rows))
}

// GetByDateRange handles GET /readings/range?startTime&endTime
func (c *ReadingController) GetByDateRange(ctx *gin.Context) {
	start, end, err := c.parseRange(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	readings, err := c.readingService.GetByDateRange(ctx.Request.Context(), start, end)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("readings found", readings))
}

// MaxTemperature handles GET /readings/maxTemp?startTime&endTime: one row
// per device with the maximum temperature over the range
func (c *ReadingController) MaxTemperature(ctx *gin.Context) {
	start, end, err := c.parseRange(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows, err := c.readingService.MaxTemperaturePerDevice(ctx.Request.Context(), start, end)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("max temperatures found", rows))
}

// MaxPrecipitation handles GET /readings/precipitation/:deviceName: the
// highest precipitation reading over the trailing five months
func (c *ReadingController) MaxPrecipitation(ctx *gin.Context) {
	deviceName := ctx.Param("deviceName")

	reading, err := c.readingService.MaxPrecipitation(ctx.Request.Context(), deviceName)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("max precipitation found", reading))
}

// UpdatePrecipitation handles PATCH /reading/update/:id
func (c *ReadingController) UpdatePrecipitation(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid reading id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdatePrecipitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Precipitation must be a number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(err.Error())))
		return
	}

	reading, err := c.readingService.UpdatePrecipitation(ctx.Request.Context(), id, *req.Precipitation)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("reading updated", reading))
}

// parseRange reads the startTime/endTime query parameters
func (c *ReadingController) parseRange(ctx *gin.Context) (time.Time, time.Time, error) {
	start, err := parseTimestamp(ctx.Query("startTime"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := parseTimestamp(ctx.Query("endTime"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}
