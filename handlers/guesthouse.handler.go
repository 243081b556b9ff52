package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
	"github.com/NakibIheb20/carthatamaz-platform/services"
	"github.com/NakibIheb20/carthatamaz-platform/utils"
)

type GuesthouseHandler struct {
	guesthouseService services.GuesthouseService
	reviewService     services.ReviewService
	csvImportService  *services.CsvImportService
	Tracer            trace.Tracer
	logger            *logrus.Logger
}

func NewGuesthouseHandler(guesthouseService services.GuesthouseService, reviewService services.ReviewService,
	csvImportService *services.CsvImportService, tr trace.Tracer, logger *logrus.Logger) GuesthouseHandler {
	return GuesthouseHandler{guesthouseService, reviewService, csvImportService, tr, logger}
}

func (gh *GuesthouseHandler) GetAllGuesthouses(ctx *gin.Context) {
	if city := ctx.Query("city"); city != "" {
		guesthouses, err := gh.guesthouseService.GetGuesthousesByCity(ctx.Request.Context(), city)
		if err != nil {
			gh.respondGuesthouseError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "success", "guesthouses": guesthouses})
		return
	}

	guesthouses, err := gh.guesthouseService.GetAllGuesthouses(ctx.Request.Context())
	if err != nil {
		gh.respondGuesthouseError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "guesthouses": guesthouses})
}

func (gh *GuesthouseHandler) GetGuesthouseByID(ctx *gin.Context) {
	guesthouse, err := gh.guesthouseService.GetGuesthouseByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		gh.respondGuesthouseError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "guesthouse": guesthouse})
}

func (gh *GuesthouseHandler) GetOwnerGuesthouses(ctx *gin.Context) {
	owner, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	guesthouses, err := gh.guesthouseService.GetGuesthousesByOwnerID(ctx.Request.Context(), owner.ID.Hex())
	if err != nil {
		gh.respondGuesthouseError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "guesthouses": guesthouses})
}

func (gh *GuesthouseHandler) CreateGuesthouse(ctx *gin.Context) {
	_, span := gh.Tracer.Start(ctx.Request.Context(), "GuesthouseHandler.CreateGuesthouse")
	defer span.End()

	owner, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	var request *domain.GuesthouseCreateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	guesthouse, err := gh.guesthouseService.CreateGuesthouse(ctx.Request.Context(), request, owner.ID.Hex())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		gh.respondGuesthouseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"status": "success", "guesthouse": guesthouse})
}

func (gh *GuesthouseHandler) UpdateGuesthouse(ctx *gin.Context) {
	owner, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	existing, err := gh.guesthouseService.GetGuesthouseByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		gh.respondGuesthouseError(ctx, err)
		return
	}
	if owner.Role != domain.Admin && existing.OwnerID != owner.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"status": "fail", "message": "Access denied"})
		return
	}

	var request *domain.GuesthouseCreateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	guesthouse, err := gh.guesthouseService.UpdateGuesthouse(ctx.Request.Context(), ctx.Param("id"), request)
	if err != nil {
		gh.respondGuesthouseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "guesthouse": guesthouse})
}

func (gh *GuesthouseHandler) DeleteGuesthouse(ctx *gin.Context) {
	owner, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
		return
	}

	existing, err := gh.guesthouseService.GetGuesthouseByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		gh.respondGuesthouseError(ctx, err)
		return
	}
	if owner.Role != domain.Admin && existing.OwnerID != owner.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"status": "fail", "message": "Access denied"})
		return
	}

	if err := gh.guesthouseService.DeleteGuesthouse(ctx.Request.Context(), ctx.Param("id")); err != nil {
		gh.respondGuesthouseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Guesthouse deleted"})
}

func (gh *GuesthouseHandler) GetAllReviews(ctx *gin.Context) {
	reviews, err := gh.reviewService.GetAllReviews(ctx.Request.Context())
	if err != nil {
		gh.respondGuesthouseError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "reviews": reviews})
}

func (gh *GuesthouseHandler) GetGuesthouseReviews(ctx *gin.Context) {
	reviews, err := gh.reviewService.GetReviewsByGuesthouseID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		gh.respondGuesthouseError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "success", "reviews": reviews})
}

// ImportGuesthousesCSV ingests the uploaded listings dataset. Admin only.
func (gh *GuesthouseHandler) ImportGuesthousesCSV(ctx *gin.Context) {
	_, span := gh.Tracer.Start(ctx.Request.Context(), "GuesthouseHandler.ImportGuesthousesCSV")
	defer span.End()

	file, _, err := ctx.Request.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "Missing CSV file"})
		return
	}
	defer file.Close()

	result, err := gh.csvImportService.ImportGuesthouses(ctx.Request.Context(), file)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		gh.logger.WithFields(logrus.Fields{"path": "handlers/guesthouse"}).Error("CSV import failed: ", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "result": result})
}

func (gh *GuesthouseHandler) respondGuesthouseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrGuesthouseNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidPrice):
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
	default:
		gh.logger.WithFields(logrus.Fields{"path": "handlers/guesthouse"}).Error("Database exception: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
	}
}
