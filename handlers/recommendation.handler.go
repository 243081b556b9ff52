package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/NakibIheb20/carthatamaz-platform/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
	Tracer                trace.Tracer
	logger                *logrus.Logger
}

func NewRecommendationHandler(recommendationService services.RecommendationService, tr trace.Tracer, logger *logrus.Logger) RecommendationHandler {
	return RecommendationHandler{recommendationService, tr, logger}
}

func (rh *RecommendationHandler) GetRecommendations(ctx *gin.Context) {
	_, span := rh.Tracer.Start(ctx.Request.Context(), "RecommendationHandler.GetRecommendations")
	defer span.End()

	title := ctx.Query("title")
	if title == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": "Missing title parameter"})
		return
	}

	recommendations, err := rh.recommendationService.GetRecommendations(ctx.Request.Context(), title)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rh.respondEngineError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "recommendations": recommendations})
}

func (rh *RecommendationHandler) Chatbot(ctx *gin.Context) {
	_, span := rh.Tracer.Start(ctx.Request.Context(), "RecommendationHandler.Chatbot")
	defer span.End()

	var request struct {
		Query string `json:"query" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	answer, err := rh.recommendationService.GetChatbotRecommendations(ctx.Request.Context(), request.Query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		rh.respondEngineError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "success", "answer": answer})
}

func (rh *RecommendationHandler) respondEngineError(ctx *gin.Context, err error) {
	if errors.Is(err, services.ErrRecommendationEngineUnavailable) {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "fail", "message": "Recommendation engine is not available"})
		return
	}
	rh.logger.WithFields(logrus.Fields{"path": "handlers/recommendation"}).Error("Engine request failed: ", err)
	ctx.JSON(http.StatusBadGateway, gin.H{"status": "fail", "message": "Recommendation engine error"})
}
