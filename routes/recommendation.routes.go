package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NakibIheb20/carthatamaz-platform/handlers"
)

type RecommendationRouteHandler struct {
	recommendationHandler handlers.RecommendationHandler
}

func NewRecommendationRouteHandler(recommendationHandler handlers.RecommendationHandler) RecommendationRouteHandler {
	return RecommendationRouteHandler{recommendationHandler}
}

func (rc *RecommendationRouteHandler) RecommendationRoute(rg *gin.RouterGroup) {
	router := rg.Group("/recommendations")

	router.GET("", rc.recommendationHandler.GetRecommendations)
	router.POST("/chatbot", rc.recommendationHandler.Chatbot)
}
