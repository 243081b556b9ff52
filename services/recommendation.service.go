package services

import "context"

type RecommendationService interface {
	GetRecommendations(ctx context.Context, title string) ([]map[string]interface{}, error)
	GetChatbotRecommendations(ctx context.Context, query string) (string, error)
}
