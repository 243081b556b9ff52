package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const engineTimeout = 5 * time.Second

var ErrRecommendationEngineUnavailable = errors.New("recommendation engine is not available")

// RecommendationServiceImpl delegates to the external Flask recommendation
// engine over HTTP. The engine is a black box, calls go through a circuit
// breaker so a dead engine does not hold requests hostage.
type RecommendationServiceImpl struct {
	engineURL      string
	chatbotURL     string
	client         *http.Client
	logger         *logrus.Logger
	Tracer         trace.Tracer
	CircuitBreaker *gobreaker.CircuitBreaker
}

func NewRecommendationServiceImpl(engineURL, chatbotURL string, logger *logrus.Logger, tr trace.Tracer) RecommendationService {
	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "RecommendationEngine",
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{"path": "services/recommendation"}).
				Warnf("Circuit Breaker %s state changed from %s to %s", name, from, to)
		},
	})

	return &RecommendationServiceImpl{
		engineURL:      engineURL,
		chatbotURL:     chatbotURL,
		client:         &http.Client{Timeout: engineTimeout},
		logger:         logger,
		Tracer:         tr,
		CircuitBreaker: circuitBreaker,
	}
}

// GetRecommendations posts the guesthouse title to the engine and returns
// its recommendation list.
func (rs *RecommendationServiceImpl) GetRecommendations(ctx context.Context, title string) ([]map[string]interface{}, error) {
	ctx, span := rs.Tracer.Start(ctx, "RecommendationService.GetRecommendations")
	defer span.End()

	body, err := rs.performEngineRequest(ctx, rs.engineURL, map[string]string{"title": title})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var response struct {
		Recommendations []map[string]interface{} `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error decoding engine response: %w", err)
	}
	return response.Recommendations, nil
}

// GetChatbotRecommendations posts a free-text query to the chatbot engine,
// which answers with formatted text rather than JSON.
func (rs *RecommendationServiceImpl) GetChatbotRecommendations(ctx context.Context, query string) (string, error) {
	ctx, span := rs.Tracer.Start(ctx, "RecommendationService.GetChatbotRecommendations")
	defer span.End()

	body, err := rs.performEngineRequest(ctx, rs.chatbotURL, map[string]string{"query": query})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if len(body) == 0 {
		return "", errors.New("empty response from chatbot engine")
	}
	return string(body), nil
}

func (rs *RecommendationServiceImpl) performEngineRequest(ctx context.Context, url string, payload map[string]string) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling engine request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, engineTimeout)
	defer cancel()

	result, err := rs.CircuitBreaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := rs.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("recommendation engine returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			return nil, ErrRecommendationEngineUnavailable
		}
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrRecommendationEngineUnavailable
		}
		rs.logger.WithFields(logrus.Fields{"path": "services/recommendation"}).Error("Engine request failed: ", err)
		return nil, err
	}

	return result.([]byte), nil
}
