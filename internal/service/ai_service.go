package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"interview_prep_backend/internal/config"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// PlanGenerator is the engine's view of the question-generation collaborator.
// It returns raw text; parsing and validation happen on the engine side
// before any database mutation.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, languageName, formattedScores string, knownCategories []string) (string, error)
}

// AnswerEvaluator is the optional feedback collaborator. Its absence or
// failure must never break answer recording.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, category, questionText, answerText string) (string, error)
}

// AIService talks to any OpenAI-compatible chat-completions endpoint.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// SetConfig swaps the endpoint settings; used by the config hot reloader.
func (s *AIService) SetConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) snapshot() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) chat(ctx context.Context, system, prompt string) (string, error) {
	cfg := s.snapshot()

	messages := []AIChatMessage{}
	if system != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	reqBody := ChatCompletionRequest{
		Model:    cfg.Model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

const planSystemPrompt = "You are an experienced technical interviewer building a personalised practice plan."

const planPromptTemplate = `A candidate preparing for %s interviews rated their own knowledge per topic:

%s

Known topic names: %s.

Produce 8-12 practice interview questions, weighted towards the weakest topics.
Reply with ONLY a JSON array of objects of the form
{"category": "<topic name>", "text": "<question>"}.
Use the known topic names where they fit; introduce a new topic name only when
nothing fits. No prose outside the JSON.`

func (s *AIService) GeneratePlan(ctx context.Context, languageName, formattedScores string, knownCategories []string) (string, error) {
	prompt := fmt.Sprintf(planPromptTemplate,
		languageName, formattedScores, strings.Join(knownCategories, ", "))
	return s.chat(ctx, planSystemPrompt, prompt)
}

const evalPromptTemplate = `An interview candidate answered a question on the topic "%s".

Question: %s

Candidate's answer: %s

Briefly assess the answer and explain the key points a strong answer covers.`

func (s *AIService) Evaluate(ctx context.Context, category, questionText, answerText string) (string, error) {
	prompt := fmt.Sprintf(evalPromptTemplate, category, questionText, answerText)
	return s.chat(ctx, "", prompt)
}
