package main

import (
	"context"
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

const (
	defaultModel    = "gemini-2.5-pro"
	temperature     = 0.3
	maxOutputTokens = 4096
)

func GetAgent(apiKey, modelName, agentName string) (agent.Agent, error) {
	ctx := context.Background()
	if modelName == "" {
		modelName = defaultModel
	}
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	tailor, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Tailor a LaTeX resume to a job description",
		Instruction: prompt(),
		GenerateContentConfig: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](temperature),
			MaxOutputTokens: maxOutputTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return tailor, nil
}
