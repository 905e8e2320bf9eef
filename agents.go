package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/muhammadolammi/resumecritic/internal/critique"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

func GetCoach(apiKey, agentName string) (agent.Agent, error) {
	ctx := context.Background()
	model, err := gemini.NewModel(ctx, "gemini-2.5-flash", &genai.ClientConfig{
		APIKey: apiKey,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create model: %v", err)
	}

	coach, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Coach resume writing",
		Instruction: prompt(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %v", err)
	}

	return coach, nil
}

// newCoachRunner wires the coach agent to an in-memory session service.
func newCoachRunner(apiKey, agentName string) (*runner.Runner, session.Service, error) {
	coach, err := GetCoach(apiKey, agentName)
	if err != nil {
		return nil, nil, err
	}

	inMemoryService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        coach.Name(),
		Agent:          coach,
		SessionService: inMemoryService,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return r, inMemoryService, nil
}

func buildCoachMessage(resumeText string, res critique.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Heuristic score: %d/100\n\nDetected issues:\n", res.Score)
	if len(res.Issues) == 0 {
		b.WriteString("- none\n")
	}
	for _, is := range res.Issues {
		fmt.Fprintf(&b, "- [%s] %s\n", is.Severity, is.Title)
	}
	fmt.Fprintf(&b, "\nResume:\n%s", resumeText)
	return b.String()
}

func parseCoaching(output string) (*Coaching, error) {
	cleaned := CleanJson(output)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response from coach")
	}
	var c Coaching
	if err := json.Unmarshal([]byte(cleaned), &c); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	return &c, nil
}

// coachResume asks the coach agent for a summary and rewrites of the
// weakest sentences.
func coachResume(ctx context.Context, workerConfig *WorkerConfig, userID, sessionID, resumeText string, res critique.Result) (*Coaching, error) {
	msg := buildCoachMessage(resumeText, res)

	output, err := retry(2, func() (string, error) {
		stream := workerConfig.CoachRunner.Run(ctx, userID, sessionID, &genai.Content{
			Role: "user",
			Parts: []*genai.Part{
				{Text: msg},
			},
		}, agent.RunConfig{})

		var output string
		for event, err := range stream {
			if err != nil {
				return "", err
			}
			if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
				output = event.Content.Parts[0].Text
			}
		}

		if output == "" {
			return "", fmt.Errorf("empty agent response")
		}
		return output, nil
	})
	if err != nil {
		return nil, err
	}
	return parseCoaching(output)
}
