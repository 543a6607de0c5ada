package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nickytooth/promptcrafting-ai/internal/api"
	"github.com/nickytooth/promptcrafting-ai/internal/cli"
	"github.com/nickytooth/promptcrafting-ai/internal/platform"
	"github.com/nickytooth/promptcrafting-ai/internal/prompt"
)

type listPlatformsInput struct{}

type listPlatformsOutput struct {
	Platforms []platform.Summary `json:"platforms"`
}

type generatePromptInput struct {
	Description string `json:"description" jsonschema:"the video scene to describe, in prose"`
	Platform    string `json:"platform" jsonschema:"target platform id from list_platforms, e.g. veo-3.1"`
}

type analyzeVideoInput struct {
	Path     string `json:"path" jsonschema:"absolute path to an MP4, WebM, MOV or AVI clip of at most 10MB"`
	Platform string `json:"platform" jsonschema:"target platform id from list_platforms, e.g. sora-2"`
}

type tools struct {
	svc api.Dispatcher
}

func newServer(svc api.Dispatcher) *mcp.Server {
	t := &tools{svc: svc}
	server := mcp.NewServer(&mcp.Implementation{Name: "promptcrafting-ai", Version: commitHash}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_platforms",
		Description: "List the generative video platforms prompts can be written for.",
	}, t.listPlatforms)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_prompt",
		Description: "Write a production-ready prompt for the platform from a scene description.",
	}, t.generatePrompt)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_video",
		Description: "Analyze a local video clip and write a prompt that recreates it on the platform.",
	}, t.analyzeVideo)

	return server
}

func (t *tools) listPlatforms(_ context.Context, _ *mcp.CallToolRequest, _ listPlatformsInput) (*mcp.CallToolResult, listPlatformsOutput, error) {
	return nil, listPlatformsOutput{Platforms: t.svc.ListPlatforms()}, nil
}

func (t *tools) generatePrompt(ctx context.Context, _ *mcp.CallToolRequest, in generatePromptInput) (*mcp.CallToolResult, prompt.Result, error) {
	res, err := t.svc.GenerateFromDescription(ctx, in.Description, in.Platform)
	if err != nil {
		return nil, prompt.Result{}, err
	}
	return nil, *res, nil
}

func (t *tools) analyzeVideo(ctx context.Context, _ *mcp.CallToolRequest, in analyzeVideoInput) (*mcp.CallToolResult, prompt.Result, error) {
	data, mimeType, err := cli.ReadVideoFile(in.Path)
	if err != nil {
		return nil, prompt.Result{}, err
	}
	res, err := t.svc.GenerateFromVideo(ctx, data, mimeType, in.Platform)
	if err != nil {
		return nil, prompt.Result{}, err
	}
	return nil, *res, nil
}
