package mcp

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zeity-dev/zeity/internal/domain/project"
	"github.com/zeity-dev/zeity/internal/domain/times"
	"github.com/zeity-dev/zeity/internal/transport"
)

type timerStartInput struct {
	Notes     string `json:"notes,omitempty" jsonschema:"notes for the new draft"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"project to book the time on"`
}

type timerStartOutput struct {
	Draft times.Draft `json:"draft"`
}

type timerStopOutput struct {
	Stopped bool        `json:"stopped"`
	Entry   *times.Time `json:"entry,omitempty"`
}

type timerStatusOutput struct {
	Running bool         `json:"running"`
	Draft   *times.Draft `json:"draft,omitempty"`
}

type timeListInput struct {
	WithBreaks bool `json:"with_breaks,omitempty" jsonschema:"interleave inferred break entries"`
}

type timeListOutput struct {
	Times []times.Time `json:"times"`
}

type timeCreateInput struct {
	Start      string `json:"start" jsonschema:"entry start as RFC 3339 instant"`
	DurationMS int64  `json:"duration_ms" jsonschema:"entry duration in milliseconds"`
	Notes      string `json:"notes,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
}

type timeCreateOutput struct {
	Entry times.Time `json:"entry"`
}

type projectListOutput struct {
	Projects []project.Project `json:"projects"`
}

type projectCreateInput struct {
	Name  string `json:"name" jsonschema:"project display name"`
	Notes string `json:"notes,omitempty"`
}

type projectCreateOutput struct {
	Project project.Project `json:"project"`
}

type syncPullOutput struct {
	Times    int `json:"times"`
	Projects int `json:"projects"`
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "timer_start",
		Description: "Start the draft timer. A no-op when a draft is already running.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in timerStartInput) (*sdkmcp.CallToolResult, timerStartOutput, error) {
		patch := times.DraftPatch{}
		if in.Notes != "" {
			patch.Notes = &in.Notes
		}
		if in.ProjectID != "" {
			patch.ProjectID = &in.ProjectID
		}
		return nil, timerStartOutput{Draft: cfg.Timer.Start(patch)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "timer_stop",
		Description: "Stop the running draft timer and record the finished entry.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, timerStopOutput, error) {
		entry := cfg.Timer.Stop(ctx)
		return nil, timerStopOutput{Stopped: entry != nil, Entry: entry}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "timer_toggle",
		Description: "Start the timer when idle, stop it when running.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, timerStatusOutput, error) {
		draft, _ := cfg.Timer.Toggle(ctx)
		return nil, timerStatusOutput{Running: draft != nil, Draft: draft}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "timer_status",
		Description: "Report whether a draft timer is running and its current fields.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, timerStatusOutput, error) {
		if draft, ok := cfg.Timer.Draft(); ok {
			return nil, timerStatusOutput{Running: true, Draft: &draft}, nil
		}
		return nil, timerStatusOutput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "time_list",
		Description: "List locally known time entries in insertion order, optionally with inferred breaks.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in timeListInput) (*sdkmcp.CallToolResult, timeListOutput, error) {
		entries := cfg.Times.Store().GetAll()
		if in.WithBreaks || cfg.Settings.Get().CalculateBreaks {
			entries = times.InferBreaks(entries)
		}
		return nil, timeListOutput{Times: entries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "time_create",
		Description: "Record a finished time entry directly, without the timer.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in timeCreateInput) (*sdkmcp.CallToolResult, timeCreateOutput, error) {
		start, err := time.Parse(time.RFC3339, in.Start)
		if err != nil {
			return nil, timeCreateOutput{}, fmt.Errorf("invalid start: %w", err)
		}
		if in.DurationMS < 0 {
			return nil, timeCreateOutput{}, fmt.Errorf("duration must not be negative")
		}
		entry := cfg.Times.Create(ctx, times.Time{
			Type:      times.TypeManual,
			Start:     start,
			Duration:  in.DurationMS,
			Notes:     in.Notes,
			ProjectID: in.ProjectID,
		})
		return nil, timeCreateOutput{Entry: entry}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_list",
		Description: "List locally known projects.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, projectListOutput, error) {
		return nil, projectListOutput{Projects: cfg.Projects.Store().GetAll()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_create",
		Description: "Create a project.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectCreateInput) (*sdkmcp.CallToolResult, projectCreateOutput, error) {
		if in.Name == "" {
			return nil, projectCreateOutput{}, fmt.Errorf("name is required")
		}
		proj := cfg.Projects.Create(ctx, project.Project{
			Name:   in.Name,
			Status: project.StatusActive,
			Notes:  in.Notes,
		})
		return nil, projectCreateOutput{Project: proj}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sync_pull",
		Description: "Fetch the remote time entries and projects and merge them into the local cache.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in struct{}) (*sdkmcp.CallToolResult, syncPullOutput, error) {
		entries, err := cfg.Times.Load(ctx, transport.TimeListOptions{})
		if err != nil {
			return nil, syncPullOutput{}, err
		}
		projects, err := cfg.Projects.Load(ctx, transport.ProjectListOptions{})
		if err != nil {
			return nil, syncPullOutput{}, err
		}
		return nil, syncPullOutput{Times: len(entries), Projects: len(projects)}, nil
	})
}
