package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aatrey56/fpl-analysis/internal/community"
	"github.com/aatrey56/fpl-analysis/internal/dataset"
	"github.com/aatrey56/fpl-analysis/internal/playermodel"
	"github.com/aatrey56/fpl-analysis/internal/squad"
	"github.com/aatrey56/fpl-analysis/internal/stats"
	"github.com/aatrey56/fpl-analysis/internal/teammodel"
)

type TeamModelArgs struct {
	Top int `json:"top" jsonschema:"How many teams to return, ranked by adjusted attack (0 = all)"`
}

type PlayerModelArgs struct {
	Position string `json:"position" jsonschema:"Filter to one position: GKP|DEF|MID|FWD (empty = all)"`
	Limit    int    `json:"limit" jsonschema:"How many players to return, ranked by tuned score (0 = all)"`
}

type PickSquadArgs struct {
	Budget float64 `json:"budget" jsonschema:"Squad budget in millions (0 = configured default)"`
}

type CommunitiesArgs struct {
	Mode string `json:"mode" jsonschema:"Detection mode: performance|price_form (default performance)"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type teamReport struct {
	Team                string   `json:"team"`
	Matches             int      `json:"matches"`
	AttackIndex         float64  `json:"attack_index"`
	DefenseIndex        float64  `json:"defense_index"`
	FixtureDifficulty   *float64 `json:"fixture_difficulty,omitempty"`
	AttackIndexAdjusted float64  `json:"attack_index_adjusted"`
	GoalsPerMatch       float64  `json:"goals_per_match"`
	ConcededPerMatch    float64  `json:"conceded_per_match"`
}

type playerReport struct {
	Name          string   `json:"name"`
	Team          string   `json:"team"`
	Position      string   `json:"position"`
	Cost          *float64 `json:"cost,omitempty"`
	TotalPoints   float64  `json:"total_points"`
	RecentPoints  *float64 `json:"recent_points,omitempty"`
	XGIPer90      *float64 `json:"xgi_per_90,omitempty"`
	BaseFormValue *float64 `json:"base_form_value,omitempty"`
	TunedScore    float64  `json:"tuned_score"`
}

type squadReport struct {
	Players   []playerReport `json:"players"`
	TotalCost float64        `json:"total_cost"`
	Budget    float64        `json:"budget"`
	Attempts  int            `json:"attempts"`
	Feasible  bool           `json:"feasible"`
	Reason    string         `json:"reason,omitempty"`
}

type communityReport struct {
	ID        int            `json:"id"`
	Size      int            `json:"size"`
	Players   []string       `json:"players"`
	Positions map[string]int `json:"positions"`
	AvgCost   *float64       `json:"avg_cost,omitempty"`
	AvgPoints float64        `json:"avg_points"`
}

var (
	serveAddr       string
	serveMCPPath    string
	serveSeasonDir  string
	serveAuth       bool
	serveAuthHeader string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the models over MCP (streamable HTTP)",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(
			&mcp.Implementation{
				Name:    "fpl-analysis",
				Version: "1.0.0",
			},
			nil,
		)

		registry := make([]toolInfo, 0, 4)

		addTool(server, &registry, &mcp.Tool{
			Name:        "team_model",
			Description: "Team attack/defense indices with fixture-adjusted attack",
		}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamModelArgs) (*mcp.CallToolResult, any, error) {
			periods, summaries, err := serveTables()
			if err != nil {
				return toolError(err), nil, nil
			}
			teams := teammodel.Build(periods, summaries, cfg.Model.TeamOptions())
			reports := make([]teamReport, 0, len(teams))
			for _, t := range teams {
				reports = append(reports, teamReport{
					Team:                t.Team,
					Matches:             t.Matches,
					AttackIndex:         t.AttackIndex,
					DefenseIndex:        t.DefenseIndex,
					FixtureDifficulty:   optional(t.FixtureDifficulty),
					AttackIndexAdjusted: t.AttackIndexAdjusted,
					GoalsPerMatch:       t.GoalsPerMatch,
					ConcededPerMatch:    t.ConcededPerMatch,
				})
			}
			if args.Top > 0 && args.Top < len(reports) {
				reports = reports[:args.Top]
			}
			b, _ := json.MarshalIndent(reports, "", "  ")
			return toolJSONBytes(b), nil, nil
		})

		addTool(server, &registry, &mcp.Tool{
			Name:        "player_model",
			Description: "Tuned player scores, ranked best first",
		}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerModelArgs) (*mcp.CallToolResult, any, error) {
			pos := strings.ToUpper(strings.TrimSpace(args.Position))
			if pos != "" && !validPosition(pos) {
				return toolError(fmt.Errorf("unknown position %q", args.Position)), nil, nil
			}
			players, err := servePlayers()
			if err != nil {
				return toolError(err), nil, nil
			}
			reports := make([]playerReport, 0, len(players))
			for _, p := range players {
				if pos != "" && p.Position != pos {
					continue
				}
				reports = append(reports, playerToReport(p))
				if args.Limit > 0 && len(reports) == args.Limit {
					break
				}
			}
			b, _ := json.MarshalIndent(reports, "", "  ")
			return toolJSONBytes(b), nil, nil
		})

		addTool(server, &registry, &mcp.Tool{
			Name:        "pick_squad",
			Description: "Pick a full squad under budget and position quotas",
		}, func(ctx context.Context, req *mcp.CallToolRequest, args PickSquadArgs) (*mcp.CallToolResult, any, error) {
			players, err := servePlayers()
			if err != nil {
				return toolError(err), nil, nil
			}
			rules := cfg.Squad.Rules()
			if args.Budget > 0 {
				rules.Budget = args.Budget
			}
			result := squad.Select(players, rules)
			report := squadReport{
				TotalCost: result.TotalCost,
				Budget:    rules.Budget,
				Attempts:  result.Attempts,
				Feasible:  result.Feasible,
				Reason:    result.Reason,
			}
			for _, p := range result.Players {
				report.Players = append(report.Players, playerToReport(p))
			}
			b, _ := json.MarshalIndent(report, "", "  ")
			return toolJSONBytes(b), nil, nil
		})

		addTool(server, &registry, &mcp.Tool{
			Name:        "player_communities",
			Description: "Groups of statistically similar players in the latest gameweek",
		}, func(ctx context.Context, req *mcp.CallToolRequest, args CommunitiesArgs) (*mcp.CallToolResult, any, error) {
			dir, err := resolveSeasonDir(serveSeasonDir)
			if err != nil {
				return toolError(err), nil, nil
			}
			records, err := latestGameweek(dir)
			if err != nil {
				return toolError(err), nil, nil
			}
			var detected []community.Community
			switch strings.TrimSpace(args.Mode) {
			case "", "performance":
				detected = community.DetectPerformance(records, cfg.Community.CommunityOptions())
			case "price_form":
				detected = community.DetectPriceForm(records, cfg.Community.CommunityOptions())
			default:
				return toolError(fmt.Errorf("unknown mode %q", args.Mode)), nil, nil
			}
			reports := make([]communityReport, 0, len(detected))
			for _, c := range detected {
				reports = append(reports, communityReport{
					ID:        c.ID,
					Size:      c.Size,
					Players:   c.Players,
					Positions: c.Positions,
					AvgCost:   optional(c.AvgCost),
					AvgPoints: c.AvgPoints,
				})
			}
			b, _ := json.MarshalIndent(reports, "", "  ")
			return toolJSONBytes(b), nil, nil
		})

		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{JSONResponse: true})

		apiKey := strings.TrimSpace(os.Getenv("FPL_ANALYSIS_API_KEY"))
		if serveAuth && apiKey == "" {
			return fmt.Errorf("FPL_ANALYSIS_API_KEY is required (set env var or run with --require-auth=false)")
		}

		withAuth := func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				if apiKey == "" {
					next(w, r)
					return
				}
				key := strings.TrimSpace(r.Header.Get(serveAuthHeader))
				if key == "" {
					if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
						key = strings.TrimSpace(authz[7:])
					}
				}
				if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					w.Write([]byte(`{"error":"unauthorized"}`))
					return
				}
				next(w, r)
			}
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		}))
		mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
			w.Write(b)
		}))
		mux.HandleFunc(serveMCPPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
			handler.ServeHTTP(w, r)
		}))

		zap.L().Info("MCP HTTP server listening",
			zap.String("addr", serveAddr),
			zap.String("path", serveMCPPath))
		return http.ListenAndServe(serveAddr, mux)
	},
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}

// serveTables loads the season tables fresh for each tool call so a
// re-collected gameweek shows up without a restart.
func serveTables() ([]dataset.PeriodRecord, []dataset.SeasonSummary, error) {
	dir, err := resolveSeasonDir(serveSeasonDir)
	if err != nil {
		return nil, nil, err
	}
	return loadTables(dir)
}

func servePlayers() ([]playermodel.Row, error) {
	periods, summaries, err := serveTables()
	if err != nil {
		return nil, err
	}
	teams := teammodel.Build(periods, summaries, cfg.Model.TeamOptions())
	return playermodel.Build(summaries, periods, teams, cfg.Model.PlayerOptions()), nil
}

func playerToReport(p playermodel.Row) playerReport {
	return playerReport{
		Name:          p.Name,
		Team:          p.Team,
		Position:      p.Position,
		Cost:          optional(p.Cost),
		TotalPoints:   p.TotalPoints,
		RecentPoints:  optional(p.RecentPoints),
		XGIPer90:      optional(p.XGIPer90),
		BaseFormValue: optional(p.BaseFormValue),
		TunedScore:    p.TunedScore,
	}
}

func validPosition(pos string) bool {
	for _, p := range dataset.Positions {
		if p == pos {
			return true
		}
	}
	return false
}

// optional converts an undefined value to a JSON null via omitted pointer.
func optional(v stats.Value) *float64 {
	f, ok := v.Float()
	if !ok {
		return nil
	}
	return &f
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().StringVar(&serveMCPPath, "path", "/mcp", "HTTP path for MCP endpoint")
	serveCmd.Flags().StringVar(&serveSeasonDir, "season-dir", "", "season folder (default: discover under data root)")
	serveCmd.Flags().BoolVar(&serveAuth, "require-auth", true, "require API key auth via FPL_ANALYSIS_API_KEY")
	serveCmd.Flags().StringVar(&serveAuthHeader, "auth-header", "X-API-Key", "HTTP header to read API key from")
	rootCmd.AddCommand(serveCmd)
}
