package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "recommend_jobs",
		Description: "Rank open job postings for a user by profile fit and application history. Jobs the user posted or already applied to are excluded. Returns scores in [0,1] with reasons and insights.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User ID or username",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of recommendations (default from config, capped at max_limit)",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"history", "neutral"},
					"description": "Scoring mode. 'neutral' gives every job the same score, newest first.",
				},
			},
			"required": []string{"user_id"},
		},
	},
	{
		Name:        "profile_analysis",
		Description: "Score a user's profile completeness and suggest the most useful improvement.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User ID or username",
				},
			},
			"required": []string{"user_id"},
		},
	},
	{
		Name:        "list_jobs",
		Description: "List job postings, newest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"posted_by": map[string]interface{}{
					"type":        "string",
					"description": "Only jobs posted by this user ID",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
}
