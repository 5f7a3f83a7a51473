package backend

import "context"

// QueryRequest is the body of POST /process.
type QueryRequest struct {
	Query string `json:"query"`
}

// ApprovalDecisionRequest is the body of POST /approve. Only sent when the
// user approves.
type ApprovalDecisionRequest struct {
	ToolName string         `json:"toolName"`
	Args     map[string]any `json:"args"`
}

// EmailResponse is what both endpoints return.
type EmailResponse struct {
	RequiresApproval bool           `json:"requiresApproval"`
	ToolName         string         `json:"toolName,omitempty"`
	Args             map[string]any `json:"args,omitempty"`
	Result           string         `json:"result,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// Gateway is the request/response shim in front of the assistant service.
type Gateway interface {
	Process(ctx context.Context, req QueryRequest) (*EmailResponse, error)
	Approve(ctx context.Context, req ApprovalDecisionRequest) (*EmailResponse, error)
}
