package models

// PendingApproval is the single-slot record of a backend-proposed action
// waiting for the user's decision.
type PendingApproval struct {
	ID               string         // Client-assigned, matches decisions to this record
	ToolName         string         // Backend tool that will run on approval
	Args             map[string]any // Arguments forwarded verbatim to /approve
	RequiresApproval bool
	Result           string
	Error            string
}

// Valid reports whether the record carries what an approve call needs.
func (p *PendingApproval) Valid() bool {
	return p != nil && p.ToolName != "" && p.Args != nil
}

// Clone returns a copy sharing nothing with p, nested args included.
func (p *PendingApproval) Clone() *PendingApproval {
	if p == nil {
		return nil
	}
	c := *p
	c.Args = CopyArgs(p.Args)
	return &c
}

// CopyArgs deep-copies a decoded JSON object. nil stays nil.
func CopyArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CopyArgs(t)
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
