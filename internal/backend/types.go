package backend

// StatusNoPatchFound is the repair step status the service reports when it
// produced no remediation for the current buffer.
const StatusNoPatchFound = "no_patch_found"

// RunResult is the outcome of POST /run.
type RunResult struct {
	Success    bool
	Output     string
	Error      string
	ReturnCode int
}

// Execution is the run result embedded in a repair step.
type Execution struct {
	Success    bool
	Output     string
	Error      string
	ReturnCode int
}

// PatchResult describes the patch a repair step produced, if any.
type PatchResult struct {
	PatchApplied bool
	Explanation  string
	Diff         string
	NewCode      string
}

// RepairStep is one iteration of a repair transcript.
type RepairStep struct {
	Iteration  int
	Status     string
	Execution  *Execution
	Patch      *PatchResult
	CodeBefore string
}

// Applied reports whether the step carries a patch that replaces the buffer.
func (s RepairStep) Applied() bool {
	return s.Patch != nil && s.Patch.PatchApplied
}

// Transcript is the ordered history returned by POST /repair.
type Transcript struct {
	History []RepairStep
}

// Health is the body of GET /health.
type Health struct {
	Status string
}

func (h Health) OK() bool {
	return h.Status == "ok"
}

// Wire shapes. Pointer fields distinguish "absent" from zero values so the
// boundary can reject payloads missing required fields.

type codeRequest struct {
	Code string `json:"code"`
}

type apiRunResult struct {
	Success    *bool  `json:"success"`
	Output     string `json:"output"`
	Error      string `json:"error"`
	ReturnCode int    `json:"return_code"`
}

type apiRepairResponse struct {
	History *[]apiRepairStep `json:"history"`
}

type apiRepairStep struct {
	Iteration  int           `json:"iteration"`
	Status     string        `json:"status"`
	CodeBefore string        `json:"code_before"`
	Execution  *apiRunResult `json:"execution"`
	Patch      *apiPatch     `json:"patch"`
}

type apiPatch struct {
	PatchApplied bool    `json:"patch_applied"`
	Explanation  string  `json:"explanation"`
	Diff         string  `json:"diff"`
	NewCode      *string `json:"new_code"`
}

type apiHealth struct {
	Status string `json:"status"`
}
