package backend

import (
	"fmt"
	"strings"
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}

func convertRunResult(raw *apiRunResult, where string) (RunResult, error) {
	if raw.Success == nil {
		return RunResult{}, malformed("%s: missing boolean \"success\"", where)
	}
	return RunResult{
		Success:    *raw.Success,
		Output:     raw.Output,
		Error:      raw.Error,
		ReturnCode: raw.ReturnCode,
	}, nil
}

func convertTranscript(raw *apiRepairResponse) (*Transcript, error) {
	if raw.History == nil {
		return nil, malformed("missing \"history\"")
	}

	steps := make([]RepairStep, 0, len(*raw.History))
	prev := 0
	for i, rs := range *raw.History {
		where := fmt.Sprintf("history[%d]", i)
		if rs.Iteration <= 0 {
			return nil, malformed("%s: iteration %d must be positive", where, rs.Iteration)
		}
		if rs.Iteration <= prev {
			return nil, malformed("%s: iteration %d does not follow %d", where, rs.Iteration, prev)
		}
		prev = rs.Iteration
		if strings.TrimSpace(rs.Status) == "" {
			return nil, malformed("%s: missing \"status\"", where)
		}

		step := RepairStep{
			Iteration:  rs.Iteration,
			Status:     rs.Status,
			CodeBefore: rs.CodeBefore,
		}
		if rs.Execution != nil {
			res, err := convertRunResult(rs.Execution, where+".execution")
			if err != nil {
				return nil, err
			}
			step.Execution = &Execution{
				Success:    res.Success,
				Output:     res.Output,
				Error:      res.Error,
				ReturnCode: res.ReturnCode,
			}
		}
		if rs.Patch != nil {
			p := &PatchResult{
				PatchApplied: rs.Patch.PatchApplied,
				Explanation:  rs.Patch.Explanation,
				Diff:         rs.Patch.Diff,
			}
			if rs.Patch.NewCode != nil {
				p.NewCode = *rs.Patch.NewCode
			} else if p.PatchApplied {
				return nil, malformed("%s.patch: applied patch without \"new_code\"", where)
			}
			step.Patch = p
		}
		steps = append(steps, step)
	}
	return &Transcript{History: steps}, nil
}
