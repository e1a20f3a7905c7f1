package oracle

import (
	"context"
	"fmt"

	"github.com/tatianab/narrative-engine/internal/models"
)

// Scripted replays canned verdicts in order. With no verdicts left it fails,
// which makes it the "none" provider: static areas play normally and every
// scenario turn is refused.
type Scripted struct {
	replies  []*models.Evaluation
	Requests []models.EvaluationRequest
}

func NewScripted(replies ...*models.Evaluation) *Scripted {
	return &Scripted{replies: replies}
}

func (s *Scripted) Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.Requests = append(s.Requests, req)
	if len(s.replies) == 0 {
		return nil, fmt.Errorf("%w: no oracle configured for turn %d", ErrEvaluationFailed, req.Turn)
	}
	ev := s.replies[0]
	s.replies = s.replies[1:]
	return ev, nil
}

// Remaining reports how many verdicts are left.
func (s *Scripted) Remaining() int { return len(s.replies) }

func (s *Scripted) Close() error { return nil }
