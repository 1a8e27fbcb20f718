package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm-api/internal/dto"
	"github.com/noah-isme/academy-crm-api/internal/models"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
)

// FallbackSummary is served whenever the generator cannot produce text.
const FallbackSummary = "There was an error generating the performance summary. Please try again later."

type textGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type summaryStore interface {
	StudentByID(id int64) (models.Student, bool)
	GroupByID(id int64) (models.Group, bool)
}

// SummaryService produces parent-facing performance summaries through the
// external generator. The generator's failure never propagates: the caller
// always receives text.
type SummaryService struct {
	store     summaryStore
	generator textGenerator
	logger    *zap.Logger
}

// NewSummaryService constructs the summary service.
func NewSummaryService(st summaryStore, generator textGenerator, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{store: st, generator: generator, logger: logger}
}

// ForStudent generates the summary for one student. A missing student is an
// error; a missing group only blanks the group details in the prompt; a
// generator failure yields the fallback text.
func (s *SummaryService) ForStudent(ctx context.Context, studentID int64) (*dto.SummaryResponse, error) {
	student, ok := s.store.StudentByID(studentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	var group models.Group
	if g, ok := s.store.GroupByID(student.GroupID); ok {
		group = g
	}

	resp := &dto.SummaryResponse{StudentID: studentID}

	text, err := s.generator.GenerateContent(ctx, buildSummaryPrompt(student, group))
	if err != nil {
		s.logger.Sugar().Warnw("summary generation failed", "student_id", studentID, "error", err)
		resp.Summary = FallbackSummary
		return resp, nil
	}

	resp.Summary = text
	resp.Generated = true
	return resp, nil
}

func buildSummaryPrompt(student models.Student, group models.Group) string {
	return fmt.Sprintf(`Generate a brief, encouraging performance summary for a youth football player named %s.
This summary is for their parents.

Player Details:
- Name: %s
- Age Group: %s
- Coach: %s
- Joined Academy: %s
- Status: %s

Performance Statistics (This Season):
- Goals Scored: %d
- Assists: %d
- Attendance: %d%%

Instructions:
- Keep the tone positive, professional, and encouraging.
- Start by highlighting their strengths based on the stats (e.g., goal-scoring prowess, teamwork via assists, dedication via attendance).
- Mention their potential and the importance of continued practice.
- Keep it concise, around 3-4 sentences.
- Do not make up any negative information.`,
		student.Name,
		student.Name,
		group.Name,
		group.Coach,
		student.JoinedDate.Format(dateLayout),
		student.Status,
		student.Performance.Goals,
		student.Performance.Assists,
		student.Performance.Attendance,
	)
}
