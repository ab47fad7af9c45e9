package admin

import (
	"context"

	"enigma/internal/puzzle/models"
	lockout "enigma/internal/ratelimit/models"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/middleware/requesttime"
)

// Dashboard aggregates participant progress. Admins additionally see each
// participant's UUID and lock status; the dashboard role sees names only.
// Lock statuses are read without applying expiry.
func (s *Service) Dashboard(ctx context.Context, role models.Role) (*models.DashboardResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load questions")
	}

	now := requesttime.Now(ctx)
	total := len(questions)
	resp := &models.DashboardResponse{
		TotalUsers:  len(users),
		Users:       make([]models.UserProgress, 0, len(users)),
		LastUpdated: now,
	}

	var solved int
	for _, u := range users {
		done := len(u.CompletedQuestions)
		solved += done
		if total > 0 && done >= total {
			resp.TotalCompletions++
		}

		row := models.UserProgress{
			Name:           u.Name,
			Percentage:     models.Percentage(done, total),
			CompletedCount: done,
			TotalQuestions: total,
			LastActivity:   u.LastActivity,
		}
		if role == models.RoleAdmin {
			answer := u.RateLimit.Peek(lockout.ChannelAnswer, now)
			hint := u.RateLimit.Peek(lockout.ChannelHint, now)
			row.UUID = u.UUID
			row.AnswerStatus = &answer
			row.HintStatus = &hint
		}
		resp.Users = append(resp.Users, row)
	}
	resp.AverageCompletion = models.Percentage(solved, len(users)*total)
	return resp, nil
}
