// Package analytics derives read-only summaries from the assignment and
// submission stores, always scoped to the calling teacher's own assignments.
package analytics

import (
	"math"
	"sort"

	"github.com/rohit95037-cmyk/backend-repo/core/assignment"
	"github.com/rohit95037-cmyk/backend-repo/core/policy"
	"github.com/rohit95037-cmyk/backend-repo/core/submission"
	"github.com/rohit95037-cmyk/backend-repo/core/user"
)

const recentLimit = 5

type (
	StatusCounts struct {
		Total     int `json:"total"`
		Draft     int `json:"draft"`
		Published int `json:"published"`
		Completed int `json:"completed"`
	}

	AssignmentStats struct {
		AssignmentID    int               `json:"assignment_id"`
		Title           string            `json:"title"`
		Status          assignment.Status `json:"status"`
		SubmissionCount int               `json:"submission_count"`
		ReviewedCount   int               `json:"reviewed_count"`
		PendingCount    int               `json:"pending_count"`
		SubmissionRate  float64           `json:"submission_rate"`
	}

	Overview struct {
		StatusCounts      StatusCounts            `json:"status_counts"`
		AssignmentStats   []AssignmentStats       `json:"assignment_stats"`
		RecentAssignments []assignment.Assignment `json:"recent_assignments"`
		RecentSubmissions []submission.Submission `json:"recent_submissions"`
	}

	ServiceInterface interface {
		TeacherOverview(caller user.Identity) (Overview, error)
	}

	service struct {
		assignmentRepo assignment.Repository
		submissionRepo submission.Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(assignmentRepo assignment.Repository, submissionRepo submission.Repository) *service {
	return &service{assignmentRepo: assignmentRepo, submissionRepo: submissionRepo}
}

// TeacherOverview aggregates the caller's assignments and their submissions.
func (svc *service) TeacherOverview(caller user.Identity) (Overview, error) {
	if !policy.CanViewAnalytics(caller) {
		return Overview{}, policy.ErrDenied
	}

	allAssignments, err := svc.assignmentRepo.QueryAllAssignments()
	if err != nil {
		return Overview{}, err
	}
	owned := make([]assignment.Assignment, 0, len(allAssignments))
	ownedIDs := make(map[int]bool, len(allAssignments))
	for _, a := range allAssignments {
		if a.TeacherID == caller.ID {
			owned = append(owned, a)
			ownedIDs[a.ID] = true
		}
	}

	allSubmissions, err := svc.submissionRepo.QueryAllSubmissions()
	if err != nil {
		return Overview{}, err
	}
	ownedSubs := make([]submission.Submission, 0, len(allSubmissions))
	for _, s := range allSubmissions {
		if ownedIDs[s.AssignmentID] {
			ownedSubs = append(ownedSubs, s)
		}
	}

	ov := Overview{
		StatusCounts:      countByStatus(owned),
		AssignmentStats:   perAssignmentStats(owned, ownedSubs),
		RecentAssignments: recentAssignments(owned),
		RecentSubmissions: recentSubmissions(ownedSubs),
	}
	return ov, nil
}

func countByStatus(owned []assignment.Assignment) StatusCounts {
	counts := StatusCounts{Total: len(owned)}
	for _, a := range owned {
		switch a.Status {
		case assignment.StatusDraft:
			counts.Draft++
		case assignment.StatusPublished:
			counts.Published++
		case assignment.StatusCompleted:
			counts.Completed++
		}
	}
	return counts
}

func perAssignmentStats(owned []assignment.Assignment, subs []submission.Submission) []AssignmentStats {
	stats := make([]AssignmentStats, 0, len(owned))
	for _, a := range owned {
		st := AssignmentStats{
			AssignmentID: a.ID,
			Title:        a.Title,
			Status:       a.Status,
		}
		for _, s := range subs {
			if s.AssignmentID != a.ID {
				continue
			}
			st.SubmissionCount++
			if s.IsReviewed {
				st.ReviewedCount++
			} else {
				st.PendingCount++
			}
		}
		// Rate is submissions over the teacher's total assignment count,
		// kept as-is from the source system; see DESIGN.md.
		st.SubmissionRate = round1(float64(st.SubmissionCount) / float64(len(owned)))
		stats = append(stats, st)
	}
	return stats
}

func recentAssignments(owned []assignment.Assignment) []assignment.Assignment {
	recent := make([]assignment.Assignment, len(owned))
	copy(recent, owned)
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].CreatedAt.Equal(recent[j].CreatedAt.Time) {
			return recent[i].CreatedAt.After(recent[j].CreatedAt.Time)
		}
		return recent[i].ID > recent[j].ID // creation dates have day granularity
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return recent
}

func recentSubmissions(subs []submission.Submission) []submission.Submission {
	recent := make([]submission.Submission, len(subs))
	copy(recent, subs)
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].SubmittedAt.Equal(recent[j].SubmittedAt) {
			return recent[i].SubmittedAt.After(recent[j].SubmittedAt)
		}
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return recent
}

func round1(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Round(f*10) / 10
}
