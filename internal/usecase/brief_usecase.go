package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/fadilmartias/job-intel/internal/dto"
	"github.com/fadilmartias/job-intel/internal/model"
	"github.com/fadilmartias/job-intel/internal/util"
)

// activeStatuses is the status set the brief covers. It does not include the
// tracker's interview-stage statuses; see unmatchedStatuses.
var activeStatuses = []model.ApplicationStatus{
	model.StatusApplied,
	model.StatusInterview,
	model.StatusScreening,
	model.StatusOffer,
}

// Records in these statuses are live but never reach the brief.
var unmatchedStatuses = []model.ApplicationStatus{
	model.StatusPhoneScreen,
	model.StatusTechnicalInterview,
	model.StatusFinalRound,
}

type ApplicationReader interface {
	ListByStatuses(ctx context.Context, userID string, statuses []model.ApplicationStatus) ([]model.ApplicationRecord, error)
	CountByStatuses(ctx context.Context, userID string, statuses []model.ApplicationStatus) (map[model.ApplicationStatus]int, error)
}

type BriefUsecase struct {
	applications ApplicationReader
	now          func() time.Time
}

func NewBriefUsecase(applications ApplicationReader) *BriefUsecase {
	return &BriefUsecase{applications: applications, now: time.Now}
}

func (uc *BriefUsecase) Generate(ctx context.Context, userID string) (dto.TacticalBrief, error) {
	now := uc.now()

	records, err := uc.applications.ListByStatuses(ctx, userID, activeStatuses)
	if err != nil {
		slog.Error("failed to load applications for brief", "user_id", userID, "error", err)
		return dto.TacticalBrief{}, util.Internal("Failed to generate tactical brief.", err)
	}

	uc.warnUnmatched(ctx, userID)

	items := make([]dto.TacticalItem, 0, len(records))
	for i := range records {
		items = append(items, BuildTacticalItem(&records[i], now))
	}
	SortTacticalItems(items)

	return dto.TacticalBrief{
		Date:        now.UTC().Format("2006-01-02"),
		Items:       items,
		TotalActive: len(records),
	}, nil
}

func (uc *BriefUsecase) warnUnmatched(ctx context.Context, userID string) {
	counts, err := uc.applications.CountByStatuses(ctx, userID, unmatchedStatuses)
	if err != nil {
		slog.Warn("could not count interview-stage applications", "user_id", userID, "error", err)
		return
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return
	}
	slog.Warn("interview-stage applications are excluded from the brief",
		"user_id", userID,
		"excluded", total,
		"phone_screen", counts[model.StatusPhoneScreen],
		"technical_interview", counts[model.StatusTechnicalInterview],
		"final_round", counts[model.StatusFinalRound],
	)
}

// DaysSince is the whole number of days between then and now, never negative.
func DaysSince(then, now time.Time) int {
	days := int(now.Sub(then).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// BuildTacticalItem applies the status/age rules, then blends in the stored
// AI urgency when the record has one.
func BuildTacticalItem(record *model.ApplicationRecord, now time.Time) dto.TacticalItem {
	days := DaysSince(record.LastActivity(), now)
	item := dto.TacticalItem{
		ApplicationID:     record.ID,
		Company:           record.Company,
		Role:              record.Role,
		Action:            "monitor status",
		Urgency:           1,
		RiskLevel:         dto.RiskLow,
		DaysSinceActivity: days,
	}

	switch record.Status {
	case model.StatusApplied:
		if days > 30 {
			item.RiskLevel, item.Urgency, item.Action = dto.RiskCritical, 1, "archive as ghosted"
		} else if days > 14 {
			item.RiskLevel, item.Urgency, item.Action = dto.RiskHigh, 2, "consider archiving"
		} else if days > 7 {
			item.RiskLevel, item.Urgency, item.Action = dto.RiskMedium, 3, "send first follow-up"
		}
	case model.StatusInterview, model.StatusScreening:
		item.Urgency = 5
		if days > 3 {
			item.RiskLevel, item.Action = dto.RiskMedium, "send post-interview check-in"
		} else {
			item.Action = "prepare tactical notes"
		}
	case model.StatusOffer:
		item.Urgency, item.Action = 5, "review terms and negotiate"
	}

	if record.LatestAnalysis != nil && record.LatestAnalysis.UrgencyLevel > 0 {
		item.Urgency = MergeUrgency(item.Urgency, record.LatestAnalysis.UrgencyLevel)
	}
	return item
}

// MergeUrgency is ceil((rule+ai)/2) clamped to [1,5].
func MergeUrgency(rule, ai int) int {
	merged := (rule + ai + 1) / 2
	if merged < 1 {
		return 1
	}
	if merged > 5 {
		return 5
	}
	return merged
}

// SortTacticalItems orders by urgency, then by days since activity, both
// descending.
func SortTacticalItems(items []dto.TacticalItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Urgency != items[j].Urgency {
			return items[i].Urgency > items[j].Urgency
		}
		return items[i].DaysSinceActivity > items[j].DaysSinceActivity
	})
}
