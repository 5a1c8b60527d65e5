package services

import (
	"time"

	"github.com/hous-app/hous-server/internal/models"
)

type ResolutionSource string

const (
	SourceFixed     ResolutionSource = "FIXED"
	SourceTemporary ResolutionSource = "TEMPORARY"
)

// Resolution is the outcome of resolving a rule's responsible members for one
// calendar day.
type Resolution struct {
	UserIDs []uint
	Source  ResolutionSource
}

func (r Resolution) Contains(userID uint) bool {
	for _, id := range r.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ResolveToday determines who is responsible for a rule today. A temporary
// override set today is authoritative even when its member list is empty:
// an empty override means "nobody is responsible today". On any other day
// the fixed weekly roster applies, filtered to members whose day set
// contains today's weekday and whose slot is assigned to someone.
func ResolveToday(rule models.Rule, today Day, location *time.Location) Resolution {
	if rule.TmpUpdatedAt != nil && today.SameAs(*rule.TmpUpdatedAt, location) {
		return Resolution{
			UserIDs: dedupeUserIDs(rule.TmpMemberIDs),
			Source:  SourceTemporary,
		}
	}
	return Resolution{
		UserIDs: fixedResponsibles(rule, today.Weekday()),
		Source:  SourceFixed,
	}
}

// fixedResponsibles returns the roster members assigned to the given weekday,
// in roster order, skipping unassigned slots.
func fixedResponsibles(rule models.Rule, weekday int) []uint {
	responsible := make([]uint, 0, len(rule.Members))
	for _, member := range rule.Members {
		if member.UserID == nil {
			continue
		}
		for _, day := range member.Days {
			if day == weekday {
				responsible = append(responsible, *member.UserID)
				break
			}
		}
	}
	return dedupeUserIDs(responsible)
}

// OverrideDiffersFromRoster reports whether a TEMPORARY resolution produced a
// different member set than the fixed roster would have for the same day. It
// signals "today's assignment was manually overridden" on room views.
func OverrideDiffersFromRoster(rule models.Rule, resolution Resolution, today Day) bool {
	if resolution.Source != SourceTemporary {
		return false
	}
	return !sameUserIDSet(resolution.UserIDs, fixedResponsibles(rule, today.Weekday()))
}

func dedupeUserIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	deduped := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	return deduped
}

func sameUserIDSet(left []uint, right []uint) bool {
	if len(left) != len(right) {
		return false
	}
	members := make(map[uint]struct{}, len(left))
	for _, id := range left {
		members[id] = struct{}{}
	}
	for _, id := range right {
		if _, exists := members[id]; !exists {
			return false
		}
	}
	return true
}
