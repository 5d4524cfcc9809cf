package selection

// Status is the outcome of considering one candidate in a pass.
type Status int

const (
	// Admitted means the candidate was selected
	Admitted Status = iota
	// SkippedBudget means the line budget was already met
	SkippedBudget
	// SkippedUncommitted means the experience was not admitted to its slot
	SkippedUncommitted
	// SkippedExperienceMax means the experience holds its maximum bullets
	SkippedExperienceMax
	// SkippedGroupMax means the group holds its maximum bullets
	SkippedGroupMax
	// SkippedMinimumMet means the pass's minimum is already satisfied
	SkippedMinimumMet
	// SkippedQuota means the category has no remaining slot quota
	SkippedQuota
)

func (s Status) String() string {
	switch s {
	case Admitted:
		return "admitted"
	case SkippedBudget:
		return "skipped: line budget met"
	case SkippedUncommitted:
		return "skipped: experience not committed"
	case SkippedExperienceMax:
		return "skipped: experience max reached"
	case SkippedGroupMax:
		return "skipped: group max reached"
	case SkippedMinimumMet:
		return "skipped: minimum already met"
	case SkippedQuota:
		return "skipped: no quota left"
	default:
		return "unknown"
	}
}

// Pass identifies one of the ordered selection passes.
type Pass int

const (
	// PassAdmission commits experiences to their category quota
	PassAdmission Pass = iota
	// PassExperienceMin fills experiences up to their minimum
	PassExperienceMin
	// PassGroupMin fills groups up to their minimum
	PassGroupMin
	// PassFill adds bullets until the budget is met
	PassFill
	// PassDependency marks a bullet pulled in by a selected dependant
	PassDependency
)

func (p Pass) String() string {
	switch p {
	case PassAdmission:
		return "admission"
	case PassExperienceMin:
		return "experience-min"
	case PassGroupMin:
		return "group-min"
	case PassFill:
		return "fill"
	case PassDependency:
		return "dependency"
	default:
		return "unknown"
	}
}
