package domain

type Priority string

const (
	PriorityLow        Priority = "low"
	PriorityModerate   Priority = "moderate"
	PriorityHigh       Priority = "high"
	PriorityStrategic  Priority = "strategic"
	PriorityInnovation Priority = "innovation"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "moderate": true, "high": true,
	"strategic": true, "innovation": true,
}

// AllPriorities lists priorities in display order.
var AllPriorities = []Priority{
	PriorityLow, PriorityModerate, PriorityHigh, PriorityStrategic, PriorityInnovation,
}

// ParsePriority returns the priority named by s, or PriorityModerate when s
// is empty or not one of the five accepted values. Matching is exact.
func ParsePriority(s string) Priority {
	if ValidPriorities[s] {
		return Priority(s)
	}
	return PriorityModerate
}

type ProjectType string

const (
	ProjectGeneral    ProjectType = "general"
	ProjectSoftware   ProjectType = "software"
	ProjectProduct    ProjectType = "product_development"
	ProjectMarketing  ProjectType = "marketing"
	ProjectBusiness   ProjectType = "business_plan"
	ProjectOperations ProjectType = "operations"
	ProjectResearch   ProjectType = "research"
	ProjectOther      ProjectType = "other"
)

// ValidProjectTypes is the canonical set of accepted project type strings.
var ValidProjectTypes = map[string]bool{
	"general": true, "software": true, "product_development": true,
	"marketing": true, "business_plan": true, "operations": true,
	"research": true, "other": true,
}

type Quadrant string

const (
	QuadrantQuickWins  Quadrant = "quick_wins"
	QuadrantStrategic  Quadrant = "strategic"
	QuadrantReconsider Quadrant = "reconsider"
	QuadrantAvoid      Quadrant = "avoid"
)
