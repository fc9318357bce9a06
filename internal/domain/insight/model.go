package insight

// Slot identifies one insight computation
type Slot string

// Slots in output order
const (
	SlotProductivity      Slot = "productivity"
	SlotTopClient         Slot = "top-client"
	SlotTimeAnalysis      Slot = "time-analysis"
	SlotCashflow          Slot = "cashflow"
	SlotProjectEfficiency Slot = "project-efficiency"
	SlotWorkPatterns      Slot = "work-patterns"
)

// Slots is the fixed generation order. Results are never re-sorted by priority.
var Slots = []Slot{
	SlotProductivity,
	SlotTopClient,
	SlotTimeAnalysis,
	SlotCashflow,
	SlotProjectEfficiency,
	SlotWorkPatterns,
}

// MaxInsights caps a generation
const MaxInsights = 6

// Trend of an insight
type Trend string

// Trends
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Category of an insight
type Category string

// Categories
const (
	CategoryProductivity Category = "productivity"
	CategoryRevenue      Category = "revenue"
	CategoryTime         Category = "time"
	CategoryClients      Category = "clients"
	CategoryProjects     Category = "projects"
)

// Priority of an insight
type Priority string

// Priorities
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Insight is one formatted observation over the user's history
type Insight struct {
	ID          Slot     `json:"id"`
	Title       string   `json:"title"`
	Value       string   `json:"value"`
	Description string   `json:"description"`
	Trend       Trend    `json:"trend"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
}

// Summary is a short narrative over a generation
type Summary struct {
	Text     string    `json:"text"`
	Source   string    `json:"source"` // "ai" or "template"
	Insights []Insight `json:"insights"`
}
