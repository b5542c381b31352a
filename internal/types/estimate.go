package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EstimateLineStrategy selects how a line's computed cost is derived from
// the quotes available for its work item.
type EstimateLineStrategy string

const (
	StrategyAverage EstimateLineStrategy = "AVERAGE"
)

// ParseEstimateLineStrategy is strict: there is no default strategy.
func ParseEstimateLineStrategy(s string) (EstimateLineStrategy, bool) {
	strategy := EstimateLineStrategy(strings.ToUpper(strings.TrimSpace(s)))
	if strategy == StrategyAverage {
		return strategy, true
	}
	return "", false
}

// Estimate is the aggregate root: a costed proposal for a Project composed
// of groups of priced lines. Groups and lines are saved and deleted through
// the estimate service in the same transaction as their parent; removing a
// group or line from the aggregate deletes it from storage.
type Estimate struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID         uuid.UUID        `gorm:"type:uuid;column:project_id;not null;index" json:"project_id"`
	Project           *Project         `gorm:"foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	OverallMultiplier float64          `gorm:"column:overall_multiplier;not null;default:1.0" json:"overall_multiplier"`
	Groups            []*EstimateGroup `gorm:"foreignKey:EstimateID;references:ID" json:"groups,omitempty"`
	CreatedAt         time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null" json:"updated_at"`
}

func (Estimate) TableName() string { return "estimate" }

func (e *Estimate) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type EstimateGroup struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Description string          `gorm:"column:description" json:"description,omitempty"`
	EstimateID  uuid.UUID       `gorm:"type:uuid;column:estimate_id;not null;index" json:"estimate_id"`
	Estimate    *Estimate       `gorm:"foreignKey:EstimateID;references:ID" json:"-"`
	Lines       []*EstimateLine `gorm:"foreignKey:GroupID;references:ID" json:"lines,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (EstimateGroup) TableName() string { return "estimate_group" }

func (g *EstimateGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (g *EstimateGroup) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrBlankField("estimate group", "name")
	}
	return nil
}

// EstimateLine carries a denormalized pair of references: its group and its
// estimate. The two must always agree — line.EstimateID is copied from the
// group when the line is attached, never set independently.
type EstimateLine struct {
	ID           uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	EstimateID   uuid.UUID            `gorm:"type:uuid;column:estimate_id;not null;index" json:"estimate_id"`
	GroupID      uuid.UUID            `gorm:"type:uuid;column:group_id;not null;index" json:"group_id"`
	Group        *EstimateGroup       `gorm:"foreignKey:GroupID;references:ID" json:"-"`
	WorkItemID   uuid.UUID            `gorm:"type:uuid;column:work_item_id;not null;index" json:"work_item_id"`
	WorkItem     *WorkItem            `gorm:"foreignKey:WorkItemID;references:ID" json:"work_item,omitempty"`
	Quantity     float64              `gorm:"column:quantity;not null" json:"quantity"`
	Strategy     EstimateLineStrategy `gorm:"column:strategy;type:varchar(32);not null" json:"strategy"`
	Multiplier   float64              `gorm:"column:multiplier;not null;default:1.0" json:"multiplier"`
	ComputedCost decimal.Decimal      `gorm:"column:computed_cost;type:decimal(17,2);not null" json:"computed_cost"`
	CreatedAt    time.Time            `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"not null" json:"updated_at"`
}

func (EstimateLine) TableName() string { return "estimate_line" }

func (l *EstimateLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// AddGroup attaches g to the estimate, updating both directions together.
// This is the only place the group's estimate reference is written.
func (e *Estimate) AddGroup(g *EstimateGroup) {
	if g == nil {
		return
	}
	g.EstimateID = e.ID
	g.Estimate = e
	for _, existing := range e.Groups {
		if existing == g || (g.ID != uuid.Nil && existing.ID == g.ID) {
			return
		}
	}
	e.Groups = append(e.Groups, g)
}

// RemoveGroup detaches g from the estimate. The caller is responsible for
// deleting the detached group (and its lines) from storage.
func (e *Estimate) RemoveGroup(g *EstimateGroup) {
	if g == nil {
		return
	}
	for i, existing := range e.Groups {
		if existing == g || (g.ID != uuid.Nil && existing.ID == g.ID) {
			e.Groups = append(e.Groups[:i], e.Groups[i+1:]...)
			break
		}
	}
	g.EstimateID = uuid.Nil
	g.Estimate = nil
}

// AddLine attaches l to the group, copying the group's estimate reference
// onto the line so the denormalized pair stays consistent.
func (g *EstimateGroup) AddLine(l *EstimateLine) {
	if l == nil {
		return
	}
	l.GroupID = g.ID
	l.Group = g
	l.EstimateID = g.EstimateID
	for _, existing := range g.Lines {
		if existing == l || (l.ID != uuid.Nil && existing.ID == l.ID) {
			return
		}
	}
	g.Lines = append(g.Lines, l)
}

// RemoveLine detaches l from the group. The caller deletes it from storage.
func (g *EstimateGroup) RemoveLine(l *EstimateLine) {
	if l == nil {
		return
	}
	for i, existing := range g.Lines {
		if existing == l || (l.ID != uuid.Nil && existing.ID == l.ID) {
			g.Lines = append(g.Lines[:i], g.Lines[i+1:]...)
			break
		}
	}
	l.GroupID = uuid.Nil
	l.Group = nil
	l.EstimateID = uuid.Nil
}

// ComputeLineCost derives a line's cost from the unit prices of the
// applicable quotes. AVERAGE takes the mean unit price, scales it by the
// quantity, the line multiplier and the estimate's overall multiplier, and
// rounds to 2 decimal places. With no usable quotes the cost is zero. The
// result is deterministic and reproducible from the stored fields.
func ComputeLineCost(strategy EstimateLineStrategy, quantity float64, unitPrices []decimal.Decimal, lineMultiplier, overallMultiplier float64) decimal.Decimal {
	if len(unitPrices) == 0 {
		return decimal.Zero.Round(2)
	}
	var unitCost decimal.Decimal
	switch strategy {
	case StrategyAverage:
		unitCost = decimal.Avg(unitPrices[0], unitPrices[1:]...)
	default:
		return decimal.Zero.Round(2)
	}
	return unitCost.
		Mul(decimal.NewFromFloat(quantity)).
		Mul(decimal.NewFromFloat(lineMultiplier)).
		Mul(decimal.NewFromFloat(overallMultiplier)).
		Round(2)
}
