package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestParseEstimateLineStrategy_IsStrict(t *testing.T) {
	strategy, ok := ParseEstimateLineStrategy(" average ")
	if !ok || strategy != StrategyAverage {
		t.Fatalf("expected AVERAGE, got %q ok=%v", strategy, ok)
	}
	if _, ok := ParseEstimateLineStrategy("MEDIAN"); ok {
		t.Fatalf("expected unknown strategy to be rejected")
	}
	if _, ok := ParseEstimateLineStrategy(""); ok {
		t.Fatalf("expected blank strategy to be rejected")
	}
}

func TestAddGroup_WiresBothDirectionsAndDedupes(t *testing.T) {
	estimate := &Estimate{ID: uuid.New()}
	group := &EstimateGroup{ID: uuid.New(), Name: "Foundation"}

	estimate.AddGroup(group)
	estimate.AddGroup(group)

	if len(estimate.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(estimate.Groups))
	}
	if group.EstimateID != estimate.ID || group.Estimate != estimate {
		t.Fatalf("group not linked back to estimate")
	}
}

func TestRemoveGroup_ClearsBackReference(t *testing.T) {
	estimate := &Estimate{ID: uuid.New()}
	group := &EstimateGroup{ID: uuid.New(), Name: "Framing"}
	estimate.AddGroup(group)

	estimate.RemoveGroup(group)

	if len(estimate.Groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(estimate.Groups))
	}
	if group.EstimateID != uuid.Nil || group.Estimate != nil {
		t.Fatalf("detached group still references the estimate")
	}
}

func TestAddLine_CopiesEstimateReferenceFromGroup(t *testing.T) {
	estimate := &Estimate{ID: uuid.New()}
	group := &EstimateGroup{ID: uuid.New(), Name: "Roofing"}
	estimate.AddGroup(group)

	line := &EstimateLine{ID: uuid.New(), WorkItemID: uuid.New()}
	group.AddLine(line)
	group.AddLine(line)

	if len(group.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(group.Lines))
	}
	if line.GroupID != group.ID {
		t.Fatalf("line not linked to group")
	}
	if line.EstimateID != estimate.ID {
		t.Fatalf("line estimate reference %s does not match group's %s", line.EstimateID, group.EstimateID)
	}
}

func TestRemoveLine_ClearsDenormalizedPair(t *testing.T) {
	estimate := &Estimate{ID: uuid.New()}
	group := &EstimateGroup{ID: uuid.New(), Name: "Plumbing"}
	estimate.AddGroup(group)
	line := &EstimateLine{ID: uuid.New()}
	group.AddLine(line)

	group.RemoveLine(line)

	if len(group.Lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(group.Lines))
	}
	if line.GroupID != uuid.Nil || line.EstimateID != uuid.Nil || line.Group != nil {
		t.Fatalf("detached line still carries references")
	}
}

func TestComputeLineCost_AveragesAndScales(t *testing.T) {
	prices := []decimal.Decimal{
		decimal.NewFromFloat(10.00),
		decimal.NewFromFloat(14.00),
	}
	// mean 12.00 x qty 10 x line 1.0 x overall 1.5 = 180.00
	cost := ComputeLineCost(StrategyAverage, 10, prices, 1.0, 1.5)
	if cost.String() != "180" && cost.String() != "180.00" {
		t.Fatalf("expected 180.00, got %s", cost)
	}
	if !cost.Equal(decimal.NewFromFloat(180.00)) {
		t.Fatalf("expected 180.00, got %s", cost)
	}
}

func TestComputeLineCost_RoundsHalfUpToTwoPlaces(t *testing.T) {
	prices := []decimal.Decimal{
		decimal.NewFromFloat(1.00),
		decimal.NewFromFloat(1.01),
		decimal.NewFromFloat(1.01),
	}
	// mean 1.00666... x 1 x 1 x 1 rounds to 1.01
	cost := ComputeLineCost(StrategyAverage, 1, prices, 1.0, 1.0)
	if !cost.Equal(decimal.NewFromFloat(1.01)) {
		t.Fatalf("expected 1.01, got %s", cost)
	}
}

func TestComputeLineCost_NoQuotesYieldsZero(t *testing.T) {
	cost := ComputeLineCost(StrategyAverage, 25, nil, 2.0, 3.0)
	if !cost.IsZero() {
		t.Fatalf("expected zero cost, got %s", cost)
	}
}
