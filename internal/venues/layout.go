package venues

import (
	"fmt"
	"strconv"
)

// SeatID is the stable row-column identifier used across events
func SeatID(row string, number int) string {
	return fmt.Sprintf("%s-%d", row, number)
}

// Layout expands a theater into its ordered seat definitions
func Layout(t *Theater) ([]SeatDefinition, error) {
	if t.SeatsPerRow <= 0 {
		return nil, fmt.Errorf("%w: seats per row must be positive", ErrInvalidLayout)
	}

	rows, err := GenerateRowLabels(t.RowStart, t.RowEnd)
	if err != nil {
		return nil, err
	}

	premium := t.premiumRowSet()
	multiplier := t.PremiumMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}

	defs := make([]SeatDefinition, 0, len(rows)*t.SeatsPerRow)
	for _, row := range rows {
		tier, factor := TierStandard, 1.0
		if premium[row] {
			tier, factor = TierPremium, multiplier
		}
		for n := 1; n <= t.SeatsPerRow; n++ {
			defs = append(defs, SeatDefinition{
				SeatID:          SeatID(row, n),
				RowLabel:        row,
				SeatNumber:      n,
				Tier:            tier,
				PriceMultiplier: factor,
			})
		}
	}
	return defs, nil
}

// GenerateRowLabels returns the rows between start and end inclusive. Rows are
// either numeric (1..N) or single letters (A..Z).
func GenerateRowLabels(start, end string) ([]string, error) {
	if start == "" || end == "" {
		return nil, fmt.Errorf("%w: row start and end must be specified", ErrInvalidLayout)
	}

	var rows []string

	if startNum, err := strconv.Atoi(start); err == nil {
		endNum, err := strconv.Atoi(end)
		if err != nil {
			return nil, fmt.Errorf("%w: start row is numeric but end row is not", ErrInvalidLayout)
		}
		if startNum > endNum {
			return nil, fmt.Errorf("%w: start row (%d) cannot be greater than end row (%d)", ErrInvalidLayout, startNum, endNum)
		}
		for i := startNum; i <= endNum; i++ {
			rows = append(rows, strconv.Itoa(i))
		}
		return rows, nil
	}

	if len(start) != 1 || len(end) != 1 {
		return nil, fmt.Errorf("%w: alphabetic rows must be single characters", ErrInvalidLayout)
	}
	if start[0] > end[0] {
		return nil, fmt.Errorf("%w: start row (%s) cannot be greater than end row (%s)", ErrInvalidLayout, start, end)
	}
	for c := start[0]; c <= end[0]; c++ {
		rows = append(rows, string(c))
	}
	return rows, nil
}
