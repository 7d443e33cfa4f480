// Package export builds downloadable XLSX reports from derived analytics.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/convopulse/convopulse/internal/analytics"
	"github.com/convopulse/convopulse/internal/domain"
)

const (
	segmentSheet      = "Segment Performance"
	satisfactionSheet = "Satisfaction by Intent"
)

// SegmentReport builds a two-sheet workbook: ranked segment performance and
// the per-intent satisfaction breakdown. The caller owns the returned file
// and must Close it.
func SegmentReport(segments []analytics.SegmentPerformance, byIntent []domain.SatisfactionByIntentRow) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), segmentSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(satisfactionSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	if err := writeSegmentSheet(f, segments); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSatisfactionSheet(f, byIntent); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeSegmentSheet(f *excelize.File, segments []analytics.SegmentPerformance) error {
	header := []interface{}{
		"Segment", "Interactions", "Resolution Rate (%)", "Avg Resolution Time (s)",
		"Satisfied Rate (%)", "Feedback Rate (%)", "Top Handoff Reasons",
	}
	if err := f.SetSheetRow(segmentSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, seg := range segments {
		reasons := make([]string, 0, len(seg.TopHandoffReasons))
		for _, r := range seg.TopHandoffReasons {
			reasons = append(reasons, fmt.Sprintf("%s (%d)", r.Reason, r.Count))
		}
		row := []interface{}{
			seg.SegmentName,
			seg.InteractionsHandled,
			seg.ResolutionRate,
			seg.AvgResolutionTime,
			seg.SatisfiedRatePct,
			seg.FeedbackRatePct,
			strings.Join(reasons, ", "),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(segmentSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(segmentSheet, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(segmentSheet, "B", "G", 22)
}

func writeSatisfactionSheet(f *excelize.File, rows []domain.SatisfactionByIntentRow) error {
	header := []interface{}{
		"Intent", "Feedback Count", "Satisfied", "Unsatisfied", "Satisfaction Rate (%)", "Status",
	}
	if err := f.SetSheetRow(satisfactionSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		row := []interface{}{
			r.Intent,
			r.TotalWithFeedback,
			r.Satisfied,
			r.Unsatisfied,
			r.SatisfactionRatePct,
			r.Status,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(satisfactionSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(satisfactionSheet, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(satisfactionSheet, "B", "F", 20)
}
