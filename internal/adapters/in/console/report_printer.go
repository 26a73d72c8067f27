// Package console renders the warehouse reports as plain text.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
)

type (
	GroupedReportHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetPalletsGroupedByExpirationQuery,
		) ([]queries.ExpirationGroup, error)
	}

	TopReportHandler interface {
		Handle(ctx context.Context, query queries.GetTopPalletsByShelfLifeQuery) ([]queries.PalletShelfLife, error)
	}
)

// ReportPrinter writes both reports: pallets grouped by expire date, then the pallets
// with the longest shelf life. Weights are printed in kilograms and volumes in cubic
// metres, with the shortest decimal form that round-trips.
//
// Example output:
//
//	Pallets grouped by expire date (ascending weight within a group):
//	Expires: 2023-12-05
//	  Pallet 11, weight: 31.2 kg, volume: 2.02264 m3
//
//	Top 3 pallets with the longest shelf life (ascending volume):
//	Pallet 5, volume: 3.5028 m3, expires: 2024-04-01
type ReportPrinter struct {
	grouped GroupedReportHandler
	top     TopReportHandler
	topN    int
}

// NewReportPrinter creates a printer that selects topN pallets for the second report.
func NewReportPrinter(grouped GroupedReportHandler, top TopReportHandler, topN int) ReportPrinter {
	return ReportPrinter{grouped: grouped, top: top, topN: topN}
}

// Print runs both queries and writes the reports to out. Nothing is written when
// either query fails.
func (p ReportPrinter) Print(ctx context.Context, out io.Writer) error {
	groups, err := p.grouped.Handle(ctx, queries.NewGetPalletsGroupedByExpirationQuery())
	if err != nil {
		return fmt.Errorf("grouped report: %w", err)
	}

	query, err := queries.NewGetTopPalletsByShelfLifeQuery(p.topN)
	if err != nil {
		return err
	}
	top, err := p.top.Handle(ctx, query)
	if err != nil {
		return fmt.Errorf("shelf life report: %w", err)
	}

	w := bufio.NewWriter(out)
	WriteExpirationGroups(w, groups)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Top %d pallets with the longest shelf life (ascending volume):\n", p.topN)
	WriteTopShelfLife(w, top)
	return w.Flush()
}

// WriteExpirationGroups writes the grouped report: a header line per group followed
// by one indented line per pallet.
func WriteExpirationGroups(w io.Writer, groups []queries.ExpirationGroup) {
	fmt.Fprintln(w, "Pallets grouped by expire date (ascending weight within a group):")
	for _, group := range groups {
		fmt.Fprintf(w, "Expires: %s\n", group.ExpireDate)
		for _, p := range group.Pallets {
			fmt.Fprintf(w, "  Pallet %d, weight: %s kg, volume: %s m3\n",
				p.ID, formatNumber(kernel.Kilograms(p.Weight)), formatNumber(kernel.CubicMeters(p.Volume)))
		}
	}
}

// WriteTopShelfLife writes one line per selected pallet.
func WriteTopShelfLife(w io.Writer, pallets []queries.PalletShelfLife) {
	for _, p := range pallets {
		fmt.Fprintf(w, "Pallet %d, volume: %s m3, expires: %s\n",
			p.ID, formatNumber(kernel.CubicMeters(p.Volume)), p.LatestExpireDate)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
