// Package view projects normalized market data into what a presentation
// layer draws: a chart series and a set of display metrics.
package view

import (
    "github.com/dustin/go-humanize"
    "github.com/shopspring/decimal"

    "trackit/internal/provider"
)

type Direction string

const (
    Positive Direction = "positive"
    Negative Direction = "negative"
)

// ChartSeries feeds a line chart. Labels and Closes are index-aligned.
type ChartSeries struct {
    Label  string    `json:"label"`
    Labels []string  `json:"labels"`
    Closes []float64 `json:"closes"`
}

// DisplayMetrics holds the snapshot values with their formatted text.
// Available is false when there was no snapshot to project.
type DisplayMetrics struct {
    Available    bool             `json:"available"`
    CurrentPrice decimal.Decimal  `json:"current_price"`
    OpenPrice    decimal.Decimal  `json:"open_price"`
    Delta        decimal.Decimal  `json:"delta"`
    Direction    Direction        `json:"direction,omitempty"`
    Volume       decimal.Decimal  `json:"volume"`
    MarketCap    *decimal.Decimal `json:"market_cap,omitempty"`

    CurrentPriceText string `json:"current_price_text,omitempty"`
    OpenPriceText    string `json:"open_price_text,omitempty"`
    DeltaText        string `json:"delta_text,omitempty"`
    VolumeText       string `json:"volume_text,omitempty"`
    MarketCapText    string `json:"market_cap_text,omitempty"`
}

// Project builds the chart series from history, in history order, and the
// display metrics from snapshot.
func Project(history []provider.PricePoint, snapshot *provider.Snapshot) (ChartSeries, DisplayMetrics) {
    return Series(history), Metrics(snapshot)
}

func Series(history []provider.PricePoint) ChartSeries {
    s := ChartSeries{
        Labels: make([]string, 0, len(history)),
        Closes: make([]float64, 0, len(history)),
    }
    for _, p := range history {
        s.Labels = append(s.Labels, p.Day())
        s.Closes = append(s.Closes, p.Close.InexactFloat64())
    }
    return s
}

func Metrics(snapshot *provider.Snapshot) DisplayMetrics {
    if snapshot == nil {
        return DisplayMetrics{}
    }
    delta := snapshot.CurrentPrice.Sub(snapshot.OpenPrice)
    m := DisplayMetrics{
        Available:        true,
        CurrentPrice:     snapshot.CurrentPrice,
        OpenPrice:        snapshot.OpenPrice,
        Delta:            delta,
        Direction:        Positive,
        Volume:           snapshot.Volume,
        CurrentPriceText: price(snapshot.CurrentPrice),
        OpenPriceText:    price(snapshot.OpenPrice),
        VolumeText:       amount(snapshot.Volume),
    }
    if delta.IsNegative() {
        m.Direction = Negative
        m.DeltaText = "-" + price(delta.Abs())
    } else {
        m.DeltaText = "+" + price(delta)
    }
    if snapshot.MarketCap != nil {
        mc := *snapshot.MarketCap
        m.MarketCap = &mc
        m.MarketCapText = amount(mc)
    }
    return m
}

// price renders two decimals with thousands separators.
func price(d decimal.Decimal) string {
    return humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

// amount renders thousands separators and at most two decimals.
func amount(d decimal.Decimal) string {
    return humanize.CommafWithDigits(d.Round(2).InexactFloat64(), 2)
}
