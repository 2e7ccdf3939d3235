package commands

import (
	"context"
	"fmt"

	"achrip/internal/scrapers/gamercard"
)

// noScores is used by commands that never show the gamerscore.
type noScores struct{}

func (noScores) Score(context.Context, string) int64 {
	return gamercard.Unknown
}

func formatRatio(value, total int) string {
	return fmt.Sprintf("%d / %d", value, total)
}
