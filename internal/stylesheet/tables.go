package stylesheet

import (
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
)

// Lookup tables from enum values to literal CSS values. Keys missing from a
// table resolve to the table's normal entry.
var (
	LineHeights = map[prefs.LineHeight]string{ //nolint:gochecknoglobals
		prefs.LineHeightTight:   "1.25",
		prefs.LineHeightNormal:  "1.6",
		prefs.LineHeightRelaxed: "2",
	}

	LetterSpacings = map[prefs.LetterSpacing]string{ //nolint:gochecknoglobals
		prefs.LetterSpacingTight:     "-0.05em",
		prefs.LetterSpacingNormal:    "0",
		prefs.LetterSpacingWide:      "0.1em",
		prefs.LetterSpacingExtraWide: "0.2em",
	}

	// ContrastFilters holds filter expressions; normal has none.
	ContrastFilters = map[prefs.Contrast]string{ //nolint:gochecknoglobals
		prefs.ContrastLow:      "contrast(0.6) brightness(1.2)",
		prefs.ContrastNormal:   "",
		prefs.ContrastHigh:     "contrast(1.5) brightness(1.15)",
		prefs.ContrastInverted: "invert(1) hue-rotate(180deg)",
	}

	// CursorSizes is reserved: sizes are only honoured through a custom cursor asset.
	CursorSizes = map[prefs.CursorSize]string{ //nolint:gochecknoglobals
		prefs.CursorSizeSmall:  "10px",
		prefs.CursorSizeNormal: "16px",
		prefs.CursorSizeLarge:  "24px",
	}
)

func lookup[K ~string](table map[K]string, key, normal K) string {
	if v, ok := table[key]; ok {
		return v
	}

	return table[normal]
}
