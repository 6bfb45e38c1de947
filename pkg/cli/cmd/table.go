package cmd

import (
	"fmt"
	"time"

	"github.com/plexforge/kometa-studio/pkg/cli/format"
	"github.com/plexforge/kometa-studio/pkg/types"
	"github.com/pterm/pterm"
)

// ProfileTable renders tables of stored profiles.
type ProfileTable struct {
	Headers       []string
	ShowSecrets   bool
	tableRenderer *pterm.TablePrinter
}

// NewProfileTable creates a profile table with default configuration.
func NewProfileTable() *ProfileTable {
	table := pterm.DefaultTable.WithHasHeader(true)
	headerStyle := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	table = table.WithHeaderStyle(headerStyle)

	return &ProfileTable{
		tableRenderer: table,
	}
}

// Render renders the profiles, one row each. hasSecrets reports per profile
// whether a sealed secrets record exists.
func (t *ProfileTable) Render(profiles []*types.Profile, hasSecrets map[string]bool) error {
	if len(profiles) == 0 {
		fmt.Println("No profiles found")
		return nil
	}

	if len(t.Headers) == 0 {
		t.Headers = []string{"NAME", "DESCRIPTION", "SECRETS", "UPDATED"}
	}

	rows := [][]string{t.Headers}
	for _, profile := range profiles {
		description := profile.Description
		if len(description) > 40 {
			description = description[:37] + "..."
		}

		secretsCell := format.StatusSymbol(false)
		if hasSecrets[profile.Name] {
			secretsCell = format.StatusSymbol(true)
		}

		rows = append(rows, []string{
			profile.Name,
			description,
			secretsCell,
			formatAge(profile.UpdatedAt),
		})
	}

	return t.tableRenderer.WithData(rows).Render()
}

// formatAge formats a time.Time as a human-readable age string.
func formatAge(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	duration := time.Since(t)
	if duration < time.Minute {
		return "Just now"
	} else if duration < time.Hour {
		return fmt.Sprintf("%dm", int(duration.Minutes()))
	} else if duration < 24*time.Hour {
		return fmt.Sprintf("%dh", int(duration.Hours()))
	} else if duration < 30*24*time.Hour {
		return fmt.Sprintf("%dd", int(duration.Hours()/24))
	} else if duration < 365*24*time.Hour {
		return fmt.Sprintf("%dmo", int(duration.Hours()/24/30))
	}
	return fmt.Sprintf("%dy", int(duration.Hours()/24/365))
}
