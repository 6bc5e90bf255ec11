package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Desiders/tg-old-chats-manager/internal/analyze"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// writeVerdicts renders verdicts to w in the given format. Text output is
// styled only when w is a terminal.
func writeVerdicts(w io.Writer, format string, verdicts []analyze.Verdict) error {
	if verdicts == nil {
		verdicts = []analyze.Verdict{}
	}

	switch format {
	case outputJSON:
		data, err := json.MarshalIndent(verdicts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling verdicts: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		data, err := yaml.Marshal(verdicts)
		if err != nil {
			return fmt.Errorf("marshaling verdicts: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return writeText(w, verdicts)
	}
}

func writeText(w io.Writer, verdicts []analyze.Verdict) error {
	r := lipgloss.NewRenderer(w)
	labelStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	linkStyle := r.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	evidenceStyle := r.NewStyle().Foreground(lipgloss.Color("243"))

	for _, v := range verdicts {
		header := v.StyledHeader(labelStyle.Render, linkStyle.Render)
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		if evidence := v.Evidence(); evidence != "" {
			if _, err := fmt.Fprintln(w, evidenceStyle.Render(evidence)); err != nil {
				return err
			}
		}
	}
	return nil
}
