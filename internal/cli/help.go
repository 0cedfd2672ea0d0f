package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomarkup/internal/ui/pretty"
	"github.com/yaklabco/gomarkup/pkg/markup"
)

// annotationProviders marks commands whose help lists the built-in tag providers.
const annotationProviders = "gomarkup/providers"

// helpStyles maps help template roles onto the shared output palette so that
// help text and command output use the same colors.
type helpStyles struct {
	command     lipgloss.Style
	heading     lipgloss.Style
	subcommand  lipgloss.Style
	flag        lipgloss.Style
	description lipgloss.Style
	dim         lipgloss.Style
	provider    lipgloss.Style
}

func newHelpStyles(s *pretty.Styles) helpStyles {
	return helpStyles{
		command:     s.Title,
		heading:     s.TableHeader,
		subcommand:  s.Label,
		flag:        s.AttrName,
		description: s.Content,
		dim:         s.Dim,
		provider:    s.TagName,
	}
}

// helpFormatter renders cobra help and usage with styling.
type helpFormatter struct {
	styles    helpStyles
	markup    *pretty.Styles
	providers []providerLine
}

type providerLine struct {
	id, languages, detail string
}

func newHelpFormatter(colorMode string, writer io.Writer) *helpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &helpFormatter{
		styles:    newHelpStyles(styles),
		markup:    styles,
		providers: builtinProviderLines(),
	}
}

func builtinProviderLines() []providerLine {
	infos := providerInfo()
	lines := make([]providerLine, 0, len(infos))
	for _, info := range infos {
		languages := "all languages"
		if len(info.Languages) > 0 {
			languages = strings.Join(info.Languages, ", ")
		}
		detail := fmt.Sprintf("%d tags. %s", info.Tags, info.Description)
		if len(info.Sample) > 0 {
			detail = fmt.Sprintf("%d tags, e.g. %s. %s", info.Tags, strings.Join(info.Sample, ", "), info.Description)
		}
		lines = append(lines, providerLine{id: info.ID, languages: languages, detail: detail})
	}
	return lines
}

func (h *helpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":     h.styles.command.Render,
		"styleHeading":     h.styles.heading.Render,
		"styleSubcommand":  h.styles.subcommand.Render,
		"styleDescription": h.styles.description.Render,
		"styleDim":         h.styles.dim.Render,
		"styleFlagsUsage":  h.styleFlagsUsage,
		"highlightMarkup":  h.highlightMarkup,
		"showProviders":    showProviders,
		"providerUsage":    h.providerUsage,
		"rpad":             rpad,
		"join":             strings.Join,
		"trimRight":        trimTrailingWhitespaces,
	}
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if showProviders .}}

{{ styleHeading "Tag Providers:" }}
{{ providerUsage }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimRight | highlightMarkup }}

{{end}}` + usageTemplate

func showProviders(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[annotationProviders]
	return ok
}

func (h *helpFormatter) providerUsage() string {
	width := 0
	for _, p := range h.providers {
		width = max(width, len(p.id))
	}
	var sb strings.Builder
	for i, p := range h.providers {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("  ")
		sb.WriteString(h.styles.provider.Render(rpad(p.id, width)))
		sb.WriteString("  ")
		sb.WriteString(h.styles.dim.Render("[" + p.languages + "]"))
		sb.WriteString(" ")
		sb.WriteString(h.styles.description.Render(p.detail))
	}
	return sb.String()
}

// highlightMarkup colors markup fragments embedded in help prose, such as
// the quoted documents in examples.
func (h *helpFormatter) highlightMarkup(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	return h.markup.HighlightSource(text, markup.Tokenize(text))
}

// styleFlagsUsage styles pflag's FlagUsages output line by line.
func (h *helpFormatter) styleFlagsUsage(flags any) string {
	usages, ok := flags.(interface{ FlagUsages() string })
	if !ok {
		return ""
	}
	text := strings.TrimSuffix(usages.FlagUsages(), "\n")
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles one "  -f, --flag type   description" line.
func (h *helpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	flagPart, desc, ok := splitFlagLine(trimmed)
	if !ok {
		return line
	}

	fields := strings.Fields(flagPart)
	for i, field := range fields {
		if !strings.HasPrefix(field, "-") {
			// Value type such as "string" or "int".
			fields[i] = h.styles.dim.Render(field)
			continue
		}
		name, comma := strings.CutSuffix(field, ",")
		fields[i] = h.styles.flag.Render(name)
		if comma {
			fields[i] += ","
		}
	}

	return indent + strings.Join(fields, " ") + "   " + h.styles.description.Render(desc)
}

// splitFlagLine splits at the first run of two or more spaces.
func splitFlagLine(line string) (flagPart, desc string, ok bool) {
	idx := strings.Index(line, "  ")
	if idx < 0 {
		return "", "", false
	}
	desc = strings.TrimLeft(line[idx:], " ")
	if desc == "" {
		return "", "", false
	}
	return line[:idx], desc, true
}

func (h *helpFormatter) apply(cmd *cobra.Command) {
	funcs := h.funcs()
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStdout(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
