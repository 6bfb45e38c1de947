package format

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Diagnostic severities
const (
	ErrorType   = "error"
	WarningType = "warning"
)

// Diagnostic colors
var (
	ErrorColor   = color.New(color.FgRed, color.Bold)
	WarningColor = color.New(color.FgYellow, color.Bold)
	SuccessColor = color.New(color.FgGreen, color.Bold)
	FileColor    = color.New(color.FgCyan)
	LineColor    = color.New(color.FgHiGreen)
	CodeColor    = color.New(color.FgWhite)
	ContextColor = color.New(color.FgHiBlack)
	HintColor    = color.New(color.FgYellow, color.Italic)
	HeadingColor = color.New(color.FgHiWhite, color.Bold)
)

// Diagnostic is a single lint finding against a configuration file.
type Diagnostic struct {
	FileName   string `json:"file_name"`
	LineNumber int    `json:"line_number"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Category   string `json:"category"`
	Section    string `json:"section,omitempty"`
	Hint       string `json:"hint,omitempty"`
	Context    string `json:"context,omitempty"`
}

// DiagnosticFormatter collects and prints lint findings for one file.
type DiagnosticFormatter struct {
	FileName      string
	FileData      []byte
	ContextLines  int
	OutputFormat  string
	Diagnostics   []Diagnostic
	StartTime     time.Time
	TerminalWidth int
	ErrorCount    int
	WarningCount  int
}

// categoryMapping maps message patterns to lint categories. Order matters:
// the first matching pattern wins.
var categoryMapping = []struct {
	pattern  string
	category string
}{
	{"not valid yaml", "YAML_SYNTAX"},
	{"enabled must be a bool", "ENABLED_FLAG"},
	{"library", "LIBRARY_SHAPE"},
	{"must be a mapping", "SECTION_SHAPE"},
	{"must be a sequence", "FIELD_SHAPE"},
	{"name is required", "MISSING_FIELD"},
	{"document is required", "MISSING_FIELD"},
	{"credential", "SECRET_IN_CONFIG"},
	{"unknown render mode", "RENDER_MODE"},
}

// yamlSyntaxPatterns are the yaml parser messages that indicate broken
// document structure rather than a semantic problem.
var yamlSyntaxPatterns = []string{
	"mapping values are not allowed in this context",
	"did not find expected key",
	"block sequence entries are not allowed",
	"could not find expected",
	"found character that cannot start any token",
}

// hintTemplates holds the followup advice per category.
var hintTemplates = map[string]string{
	"YAML_SYNTAX":      "Check your YAML indentation. Each level should be indented with 2 spaces.",
	"SECTION_SHAPE":    "Service sections like plex or radarr must be mappings of key: value pairs.",
	"ENABLED_FLAG":     "Use true or false for the enabled flag, without quotes.",
	"FIELD_SHAPE":      "Check the field against the Kometa defaults wiki for its expected shape.",
	"LIBRARY_SHAPE":    "Each entry under libraries must be a mapping named after a Plex library.",
	"MISSING_FIELD":    "Add the missing field to complete the configuration.",
	"SECRET_IN_CONFIG": "Move credentials out of the document; they belong in the profile's secrets record.",
}

// NewDiagnosticFormatter creates a formatter for one configuration file.
func NewDiagnosticFormatter(filename string, data []byte) *DiagnosticFormatter {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width = 80
	}

	return &DiagnosticFormatter{
		FileName:      filename,
		FileData:      data,
		ContextLines:  1,
		OutputFormat:  "text",
		StartTime:     time.Now(),
		TerminalWidth: width,
	}
}

// PrintHeader prints the failure banner once, before the first finding.
func (f *DiagnosticFormatter) PrintHeader() {
	if f.OutputFormat == "json" || len(f.Diagnostics) > 0 {
		return
	}

	fmt.Println()
	divider := strings.Repeat("─", f.TerminalWidth)
	ErrorColor.Println("× VALIDATION FAILED", FileColor.Sprintf(f.FileName))
	fmt.Println(divider)
	fmt.Println()
}

// ExtractLineNumber tries to extract a line number from an error message.
// The yaml parser reports positions as "line N".
func (f *DiagnosticFormatter) ExtractLineNumber(errStr string) int {
	lineRegexes := []*regexp.Regexp{
		regexp.MustCompile(`line (\d+)`),
		regexp.MustCompile(`line: (\d+)`),
	}

	for _, re := range lineRegexes {
		matches := re.FindStringSubmatch(errStr)
		if len(matches) > 1 {
			if num, err := strconv.Atoi(matches[1]); err == nil {
				return num
			}
		}
	}
	return 0
}

// Categorize maps a message to its lint category.
func Categorize(errStr string) string {
	lower := strings.ToLower(errStr)
	for _, entry := range categoryMapping {
		if strings.Contains(lower, entry.pattern) {
			return entry.category
		}
	}
	for _, pattern := range yamlSyntaxPatterns {
		if strings.Contains(errStr, pattern) {
			return "YAML_SYNTAX"
		}
	}
	return "GENERAL_ERROR"
}

// extractLineContext gets the line and its surrounding context.
func (f *DiagnosticFormatter) extractLineContext(lineNum int) (string, string, string) {
	if f.FileData == nil || lineNum <= 0 {
		return "", "", ""
	}

	scanner := bufio.NewScanner(bytes.NewReader(f.FileData))
	var before []string
	var current string
	var after []string
	lineCount := 0

	for scanner.Scan() {
		lineCount++
		if lineCount < lineNum-f.ContextLines {
			continue
		}
		if lineCount == lineNum {
			current = scanner.Text()
		} else if lineCount < lineNum {
			before = append(before, scanner.Text())
		} else if lineCount <= lineNum+f.ContextLines {
			after = append(after, scanner.Text())
		} else {
			break
		}
	}

	return strings.Join(before, "\n"), current, strings.Join(after, "\n")
}

// add records a diagnostic and bumps the severity counters.
func (f *DiagnosticFormatter) add(d Diagnostic) {
	f.Diagnostics = append(f.Diagnostics, d)
	switch d.Severity {
	case ErrorType:
		f.ErrorCount++
	case WarningType:
		f.WarningCount++
	}
}

// PrintError prints an error finding with its source context.
func (f *DiagnosticFormatter) PrintError(errStr string, lineNum int) {
	f.print(Diagnostic{
		FileName:   f.FileName,
		LineNumber: lineNum,
		Message:    errStr,
		Severity:   ErrorType,
		Category:   Categorize(errStr),
		Hint:       hintTemplates[Categorize(errStr)],
	})
}

// PrintSectionError prints an error finding attributed to a section.
func (f *DiagnosticFormatter) PrintSectionError(section, errStr string, lineNum int) {
	f.print(Diagnostic{
		FileName:   f.FileName,
		LineNumber: lineNum,
		Message:    errStr,
		Severity:   ErrorType,
		Category:   Categorize(errStr),
		Section:    section,
		Hint:       hintTemplates[Categorize(errStr)],
	})
}

// PrintWarning prints a warning finding.
func (f *DiagnosticFormatter) PrintWarning(section, msg string) {
	f.print(Diagnostic{
		FileName: f.FileName,
		Message:  msg,
		Severity: WarningType,
		Category: Categorize(msg),
		Section:  section,
		Hint:     hintTemplates[Categorize(msg)],
	})
}

func (f *DiagnosticFormatter) print(d Diagnostic) {
	if f.OutputFormat == "json" {
		before, current, after := f.extractLineContext(d.LineNumber)
		if current != "" {
			var ctx strings.Builder
			if before != "" {
				ctx.WriteString(before + "\n")
			}
			ctx.WriteString(current)
			if after != "" {
				ctx.WriteString("\n" + after)
			}
			d.Context = ctx.String()
		}
		f.add(d)
		return
	}

	indent := "  "
	if d.Section != "" {
		FileColor.Printf("Section '%s':\n", d.Section)
	}

	if d.LineNumber > 0 {
		before, current, after := f.extractLineContext(d.LineNumber)

		LineColor.Printf("► Line %d:\n", d.LineNumber)
		if before != "" {
			lines := strings.Split(before, "\n")
			lineStart := d.LineNumber - len(lines)
			for i, line := range lines {
				ContextColor.Printf("%d │ %s\n", lineStart+i, line)
			}
		}
		CodeColor.Printf("%d │ %s\n", d.LineNumber, current)
		if after != "" {
			for i, line := range strings.Split(after, "\n") {
				ContextColor.Printf("%d │ %s\n", d.LineNumber+i+1, line)
			}
		}
		fmt.Println()
	}

	severityColor := ErrorColor
	label := "Error"
	if d.Severity == WarningType {
		severityColor = WarningColor
		label = "Warning"
	}
	severityColor.Printf("%s%s: %s\n", indent, label, d.Message)
	if d.Hint != "" {
		HintColor.Printf("%sHint: %s\n\n", indent, d.Hint)
	}

	f.add(d)
}

// FormatAsJSON formats all findings as a JSON string.
func (f *DiagnosticFormatter) FormatAsJSON() string {
	result := map[string]interface{}{
		"filename":      f.FileName,
		"diagnostics":   f.Diagnostics,
		"error_count":   f.ErrorCount,
		"warning_count": f.WarningCount,
		"time":          time.Since(f.StartTime).Seconds(),
		"success":       f.ErrorCount == 0,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"Failed to marshal JSON: %s"}`, err.Error())
	}
	return string(jsonBytes)
}

// PrintSummary prints a per-category summary of all findings.
func (f *DiagnosticFormatter) PrintSummary() {
	if f.OutputFormat == "json" || len(f.Diagnostics) == 0 {
		return
	}

	byCategory := make(map[string]int)
	for _, d := range f.Diagnostics {
		byCategory[d.Category]++
	}

	var categories []string
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	fmt.Println()
	HeadingColor.Printf("Findings for %s:\n", f.FileName)
	for _, category := range categories {
		fmt.Printf("  %s: %d\n", category, byCategory[category])
	}
	fmt.Println()
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	SuccessColor.Println(message)
}

// PrintLintSummary prints a summary of the linting run.
func PrintLintSummary(fileCount, errorCount, warningCount int, duration time.Duration) {
	fmt.Println()
	HeadingColor.Println("Lint summary:")
	fmt.Printf("  Files:     %d\n", fileCount)
	fmt.Printf("  Errors:    %d\n", errorCount)
	if warningCount > 0 {
		WarningColor.Printf("  Warnings:  %d\n", warningCount)
	}
	fmt.Printf("  Time:      %.2fs\n", duration.Seconds())
	fmt.Println()

	if errorCount == 0 {
		SuccessColor.Println("✓ All files passed validation!")
	} else {
		ErrorColor.Printf("✗ Found %d validation errors\n", errorCount)
	}
}
