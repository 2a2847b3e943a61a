// Package snippet provides lightweight, regex-based inspection of source
// text: extracting a display snippet around the first structural match
// and inventorying function/class definitions. It is language-agnostic
// in the loose sense that it recognises Python- and JavaScript-style
// definitions; anything else falls back to plain line context.
package snippet

import (
	"regexp"
	"strings"
)

// DefaultContextLines is the number of context lines included on each
// side of the matched line.
const DefaultContextLines = 5

var (
	functionPattern  = regexp.MustCompile(`^\s*(def|function)\s+\w+\s*\(`)
	classPattern     = regexp.MustCompile(`^\s*class\s+\w+`)
	methodPattern    = regexp.MustCompile(`^\s*\w+\s*:\s*function`)
	variablePattern  = regexp.MustCompile(`^\s*(var|let|const)\s+\w+\s*=`)
	decoratorPattern = regexp.MustCompile(`^\s*@\w+`)
	importPattern    = regexp.MustCompile(`^\s*(import|from)\s+\w+`)

	functionName = regexp.MustCompile(`(def|function)\s+(\w+)`)
	className    = regexp.MustCompile(`class\s+(\w+)`)

	indented = regexp.MustCompile(`^\s+`)
)

// structural patterns checked when locating the most relevant line.
var structuralPatterns = []*regexp.Regexp{
	functionPattern,
	classPattern,
	methodPattern,
	variablePattern,
	decoratorPattern,
	importPattern,
}

// Extract returns a snippet of text centred on the first structural
// code construct, with contextLines of context on each side. The range
// is widened to include complete indented blocks. When the text has no
// recognisable structure the snippet starts at the first line.
func Extract(text string, contextLines int) string {
	if contextLines < 0 {
		contextLines = DefaultContextLines
	}

	lines := strings.Split(text, "\n")
	total := len(lines)

	relevant := 0
scan:
	for idx, line := range lines {
		for _, p := range structuralPatterns {
			if !p.MatchString(line) {
				continue
			}
			relevant = idx
			// A decorator introduces the function or class below it.
			if decoratorPattern.MatchString(line) {
				limit := idx + 4
				if limit > total {
					limit = total
				}
				for next := idx + 1; next < limit; next++ {
					if functionPattern.MatchString(lines[next]) || classPattern.MatchString(lines[next]) {
						relevant = next
						break
					}
				}
			}
			break scan
		}
	}

	start := relevant - contextLines
	if start < 0 {
		start = 0
	}
	end := relevant + contextLines + 1
	if end > total {
		end = total
	}

	// Widen to complete code blocks.
	for start > 0 && indented.MatchString(lines[start]) {
		start--
	}
	for end < total && indented.MatchString(lines[end-1]) {
		end++
	}

	return strings.Join(lines[start:end], "\n")
}

// Item is a single discovered definition.
type Item struct {
	// Name is the definition's identifier.
	Name string

	// Line is the 1-based line number of the definition.
	Line int

	// HasDocComment reports whether a docstring follows the definition.
	HasDocComment bool
}

// Analysis inventories the definitions found in one source file.
type Analysis struct {
	Functions []Item
	Classes   []Item
}

// NeedsDocumentation lists the definitions without a docstring.
func (a *Analysis) NeedsDocumentation() []string {
	var out []string
	for _, f := range a.Functions {
		if !f.HasDocComment {
			out = append(out, "Function: "+f.Name)
		}
	}
	for _, c := range a.Classes {
		if !c.HasDocComment {
			out = append(out, "Class: "+c.Name)
		}
	}
	return out
}

// Analyze scans code for function and class definitions and reports
// which of them carry a docstring on the following lines.
func Analyze(code string) *Analysis {
	analysis := &Analysis{}
	lines := strings.Split(code, "\n")

	for idx, line := range lines {
		switch {
		case functionPattern.MatchString(line):
			m := functionName.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			analysis.Functions = append(analysis.Functions, Item{
				Name:          m[2],
				Line:          idx + 1,
				HasDocComment: hasDocstring(lines, idx),
			})

		case classPattern.MatchString(line):
			m := className.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			analysis.Classes = append(analysis.Classes, Item{
				Name:          m[1],
				Line:          idx + 1,
				HasDocComment: hasDocstring(lines, idx),
			})
		}
	}

	return analysis
}

// hasDocstring checks the three lines after a definition for a
// triple-quoted string.
func hasDocstring(lines []string, defIdx int) bool {
	limit := defIdx + 4
	if limit > len(lines) {
		limit = len(lines)
	}
	following := strings.Join(lines[defIdx+1:limit], "\n")
	return strings.Contains(following, `"""`) || strings.Contains(following, "'''")
}

// languageByExt maps file extensions to display language identifiers.
var languageByExt = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".java": "java",
	".cpp":  "cpp",
	".h":    "cpp",
	".cs":   "csharp",
	".rb":   "ruby",
	".go":   "go",
	".ts":   "typescript",
	".tsx":  "typescript",
	".jsx":  "javascript",
}

// Language returns the display language for a file extension,
// defaulting to "text".
func Language(ext string) string {
	if lang, ok := languageByExt[strings.ToLower(ext)]; ok {
		return lang
	}
	return "text"
}
