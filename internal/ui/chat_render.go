package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/scholar/internal/conversation"
)

// Compiled regex patterns for inline markdown
var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// hyperlink wraps text in an OSC 8 hyperlink so terminals that support it
// make the text clickable.
func hyperlink(text, url string) string {
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

// renderInlineMarkdown applies bold, inline code and link formatting.
func renderInlineMarkdown(line string) string {
	// Protect code spans from the other passes
	var codeSpans []string
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		codeSpans = append(codeSpans, InlineCodeStyle.Render(code))
		return fmt.Sprintf("\x00CODE%d\x00", len(codeSpans)-1)
	})

	// Links go out before bold: the bold escape sequences contain '['
	var links []string
	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		links = append(links, hyperlink(ReferenceURLStyle.Render(parts[1]), parts[2]))
		return fmt.Sprintf("\x00LINK%d\x00", len(links)-1)
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		return lipgloss.NewStyle().Bold(true).Render(boldPattern.FindStringSubmatch(match)[1])
	})

	for i, rendered := range links {
		line = strings.Replace(line, fmt.Sprintf("\x00LINK%d\x00", i), rendered, 1)
	}
	for i, rendered := range codeSpans {
		line = strings.Replace(line, fmt.Sprintf("\x00CODE%d\x00", i), rendered, 1)
	}
	return line
}

// renderMarkdown renders message text: fenced code blocks are highlighted,
// prose is wrapped to width with inline formatting applied.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var out []string
	var code strings.Builder
	inCode := false
	lang := ""

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCode {
				inCode = true
				lang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				code.Reset()
			} else {
				inCode = false
				out = append(out, CodeBlockStyle.Render(highlightCode(code.String(), lang)))
			}
			continue
		}
		if inCode {
			if code.Len() > 0 {
				code.WriteString("\n")
			}
			code.WriteString(line)
			continue
		}
		out = append(out, ansi.Wrap(renderInlineMarkdown(line), width, " -"))
	}

	// Unterminated fence: show what we have
	if inCode {
		out = append(out, CodeBlockStyle.Render(highlightCode(code.String(), lang)))
	}

	return strings.Join(out, "\n")
}

// bubbleWidth is the widest a message bubble may be for a chat of width.
func bubbleWidth(width int) int {
	return max(20, width*BubbleWidthPercent/100)
}

// renderMessage draws one message as a bubble: user messages on the
// right, assistant messages on the left with their reference cards below.
func renderMessage(msg conversation.Message, width int) string {
	maxBubble := bubbleWidth(width)
	// border plus padding on each side
	textWidth := maxBubble - BorderSize - InputPaddingWidth

	if msg.Role == conversation.RoleUser {
		body := renderMarkdown(strings.TrimSpace(msg.Content), textWidth)
		bubble := ChatUserBubble.Render(body)
		label := ChatUserStyle.Render("You")
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	body := renderMarkdown(strings.TrimSpace(msg.Content), textWidth)
	parts := []string{ChatAssistantStyle.Render("Assistant"), ChatAssistantBubble.Render(body)}
	if len(msg.References) > 0 {
		parts = append(parts, renderReferences(msg.References, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderReferences lays reference cards out in a grid under a heading.
func renderReferences(refs []conversation.Reference, width int) string {
	cols := GetViewContext().ReferenceColumns(width)

	var rows []string
	for start := 0; start < len(refs); start += cols {
		var cards []string
		for i := start; i < min(start+cols, len(refs)); i++ {
			if i > start {
				cards = append(cards, strings.Repeat(" ", ReferenceCardGap))
			}
			cards = append(cards, renderReferenceCard(refs[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	heading := ReferenceHeaderStyle.Render(fmt.Sprintf("References (%d)", len(refs)))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{heading}, rows...)...)
}

// renderReferenceCard shows title, author and year, and the link.
func renderReferenceCard(ref conversation.Reference) string {
	inner := ReferenceCardWidth - BorderSize - InputPaddingWidth

	title := ReferenceTitleStyle.Width(inner).Render(ref.Title)

	var meta []string
	if ref.Author != "" {
		meta = append(meta, ref.Author)
	}
	if ref.Year != 0 {
		meta = append(meta, strconv.Itoa(ref.Year))
	}
	lines := []string{title}
	if len(meta) > 0 {
		lines = append(lines, ReferenceMetaStyle.Render(ansi.Truncate(strings.Join(meta, ", "), inner, "…")))
	}
	if ref.URL != "" {
		lines = append(lines, hyperlink(ReferenceURLStyle.Render(ansi.Truncate(ref.URL, inner, "…")), ref.URL))
	}

	return ReferenceCardStyle.Render(strings.Join(lines, "\n"))
}
