package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shopsense/cmd/shopsense/ui"
	"shopsense/internal/catalog"
	"shopsense/internal/sentiment"
)

func (m Model) View() string {
	if !m.ready {
		return "Starting up..."
	}

	var body string
	switch m.viewMode {
	case ListView:
		body = m.renderList()
	case DetailView:
		body = m.renderDetail()
	case LoginView:
		body = m.renderForm("Sign In", []string{"Username", "Password"})
	case RegisterView:
		body = m.renderForm("Create Account", []string{"Username", "Email", "Password", "Confirm"})
	case AnalyzeView:
		body = m.renderAnalyze()
	case HelpView:
		body = m.renderHelp()
	}

	sections := []string{m.renderHeader(), body, m.renderFooter()}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" ShopSense ")

	var who string
	if user := m.store.CurrentUser(); user != nil {
		who = m.styles.Success.Render("● ") + m.styles.Body.Render(user.Username)
	} else {
		who = m.styles.Muted.Render("not signed in")
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(who) - 2
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + who
}

func (m Model) renderFooter() string {
	var hints string
	switch m.viewMode {
	case ListView:
		hints = "↑/↓ move · enter open · / search · c category · s sentiment · x clear · a analyze · R reload · ? help · q quit"
		if m.store.CurrentUser() == nil {
			hints = "i sign in · u sign up · " + hints
		} else {
			hints = "o sign out · " + hints
		}
	case DetailView:
		hints = "t toggle chart · ←/→ similar · enter open similar · esc back"
	case LoginView, RegisterView:
		hints = "tab next field · enter submit · esc cancel"
	case AnalyzeView:
		hints = "enter analyze · esc back"
	case HelpView:
		hints = "esc back"
	}

	footer := m.styles.Footer.Render(hints)
	if m.notice != "" {
		footer = m.styles.Notice.Render(m.notice) + "\n" + footer
	}
	return footer
}

func (m Model) renderList() string {
	var sb strings.Builder

	// Search and filter bar
	searchLabel := m.styles.Prompt.Render("Search: ")
	sb.WriteString("  " + searchLabel + m.searchInput.View() + "\n")

	category := m.currentCategory()
	bucket := sentimentCycle[m.bucketIdx]
	sb.WriteString("  " + m.styles.Muted.Render(
		fmt.Sprintf("category: %s · sentiment: %s", category, bucket)) + "\n\n")

	if m.loadingProducts {
		sb.WriteString("  " + m.spinner.View() + " Loading products...\n")
		return sb.String()
	}

	visible := m.store.VisibleProducts()
	if len(visible) == 0 {
		if len(m.store.Products()) == 0 {
			sb.WriteString("  " + m.styles.Muted.Render("No products available.") + "\n")
		} else {
			sb.WriteString("  " + m.styles.Muted.Render("No products match your filters.") + "\n")
		}
		return sb.String()
	}

	for i, p := range visible {
		badge := m.styles.Badge(sentiment.Classify(p.SentimentScore))
		row := fmt.Sprintf("%-32s %-14s %8s  %s %s",
			truncate(p.Name, 32),
			truncate(p.Category, 14),
			fmt.Sprintf("$%.2f", p.Price),
			badge,
			m.styles.Muted.Render(fmt.Sprintf("(%d reviews)", p.Counts.Total())),
		)
		if i == m.cursor {
			sb.WriteString(m.styles.SelectedRow.Render("▸ "+row) + "\n")
		} else {
			sb.WriteString("  " + row + "\n")
		}
	}

	sb.WriteString("\n  " + m.styles.Muted.Render(
		fmt.Sprintf("%d of %d products", len(visible), len(m.store.Products()))) + "\n")
	return sb.String()
}

func (m Model) renderDetail() string {
	if m.loadingDetail || m.store.VisibleDetail() == nil {
		return "\n  " + m.spinner.View() + " Loading product...\n"
	}
	return m.viewport.View()
}

// detailContent builds the scrollable detail pane from store state only.
func (m Model) detailContent() string {
	p := m.store.VisibleDetail()
	if p == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(p.Name) + "\n")
	sb.WriteString(m.styles.Price.Render(fmt.Sprintf("$%.2f", p.Price)))
	sb.WriteString("  " + m.styles.Subtitle.Render(p.Category))
	sb.WriteString("  " + m.styles.Badge(sentiment.Classify(p.SentimentScore)) + "\n\n")
	sb.WriteString(m.styles.Body.Render(p.Description) + "\n\n")

	// Chart section
	if m.chartMode == ChartDistribution {
		sb.WriteString(m.styles.Bold.Render("Sentiment Distribution") +
			m.styles.Muted.Render("  (t: heat map)") + "\n")
		sb.WriteString(m.renderDistribution(p.Counts) + "\n")
	} else {
		sb.WriteString(m.styles.Bold.Render("Review Heat Map") +
			m.styles.Muted.Render("  (t: distribution)") + "\n")
		sb.WriteString(m.renderHeatmap(p.Reviews) + "\n")
	}

	sb.WriteString(m.renderKeyAspects(p.KeyAspects))
	sb.WriteString(m.renderHypeVsReality(p.HypeVsReality))
	sb.WriteString(m.renderRecommendations())
	sb.WriteString(m.renderReviews(p.Reviews))

	return sb.String()
}

func (m Model) renderDistribution(counts catalog.SentimentCounts) string {
	slices := sentiment.Distribution(counts.Positive, counts.Neutral, counts.Negative)
	colors := map[string]lipgloss.Color{
		"Positive": ui.Heat5,
		"Neutral":  ui.Heat3,
		"Negative": ui.Heat1,
	}

	var sb strings.Builder
	for _, s := range slices {
		bar := strings.Repeat("█", s.Percentage/2)
		style := lipgloss.NewStyle().Foreground(colors[s.Label])
		sb.WriteString(fmt.Sprintf("  %-9s %s %d%% (%d)\n",
			s.Label, style.Render(bar), s.Percentage, s.Value))
	}
	return sb.String()
}

func (m Model) renderHeatmap(reviews []catalog.Review) string {
	if len(reviews) == 0 {
		return "  " + m.styles.Muted.Render("No reviews yet.") + "\n"
	}

	points := make([]sentiment.ReviewPoint, len(reviews))
	for i, r := range reviews {
		keywords := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			keywords[j] = k.Keyword
		}
		points[i] = sentiment.ReviewPoint{
			Text:      r.Text,
			Sentiment: r.Sentiment,
			Date:      r.Date,
			Keywords:  keywords,
		}
	}

	var sb strings.Builder
	for _, cell := range sentiment.HeatmapSeries(points) {
		swatch := lipgloss.NewStyle().Foreground(ui.HeatColor(cell.ColorBucket)).Render("■")
		sb.WriteString(fmt.Sprintf("  %s %.1f★  %s\n",
			swatch, cell.StarRating, m.styles.Body.Render(cell.SummaryText)))
	}
	return sb.String()
}

func (m Model) renderKeyAspects(aspects *catalog.KeyAspects) string {
	if aspects == nil || (len(aspects.Positive) == 0 && len(aspects.Negative) == 0) {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Bold.Render("Key Aspects") + "\n")
	for _, a := range capStrings(aspects.Positive, 5) {
		sb.WriteString("  " + m.styles.Success.Render("+ ") + m.styles.Body.Render(a) + "\n")
	}
	for _, a := range capStrings(aspects.Negative, 5) {
		sb.WriteString("  " + m.styles.Error.Render("- ") + m.styles.Body.Render(a) + "\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// renderHypeVsReality renders the marketing claim audit as markdown so the
// claim quotes and confirmation counts read well at any width.
func (m Model) renderHypeVsReality(h *catalog.HypeVsReality) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Bold.Render("Hype vs Reality") + "\n")

	if h == nil || len(h.MarketingClaims) == 0 {
		sb.WriteString("  " + m.styles.Muted.Render("No marketing claims analyzed.") + "\n\n")
		return sb.String()
	}

	rate, grade := h.RealityScore()
	var md strings.Builder
	fmt.Fprintf(&md, "**Reality score: %d%% (%s)**\n\n", rate, grade)
	for _, claim := range h.MarketingClaims {
		fmt.Fprintf(&md, "- %q\n", claim.Claim)
	}
	if len(h.Matches) > 0 {
		md.WriteString("\n**Confirmed by reviewers**\n\n")
		for _, match := range h.Matches {
			fmt.Fprintf(&md, "- %q (%d confirmations)\n", match.Claim, match.Confirmations)
		}
	}
	if len(h.Contradictions) > 0 {
		md.WriteString("\n**Disputed by reviewers**\n\n")
		for _, c := range h.Contradictions {
			fmt.Fprintf(&md, "- %q (%d denials)\n", c.Claim, c.Denials)
		}
	}

	rendered, err := m.renderer.Render(md.String())
	if err != nil {
		rendered = md.String()
	}
	sb.WriteString(rendered + "\n")
	return sb.String()
}

func (m Model) renderRecommendations() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Bold.Render("You Might Also Like") + "\n")

	recs := m.store.Recommendations()
	switch {
	case recs == nil:
		sb.WriteString("  " + m.spinner.View() + " Finding similar products...\n\n")
	case len(recs) == 0:
		sb.WriteString("  " + m.styles.Muted.Render("No similar products found.") + "\n\n")
	default:
		cards := make([]string, len(recs))
		for i, rec := range recs {
			card := m.styles.Card
			if i == m.recCursor {
				card = card.BorderForeground(m.styles.Theme.Accent)
			}
			var badge string
			switch rec.Scores.Dominant() {
			case "positive":
				badge = m.styles.BadgePositive.Render("Positive") + "\n"
			case "neutral":
				badge = m.styles.BadgeNeutral.Render("Neutral") + "\n"
			case "negative":
				badge = m.styles.BadgeNegative.Render("Negative") + "\n"
			}
			cards[i] = card.Render(
				m.styles.Bold.Render(truncate(rec.Name, 20)) + "\n" +
					m.styles.Price.Render(fmt.Sprintf("$%.2f", rec.Price)) + "\n" +
					badge +
					m.styles.Muted.Render(truncate(rec.Category, 20)))
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")
	}
	return sb.String()
}

func (m Model) renderReviews(reviews []catalog.Review) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Bold.Render(fmt.Sprintf("Reviews (%d)", len(reviews))) + "\n")

	if len(reviews) == 0 {
		sb.WriteString("  " + m.styles.Muted.Render("No reviews yet.") + "\n")
		return sb.String()
	}

	for _, r := range reviews {
		badge := m.styles.Badge(sentiment.ClassifyReview(r.Sentiment))
		sb.WriteString(fmt.Sprintf("  %s %s", m.styles.Bold.Render(r.DisplayAuthor()), badge))
		if r.Date != "" {
			sb.WriteString("  " + m.styles.Muted.Render(r.Date))
		}
		sb.WriteString("\n  " + m.styles.Body.Render(r.Text) + "\n")
		if words := keywordList(r.Keywords); len(words) > 0 {
			sb.WriteString("  " + m.styles.Muted.Render(strings.Join(words, " · ")) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func keywordList(keywords []catalog.Keyword) []string {
	words := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k.Keyword != "" {
			words = append(words, k.Keyword)
		}
	}
	return words
}

func (m Model) renderForm(title string, labels []string) string {
	var sb strings.Builder
	sb.WriteString("\n  " + m.styles.Title.Render(title) + "\n")

	for i, label := range labels {
		if i >= len(m.fields) {
			break
		}
		sb.WriteString("  " + m.styles.FieldLabel.Render(label) + m.fields[i].View() + "\n")
	}

	if m.formError != "" {
		sb.WriteString("\n  " + m.styles.FieldError.Render(m.formError) + "\n")
	}
	if m.authBusy {
		sb.WriteString("\n  " + m.spinner.View() + " Contacting storefront...\n")
	}
	return sb.String()
}

func (m Model) renderAnalyze() string {
	var sb strings.Builder
	sb.WriteString("\n  " + m.styles.Title.Render("Sentiment Analyzer") + "\n")
	sb.WriteString("  " + m.analyzeInput.View() + "\n\n")

	switch {
	case m.analyzeBusy:
		sb.WriteString("  " + m.spinner.View() + " Analyzing...\n")
	case m.analysisErr != "":
		sb.WriteString("  " + m.styles.FieldError.Render(m.analysisErr) + "\n")
	case m.analysis != nil:
		c := sentiment.Classify(m.analysis.SentimentScore)
		pct := int(m.analysis.SentimentScore*100 + 0.5)
		var color lipgloss.Color
		switch c.Tone {
		case sentiment.ToneSuccess:
			color = ui.Heat5
		case sentiment.ToneDanger:
			color = ui.Heat1
		default:
			color = ui.Heat3
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", pct/2))
		sb.WriteString(fmt.Sprintf("  %s %d%%\n", bar, pct))
		sb.WriteString(fmt.Sprintf("  Score: %s %s\n",
			m.styles.Bold.Render(fmt.Sprintf("%.2f", m.analysis.SentimentScore)), m.styles.Badge(c)))
	default:
		sb.WriteString("  " + m.styles.Muted.Render("Run an analysis to see results.") + "\n")
	}
	return sb.String()
}

func (m Model) renderHelp() string {
	table := ui.NewSimpleTable("Keyboard Reference", []string{"Key", "Action"})
	table.AddRow("↑/↓, j/k", "Move the product cursor")
	table.AddRow("enter", "Open the highlighted product")
	table.AddRow("/", "Focus the search box")
	table.AddRow("c", "Cycle the category filter")
	table.AddRow("s", "Cycle the sentiment filter")
	table.AddRow("x", "Clear all filters")
	table.AddRow("t", "Toggle distribution / heat map")
	table.AddRow("a", "Ad-hoc sentiment analysis")
	table.AddRow("i / u / o", "Sign in / sign up / sign out")
	table.AddRow("R", "Reload the catalog")
	table.AddRow("q, ctrl+c", "Quit")
	return "\n" + table.View(m.styles)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func capStrings(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
