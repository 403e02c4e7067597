package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// sortedTransactions returns a newest-first copy of the snapshot's log.
func (a App) sortedTransactions() []model.Transaction {
	txs := make([]model.Transaction, len(a.snap.Transactions))
	copy(txs, a.snap.Transactions)
	pipeline.SortNewestFirst(txs)
	return txs
}

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	txs := a.sortedTransactions()

	if len(txs) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Transactions",
			muted.Render("Nothing logged yet. Add one with `finmate add 250 --category Food`."), cw)
	}

	listW := cw
	var side string
	if !a.isCompactLayout() {
		widths := components.LayoutRow(cw, 3)
		listW = widths[0] + widths[1]
		side = a.renderTransactionSide(txs, widths[2])
	}

	// Card chrome and header take four lines
	visible := h - 4
	if visible < 1 {
		visible = 1
	}
	offset := 0
	if a.txCursor >= visible {
		offset = a.txCursor - visible + 1
	}
	end := offset + visible
	if end > len(txs) {
		end = len(txs)
	}

	inner := components.CardInnerWidth(listW)
	const dateW, amountW, catW = 10, 12, 14
	descW := inner - dateW - amountW - catW - 3
	if descW < 4 {
		descW = 4
	}

	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %*s",
		dateW, "Date", catW, "Category", descW, "Description", amountW, "Amount")))
	for i := offset; i < end; i++ {
		tx := txs[i]
		line := fmt.Sprintf("%-*s %-*s %-*s %*s",
			dateW, txDay(tx),
			catW, truncStr(tx.Category, catW),
			descW, truncStr(tx.Description, descW),
			amountW, a.money(tx.Amount))
		b.WriteString("\n")
		if i == a.txCursor {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
	}

	title := fmt.Sprintf("Transactions (%d of %d)", a.txCursor+1, len(txs))
	list := components.ContentCard(title, b.String(), listW)
	if side == "" {
		return list
	}
	return components.CardRow([]string{list, side})
}

func (a App) renderTransactionSide(txs []model.Transaction, w int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	if a.txCursor < len(txs) {
		tx := txs[a.txCursor]
		b.WriteString(renderPairs([][2]string{
			{"Amount", a.money(tx.Amount)},
			{"Category", tx.Category},
			{"Date", tx.Date},
			{"ID", truncStr(tx.ID, components.CardInnerWidth(w)-10)},
		}))
		if tx.Description != "" {
			b.WriteString("\n")
			b.WriteString(muted.Render(truncStr(tx.Description, components.CardInnerWidth(w))))
		}
	}
	detail := components.ContentCard("Selected", b.String(), w)

	now := a.snap.Now
	monthStart := pipeline.StartOfDay(pipeline.AddDays(now, 1-now.Local().Day()))
	month := pipeline.FilterByTime(txs, monthStart, pipeline.StartOfDay(pipeline.AddDays(now, 1)))
	totals := pipeline.AggregateCategories(month)
	body := muted.Render("No spending this month")
	if len(totals) > 0 {
		body = renderPairs(a.categoryRows(totals))
	}
	cats := components.ContentCard("By category, "+now.Format("January"), body, w)

	return lipgloss.JoinVertical(lipgloss.Left, detail, cats)
}

func txDay(tx model.Transaction) string {
	at, err := pipeline.ParseDate(tx.Date)
	if err != nil {
		return "??"
	}
	return cli.FormatDay(at)
}
