// Package ui is the Bubble Tea program: a virtualized table over the
// telemetry dataset, incremental search, a detail panel and a stats footer.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"fleetgrid/internal/config"
	"fleetgrid/internal/telemetry"
	"fleetgrid/internal/vlist"
)

const (
	headerLines     = 2
	statsBlockLines = 6
	sparkHeight     = 8
	sparkPoints     = 48
)

// chunkMsg reports one generator step. Progress rides along so the render
// goroutine never reads the generator while the next step runs, and the
// append is timestamped where it happened rather than when the message is
// processed.
type chunkMsg struct {
	appended int
	done     bool
	progress int
	at       time.Time
}

type frameTickMsg time.Time

type plotTickMsg time.Time

type searchDebounceMsg struct{ seq int }

type Model struct {
	cfg config.Config
	log zerolog.Logger

	width, height int
	tableWidth    int
	detailWidth   int
	viewportLines int

	gen    *telemetry.Generator
	ds     *telemetry.Dataset
	filter *telemetry.Filter

	scrollOffset int
	win          vlist.Window
	winDirty     bool

	cursor   int    // position in the filtered ordering
	pinnedID string // record pinned to the detail panel; "" follows the cursor

	search    textinput.Model
	searching bool
	searchSeq int

	progress    progress.Model
	progressPct int
	genDone     bool

	spark *sparkline
	help  help.Model
	stats *renderStats

	err error
}

func New(cfg config.Config, log zerolog.Logger) *Model {
	const (
		defaultWidth  = 80
		defaultHeight = 24
	)

	gen := telemetry.NewGenerator(cfg.TotalRows, cfg.ChunkSize)

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "identity or id"
	ti.CharLimit = 64

	pb := progress.New(progress.WithDefaultGradient())

	m := &Model{
		cfg:      cfg,
		log:      log,
		gen:      gen,
		ds:       gen.Dataset(),
		filter:   telemetry.NewFilter(gen.Dataset()),
		search:   ti,
		progress: pb,
		help:     help.New(),
		stats:    newRenderStats(cfg.StatsWindow),
		spark:    newSparkline(defaultWidth/3, sparkHeight, sparkPoints),
		genDone:  gen.Done(),
		winDirty: true,
	}
	if m.genDone {
		m.progressPct = 100
	}
	m.width, m.height = defaultWidth, defaultHeight
	m.layout()
	return m
}

func (m *Model) Init() tui.Cmd {
	cmds := []tui.Cmd{doFrameTick(m.cfg.FrameFPS), doPlotTick(m.cfg.PlotFPS)}
	if !m.genDone {
		cmds = append(cmds, m.generateChunkCmd())
	}
	return tui.Batch(cmds...)
}

// generateChunkCmd runs exactly one generator step and reports it. The next
// step is only scheduled once this message has been processed, which is what
// keeps the table responsive while 100k rows stream in: every chunk crosses
// the event loop, and teardown stops the chain cold.
func (m *Model) generateChunkCmd() tui.Cmd {
	gen := m.gen
	return func() tui.Msg {
		n, done := gen.Step()
		return chunkMsg{appended: n, done: done, progress: gen.Progress(), at: time.Now()}
	}
}

func doFrameTick(fps int) tui.Cmd {
	return tui.Every(time.Second/time.Duration(fps), func(t time.Time) tui.Msg {
		return frameTickMsg(t)
	})
}

func doPlotTick(fps int) tui.Cmd {
	return tui.Every(time.Second/time.Duration(fps), func(t time.Time) tui.Msg {
		return plotTickMsg(t)
	})
}

func (m *Model) debounceCmd(seq int) tui.Cmd {
	return tui.Tick(m.cfg.SearchDebounce, func(time.Time) tui.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func (m *Model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case chunkMsg:
		m.stats.observeChunk(msg.appended, msg.at)
		m.progressPct = msg.progress
		if m.filter.Sync() {
			m.winDirty = true
		}
		if msg.done {
			if !m.genDone {
				m.genDone = true
				m.log.Info().Int("rows", m.ds.Len()).Msg("generation complete")
			}
			return m, nil
		}
		return m, m.generateChunkCmd()

	case frameTickMsg:
		if m.winDirty {
			m.recomputeWindow()
		}
		return m, doFrameTick(m.cfg.FrameFPS)

	case plotTickMsg:
		if rec, ok := m.detailRecord(); ok {
			m.spark.advance(float64(rec.Latency))
		}
		return m, doPlotTick(m.cfg.PlotFPS)

	case searchDebounceMsg:
		// Stale ticks from earlier keystrokes carry an old seq; drop them.
		if msg.seq == m.searchSeq {
			m.applyQuery(m.search.Value())
		}
		return m, nil

	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.recomputeWindow()
		return m, nil

	case tui.MouseMsg:
		switch msg.Button {
		case tui.MouseButtonWheelUp:
			m.scrollBy(-3 * m.cfg.ItemHeight)
		case tui.MouseButtonWheelDown:
			m.scrollBy(3 * m.cfg.ItemHeight)
		}
		return m, nil

	case tui.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tui.KeyMsg) (tui.Model, tui.Cmd) {
	if m.searching {
		switch msg.Type {
		case tui.KeyEscape:
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.searchSeq++
			m.applyQuery("")
			return m, nil
		case tui.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.searchSeq++
			m.applyQuery(m.search.Value())
			return m, nil
		}
		before := m.search.Value()
		var cmd tui.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.searchSeq++
			if m.cfg.SearchDebounce <= 0 {
				m.applyQuery(m.search.Value())
				return m, cmd
			}
			return m, tui.Batch(cmd, m.debounceCmd(m.searchSeq))
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.log.Info().Msg("shutting down")
		return m, tui.Quit
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.PageUp):
		m.moveCursor(-m.pageRows())
	case key.Matches(msg, keys.PageDown):
		m.moveCursor(m.pageRows())
	case key.Matches(msg, keys.Home):
		m.setCursor(0)
	case key.Matches(msg, keys.End):
		m.setCursor(m.filter.Len() - 1)
	case key.Matches(msg, keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, keys.Select):
		if rec, ok := m.filter.Record(m.cursor); ok {
			if m.pinnedID == rec.ID {
				m.pinnedID = ""
			} else {
				m.pinnedID = rec.ID
				m.spark.reset()
			}
		}
	case key.Matches(msg, keys.Stats):
		m.cfg.StatsEnabled = !m.cfg.StatsEnabled
		m.layout()
		m.recomputeWindow()
	}
	return m, nil
}

func (m *Model) layout() {
	m.tableWidth, m.detailWidth = computePaneWidths(m.width, m.cfg.ViewSplit)
	footer := 1
	if m.cfg.StatsEnabled {
		footer += statsBlockLines
	}
	m.viewportLines = max(1, m.height-headerLines-footer)
	m.progress.Width = max(10, min(40, m.detailWidth-4))
	m.spark.resize(max(8, m.detailWidth-4), sparkHeight)
}

func (m *Model) applyQuery(q string) {
	m.filter.SetQuery(q)
	m.setCursor(m.cursor)
	m.recomputeWindow()
	m.log.Debug().Str("query", q).Int("matches", m.filter.Len()).Msg("filter applied")
}

func (m *Model) setCursor(pos int) {
	m.cursor = max(0, min(pos, m.filter.Len()-1))
	m.ensureCursorVisible()
	m.winDirty = true
}

func (m *Model) moveCursor(delta int) { m.setCursor(m.cursor + delta) }

func (m *Model) pageRows() int {
	return max(1, m.viewportLines/m.cfg.ItemHeight)
}

func (m *Model) ensureCursorVisible() {
	ih := m.cfg.ItemHeight
	top := m.cursor * ih
	if top < m.scrollOffset {
		m.scrollOffset = top
	}
	if bottom := top + ih; bottom > m.scrollOffset+m.viewportLines {
		m.scrollOffset = bottom - m.viewportLines
	}
	m.clampScroll()
}

func (m *Model) scrollBy(delta int) {
	m.scrollOffset += delta
	m.clampScroll()
	m.winDirty = true
}

func (m *Model) clampScroll() {
	limit := vlist.MaxScroll(m.filter.Len(), m.cfg.ItemHeight, m.viewportLines)
	m.scrollOffset = max(0, min(m.scrollOffset, limit))
}

func (m *Model) recomputeWindow() {
	start := time.Now()
	m.clampScroll()
	m.win = vlist.Compute(m.filter.Len(), m.cfg.ItemHeight, m.scrollOffset, m.viewportLines, m.cfg.Overscan)
	m.winDirty = false
	m.stats.observeWindow(time.Since(start))
}

func (m *Model) detailRecord() (telemetry.Record, bool) {
	if m.pinnedID != "" {
		if rec, ok := m.ds.FindByID(m.pinnedID); ok {
			return rec, true
		}
	}
	return m.filter.Record(m.cursor)
}

func (m *Model) View() string {
	parts := []string{
		m.renderHeader(),
		styles.JoinHorizontal(styles.Top, m.renderTable(), m.renderDetail()),
	}
	if m.err != nil {
		parts = append(parts, errStyle.Render("ERROR: "+m.err.Error()))
	}
	if m.cfg.StatsEnabled {
		parts = append(parts, statsStyle.Render(m.renderStatsBlock()))
	}
	parts = append(parts, m.help.View(keys))
	return styles.JoinVertical(styles.Left, parts...)
}

func (m *Model) renderHeader() string {
	count := m.filter.Len()
	countLabel := humanize.Comma(int64(count)) + " rows"
	if q := m.filter.Query(); q != "" {
		countLabel = fmt.Sprintf("%s of %s match %q",
			humanize.Comma(int64(count)), humanize.Comma(int64(m.ds.Len())), q)
	}

	line := titleStyle.Render("FLEETGRID") + "  " + dimFg.Render(countLabel)
	if m.searching {
		line += "  " + m.search.View()
	} else if m.filter.Query() == "" {
		line += "  " + dimFg.Render("press / to search")
	}
	if !m.genDone {
		line += "  " + dimFg.Render("generating ") + m.progress.ViewAs(float64(m.progressPct)/100)
	}

	sep := borderFg.Render(strings.Repeat("─", max(1, m.width)))
	return styles.JoinVertical(styles.Left, line, sep)
}

func (m *Model) renderDetail() string {
	var b strings.Builder
	if rec, ok := m.detailRecord(); ok {
		title := rec.Identity
		if m.pinnedID == rec.ID {
			title += " ⦿"
		}
		b.WriteString(titleStyle.Render(title) + "\n\n")
		b.WriteString(dimFg.Render("id     ") + rec.ID + "\n")
		b.WriteString(dimFg.Render("hash   ") + "#" + rec.Hash + "\n")
		b.WriteString(dimFg.Render("status ") + statusBadge(rec.Status) + "\n")
		b.WriteString(dimFg.Render("lat    ") + fmt.Sprintf("%dms", rec.Latency) + "\n")
		b.WriteString(dimFg.Render("load   ") + fmt.Sprintf("%d%%", rec.Load) + "\n")
		b.WriteString("\n")
		b.WriteString(dimFg.Render("latency trace") + "\n")
		b.WriteString(m.spark.view())
	} else {
		b.WriteString(dimFg.Render("no record selected"))
	}
	return detailStyle.Width(max(10, m.detailWidth-2)).Render(b.String())
}

func (m *Model) renderStatsBlock() string {
	snap := m.stats.snapshot()
	lines := []string{
		"PERF STATS",
		fmt.Sprintf("rows: %s (chunks: %d)", humanize.Comma(int64(snap.rows)), snap.chunks),
		fmt.Sprintf("gen rate: %s rows/s", humanize.Comma(int64(snap.rowsPerSec))),
		fmt.Sprintf("window recompute: last %s avg %s max %s",
			formatStatsDuration(snap.window.last),
			formatStatsDuration(snap.window.avg),
			formatStatsDuration(snap.window.max)),
		fmt.Sprintf("recomputes: %d", snap.recomputes),
		fmt.Sprintf("window: %d rows [%d..%d]", len(m.win.Rows), m.win.Start, m.win.End),
	}
	return strings.Join(lines, "\n")
}

func computePaneWidths(totalWidth int, splitPercent int) (left, right int) {
	if totalWidth <= 1 {
		return 1, 1
	}
	left = totalWidth * splitPercent / 100
	left = max(1, min(left, totalWidth-1))
	right = totalWidth - left

	// Keep panes readable when the terminal is wide enough.
	const minPane = 24
	if totalWidth >= minPane*2 {
		if left < minPane {
			left = minPane
			right = totalWidth - left
		}
		if right < minPane {
			right = minPane
			left = totalWidth - right
		}
	}
	return max(1, left), max(1, right)
}
