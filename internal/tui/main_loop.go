package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	panelRefreshInterval = 5 * time.Second
	panelHistoryLimit    = 5
	statusClearDelay     = 4 * time.Second
)

type panelTab int

const (
	tabStatus panelTab = iota
	tabQueue
	tabConflicts
)

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	syncCfg  config.ClientSync
	session  models.Session

	tab panelTab

	stats     models.SyncStats
	history   []models.SyncLogEntry
	ops       []models.PendingSyncOperation
	conflicts []models.ConflictData
	online    bool

	queueIdx    int
	conflictIdx int

	dialogOpen     bool
	dialogConflict models.ConflictData

	confirmDiscard bool

	sync    syncModel
	syncing bool
	status  string
	errMsg  string

	logout bool
}

type panelDataMsg struct {
	stats     models.SyncStats
	history   []models.SyncLogEntry
	ops       []models.PendingSyncOperation
	conflicts []models.ConflictData
	online    bool
	err       error
}

type syncDoneMsg struct {
	err error
}

type rearmDoneMsg struct {
	count int64
	err   error
}

type discardDoneMsg struct {
	err error
}

type resolveDoneMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type refreshTickMsg time.Time

type clearStatusMsg struct{}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, syncCfg config.ClientSync, session models.Session) mainLoopModel {
	return mainLoopModel{
		ctx:      ctx,
		services: services,
		syncCfg:  syncCfg,
		session:  session,
		sync:     newSyncModel(),
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdRefresh(), m.tickRefresh())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case panelDataMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.stats = msg.stats
		m.history = msg.history
		m.ops = msg.ops
		m.conflicts = msg.conflicts
		m.online = msg.online
		m.queueIdx = clampIndex(m.queueIdx, len(m.ops))
		m.conflictIdx = clampIndex(m.conflictIdx, len(m.conflicts))
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.cmdRefresh(), m.tickRefresh())

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.sync.spinner, cmd = m.sync.spinner.Update(msg)
		return m, cmd

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrSyncInProgress) {
				m.status = "Sync already running"
				return m, m.cmdClearStatus()
			}
			m.errMsg = humanizeServerUnavailableError(msg.err)
			return m, m.cmdRefresh()
		}
		m.status = "Sync finished"
		m.errMsg = ""
		return m, tea.Batch(m.cmdRefresh(), m.cmdClearStatus())

	case rearmDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Re-arm failed: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Re-armed %d parked operation(s)", msg.count)
		m.errMsg = ""
		return m, tea.Batch(m.cmdRefresh(), m.cmdClearStatus())

	case discardDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Discard failed: %v", msg.err)
			return m, nil
		}
		m.status = "Operation discarded"
		m.errMsg = ""
		return m, tea.Batch(m.cmdRefresh(), m.cmdClearStatus())

	case resolveDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Resolution failed: %v", msg.err)
			return m, nil
		}
		m.dialogOpen = false
		m.status = "Conflict resolved"
		m.errMsg = ""
		return m, tea.Batch(m.cmdRefresh(), m.cmdClearStatus())

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", msg.err)
			return m, nil
		}
		m.status = "Copied to clipboard"
		return m, m.cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirmDiscard {
		return m.updateConfirmDiscard(keyMsg)
	}
	if m.dialogOpen {
		return m.updateConflictDialog(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit

	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit

	case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.right):
		m.tab = (m.tab + 1) % 3
		return m, nil

	case key.Matches(keyMsg, keys.backtab), key.Matches(keyMsg, keys.left):
		m.tab = (m.tab + 2) % 3
		return m, nil

	case key.Matches(keyMsg, keys.sync):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = ""
		return m, tea.Batch(m.cmdSync(), m.sync.spinner.Tick)

	case key.Matches(keyMsg, keys.up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(keyMsg, keys.down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(keyMsg, keys.rearm):
		if m.tab == tabQueue {
			return m, m.cmdRearm()
		}

	case key.Matches(keyMsg, keys.discard):
		if m.tab == tabQueue && len(m.ops) > 0 {
			m.confirmDiscard = true
		}
		return m, nil

	case key.Matches(keyMsg, keys.enter):
		if m.tab == tabConflicts && len(m.conflicts) > 0 {
			m.dialogOpen = true
			m.dialogConflict = m.conflicts[m.conflictIdx]
		}
		return m, nil
	}

	return m, nil
}

func (m *mainLoopModel) moveSelection(delta int) {
	switch m.tab {
	case tabQueue:
		m.queueIdx = clampIndex(m.queueIdx+delta, len(m.ops))
	case tabConflicts:
		m.conflictIdx = clampIndex(m.conflictIdx+delta, len(m.conflicts))
	}
}

func (m mainLoopModel) updateConfirmDiscard(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.confirmDiscard = false
		if m.queueIdx < len(m.ops) {
			return m, m.cmdDiscard(m.ops[m.queueIdx].ID)
		}
		return m, nil
	case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
		m.confirmDiscard = false
	}
	return m, nil
}

func (m mainLoopModel) updateConflictDialog(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.dialogOpen = false
		return m, nil
	case key.Matches(keyMsg, keys.keepLocal):
		return m, m.cmdResolve(models.StrategyKeepLocal)
	case key.Matches(keyMsg, keys.keepServer):
		return m, m.cmdResolve(models.StrategyKeepServer)
	case key.Matches(keyMsg, keys.merge):
		return m, m.cmdResolve(models.StrategyMerge)
	case key.Matches(keyMsg, keys.copyLocal):
		return m, cmdCopyPayload(m.dialogConflict.LocalData)
	case key.Matches(keyMsg, keys.copyServer):
		return m, cmdCopyPayload(m.dialogConflict.ServerData)
	}
	return m, nil
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m mainLoopModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	services := m.services

	return func() tea.Msg {
		stats, err := services.RecordService.Stats(ctx)
		if err != nil {
			return panelDataMsg{err: err}
		}

		history, err := services.Reconciler.History(ctx, panelHistoryLimit)
		if err != nil {
			return panelDataMsg{err: err}
		}

		ops, err := services.RecordService.PendingOperations(ctx)
		if err != nil {
			return panelDataMsg{err: err}
		}

		conflicts, err := services.Resolver.Conflicts(ctx)
		if err != nil {
			return panelDataMsg{err: err}
		}

		return panelDataMsg{
			stats:     stats,
			history:   history,
			ops:       ops,
			conflicts: conflicts,
			online:    services.Probe.Online(),
		}
	}
}

func (m mainLoopModel) tickRefresh() tea.Cmd {
	return tea.Tick(panelRefreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m mainLoopModel) cmdClearStatus() tea.Cmd {
	return tea.Tick(statusClearDelay, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m mainLoopModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	reconciler := m.services.Reconciler

	return func() tea.Msg {
		return syncDoneMsg{err: reconciler.Sync(ctx)}
	}
}

func (m mainLoopModel) cmdRearm() tea.Cmd {
	ctx := m.ctx
	reconciler := m.services.Reconciler

	return func() tea.Msg {
		count, err := reconciler.RearmParked(ctx)
		return rearmDoneMsg{count: count, err: err}
	}
}

func (m mainLoopModel) cmdDiscard(operationID string) tea.Cmd {
	ctx := m.ctx
	records := m.services.RecordService

	return func() tea.Msg {
		return discardDoneMsg{err: records.DiscardOperation(ctx, operationID)}
	}
}

func (m mainLoopModel) cmdResolve(strategy models.ResolutionStrategy) tea.Cmd {
	ctx := m.ctx
	resolver := m.services.Resolver
	conflictID := m.dialogConflict.ID

	return func() tea.Msg {
		return resolveDoneMsg{err: resolver.Resolve(ctx, models.ResolveRequest{
			ConflictID: conflictID,
			Strategy:   strategy,
		})}
	}
}

func cmdCopyPayload(payload json.RawMessage) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(string(payload))}
	}
}

// ── views ────────────────────────────────────────────────────────────────────

func (m mainLoopModel) View() string {
	if m.confirmDiscard && m.queueIdx < len(m.ops) {
		op := m.ops[m.queueIdx]
		return confirmModel{message: fmt.Sprintf("%s %s/%s", op.Operation, op.EntityType, op.EntityID)}.View()
	}
	if m.dialogOpen {
		return m.viewConflictDialog()
	}

	var body string
	switch m.tab {
	case tabStatus:
		body = m.viewStatus()
	case tabQueue:
		body = m.viewQueue()
	case tabConflicts:
		body = m.viewConflicts()
	}

	hotKeys := "tab: next panel │ s: sync now │ L: log out"
	switch m.tab {
	case tabQueue:
		hotKeys = "tab: next panel │ s: sync │ r: re-arm parked │ d: discard │ ↑/↓: move"
	case tabConflicts:
		hotKeys = "tab: next panel │ s: sync │ enter: resolve │ ↑/↓: move"
	}

	return renderPage(m.viewHeader(), body, hotKeys)
}

func (m mainLoopModel) viewHeader() string {
	labels := []string{
		"STATUS",
		fmt.Sprintf("QUEUE (%d)", len(m.ops)),
		fmt.Sprintf("CONFLICTS (%d)", len(m.conflicts)),
	}
	for i := range labels {
		if panelTab(i) == m.tab {
			labels[i] = "[" + labels[i] + "]"
		}
	}
	return "FIELDSYNC · " + strings.Join(labels, " │ ")
}

func (m mainLoopModel) viewStatus() string {
	var b strings.Builder

	state := offlineStyle.Render("OFFLINE")
	if m.online {
		state = onlineStyle.Render("ONLINE")
	}
	b.WriteString("Server          │ ")
	b.WriteString(state)
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Account         │ %s\n", valueOrDash(m.session.Login)))
	b.WriteString(fmt.Sprintf("Records         │ %d\n", m.stats.TotalRecords))
	b.WriteString(fmt.Sprintf("Pending ops     │ %d\n", m.stats.PendingOperations))

	parked := fmt.Sprintf("%d", m.stats.ParkedOperations)
	if m.stats.ParkedOperations > 0 {
		parked = parkedStyle.Render(parked)
	}
	b.WriteString(fmt.Sprintf("Parked ops      │ %s\n", parked))
	b.WriteString(fmt.Sprintf("Open conflicts  │ %d\n", m.stats.Conflicts))
	b.WriteString(fmt.Sprintf("Last push       │ %s\n", timeOrDash(m.stats.LastPushAt)))
	b.WriteString(fmt.Sprintf("Last pull       │ %s\n", timeOrDash(m.stats.LastPullAt)))

	if m.syncCfg.AutoSync {
		b.WriteString(fmt.Sprintf("Auto-sync       │ every %s\n", m.syncCfg.Interval))
	} else {
		b.WriteString("Auto-sync       │ off\n")
	}

	if m.stats.OfflineTooLong(m.syncCfg.MaxOfflineDays, time.Now()) {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf(
			"Warning: unsynced data older than %d days (oldest capture %s)",
			m.syncCfg.MaxOfflineDays,
			m.stats.OldestUnsyncedAt.Local().Format("2006-01-02"))))
		b.WriteString("\n")
	}

	if m.syncing {
		b.WriteString("\n")
		b.WriteString(m.sync.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	if len(m.history) > 0 {
		b.WriteString("\nRecent sync runs\n")
		for _, entry := range m.history {
			b.WriteString(fmt.Sprintf("  %s  %-4s  %-7s  ok:%d fail:%d\n",
				entry.CompletedAt.Local().Format("15:04:05"),
				entry.Direction, entry.Status,
				entry.RecordsProcessed, entry.RecordsFailed))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m mainLoopModel) viewQueue() string {
	if len(m.ops) == 0 {
		return "Replay queue is empty."
	}

	var b strings.Builder
	b.WriteString("    Op      │ Entity                        │ Try │ Last error\n")
	b.WriteString("  ──────────┼───────────────────────────────┼─────┼─────────────────────\n")

	for i, op := range m.ops {
		cursor := " "
		if i == m.queueIdx {
			cursor = ">"
		}

		entity := fitText(fmt.Sprintf("%s/%s", op.EntityType, op.EntityID), 29)
		lastErr := fitText(op.LastError, 21)
		row := fmt.Sprintf("%s %-9s │ %-29s │ %3d │ %s", cursor, op.Operation, entity, op.RetryCount, lastErr)
		if op.Exhausted(m.syncCfg.MaxAttempts) {
			row = parkedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m mainLoopModel) viewConflicts() string {
	if len(m.conflicts) == 0 {
		return "No open conflicts."
	}

	var b strings.Builder
	b.WriteString("    Entity                        │ Fields │ Detected\n")
	b.WriteString("  ────────────────────────────────┼────────┼─────────────────────\n")

	for i, conflict := range m.conflicts {
		cursor := " "
		if i == m.conflictIdx {
			cursor = ">"
		}
		entity := fitText(fmt.Sprintf("%s/%s", conflict.EntityType, conflict.EntityID), 31)
		b.WriteString(fmt.Sprintf("%s %-31s │ %6d │ %s\n",
			cursor, entity, len(conflict.ConflictFields),
			conflict.DetectedAt.Local().Format("2006-01-02 15:04:05")))
	}

	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m mainLoopModel) viewConflictDialog() string {
	conflict := m.dialogConflict

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Entity: %s/%s\n", conflict.EntityType, conflict.EntityID))
	b.WriteString(fmt.Sprintf("Local edit based on v%d (%s) │ server holds v%d (%s)\n\n",
		conflict.LocalVersion, conflict.LocalTimestamp.Local().Format("15:04:05"),
		conflict.ServerVersion, conflict.ServerTimestamp.Local().Format("15:04:05")))

	b.WriteString("Field                     │ Local                │ Server\n")
	b.WriteString("──────────────────────────┼──────────────────────┼──────────────────────\n")
	for _, field := range conflict.ConflictFields {
		b.WriteString(fmt.Sprintf("%-25s │ %-20s │ %s\n",
			fitText(field, 25),
			fitText(payloadFieldValue(conflict.LocalData, field), 20),
			fitText(payloadFieldValue(conflict.ServerData, field), 20)))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("RESOLVE CONFLICT", strings.TrimRight(b.String(), "\n"),
		"1: keep local │ 2: keep server │ 3: merge │ c/C: copy local/server │ esc: back")
}

// payloadFieldValue extracts the value at a dotted path from a JSON document
// and renders it compactly.
func payloadFieldValue(payload json.RawMessage, dotted string) string {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "-"
	}

	var value any = doc
	for _, part := range strings.Split(dotted, ".") {
		node, ok := value.(map[string]any)
		if !ok {
			return "-"
		}
		value, ok = node[part]
		if !ok {
			return "-"
		}
	}

	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "-"
		}
		return string(encoded)
	}
}

func clampIndex(idx, length int) int {
	if idx >= length {
		idx = length - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
