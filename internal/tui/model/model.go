package model

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/wuwamoe/wuwa-helper/internal/application"
	"github.com/wuwamoe/wuwa-helper/internal/domain/notify"
	"github.com/wuwamoe/wuwa-helper/internal/domain/state"
	"github.com/wuwamoe/wuwa-helper/internal/tui/msg"
	"github.com/wuwamoe/wuwa-helper/internal/tui/style"
	"github.com/wuwamoe/wuwa-helper/internal/tui/toast"
	"github.com/wuwamoe/wuwa-helper/internal/tui/view"
)

const tickInterval = 250 * time.Millisecond

// Updater 更新流程
type Updater interface {
	CheckUpdates(ctx context.Context) application.Outcome
}

// Session 會話操作
type Session interface {
	RegenerateCode() string
}

// Config TUI 依賴
type Config struct {
	Ctx            context.Context
	Store          *state.Store
	Updater        Updater
	Session        Session
	Version        string
	CheckOnStartup bool
	Log            *zap.Logger
	Now            func() time.Time
}

// Model TUI 核心模型
type Model struct {
	cfg    Config
	ctx    context.Context
	cancel context.CancelFunc

	state    state.GlobalState
	stateCh  <-chan state.GlobalState
	unsub    func()
	toasts   *toast.Stack
	spinner  spinner.Model
	keys     keyMap
	help     help.Model
	width    int
	updating bool
	quitting bool
}

// NewModel 創建新的 TUI Model，並訂閱全局狀態
func NewModel(cfg Config) *Model {
	if cfg.Ctx == nil {
		cfg.Ctx = context.Background()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(cfg.Ctx)
	ch, unsub := cfg.Store.Subscribe()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = style.FromClasses("text-sky-500")

	return &Model{
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		state:   cfg.Store.Get(),
		stateCh: ch,
		unsub:   unsub,
		toasts:  toast.NewStack(toast.MaxVisible),
		spinner: s,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Init 初始化
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForState(), tick(), m.spinner.Tick}
	if m.cfg.CheckOnStartup {
		cmds = append(cmds, m.startUpdate())
	}
	return tea.Batch(cmds...)
}

// Update 更新循環
func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch mm := message.(type) {
	case tea.KeyMsg:
		return m.handleKey(mm)

	case tea.WindowSizeMsg:
		m.width = mm.Width
		m.help.Width = mm.Width
		return m, nil

	case msg.StateChangedMsg:
		m.state = mm.State
		return m, m.waitForState()

	case toast.Msg:
		m.toasts.Upsert(mm.Toast)
		return m, nil

	case msg.UpdateFinishedMsg:
		m.updating = false
		m.cfg.Log.Debug("更新流程結束", zap.Stringer("outcome", mm.Outcome))
		return m, nil

	case msg.CodeRegeneratedMsg:
		m.toasts.Upsert(notify.Toast{
			ID:        "room-code",
			Level:     notify.LevelInfo,
			Message:   "외부 연결 코드: " + mm.Code,
			CreatedAt: m.cfg.Now(),
		})
		return m, nil

	case msg.TickMsg:
		m.toasts.Expire(m.cfg.Now())
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(mm)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		m.Close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(k, m.keys.Update):
		if m.updating {
			return m, nil
		}
		return m, m.startUpdate()

	case key.Matches(k, m.keys.Regenerate):
		session := m.cfg.Session
		return m, func() tea.Msg {
			return msg.CodeRegeneratedMsg{Code: session.RegenerateCode()}
		}
	}
	return m, nil
}

// startUpdate 在 tea.Cmd 中運行，提示通過 Toaster 回到更新循環
func (m *Model) startUpdate() tea.Cmd {
	m.updating = true
	ctx, updater := m.ctx, m.cfg.Updater
	return func() tea.Msg {
		return msg.UpdateFinishedMsg{Outcome: updater.CheckUpdates(ctx)}
	}
}

func (m *Model) waitForState() tea.Cmd {
	ch := m.stateCh
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return msg.StateChangedMsg{State: s}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return msg.TickMsg(t) })
}

// Close 取消進行中的更新並退訂狀態
func (m *Model) Close() {
	m.cancel()
	m.unsub()
}

// View 渲染視圖
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width == 0 {
		width = 80
	}
	frame := ""
	if m.toasts.HasLoading() {
		frame = m.spinner.View()
	}
	return view.RenderDashboard(view.Dashboard{
		State:    m.state,
		Version:  m.cfg.Version,
		Updating: m.updating,
		Toasts:   toast.Render(m.toasts.Items(), 54, frame),
		Help:     m.help.View(m.keys),
		Width:    width,
	})
}
