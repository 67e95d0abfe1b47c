package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cradio/internal/config"
	"cradio/internal/history"
	"cradio/internal/logger"
	"cradio/internal/player"
	"cradio/internal/radio"
)

type viewMode int

const (
	viewStations viewMode = iota
	viewFavorites
	viewHistory
)

const historyPageLimit = 100

// Model is the session: the single place all state mutates. Keyboard events,
// fetch completions, player exits and remote commands all arrive here as
// messages and are applied one at a time.
type Model struct {
	api       *radio.Client
	player    *player.Controller
	favorites *config.Favorites
	history   *history.Store
	styles    Styles
	ipc       *ipcServer

	page     radio.Page
	criteria radio.SearchCriteria
	selected int

	view        viewMode
	favStations []radio.Station
	favLoading  bool
	recent      []history.Entry

	filtering bool
	filter    filterForm

	// fetchSeq hands out monotonically increasing tokens; only the token in
	// pendingFetch may ever replace the page. Anything else is stale.
	fetchSeq     int
	pendingFetch int

	loading bool
	errMsg  string

	playing     bool
	playingUUID string
	playingName string
	volume      int
	volumeStep  int

	width  int
	height int
}

type searchMsg struct {
	token int
	page  radio.Page
	err   error
}

type favoritesMsg struct {
	stations []radio.Station
	failed   []string
}

type playerExitMsg struct {
	uuid string
}

type ipcReadyMsg struct {
	server *ipcServer
	err    error
}

type ipcClosedMsg struct{}

// NewModel builds the session model. playerErr and favErr are startup
// degradations (missing player binary, unreadable favorites file) that
// become status messages instead of fatal errors.
func NewModel(api *radio.Client, ctrl *player.Controller, favorites *config.Favorites, hist *history.Store, settings config.Settings, playerErr, favErr error) Model {
	m := Model{
		api:        api,
		player:     ctrl,
		favorites:  favorites,
		history:    hist,
		styles:     DefaultStyles(),
		filter:     newFilterForm(),
		volume:     player.DefaultVolume,
		volumeStep: settings.VolumeStep,
		loading:    true,
	}
	if ctrl != nil {
		m.volume = ctrl.Volume()
	}
	if m.volumeStep <= 0 {
		m.volumeStep = player.DefaultVolumeStep
	}

	if playerErr != nil {
		m.errMsg = playerErr.Error()
	}
	if favErr != nil {
		m.errMsg = joinStatus(m.errMsg, "favorites unavailable: "+favErr.Error()+" (continuing with an empty set)")
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startSearchMsg{} },
		m.startIPCCmd(),
		m.listenExitCmd(),
	)
}

// startSearchMsg kicks off the initial unfiltered search through the normal
// token path, so even the first page obeys the stale-result rule.
type startSearchMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case startSearchMsg:
		return m.issueSearch(m.criteria, 0)

	case searchMsg:
		return m.handleSearchResult(msg)

	case favoritesMsg:
		return m.handleFavoritesRefresh(msg)

	case playerExitMsg:
		if m.playing && msg.uuid == m.playingUUID {
			m.playing = false
			m.playingUUID = ""
			m.errMsg = "Playback ended: " + m.playingName
			m.playingName = ""
		}
		return m, m.listenExitCmd()

	case ipcReadyMsg:
		if msg.err != nil {
			logger.Log.Printf("control socket unavailable: %v", msg.err)
			return m, nil
		}
		m.ipc = msg.server
		return m, m.listenIPCCmd()

	case ipcMsg:
		return m.handleIPC(msg)

	case ipcClosedMsg:
		m.ipc = nil
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit()
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch key {
	case "q":
		return m.quit()

	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)

	case "enter":
		return m.playSelected()

	case "/":
		m.filtering = true
		return m, m.filter.open()

	case " ":
		m.toggleFavoriteSelected()

	case "f":
		return m.toggleFavoritesView()

	case "h":
		m.toggleHistoryView()

	case "n":
		if m.view == viewStations && !m.loading && m.page.HasMore {
			return m.issueSearch(m.criteria, m.page.Index+1)
		}
	case "p":
		if m.view == viewStations && !m.loading && m.page.Index > 0 {
			return m.issueSearch(m.criteria, m.page.Index-1)
		}

	case "+", "=":
		m.adjustVolume(m.volumeStep)
	case "-":
		m.adjustVolume(-m.volumeStep)

	case "s":
		m.stopPlayback()
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter.cancel()
		m.filtering = false
		return m, nil

	case "tab":
		return m, m.filter.nextField()

	case "enter":
		m.filter.close()
		m.filtering = false
		committed := m.filter.commit()
		if committed == m.criteria {
			return m, nil
		}
		m.view = viewStations
		return m.issueSearch(committed, 0)
	}

	return m, m.filter.update(msg)
}

// issueSearch supersedes any outstanding fetch: the token it hands out
// becomes the only live one, so an earlier fetch completing later is
// discarded on arrival.
func (m Model) issueSearch(criteria radio.SearchCriteria, pageIndex int) (tea.Model, tea.Cmd) {
	m.criteria = criteria
	m.fetchSeq++
	token := m.fetchSeq
	m.pendingFetch = token
	m.loading = true

	api := m.api
	return m, func() tea.Msg {
		if api == nil {
			return searchMsg{token: token, err: fmt.Errorf("radio directory not available")}
		}
		page, err := api.Search(context.Background(), criteria, pageIndex)
		return searchMsg{token: token, page: page, err: err}
	}
}

func (m Model) handleSearchResult(msg searchMsg) (tea.Model, tea.Cmd) {
	if msg.token != m.pendingFetch {
		// Superseded by a newer fetch. Drop it, whatever it carried.
		return m, nil
	}
	m.pendingFetch = 0
	m.loading = false

	if msg.err != nil {
		// Keep the last good page visible.
		m.errMsg = fetchStatus(msg.err)
		return m, nil
	}

	m.errMsg = ""
	m.page = msg.page
	m.ensureSelection()
	return m, nil
}

// playSelected never arms an exit listener itself; exactly one is armed in
// Init and re-armed per playerExitMsg, so listeners on the shared exit
// channel do not pile up across plays.
func (m Model) playSelected() (tea.Model, tea.Cmd) {
	if m.view == viewHistory {
		entry, ok := m.currentHistoryEntry()
		if !ok {
			return m, nil
		}
		m.play(entry.UUID, entry.Name, entry.URL)
		return m, nil
	}

	station, ok := m.currentStation()
	if !ok {
		return m, nil
	}
	m.play(station.UUID, station.Name, station.StreamURL())
	return m, nil
}

func (m *Model) play(uuid, name, url string) {
	if m.player == nil {
		m.errMsg = "No audio player available. Install vlc, mpv or ffplay."
		return
	}

	if err := m.player.Play(uuid, url); err != nil {
		// Play stops any running process before spawning, so a failed spawn
		// leaves the controller Idle. Mirror that here or the status bar
		// would keep showing the station that was just stopped.
		m.playing = false
		m.playingUUID = ""
		m.playingName = ""
		m.errMsg = err.Error()
		logger.Log.Printf("play %s: %v", uuid, err)
		return
	}

	m.errMsg = ""
	m.playing = true
	m.playingUUID = uuid
	m.playingName = name
	m.recordListen(uuid, name, url)
}

func (m *Model) recordListen(uuid, name, url string) {
	if m.history == nil {
		return
	}
	err := m.history.Record(history.Entry{UUID: uuid, Name: name, URL: url, PlayedAt: time.Now()})
	if err != nil {
		logger.Log.Printf("record history for %s: %v", uuid, err)
	}
}

func (m *Model) stopPlayback() {
	if m.player != nil {
		m.player.Stop()
	}
	m.playing = false
	m.playingUUID = ""
	m.playingName = ""
}

func (m *Model) adjustVolume(delta int) {
	if m.player == nil || !m.playing {
		return
	}
	volume, err := m.player.AdjustVolume(delta)
	m.volume = volume
	if err != nil {
		m.errMsg = err.Error()
	}
}

func (m *Model) toggleFavoriteSelected() {
	if m.favorites == nil || m.view == viewHistory {
		return
	}
	station, ok := m.currentStation()
	if !ok {
		return
	}

	entry := config.FavoriteEntry{UUID: station.UUID, Name: station.Name, URL: station.URL}
	added, err := m.favorites.Toggle(entry)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""

	if m.view == viewFavorites && !added {
		// Removing from the favorites view drops the row immediately.
		filtered := m.favStations[:0]
		for _, s := range m.favStations {
			if s.UUID != station.UUID {
				filtered = append(filtered, s)
			}
		}
		m.favStations = filtered
		m.ensureSelection()
	}
}

func (m Model) toggleFavoritesView() (tea.Model, tea.Cmd) {
	if m.favorites == nil {
		return m, nil
	}
	if m.view == viewFavorites {
		m.view = viewStations
		m.ensureSelection()
		return m, nil
	}

	m.view = viewFavorites
	m.selected = 0

	// Show cached snapshots immediately, refresh from the directory behind.
	m.favStations = cachedFavoriteStations(m.favorites.List(), nil)
	if m.favorites.Count() == 0 {
		m.favLoading = false
		return m, nil
	}
	m.favLoading = true

	api := m.api
	uuids := m.favorites.UUIDs()
	return m, func() tea.Msg {
		if api == nil {
			return favoritesMsg{failed: uuids}
		}
		stations, failed := api.StationsByUUIDs(context.Background(), uuids)
		return favoritesMsg{stations: stations, failed: failed}
	}
}

func (m Model) handleFavoritesRefresh(msg favoritesMsg) (tea.Model, tea.Cmd) {
	m.favLoading = false
	if m.view != viewFavorites {
		return m, nil
	}

	stations := msg.stations
	seen := make(map[string]bool, len(stations))
	for _, station := range stations {
		seen[station.UUID] = true
	}
	// Entries the directory no longer knows fall back to their snapshots.
	for _, station := range cachedFavoriteStations(m.favorites.List(), msg.failed) {
		if !seen[station.UUID] {
			stations = append(stations, station)
		}
	}
	sort.Slice(stations, func(i, j int) bool {
		return strings.ToLower(stations[i].Name) < strings.ToLower(stations[j].Name)
	})

	m.favStations = stations
	m.ensureSelection()
	if len(msg.failed) > 0 {
		m.errMsg = fmt.Sprintf("Some favorites could not be refreshed (%d). Showing cached entries.", len(msg.failed))
	}
	return m, nil
}

func cachedFavoriteStations(entries []config.FavoriteEntry, only []string) []radio.Station {
	var wanted map[string]bool
	if only != nil {
		wanted = make(map[string]bool, len(only))
		for _, uuid := range only {
			wanted[uuid] = true
		}
	}

	var stations []radio.Station
	for _, entry := range entries {
		if wanted != nil && !wanted[entry.UUID] {
			continue
		}
		stations = append(stations, radio.Station{
			UUID: entry.UUID,
			Name: entry.Name,
			URL:  entry.URL,
		})
	}
	return stations
}

func (m *Model) toggleHistoryView() {
	if m.view == viewHistory {
		m.view = viewStations
		m.ensureSelection()
		return
	}
	if m.history == nil {
		m.errMsg = "Listening history unavailable"
		return
	}

	entries, err := m.history.Recent(historyPageLimit)
	if err != nil {
		m.errMsg = "Could not read history: " + err.Error()
		return
	}
	m.recent = entries
	m.view = viewHistory
	m.selected = 0
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.player != nil {
		m.player.Stop()
	}
	if m.favorites != nil {
		if err := m.favorites.FlushWithRetry(); err != nil {
			logger.Log.Printf("flush favorites at quit: %v", err)
		}
	}
	if m.history != nil {
		if err := m.history.Close(); err != nil {
			logger.Log.Printf("close history at quit: %v", err)
		}
	}
	if m.ipc != nil {
		m.ipc.Close()
	}
	return m, tea.Quit
}

func (m Model) startIPCCmd() tea.Cmd {
	return func() tea.Msg {
		server, err := newIPCServer()
		return ipcReadyMsg{server: server, err: err}
	}
}

func (m Model) listenIPCCmd() tea.Cmd {
	if m.ipc == nil {
		return nil
	}
	server := m.ipc
	return func() tea.Msg {
		select {
		case msg := <-server.messages:
			return msg
		case <-server.done:
			return ipcClosedMsg{}
		}
	}
}

func (m Model) listenExitCmd() tea.Cmd {
	if m.player == nil {
		return nil
	}
	exits := m.player.Exits()
	return func() tea.Msg {
		event := <-exits
		return playerExitMsg{uuid: event.UUID}
	}
}

func (m Model) handleIPC(msg ipcMsg) (tea.Model, tea.Cmd) {
	cmd, err := parseIPCCommand(msg.cmd)
	if err != nil {
		sendIPCReply(msg.reply, ipcReply{ok: false, err: err.Error()})
		return m, m.listenIPCCmd()
	}

	var reply ipcReply
	var next tea.Model = m
	var teaCmd tea.Cmd

	switch cmd {
	case "PLAY_PAUSE", "TOGGLE":
		if m.playing {
			m.stopPlayback()
			next = m
			reply = ipcReply{ok: true, data: "STOPPED"}
		} else {
			next, teaCmd = m.playSelected()
			reply = playReply(next)
		}
	case "STOP":
		m.stopPlayback()
		next = m
		reply = ipcReply{ok: true}
	case "NEXT":
		m.moveSelection(1)
		next, teaCmd = m.playSelected()
		reply = playReply(next)
	case "PREV":
		m.moveSelection(-1)
		next, teaCmd = m.playSelected()
		reply = playReply(next)
	case "STATUS":
		reply = ipcReply{ok: true, data: m.statusJSON()}
	case "PING":
		reply = ipcReply{ok: true, data: "OK"}
	case "QUIT":
		sendIPCReply(msg.reply, ipcReply{ok: true})
		return m.quit()
	default:
		reply = ipcReply{ok: false, err: "unknown command"}
	}

	sendIPCReply(msg.reply, reply)
	return next, tea.Batch(teaCmd, m.listenIPCCmd())
}

// playReply reports whether a play attempt actually started playback.
func playReply(next tea.Model) ipcReply {
	updated, ok := next.(Model)
	if ok && updated.playing {
		return ipcReply{ok: true, data: "PLAYING"}
	}
	msg := "could not start playback"
	if ok && updated.errMsg != "" {
		msg = updated.errMsg
	}
	return ipcReply{ok: false, err: msg}
}

func (m Model) statusJSON() string {
	playing := "false"
	if m.playing {
		playing = "true"
	}
	return fmt.Sprintf("{\"playing\":%s,\"station\":%q,\"volume\":%d}", playing, m.playingName, m.volume)
}

func sendIPCReply(ch chan ipcReply, reply ipcReply) {
	if ch == nil {
		return
	}
	select {
	case ch <- reply:
	case <-time.After(200 * time.Millisecond):
	}
}

func (m Model) listLen() int {
	switch m.view {
	case viewFavorites:
		return len(m.favStations)
	case viewHistory:
		return len(m.recent)
	}
	return m.page.Len()
}

func (m *Model) moveSelection(delta int) bool {
	length := m.listLen()
	if length == 0 {
		return false
	}
	prev := m.selected
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= length {
		m.selected = length - 1
	}
	return prev != m.selected
}

func (m *Model) ensureSelection() {
	length := m.listLen()
	if length == 0 {
		m.selected = 0
		return
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= length {
		m.selected = length - 1
	}
}

func (m *Model) currentStation() (radio.Station, bool) {
	var list []radio.Station
	switch m.view {
	case viewFavorites:
		list = m.favStations
	case viewStations:
		list = m.page.Stations
	default:
		return radio.Station{}, false
	}

	if m.selected < 0 || m.selected >= len(list) {
		return radio.Station{}, false
	}
	return list[m.selected], true
}

func (m *Model) currentHistoryEntry() (history.Entry, bool) {
	if m.view != viewHistory || m.selected < 0 || m.selected >= len(m.recent) {
		return history.Entry{}, false
	}
	return m.recent[m.selected], true
}

func fetchStatus(err error) string {
	var fetchErr *radio.FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.Kind {
		case radio.FetchNetwork:
			return "Directory unreachable: " + fetchErr.Err.Error()
		case radio.FetchDecode:
			return "Bad directory response: " + fetchErr.Err.Error()
		case radio.FetchServer:
			return "Directory error: " + fetchErr.Err.Error()
		}
	}
	return err.Error()
}

func joinStatus(existing, added string) string {
	if existing == "" {
		return added
	}
	return existing + " | " + added
}
