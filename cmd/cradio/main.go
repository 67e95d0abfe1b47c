package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cradio/internal/config"
	"cradio/internal/history"
	"cradio/internal/logger"
	"cradio/internal/player"
	"cradio/internal/radio"
	"cradio/internal/ui"
)

func main() {
	logger.Init()
	settings := config.LoadSettings()

	api, err := radio.NewClient(settings.UserAgent, settings.PageSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "radio directory error:", err)
		os.Exit(1)
	}
	if err := api.DiscoverServer(context.Background()); err != nil {
		logger.Log.Printf("server discovery: %v", err)
	}

	backend, playerErr := player.ProbeBackends(settings.PlayerOrder)
	ctrl := player.NewController(backend, player.DefaultVolume)

	favorites, favErr := config.LoadFavorites()

	var hist *history.Store
	if path, err := history.DefaultPath(); err == nil {
		if hist, err = history.Open(path); err != nil {
			logger.Log.Printf("history unavailable: %v", err)
		}
	}

	model := ui.NewModel(api, ctrl, favorites, hist, settings, playerErr, favErr)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
