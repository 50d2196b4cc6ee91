// Comando consola: cliente de terminal para administradores, instructores y almacén.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jhoicas/gestion-centros/internal/client/admin"
	"github.com/jhoicas/gestion-centros/internal/client/api"
	"github.com/jhoicas/gestion-centros/internal/client/auth"
	"github.com/jhoicas/gestion-centros/internal/client/session"
	"github.com/jhoicas/gestion-centros/internal/client/tui"
	"github.com/jhoicas/gestion-centros/pkg/config"
	"github.com/jhoicas/gestion-centros/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	// La pantalla es de la TUI; el log va a archivo.
	logFile, err := logger.OpenFile(cfg.Console.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "abrir log:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
		Out:   logFile,
	})
	log.Info().
		Str("api", cfg.Console.APIURL).
		Str("session", cfg.Console.SessionFile).
		Msg("iniciando consola")

	store := session.NewFileStore(cfg.Console.SessionFile)
	client := api.NewClient(cfg.Console.APIURL, store, cfg.Console.Timeout)
	authSvc := auth.NewService(client, store, nil, log.Zerolog())
	users := admin.NewController(client, log.Zerolog())

	model := tui.New(authSvc, users, client, tui.Options{
		PageSize: cfg.Console.PageSize,
		Debounce: cfg.Console.Debounce,
	}, log.Zerolog())

	p := tea.NewProgram(model)
	authSvc.SetNavigator(tui.Navigator(p))

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("consola terminó con error")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	log.Info().Msg("consola cerrada")
}
