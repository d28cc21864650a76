package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"edugen/internal/adapter/llm"
	"edugen/internal/app"
	"edugen/internal/config"
	"edugen/internal/logger"
	"edugen/internal/service"
	"edugen/internal/store"
	"edugen/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	logPath := flag.String("log", "edugen-tui.log", "file that receives log output")
	exportDir := flag.String("export-dir", ".", "directory for exported files")
	noColor := flag.Bool("no-color", false, "disable colour output")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	if err := logger.InitializeWithWriter(cfg.Logger, logFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	kv, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open slot storage: %v", err)
	}
	defer closeStore()

	bank := store.NewQuestionBank(kv)
	bank.Load(ctx)

	model, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	controller := app.NewController(service.NewContentService(model, cfg.LLM.QuizQuestions, cfg.LLM.Timeout), bank)
	ui := tui.NewModel(ctx, controller, tui.Options{NoColor: *noColor, ExportDir: *exportDir})

	if _, err := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		appLogger.Error("Terminal UI exited with error", zap.Error(err))
		log.Fatalf("Terminal UI failed: %v", err)
	}
}
