package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fancards/fancards-go/internal/config"
	"github.com/fancards/fancards-go/internal/discord"
)

func main() {
	setupLogger()

	cfg, err := config.LoadDiscord()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(discord.Config{
		Token:   cfg.Token,
		GuildID: cfg.GuildID,
		APIURL:  cfg.APIBaseURL,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	discord.RegisterUserCommands(bot.Registry)
	discord.RegisterDropCommands(bot.Registry)
	discord.RegisterCardCommands(bot.Registry)
	discord.RegisterBurnCommands(bot.Registry)
	discord.RegisterEconomyCommands(bot.Registry)

	if err := bot.Start(); err != nil {
		slog.Error("Failed to start bot", "error", err)
		os.Exit(1)
	}
	defer bot.Stop()

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if err := bot.RegisterCommands(forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		os.Exit(1)
	}

	waitForSignal()
}

func waitForSignal() {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}

func setupLogger() {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
