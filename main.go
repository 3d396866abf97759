package main

import (
	"StreamBot/bot"
	"StreamBot/bot/chat"
	"StreamBot/internal/config"
	"StreamBot/internal/database"
	"StreamBot/internal/http-server/api"
	"StreamBot/internal/lib/logger"
	"StreamBot/internal/lib/sl"
	"StreamBot/internal/service/broadcast"
	"StreamBot/internal/service/commerce"
	"StreamBot/internal/ws"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
			return
		}
		// Set up Telegram handler for the logger
		lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelWarn)
		lg.With(
			slog.String("bot_name", conf.Telegram.BotName),
			slog.Int64("admin_id", conf.Telegram.AdminId),
		).Info("telegram bot initialized")
	}

	lg.Info("starting streambot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	storage, err := sessionStorage(conf, lg)
	if err != nil {
		lg.Error("session storage", sl.Err(err))
		return
	}
	engine := chat.NewChatEngine(chat.NewSessionStore(storage), conf.Telegram.AdminId, lg)

	commerceService := commerce.NewCommerceService(conf, lg)
	lg.With(
		slog.String("url", conf.Commerce.BaseURL),
		sl.Secret("api_key", conf.Commerce.ApiKey),
	).Info("commerce service initialized")

	hub := ws.NewHub(lg.With(sl.Module("ws")))
	go hub.Run(ctx)

	if tgBot != nil {
		broadcaster := broadcast.NewBroadcaster(tgBot.Messenger(), conf.Broadcast.Delay, conf.Broadcast.ProgressEvery, lg)
		bot.RegisterFlows(ctx, engine, commerceService, broadcaster, hub, conf.Telegram.BotName, lg)
		for _, line := range engine.Describe() {
			lg.Debug("transition", slog.String("route", line))
		}

		tgBot.SetDispatcher(engine)
		go func() {
			if err := tgBot.Start(ctx); err != nil {
				lg.Error("telegram bot error", sl.Err(err))
			}
		}()
	}

	if !conf.Listen.Enabled {
		<-ctx.Done()
		lg.Info("service stopped")
		return
	}

	// *** blocking start with http server ***
	err = api.New(ctx, conf, lg, engine, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Info("service stopped")
}

func sessionStorage(conf *config.Config, lg *slog.Logger) (chat.SessionStorage, error) {
	switch conf.Session.Backend {
	case config.SessionRedis:
		sessions, err := repository.NewRedisSessions(conf, lg)
		if err != nil {
			return nil, err
		}
		lg.With(
			slog.Any("addrs", conf.Redis.Addrs),
			slog.String("namespace", conf.Redis.Namespace),
		).Info("redis session storage initialized")
		return chat.NewRepositoryStorage(sessions), nil

	case config.SessionMongo:
		db, err := repository.NewMongoClient(conf, lg)
		if err != nil {
			return nil, err
		}
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo session storage initialized")
		return chat.NewRepositoryStorage(db), nil

	default:
		lg.Info("memory session storage initialized", slog.Duration("ttl", conf.Session.TTL))
		return chat.NewMemoryStorage(conf.Session.TTL), nil
	}
}
