package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_BOT_TOKEN" env-default:""`
		AdminId int64  `yaml:"admin_id" env:"ADMIN_TELEGRAM_ID" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"FerreiraStreamingsBot"`
		Enabled bool   `yaml:"enabled" env-default:"true"`
	} `yaml:"telegram"`
	Commerce struct {
		BaseURL     string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://127.0.0.1:8000/api/v1"`
		ApiKey      string        `yaml:"api_key" env:"API_KEY" env-default:""`
		Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
		OrdersLimit int           `yaml:"orders_limit" env-default:"5"`
	} `yaml:"commerce"`
	Session struct {
		Backend string        `yaml:"backend" env-default:"memory"`
		TTL     time.Duration `yaml:"ttl" env-default:"24h"`
	} `yaml:"session"`
	Redis struct {
		Addrs     []string `yaml:"addrs" env-default:"127.0.0.1:6379"`
		Password  string   `yaml:"password" env-default:""`
		Namespace string   `yaml:"namespace" env-default:"streambot"`
	} `yaml:"redis"`
	Mongo struct {
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env-default:""`
		Database string `yaml:"database" env-default:"streambot"`
	} `yaml:"mongo"`
	Broadcast struct {
		Delay         time.Duration `yaml:"delay" env-default:"100ms"`
		ProgressEvery int           `yaml:"progress_every" env-default:"25"`
	} `yaml:"broadcast"`
	Listen struct {
		Enabled bool   `yaml:"enabled" env-default:"true"`
		BindIP  string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port    string `yaml:"port" env-default:"9100"`
		ApiKey  string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
	SessionMongo  = "mongo"
)

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
