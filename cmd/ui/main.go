package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"
	"github.com/libprohq/libpro"
	"github.com/libprohq/libpro/sqlite"
	"github.com/libprohq/libpro/storm"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type configuration struct {
	BindAddress  string        `default:":7132"`
	Database     string        `default:"storm://./db/"`
	LogLevel     string        `default:"info"`
	Timezone     string        `default:"Europe/Amsterdam"`
	FeedInterval time.Duration `default:"30s"`
	MQTTBroker   string        `default:""`
	MQTTTopic    string        `default:"libpro"`
}

func main() {
	var cfg configuration
	err := envconfig.Process("libpro", &cfg)
	if err != nil {
		log.WithField("err", err).Fatal("Could not parse full config from environment")
	}

	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err == nil {
		log.SetLevel(logLevel)
	}

	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.WithField("err", err).Fatal("could not load timezone")
	}

	var kv libpro.KV
	if strings.HasPrefix(cfg.Database, "storm://") {
		dir := strings.TrimPrefix(cfg.Database, "storm://")
		log.WithField("dbpath", dir).Debug("using storm in this directory")
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.WithField("err", err).Fatal("could not create database dir")
		}
		kv, err = storm.New(dir)
		if err != nil {
			log.WithField("err", err).Fatal("could not create file database")
		}
	} else if strings.HasPrefix(cfg.Database, "sqlite://") {
		dir := strings.TrimPrefix(cfg.Database, "sqlite://")
		log.WithField("dbpath", dir).Debug("using sqlite in this directory")
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.WithField("err", err).Fatal("could not create database dir")
		}
		kv, err = sqlite.New(dir)
		if err != nil {
			log.WithField("err", err).Fatal("could not create sqlite database")
		}
	} else if cfg.Database == "memory://" {
		kv = libpro.NewMemKV()
	} else {
		log.WithField("database", cfg.Database).Fatal("Please set a storm://, sqlite:// or memory:// database")
	}
	defer kv.Close()

	logger := log.WithField("app", "libpro")

	app := uiApp{
		catalog: libpro.NewCatalog(kv, logger, tz),
		members: libpro.NewMembership(kv, logger),
		feed:    &liveFeed{},
		board:   &requestBoard{},
		logger:  logger,
		cfg:     cfg,
	}

	if cfg.MQTTBroker != "" {
		app.mqttClient, err = newMQTTClient(cfg.MQTTBroker, "libpro-ui")
		if err != nil {
			log.WithField("err", err).Fatal("could not connect to mqtt broker")
		}
	}

	done := make(chan struct{})
	defer close(done)
	go app.feedLoop(done)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(Logger(app.logger), gin.Recovery())

	r.GET("/status", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"total":  app.catalog.Stats().TotalBooks,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/books.json", app.getBooks)
	r.GET("/book/:id", app.getBook)
	r.GET("/top3.json", app.getTop3)
	r.GET("/stats.json", app.getStats)
	r.GET("/feed.json", app.getFeed)
	r.GET("/download", app.downloadBook)
	r.POST("/view/:id", app.viewBook)
	r.POST("/upload", app.uploadBook)
	r.POST("/select", app.toggleSelect)
	r.POST("/batch-download", app.batchDownload)

	r.GET("/requests.json", app.getRequests)
	r.POST("/requests", app.addRequest)

	r.GET("/theme", app.getTheme)
	r.PUT("/theme", app.setTheme)

	member := r.Group("/member")
	{
		member.POST("/register", app.register)
		member.POST("/login", app.login)
		member.POST("/logout", app.logout)
		member.GET("/me.json", app.currentMember)
	}

	log.Info("libpro is now running")
	port := os.Getenv("PORT")

	if port == "" {
		port = cfg.BindAddress
	} else {
		port = fmt.Sprintf(":%s", port)
	}

	err = r.Run(port)
	if err != nil {
		log.WithField("err", err).Fatal("unable to start running")
	}
}
