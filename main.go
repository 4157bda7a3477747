package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rotationhub/internal/config"
	"rotationhub/internal/db"
	"rotationhub/internal/generate"
	"rotationhub/internal/mqtt"
	"rotationhub/internal/publisher"
	"rotationhub/internal/redis"
	"rotationhub/internal/scheduler"
	"rotationhub/internal/taskqueue"
	"rotationhub/internal/utils"
	"rotationhub/internal/web"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.InitLogging(cfg.LogLevel)

	dbConn, err := db.NewDB(cfg.DBURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbConn.Close(context.Background())

	redisClient := redis.NewRedisClient(cfg.RedisAddr)

	mqttClient, err := mqtt.NewMQTTClient(cfg.MQTTBroker, cfg.MQTTClientID)
	if err != nil {
		log.Fatalf("Failed to connect to MQTT: %v", err)
	}

	aiClient := generate.NewHTTPClient(cfg.AIEndpoint, cfg.AIModel, cfg.AIAPIKey)

	taskqueue.SetGlobalInstances(redisClient, aiClient)
	taskqueue.StartWorkers(cfg.RedisAddr)

	pub := publisher.NewPublisher(mqttClient)

	sched := scheduler.NewScheduler(dbConn, pub)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	webServer := web.NewWebServer(dbConn.Pool(), redisClient, cfg.JWTSecret, dbConn, pub, aiClient)
	go webServer.Start(fmt.Sprintf(":%d", cfg.Port))

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	sched.Stop()
	taskqueue.StopWorkers()
	mqttClient.Disconnect(250)
	log.Println("Shutdown complete")
}
